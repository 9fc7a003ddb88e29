package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// EngineLimiter paces outbound calls per upstream engine. The default of one
// call per 500ms keeps us under the search upstream's rate limits; cache hits
// never reach the limiter, so paced delay only applies to real calls.
type EngineLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.RWMutex
	defaults RateLimitConfig
}

type RateLimitConfig struct {
	Interval  time.Duration
	BurstSize int
}

func DefaultConfig() RateLimitConfig {
	return RateLimitConfig{
		Interval:  500 * time.Millisecond,
		BurstSize: 1,
	}
}

func NewEngineLimiter(config RateLimitConfig) *EngineLimiter {
	return &EngineLimiter{
		limiters: make(map[string]*rate.Limiter),
		defaults: config,
	}
}

func NewEngineLimiterWithDefaults() *EngineLimiter {
	return NewEngineLimiter(DefaultConfig())
}

func (p *EngineLimiter) GetLimiter(engine string) *rate.Limiter {
	p.mu.RLock()
	limiter, exists := p.limiters[engine]
	p.mu.RUnlock()

	if exists {
		return limiter
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if limiter, exists = p.limiters[engine]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(rate.Every(p.defaults.Interval), p.defaults.BurstSize)
	p.limiters[engine] = limiter
	return limiter
}

func (p *EngineLimiter) SetEngineLimit(engine string, interval time.Duration, burst int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.limiters[engine] = rate.NewLimiter(rate.Every(interval), burst)
}

func (p *EngineLimiter) Wait(ctx context.Context, engine string) error {
	return p.GetLimiter(engine).Wait(ctx)
}
