package cache

import (
	"container/list"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// PayloadCache stores raw upstream payloads keyed by a request fingerprint.
type PayloadCache interface {
	Get(ctx context.Context, fingerprint string) (map[string]any, bool)
	Set(ctx context.Context, fingerprint string, payload map[string]any)
	Close() error
}

const DefaultLRUCapacity = 16

// LRU is a bounded in-process cache. A hit moves the entry to
// most-recently-used; inserts past capacity evict the least-recently-used
// entry. Safe for concurrent use.
type LRU struct {
	mu       sync.Mutex
	capacity int
	order    *list.List
	entries  map[string]*list.Element
}

type lruEntry struct {
	fingerprint string
	payload     map[string]any
}

func NewLRU(capacity int) *LRU {
	if capacity < 1 {
		capacity = 1
	}
	return &LRU{
		capacity: capacity,
		order:    list.New(),
		entries:  make(map[string]*list.Element),
	}
}

func (c *LRU) Get(_ context.Context, fingerprint string) (map[string]any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	element, ok := c.entries[fingerprint]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(element)
	return element.Value.(*lruEntry).payload, true
}

func (c *LRU) Set(_ context.Context, fingerprint string, payload map[string]any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if element, ok := c.entries[fingerprint]; ok {
		element.Value.(*lruEntry).payload = payload
		c.order.MoveToFront(element)
		return
	}

	c.entries[fingerprint] = c.order.PushFront(&lruEntry{fingerprint: fingerprint, payload: payload})
	if c.order.Len() > c.capacity {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*lruEntry).fingerprint)
	}
}

func (c *LRU) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

func (c *LRU) Close() error {
	return nil
}

// RedisCache shares explore payloads across processes when the service runs
// more than one replica.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration
}

func DefaultRedisConfig() RedisConfig {
	return RedisConfig{
		Host: "localhost",
		Port: "6379",
		TTL:  10 * time.Minute,
	}
}

func NewRedisCache(cfg RedisConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Host + ":" + cfg.Port,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisCache{
		client: client,
		ttl:    cfg.TTL,
	}, nil
}

func (c *RedisCache) Get(ctx context.Context, fingerprint string) (map[string]any, bool) {
	data, err := c.client.Get(ctx, redisKey(fingerprint)).Bytes()
	if err != nil {
		return nil, false
	}

	var payload map[string]any
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, false
	}
	return payload, true
}

func (c *RedisCache) Set(ctx context.Context, fingerprint string, payload map[string]any) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	c.client.Set(ctx, redisKey(fingerprint), data, c.ttl)
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func redisKey(fingerprint string) string {
	hash := sha256.Sum256([]byte(fingerprint))
	return "explore:" + hex.EncodeToString(hash[:])
}

type NoOpCache struct{}

func NewNoOpCache() *NoOpCache {
	return &NoOpCache{}
}

func (c *NoOpCache) Get(ctx context.Context, fingerprint string) (map[string]any, bool) {
	return nil, false
}

func (c *NoOpCache) Set(ctx context.Context, fingerprint string, payload map[string]any) {
}

func (c *NoOpCache) Close() error {
	return nil
}
