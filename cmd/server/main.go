package main

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/dharmasatrya/tripscout/internal/cache"
	"github.com/dharmasatrya/tripscout/internal/flightsearch"
	"github.com/dharmasatrya/tripscout/internal/handler"
	"github.com/dharmasatrya/tripscout/internal/ratelimit"
	"github.com/dharmasatrya/tripscout/internal/scout"
	"github.com/dharmasatrya/tripscout/internal/searchapi"
	"github.com/dharmasatrya/tripscout/internal/weather"
)

type Config struct {
	Port             string
	SearchAPIBaseURL string
	SearchAPIKey     string
	OpenMeteoBaseURL string
	PacingInterval   time.Duration
	CacheCapacity    int
	RedisEnabled     bool
	RedisHost        string
	RedisPort        string
	RedisTTL         time.Duration
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on process environment")
	}

	cfg := loadConfig()
	if cfg.SearchAPIKey == "" {
		log.Fatal("SEARCHAPI_KEY is required")
	}

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestID())

	rateLimiter := ratelimit.NewEngineLimiterWithDefaults()
	rateLimiter.SetEngineLimit(searchapi.EngineExplore, cfg.PacingInterval, 1)

	flightsClient := searchapi.NewClient(searchapi.Config{
		BaseURL: cfg.SearchAPIBaseURL,
		APIKey:  cfg.SearchAPIKey,
		Timeout: 20 * time.Second,
		Limiter: rateLimiter,
	})
	exploreClient := searchapi.NewClient(searchapi.Config{
		BaseURL: cfg.SearchAPIBaseURL,
		APIKey:  cfg.SearchAPIKey,
		Timeout: 15 * time.Second,
		Limiter: rateLimiter,
	})
	weatherClient := weather.NewClient(weather.Config{
		BaseURL: cfg.OpenMeteoBaseURL,
		Timeout: 15 * time.Second,
	})

	var exploreCache cache.PayloadCache
	if cfg.RedisEnabled {
		redisCache, err := cache.NewRedisCache(cache.RedisConfig{
			Host: cfg.RedisHost,
			Port: cfg.RedisPort,
			TTL:  cfg.RedisTTL,
		})
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		exploreCache = redisCache
		log.Printf("Redis explore cache enabled (host: %s:%s, TTL: %v)", cfg.RedisHost, cfg.RedisPort, cfg.RedisTTL)
	} else {
		exploreCache = cache.NewLRU(cfg.CacheCapacity)
		log.Printf("In-process explore cache enabled (capacity: %d)", cfg.CacheCapacity)
	}
	defer exploreCache.Close()

	flightService := flightsearch.NewService(flightsClient)
	scoutService := scout.NewService(exploreClient, weatherClient, exploreCache)

	flightHandler := handler.NewFlightSearchHandler(flightService)
	destinationHandler := handler.NewDestinationHandler(scoutService)
	composeHandler := handler.NewComposeHandler()
	weatherHandler := handler.NewWeatherHandler(weatherClient)

	api := e.Group("/api/v1")
	api.POST("/flights/search", flightHandler.Search)
	api.POST("/destinations/cards", destinationHandler.Cards)
	api.POST("/compose", composeHandler.Compose)
	api.POST("/weather/snapshot", weatherHandler.Snapshot)
	e.GET("/health", handler.HealthHandler)

	log.Printf("Starting trip scout server on port %s", cfg.Port)

	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func loadConfig() Config {
	return Config{
		Port:             getEnv("PORT", "8080"),
		SearchAPIBaseURL: getEnv("SEARCHAPI_ENDPOINT", "https://www.searchapi.io/api/v1/search"),
		SearchAPIKey:     getEnv("SEARCHAPI_KEY", ""),
		OpenMeteoBaseURL: getEnv("OPEN_METEO_ENDPOINT", "https://api.open-meteo.com/v1/forecast"),
		PacingInterval:   getEnvDuration("EXPLORE_PACING_INTERVAL", 500*time.Millisecond),
		CacheCapacity:    getEnvInt("EXPLORE_CACHE_CAPACITY", cache.DefaultLRUCapacity),
		RedisEnabled:     getEnvBool("REDIS_ENABLED", false),
		RedisHost:        getEnv("REDIS_HOST", "localhost"),
		RedisPort:        getEnv("REDIS_PORT", "6379"),
		RedisTTL:         getEnvDuration("REDIS_TTL", 10*time.Minute),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return duration
}
