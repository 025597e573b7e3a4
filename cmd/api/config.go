package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr           string
	LogLevel       string
	DBDSN          string
	JWTSecret      string
	InternalSecret string

	PokeAPIBaseURL    string
	PokeAPIRPS        int
	PokeAPIMaxRetries int
	MockAPIBaseURL    string
	UpstreamTimeout   time.Duration

	CatalogPageSize     int
	CatalogConcurrency  int
	CatalogPreloadPages int
	CacheFreshness      time.Duration

	CORSOrigins  []string
	EnableHSTS   bool
	RateLimitRPS float64
	RateBurst    int
	MaxBodyBytes int64
}

// loadEnvFiles reads .env.local then .env. Variables already set in the
// environment are never overridden.
func loadEnvFiles() {
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load(".env")
}

func loadConfig() (Config, error) {
	var errs []string
	required := func(key string) string {
		v := os.Getenv(key)
		if v == "" {
			errs = append(errs, key)
		}
		return v
	}

	cfg := Config{
		Addr:           getEnv("APP_ADDR", ":8080"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		DBDSN:          os.Getenv("DB_DSN"),
		JWTSecret:      required("JWT_SECRET"),
		InternalSecret: os.Getenv("INTERNAL_SECRET"),

		PokeAPIBaseURL:    getEnv("POKEAPI_BASE_URL", "https://pokeapi.co/api/v2"),
		PokeAPIRPS:        getEnvInt("POKEAPI_RPS", 20),
		PokeAPIMaxRetries: getEnvInt("POKEAPI_MAX_RETRIES", 3),
		MockAPIBaseURL:    required("MOCKAPI_BASE_URL"),
		UpstreamTimeout:   getEnvDuration("UPSTREAM_TIMEOUT", 15*time.Second),

		CatalogPageSize:     getEnvInt("CATALOG_PAGE_SIZE", 50),
		CatalogConcurrency:  getEnvInt("CATALOG_CONCURRENCY", 8),
		CatalogPreloadPages: getEnvInt("CATALOG_PRELOAD_PAGES", 1),
		CacheFreshness:      getEnvDuration("CATALOG_CACHE_TTL", 7*24*time.Hour),

		CORSOrigins:  splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),
		EnableHSTS:   getEnvBool("ENABLE_HSTS", false),
		RateLimitRPS: getEnvFloat("RATE_LIMIT_RPS", 10),
		RateBurst:    getEnvInt("RATE_LIMIT_BURST", 20),
		MaxBodyBytes: int64(getEnvInt("MAX_BODY_BYTES", 1<<20)),
	}

	if len(errs) > 0 {
		return Config{}, fmt.Errorf("missing required environment variables: %s", strings.Join(errs, ", "))
	}
	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return v
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return v
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func redactDSN(dsn string) string {
	const marker = "://"
	start := strings.Index(dsn, marker)
	if start < 0 {
		return dsn
	}
	start += len(marker)
	end := strings.Index(dsn[start:], "@")
	if end < 0 {
		return dsn
	}
	return dsn[:start] + "***" + dsn[start+end:]
}
