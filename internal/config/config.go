// Package config provides runtime configuration values for the server.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds configuration knobs for the HTTP server and services.
type Config struct {
	HTTPAddr        string
	DBPath          string
	JWTSecret       string
	TokenDuration   time.Duration
	ShutdownTimeout time.Duration
	SeedDemoData    bool
	RecommendN      int
	AnalyticsTopN   int
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoienv(key string, def int) int {
	v := getenv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func boolenv(key string, def bool) bool {
	v := getenv(key, "")
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

// Load collects configuration from environment with defaults.
func Load() Config {
	return Config{
		HTTPAddr:        getenv("HTTP_ADDR", ":8080"),
		DBPath:          getenv("DB_PATH", "./data/standout.db"),
		JWTSecret:       getenv("JWT_SECRET", "change-me"),
		TokenDuration:   time.Duration(atoienv("TOKEN_TTL_HOURS", 24)) * time.Hour,
		ShutdownTimeout: time.Duration(atoienv("SHUTDOWN_TIMEOUT", 15)) * time.Second,
		SeedDemoData:    boolenv("SEED_DEMO_DATA", true),
		RecommendN:      atoienv("RECOMMEND_DEFAULT_N", 4),
		AnalyticsTopN:   atoienv("ANALYTICS_TOP_N", 5),
	}
}
