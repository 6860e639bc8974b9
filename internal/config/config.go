package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// DefaultSeed keeps the game deterministic when SEED is not set.
const DefaultSeed int64 = 1

type Config struct {
	Environment string
	LogLevel    slog.Level
	Seed        int64
}

func Load() *Config {
	return &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    parseLogLevel(getEnv("LOG_LEVEL", "info")),
		Seed:        parseSeed(getEnv("SEED", "")),
	}
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func parseSeed(value string) int64 {
	if value == "" {
		return DefaultSeed
	}
	seed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return DefaultSeed
	}
	return seed
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
