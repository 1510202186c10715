package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	WorldSourceFile  = "file"
	WorldSourceRedis = "redis"
)

type Config struct {
	Environment string
	LogLevel    slog.Level
	LogFile     string // Empty means stderr

	WorldSource string // "file" or "redis"
	WorldPath   string // File path; its base name is the Redis key when WorldSource is "redis"
	RedisURL    string

	LeaveAtRoot bool // "q" at the root of an event leaves it
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first if present; real environment variables win.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    parseLogLevel(getEnv("LOG_LEVEL", "info")),
		LogFile:     getEnv("LOG_FILE", ""),
		WorldSource: strings.ToLower(getEnv("WORLD_SOURCE", WorldSourceFile)),
		WorldPath:   getEnv("WORLD_PATH", "data/world.json"),
		RedisURL:    getEnv("REDIS_URL", "redis://localhost:6379"),
		LeaveAtRoot: getEnvBool("LEAVE_AT_ROOT", false),
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

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}
