package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/foodhealth/food-health-tracker/internal/logger"
)

type Config struct {
	Server        ServerConfig
	DB            DBConfig
	Redis         RedisConfig
	OpenFoodFacts OpenFoodFactsConfig
	Logger        LoggerConfig
}

type ServerConfig struct {
	Port string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

type RedisConfig struct {
	Host     string
	Port     string
	CacheTTL time.Duration
}

type OpenFoodFactsConfig struct {
	RegionalBaseURL string
	GlobalBaseURL   string
	// Country filter sent with regional search requests.
	RegionalCountry   string
	RequestTimeout    time.Duration
	RequestsPerSecond float64
}

type LoggerConfig struct {
	Level      logger.LogLevel
	OutputPath string
	Format     string
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvSeconds(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if secs, err := strconv.Atoi(value); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil && f > 0 {
			return f
		}
	}
	return defaultValue
}

func parseLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "debug":
		return logger.LevelDebug
	case "info":
		return logger.LevelInfo
	case "warn", "warning":
		return logger.LevelWarn
	case "error":
		return logger.LevelError
	default:
		return logger.LevelInfo
	}
}

func Load() (*Config, error) {
	return &Config{
		Server: ServerConfig{
			Port: getEnvOrDefault("SERVER_PORT", "8000"),
		},
		DB: DBConfig{
			Host:     getEnvOrDefault("DB_HOST", "localhost"),
			Port:     getEnvOrDefault("DB_PORT", "5432"),
			User:     getEnvOrDefault("DB_USER", "postgres"),
			Password: getEnvOrDefault("DB_PASSWORD", "postgres"),
			DBName:   getEnvOrDefault("DB_NAME", "food_health_tracker"),
		},
		Redis: RedisConfig{
			Host:     getEnvOrDefault("REDIS_HOST", "localhost"),
			Port:     getEnvOrDefault("REDIS_PORT", "6379"),
			CacheTTL: getEnvSeconds("REDIS_CACHE_TTL_SECONDS", 24*time.Hour),
		},
		OpenFoodFacts: OpenFoodFactsConfig{
			RegionalBaseURL:   getEnvOrDefault("OFF_REGIONAL_BASE_URL", "https://in.openfoodfacts.org/api/v2"),
			GlobalBaseURL:     getEnvOrDefault("OFF_GLOBAL_BASE_URL", "https://world.openfoodfacts.org/api/v2"),
			RegionalCountry:   getEnvOrDefault("OFF_REGIONAL_COUNTRY", "India"),
			RequestTimeout:    getEnvSeconds("OFF_TIMEOUT_SECONDS", 10*time.Second),
			RequestsPerSecond: getEnvFloat("OFF_REQUESTS_PER_SECOND", 5),
		},
		Logger: LoggerConfig{
			Level:      parseLogLevel(getEnvOrDefault("LOG_LEVEL", "info")),
			OutputPath: getEnvOrDefault("LOG_OUTPUT", "stdout"),
			Format:     getEnvOrDefault("LOG_FORMAT", "json"),
		},
	}, nil
}
