package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort string
	ServerHost string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration (optional lookup cache)
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// Nutritionix credentials for food/exercise resolution
	NutritionixAppID  string
	NutritionixAppKey string

	// Path to the unit/sports mapping table for the normalizer.
	// Empty means built-in defaults only.
	MappingPath string
}

// LoadConfig creates a new Config instance from environment variables.
// A local .env file is loaded first when present (development convenience);
// real environment variables always win.
func LoadConfig() (*Config, error) {
	if !IsProduction() {
		// Missing .env is fine; env vars may be set directly.
		_ = godotenv.Load()
	}

	cfg := &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		ServerHost: getEnv("SERVER_HOST", "0.0.0.0"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     getEnv("DB_NAME", "nutriflow"),
		DBSSLMode:  getEnv("DB_SSL_MODE", "disable"),

		RedisHost:     os.Getenv("REDIS_HOST"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       0,

		NutritionixAppID:  os.Getenv("NUTRITIONIX_APP_ID"),
		NutritionixAppKey: os.Getenv("NUTRITIONIX_APP_KEY"),

		MappingPath: os.Getenv("MAPPING_PATH"),
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
