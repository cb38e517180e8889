// Package config loads application configuration from environment
// variables, with an optional .env file for local development.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/ledgerline/payee-resolver/internal/domain/payee/grouper"
)

// Config holds all application configuration.
type Config struct {
	Grouper  GrouperConfig
	Database DatabaseConfig
	Logging  LoggingConfig
}

// GrouperConfig mirrors grouper.Config with env-driven values.
type GrouperConfig struct {
	GroupingThreshold      float64
	ExistingMatchThreshold float64
	AutoAcceptThreshold    float64
	MaxExistingMatches     int
	LookupConcurrency      int
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

type LoggingConfig struct {
	Level string
}

// Load reads configuration from environment variables. A .env file in the
// working directory is applied first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	defaults := grouper.DefaultConfig()
	cfg := &Config{
		Grouper: GrouperConfig{
			GroupingThreshold:      getEnvAsFloat("GROUPING_THRESHOLD", defaults.GroupingThreshold),
			ExistingMatchThreshold: getEnvAsFloat("EXISTING_MATCH_THRESHOLD", defaults.ExistingMatchThreshold),
			AutoAcceptThreshold:    getEnvAsFloat("AUTO_ACCEPT_THRESHOLD", defaults.AutoAcceptThreshold),
			MaxExistingMatches:     getEnvAsInt("MAX_EXISTING_MATCHES", defaults.MaxExistingMatches),
			LookupConcurrency:      getEnvAsInt("LOOKUP_CONCURRENCY", defaults.LookupConcurrency),
		},
		Database: DatabaseConfig{
			Host:     getEnv("POSTGRES_HOST", "localhost"),
			Port:     getEnvAsInt("POSTGRES_PORT", 5432),
			User:     getEnv("POSTGRES_USER", "postgres"),
			Password: getEnv("POSTGRES_PASSWORD", "postgres"),
			Database: getEnv("POSTGRES_DB", "payees-dev"),
			SSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	if err := cfg.Grouper.ToGrouperConfig().Validate(); err != nil {
		return nil, fmt.Errorf("grouper configuration: %w", err)
	}

	return cfg, nil
}

// ToGrouperConfig converts the env-backed values into the engine config.
func (c GrouperConfig) ToGrouperConfig() grouper.Config {
	return grouper.Config{
		GroupingThreshold:      c.GroupingThreshold,
		ExistingMatchThreshold: c.ExistingMatchThreshold,
		AutoAcceptThreshold:    c.AutoAcceptThreshold,
		MaxExistingMatches:     c.MaxExistingMatches,
		LookupConcurrency:      c.LookupConcurrency,
	}
}

// DSN returns the database connection string.
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}
