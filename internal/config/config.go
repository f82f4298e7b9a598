// internal/config/config.go

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	Environment string
	Server      ServerConfig
	Database    DatabaseConfig
	NATS        NATSConfig
	Analytics   AnalyticsConfig
	Harvest     HarvestConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	CorsOrigins     []string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Database     string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
	SSLMode      string
}

// NATSConfig holds NATS configuration
type NATSConfig struct {
	URL            string
	MaxReconnects  int
	ReconnectWait  time.Duration
	ConnectTimeout time.Duration
	SamplesTopic   string
}

// AnalyticsConfig holds hot-score calculator configuration
type AnalyticsConfig struct {
	GrowthWeight        float64
	EngagementWeight    float64
	GrowthWindowDays    int
	EngagementReference float64
	StaleAfterDays      int
}

// HarvestConfig holds follower-harvester configuration
type HarvestConfig struct {
	ProfileBaseURL string
	UserAgent      string
	FetchTimeout   time.Duration
}

// Load loads configuration from environment variables
func Load() (Config, error) {
	config := Config{
		Environment: getEnv("APP_ENV", "development"),
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getEnvAsInt("SERVER_PORT", 8080),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
			CorsOrigins:     getEnvAsSlice("SERVER_CORS_ORIGINS", []string{"*"}),
		},
		Database: DatabaseConfig{
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnvAsInt("DB_PORT", 5432),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", "postgres"),
			Database:     getEnv("DB_NAME", "bitescout"),
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 25),
			MaxLifetime:  getEnvAsDuration("DB_MAX_LIFETIME", 5*time.Minute),
			SSLMode:      getEnv("DB_SSL_MODE", "disable"),
		},
		NATS: NATSConfig{
			URL:            getEnv("NATS_URL", "nats://localhost:4222"),
			MaxReconnects:  getEnvAsInt("NATS_MAX_RECONNECTS", 10),
			ReconnectWait:  getEnvAsDuration("NATS_RECONNECT_WAIT", 1*time.Second),
			ConnectTimeout: getEnvAsDuration("NATS_CONNECT_TIMEOUT", 2*time.Second),
			SamplesTopic:   getEnv("NATS_SAMPLES_TOPIC", "engagement.samples"),
		},
		Analytics: AnalyticsConfig{
			GrowthWeight:        getEnvAsFloat("ANALYTICS_GROWTH_WEIGHT", 0.6),
			EngagementWeight:    getEnvAsFloat("ANALYTICS_ENGAGEMENT_WEIGHT", 0.4),
			GrowthWindowDays:    getEnvAsInt("ANALYTICS_GROWTH_WINDOW_DAYS", 30),
			EngagementReference: getEnvAsFloat("ANALYTICS_ENGAGEMENT_REFERENCE", 50),
			StaleAfterDays:      getEnvAsInt("ANALYTICS_STALE_AFTER_DAYS", 14),
		},
		Harvest: HarvestConfig{
			ProfileBaseURL: getEnv("HARVEST_PROFILE_BASE_URL", "https://www.instagram.com"),
			UserAgent:      getEnv("HARVEST_USER_AGENT", "bitescout-harvester/1.0"),
			FetchTimeout:   getEnvAsDuration("HARVEST_FETCH_TIMEOUT", 15*time.Second),
		},
	}

	return config, validate(config)
}

// validate checks if config is valid
func validate(config Config) error {
	weightSum := config.Analytics.GrowthWeight + config.Analytics.EngagementWeight
	if weightSum < 0.999 || weightSum > 1.001 {
		return fmt.Errorf("analytics weights must sum to 1, got %.3f", weightSum)
	}
	if config.Analytics.GrowthWindowDays <= 0 {
		return fmt.Errorf("growth window must be positive")
	}
	if config.Analytics.StaleAfterDays <= 0 {
		return fmt.Errorf("stale-after days must be positive")
	}

	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	return strings.Split(valueStr, ",")
}
