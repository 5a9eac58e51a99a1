package config

import (
	"fmt"
	"os"
	"time"

	"supernova/internal/logger"

	"github.com/sirupsen/logrus"
)

// AppConfig holds all application configuration
type AppConfig struct {
	Server   ServerConfig
	Database DatabaseConfig
	AI       AIConfig
	Auth     AuthConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port string
}

// DatabaseConfig holds database connection configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// AIConfig holds the research-assistant webhook configuration. Each persona
// may talk to its own endpoint; personas without a dedicated endpoint fall
// back to DefaultURL.
type AIConfig struct {
	ResearcherURL  string
	StudentURL     string
	ManagerURL     string
	DefaultURL     string
	APIToken       string
	RequestTimeout time.Duration
}

// EndpointFor returns the webhook URL for a persona
func (c *AIConfig) EndpointFor(persona string) string {
	switch persona {
	case "researcher":
		if c.ResearcherURL != "" {
			return c.ResearcherURL
		}
	case "student":
		if c.StudentURL != "" {
			return c.StudentURL
		}
	case "manager":
		if c.ManagerURL != "" {
			return c.ManagerURL
		}
	}
	return c.DefaultURL
}

// AuthConfig holds authentication configuration
type AuthConfig struct {
	JWTSecret       []byte
	TokenExpiration time.Duration
}

// LoadConfig loads and validates application configuration from environment
func LoadConfig() (*AppConfig, error) {
	config := &AppConfig{}

	config.Server = ServerConfig{
		Port: getEnvOrDefault("SERVER_PORT", "8080"),
	}

	config.Database = DatabaseConfig{
		Host:     getEnvOrDefault("DB_HOST", "postgres"),
		Port:     getEnvOrDefault("DB_PORT", "5432"),
		User:     getEnvOrDefault("DB_USER", "postgres"),
		Password: getEnvOrDefault("DB_PASSWORD", "postgres"),
		Name:     getEnvOrDefault("DB_NAME", "supernova"),
		SSLMode:  getEnvOrDefault("DB_SSLMODE", "disable"),
	}

	defaultURL := os.Getenv("AI_WEBHOOK_URL")
	if defaultURL == "" {
		logger.Log.Warn("AI_WEBHOOK_URL environment variable not set")
	}

	config.AI = AIConfig{
		ResearcherURL:  os.Getenv("AI_WEBHOOK_URL_RESEARCHER"),
		StudentURL:     os.Getenv("AI_WEBHOOK_URL_STUDENT"),
		ManagerURL:     os.Getenv("AI_WEBHOOK_URL_MANAGER"),
		DefaultURL:     defaultURL,
		APIToken:       os.Getenv("AI_WEBHOOK_TOKEN"),
		RequestTimeout: getEnvAsDuration("AI_REQUEST_TIMEOUT", 60*time.Second),
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable must be set")
	}
	if len(jwtSecret) < 32 {
		return nil, fmt.Errorf("JWT_SECRET must be at least 32 characters (current length: %d)", len(jwtSecret))
	}

	config.Auth = AuthConfig{
		JWTSecret:       []byte(jwtSecret),
		TokenExpiration: getEnvAsDuration("JWT_TOKEN_EXPIRATION", 24*time.Hour),
	}

	return config, nil
}

// GetDSN returns the database connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

// Helper functions for environment variable parsing

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		logger.Log.WithFields(logrus.Fields{"key": key, "default": defaultValue}).Warn("Invalid duration value, using default")
		return defaultValue
	}
	return value
}
