package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the application. It is constructed
// once at startup and injected into services; nothing reads the
// environment after load.
type Config struct {
	// Server configuration
	ServerPort     string
	ServerHost     string
	AllowedOrigins []string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// Generative model configuration
	OpenAIAPIKey string
	OpenAIAPIURL string
	OpenAIModel  string

	// Object storage configuration
	S3Bucket string
	S3Region string

	// PDF rendering service
	PDFRendererURL string

	// Chat behavior: also treat a stop phrase in the model's own reply as
	// a session end. Inherited ambiguity, off unless explicitly enabled.
	ChatStopOnModelReply bool

	// Single bounded timeout applied to every external call.
	UpstreamTimeout time.Duration
}

// LoadConfig creates a new Config instance from environment variables.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		ServerHost: getEnv("SERVER_HOST", "0.0.0.0"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     getEnv("DB_NAME", "nutricoach"),
		DBSSLMode:  getEnv("DB_SSL_MODE", "disable"),

		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisURL:      os.Getenv("REDIS_URL"),

		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
		OpenAIAPIURL: getEnv("OPENAI_API_URL", "https://api.openai.com/v1/chat/completions"),
		OpenAIModel:  getEnv("OPENAI_MODEL", "gpt-4o"),

		S3Bucket: getEnv("S3_BUCKET_NAME", "nutricoach-user-images"),
		S3Region: getEnv("AWS_REGION", "us-west-1"),

		PDFRendererURL: getEnv("PDF_RENDERER_URL", "http://localhost:3001/render"),

		ChatStopOnModelReply: getEnv("CHAT_STOP_ON_MODEL_REPLY", "false") == "true",

		UpstreamTimeout: 60 * time.Second,
	}

	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		for _, origin := range strings.Split(origins, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
			}
		}
	}

	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		db, err := strconv.Atoi(dbStr)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
		}
		cfg.RedisDB = db
	}

	if timeoutStr := os.Getenv("UPSTREAM_TIMEOUT"); timeoutStr != "" {
		timeout, err := time.ParseDuration(timeoutStr)
		if err != nil {
			return nil, fmt.Errorf("invalid UPSTREAM_TIMEOUT: %w", err)
		}
		cfg.UpstreamTimeout = timeout
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
