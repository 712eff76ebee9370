package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	ServerPort    string
	GinMode       string
	PublicBaseURL string

	MongoURI      string
	MongoDatabase string
	RedisURI      string

	JWTSecret string
	JWTExpiry time.Duration

	SMTPHost      string
	SMTPPort      string
	SMTPUser      string
	SMTPPassword  string
	EmailFrom     string
	EmailFromName string

	StripeSecretKey     string
	StripeWebhookSecret string
	Currency            string

	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string
	S3UseSSL    bool

	EmailQueueSize int
	EmailWorkers   int
}

// Load reads configuration from .env file and environment variables
func Load() *Config {
	// Load .env file (ignore error if file doesn't exist - env vars may be set directly)
	_ = godotenv.Load()

	cfg := &Config{
		ServerPort:    getEnv("SERVER_PORT", "8080"),
		GinMode:       getEnv("GIN_MODE", "debug"),
		PublicBaseURL: getEnv("PUBLIC_BASE_URL", "http://localhost:8080"),

		MongoURI:      getEnvRequired("MONGO_URI"),
		MongoDatabase: getEnvRequired("MONGO_DATABASE"),
		RedisURI:      getEnv("REDIS_URI", "localhost:6379"),

		JWTSecret: getEnvRequired("JWT_SECRET"),
		JWTExpiry: parseDuration(getEnv("JWT_EXPIRY", "24h")),

		SMTPHost:      getEnv("SMTP_HOST", "localhost"),
		SMTPPort:      getEnv("SMTP_PORT", "1025"),
		SMTPUser:      getEnv("SMTP_USER", ""),
		SMTPPassword:  getEnv("SMTP_PASSWORD", ""),
		EmailFrom:     getEnv("EMAIL_FROM", "bookings@example.com"),
		EmailFromName: getEnv("EMAIL_FROM_NAME", "Tours API"),

		StripeSecretKey:     getEnv("STRIPE_SECRET_KEY", ""),
		StripeWebhookSecret: getEnv("STRIPE_WEBHOOK_SECRET", ""),
		Currency:            getEnv("CURRENCY", "usd"),

		S3Endpoint:  getEnv("S3_ENDPOINT", "localhost:9000"),
		S3AccessKey: getEnv("S3_ACCESS_KEY", "minioadmin"),
		S3SecretKey: getEnv("S3_SECRET_KEY", "minioadmin"),
		S3Bucket:    getEnv("S3_BUCKET", "tour-images"),
		S3UseSSL:    parseBool(getEnv("S3_USE_SSL", "false")),

		EmailQueueSize: parseInt(getEnv("EMAIL_QUEUE_SIZE", "100")),
		EmailWorkers:   parseInt(getEnv("EMAIL_WORKERS", "2")),
	}

	return cfg
}

// getEnv reads an environment variable with a fallback default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvRequired reads an environment variable and panics if not set
func getEnvRequired(key string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Fatalf("Required environment variable %s is not set", key)
	}
	return value
}

// parseDuration parses a duration string, panics on error
func parseDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		log.Fatalf("Invalid duration format: %s", s)
	}
	return d
}

// parseBool parses a boolean string, panics on error
func parseBool(s string) bool {
	b, err := strconv.ParseBool(s)
	if err != nil {
		log.Fatalf("Invalid boolean value: %s", s)
	}
	return b
}

// parseInt parses an integer string, panics on error
func parseInt(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("Invalid integer value: %s", s)
	}
	return n
}
