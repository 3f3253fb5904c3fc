package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration values for the application
type Config struct {
	Port            string
	AllowedOrigins  []string
	LogLevel        string
	Environment     string
	DatabaseURL     string
	RedisURL        string
	SupabaseURL     string
	SupabaseAnonKey string
	SupabaseJWTKey  string
	StorageBucket   string
	GoogleClientID  string
	QuoteDBURL      string
	QuoteDBAPIKey   string
	MailAPIURL      string
	MailAPIKey      string
	MailFrom        string
	MailAdminTo     string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	return &Config{
		Port:            getEnv("PORT", "8080"),
		AllowedOrigins:  parseOrigins(getEnv("ALLOWED_ORIGINS", "http://localhost:5173")),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		Environment:     getEnv("ENVIRONMENT", "production"),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		RedisURL:        getEnv("REDIS_URL", ""),
		SupabaseURL:     getEnv("SUPABASE_URL", ""),
		SupabaseAnonKey: getEnv("SUPABASE_ANON_KEY", ""),
		SupabaseJWTKey:  getEnv("SUPABASE_JWT_SECRET", ""),
		StorageBucket:   getEnv("STORAGE_BUCKET", "library"),
		GoogleClientID:  getEnv("GOOGLE_CLIENT_ID", ""),
		QuoteDBURL:      getEnv("QUOTE_DB_URL", ""),
		QuoteDBAPIKey:   getEnv("QUOTE_DB_API_KEY", ""),
		MailAPIURL:      getEnv("MAIL_API_URL", ""),
		MailAPIKey:      getEnv("MAIL_API_KEY", ""),
		MailFrom:        getEnv("MAIL_FROM", "noreply@namavruksha.org"),
		MailAdminTo:     getEnv("MAIL_ADMIN_TO", ""),
	}, nil
}

// getEnv gets an environment variable with a fallback value
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// parseOrigins parses comma-separated origins into a slice
func parseOrigins(origins string) []string {
	if origins == "" {
		return []string{}
	}

	parts := strings.Split(origins, ",")
	result := make([]string, 0, len(parts))

	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
