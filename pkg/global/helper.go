package global

import (
	"context"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

func GetEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func GetEnvFloat(key string, defaultValue float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Printf("Warning: %s=%q is not a number, using default %v", key, raw, defaultValue)
		return defaultValue
	}
	return value
}

func GetDefaultTimer() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}

func GetMongoURI() string {
	mongoURI := os.Getenv("MONGODB_URI")
	if mongoURI == "" {
		log.Fatal("MONGODB_URI is not set in environment variables")
		os.Exit(1)
	}
	return mongoURI
}

func GetDatabaseName() string {
	dbName := GetEnvOrDefault("MONGODB_DATABASE", "glamora_store")
	return dbName
}

func GetBackendBaseURL() string {
	baseURL := os.Getenv("BACKEND_API_URL")
	if baseURL == "" {
		log.Fatal("BACKEND_API_URL is not set in environment variables")
		os.Exit(1)
	}
	return strings.TrimRight(baseURL, "/")
}

// GetFrontendOrigins returns the storefront origins allowed by CORS,
// comma-separated in the environment.
func GetFrontendOrigins() []string {
	raw := GetEnvOrDefault("FRONTEND_ORIGINS", "http://localhost:3000,http://localhost:5173")
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
