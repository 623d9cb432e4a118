package config

import (
	"os"      // For environment variables
	"strconv" // For string to number conversion

	"github.com/joho/godotenv" // For loading .env files
)

// Config holds the application configuration
type Config struct {
	AppPort             string  // Application port
	DatabaseURL         string  // PostgreSQL connection string
	JWTSecret           string  // Session token signing secret
	RedisAddr           string  // Redis server address
	RedisPass           string  // Redis password
	RedisDB             int     // Redis database number
	SimilarityThreshold float64 // Trigram similarity cutoff for fuzzy search (0 = store default)
	StorageAccessKey    string  // Object storage access key
	StorageSecretKey    string  // Object storage secret key
	StorageBucket       string  // Object storage bucket for images
	StorageRegion       string  // Object storage region
	StorageEndpoint     string  // Object storage endpoint (S3-compatible)
	IsProd              bool    // Is production environment
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	threshold, _ := strconv.ParseFloat(os.Getenv("SIMILARITY_THRESHOLD"), 64)
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "3000"
	}
	return &Config{
		AppPort:             port,
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		JWTSecret:           os.Getenv("JWT_SECRET"),
		RedisAddr:           os.Getenv("REDIS_ADDR"),
		RedisPass:           os.Getenv("REDIS_PASS"),
		RedisDB:             redisDB,
		SimilarityThreshold: threshold,
		StorageAccessKey:    os.Getenv("STORAGE_ACCESS_KEY"),
		StorageSecretKey:    os.Getenv("STORAGE_SECRET_KEY"),
		StorageBucket:       os.Getenv("STORAGE_BUCKET"),
		StorageRegion:       os.Getenv("STORAGE_REGION"),
		StorageEndpoint:     os.Getenv("STORAGE_ENDPOINT"),
		IsProd:              os.Getenv("IS_PROD") == "true",
	}
}
