package main

import (
	"context" // context package is needed for Redis operations
	"log"     // log package is needed for logging

	"catalog_system/internal/api"        // Custom package for API handlers
	"catalog_system/internal/config"     // Custom package for configuration
	"catalog_system/internal/images"     // Custom package for image storage
	"catalog_system/internal/middleware" // Custom package for middleware
	"catalog_system/internal/store"      // Custom package for queries

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
	"gorm.io/driver/postgres"      // PostgreSQL driver for GORM
	"gorm.io/gorm"                 // GORM ORM library
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Connect to the database. TranslateError maps driver unique violations
	// onto gorm.ErrDuplicatedKey, which the store layer relies on.
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{TranslateError: true})
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}

	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})

	// Test Redis connection
	_, err = redisClient.Ping(context.Background()).Result()
	if err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	// Setup image storage; runs disabled when no bucket is configured
	imgs, err := images.New(cfg)
	if err != nil {
		logrus.Fatalf("failed to set up image storage: %v", err)
	}
	if !imgs.Enabled() {
		logrus.Warn("image storage not configured, uploads disabled")
	}

	s := store.New(db, cfg.SimilarityThreshold) // Query and account layer

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.Default() // Gin router instance

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	// Resolve the acting user on every request
	r.Use(middleware.CurrentUser(db, redisClient, cfg.JWTSecret))

	// Auth routes
	r.POST("/register", api.RegisterHandler(s, cfg.JWTSecret, cfg.IsProd)) // Registration endpoint
	r.POST("/login", api.LoginHandler(s, cfg.JWTSecret, cfg.IsProd))       // Login endpoint
	r.POST("/logout", api.LogoutHandler(cfg.IsProd))                       // Logout endpoint

	// Public catalog routes
	r.GET("/items", api.ListItemsHandler(s))         // Catalog page endpoint
	r.GET("/items/:locator", api.GetItemHandler(s))  // Item detail endpoint
	r.GET("/users", api.ListUsersHandler(s))         // Member list endpoint
	r.GET("/users/:username", api.GetUserHandler(s)) // Profile endpoint

	// Rating routes (signed-in users)
	rateGroup := r.Group("/items/:locator/rate")
	rateGroup.Use(middleware.RequireUser())
	rateGroup.POST("", api.RateHandler(s))     // Rate endpoint
	rateGroup.DELETE("", api.UnrateHandler(s)) // Unrate endpoint

	// Catalog management routes (admin only)
	itemAdmin := r.Group("/items")
	itemAdmin.Use(middleware.RequireUser(), middleware.RequireAdmin())
	itemAdmin.POST("", api.AddItemHandler(s))                             // Add item endpoint
	itemAdmin.PATCH("/:locator", api.EditItemHandler(s, imgs))            // Edit item endpoint
	itemAdmin.DELETE("/:locator", api.RemoveItemHandler(s, imgs))         // Remove item endpoint
	itemAdmin.PUT("/:locator/image", api.UploadItemImageHandler(s, imgs)) // Cover image endpoint

	// Account management routes (owner or admin, checked per handler)
	userGroup := r.Group("/users")
	userGroup.Use(middleware.RequireUser())
	userGroup.PATCH("/:username", api.EditUserHandler(s, imgs, redisClient, cfg.JWTSecret, cfg.IsProd)) // Edit profile endpoint
	userGroup.DELETE("/:username", api.RemoveUserHandler(s, imgs, redisClient, cfg.IsProd))             // Remove account endpoint
	userGroup.PUT("/:username/avatar", api.UploadAvatarHandler(s, imgs, redisClient))                   // Avatar endpoint

	log.Println("Server running on " + cfg.AppPort) // Log server start
	r.Run(":" + cfg.AppPort)                        // Start the server on port cfg.AppPort
}
