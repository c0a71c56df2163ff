package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"shiptrack/internal/caching"
	"shiptrack/internal/handlers"
	"shiptrack/internal/middleware"
	"shiptrack/internal/repositories"
	"shiptrack/internal/services"
	"shiptrack/pkg/database"
)

const version = "1.0.0"

func main() {
	// Database connection
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := database.NewPool(databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// JWT configuration. Tokens must never be issued without a signing key.
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET environment variable is required")
	}

	// Redis configuration
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB := 0
	if redisDBStr := os.Getenv("REDIS_DB"); redisDBStr != "" {
		if db, err := strconv.Atoi(redisDBStr); err == nil {
			redisDB = db
		}
	}

	// CORS allow-list
	allowedOrigins := []string{"http://localhost:3000"}
	if originsStr := os.Getenv("ALLOWED_ORIGINS"); originsStr != "" {
		allowedOrigins = strings.Split(originsStr, ",")
	}

	// Create cache service
	cacheSvc := caching.NewRedisCacheService(redisAddr, redisPassword, redisDB)

	// Create repositories
	userRepo := repositories.NewUserRepo(pool)
	shipmentRepo := repositories.NewShipmentRepo(pool)

	// Create services
	authService := services.NewAuthService(jwtSecret, services.DefaultTokenTTL)
	shipmentService := services.NewShipmentService(shipmentRepo, userRepo, cacheSvc)

	// Create handlers
	authHandlers := handlers.NewAuthHandlers(userRepo, authService)
	shipmentHandlers := handlers.NewShipmentHandlers(shipmentService)
	healthHandlers := handlers.NewHealthHandlers(pool, cacheSvc)

	// Create Echo instance
	e := echo.New()

	// Global middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{
		AllowOrigins:     allowedOrigins,
		AllowCredentials: true,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))
	e.Use(echoMiddleware.RemoveTrailingSlash())

	// Health endpoints (no auth required)
	e.GET("/api/health", healthHandlers.HealthCheck)
	e.GET("/api/health/ready", healthHandlers.ReadinessCheck)

	api := e.Group("/api")

	// Authentication routes (no JWT required)
	auth := api.Group("/auth")
	auth.POST("/register", authHandlers.Register)
	auth.POST("/login", authHandlers.Login)

	// Shipment routes (JWT required)
	shipments := api.Group("/shipments")
	shipments.Use(middleware.JWT(authService))
	shipments.POST("", shipmentHandlers.CreateShipment)
	shipments.GET("/track/:tracking_number", shipmentHandlers.TrackShipment)
	shipments.GET("/my-shipments", shipmentHandlers.GetUserShipments)
	shipments.GET("/all", shipmentHandlers.GetAllShipments)
	shipments.PATCH("/:tracking_number/status", shipmentHandlers.UpdateShipmentStatus)

	// Start server
	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = "4000"
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		log.Fatalf("Invalid port %s: %v", portStr, err)
	}

	log.Printf("Shiptrack server v%s starting on port %d", version, port)

	e.Logger.Fatal(e.Start(fmt.Sprintf(":%d", port)))
}
