// main.go
//
// jobtrack - job application tracking data service
//

package main

import (
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"
	"github.com/jobwell/jobtrack/internal/config"
	"github.com/jobwell/jobtrack/internal/database"
	"github.com/jobwell/jobtrack/internal/handlers"
	"github.com/jobwell/jobtrack/internal/middleware"
	"github.com/jobwell/jobtrack/internal/services"
	"github.com/jobwell/jobtrack/internal/types"

	_ "github.com/jobwell/jobtrack/docs/api" // Swagger docs
)

// @title Jobtrack API
// @version 1.0.0
// @description Job application tracking data service
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://github.com/jobwell/jobtrack

// @host localhost:3000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name cookie_session

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())

	// Prometheus metrics
	prometheus := fiberprometheus.New("jobtrack")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Create handlers
	jobHandler := &handlers.JobHandler{DB: db}
	jobFormHandler := &handlers.JobFormHandler{DB: db}
	adminHandler := &handlers.AdminHandler{DB: db}
	graphqlHandler, err := handlers.NewGraphQLHandler(db)
	if err != nil {
		log.Fatalf("Failed to build GraphQL schema: %v", err)
	}

	// Query boundary
	app.Post("/graphql", middleware.AuthUser(cfg), graphqlHandler.Post)

	// API routes under /api
	api := app.Group("/api")

	// Version middleware
	api.Use(middleware.VersionMiddleware())

	// Health
	api.Get("/health", func(c *fiber.Ctx) error {
		result := services.HealthCheck(cfg, db)
		status := fiber.StatusOK
		if result.Status != "healthy" {
			status = fiber.StatusServiceUnavailable
		}
		return c.Status(status).JSON(result)
	})

	// Job routes (public detail, authenticated editor boundary)
	api.Get("/jobs/:jobId", jobHandler.GetJob)
	api.Get("/jobs/:jobId/edit", middleware.AuthUser(cfg), jobHandler.GetJobEdit)
	api.Post("/jobs", middleware.AuthUser(cfg), jobFormHandler.UpsertJob)
	api.Post("/jobs/:jobId/delete", middleware.AuthUser(cfg), jobHandler.DeleteJob)

	// Admin-only permission grant routes
	admin := api.Group("/admin", middleware.AuthAdmin(cfg))
	admin.Post("/permissions", adminHandler.SetPermissions)
	admin.Get("/permissions/:userId", adminHandler.GetPermissions)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":    fiber.StatusNotFound,
			"message":   "[404] Resource Not Found",
			"ok":        false,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"url":       c.OriginalURL(),
		})
	})

	// Authorizer is initialized lazily on the first authenticated request
	log.Printf("Authorizer will be initialized on first authenticated request")

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	// Start server
	port := cfg.Port
	log.Printf("Starting server on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	log.Println("Server stopped")
}

// customErrorHandler handles errors globally
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()
	errorType := "unknown"

	// Check if it's a Fiber error
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Check if it's a middleware authorization error
	var ce *types.CustomError
	if errors.As(err, &ce) {
		code = ce.Code
		message = ce.Message
		errorType = ce.Type
	}

	// Check for version errors
	versionError := false
	if code == fiber.StatusConflict || (message != "" && len(message) >= 9 && message[:9] == "E_VERSION") {
		versionError = true
		errorType = "version"
		code = fiber.StatusConflict
	}

	return c.Status(code).JSON(fiber.Map{
		"status":       code,
		"message":      message,
		"ok":           false,
		"versionError": versionError,
		"timestamp":    time.Now().UTC().Format(time.RFC3339),
		"url":          c.OriginalURL(),
		"type":         errorType,
	})
}
