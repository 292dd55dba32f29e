package main

import (
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "people-service/docs"
	"people-service/interfaces/api/handlers"
	"people-service/interfaces/api/middleware"
	"people-service/interfaces/api/routes"
	"people-service/pkg/di"
	"people-service/pkg/logger"
	"people-service/pkg/scalar"
)

// @title People Service API
// @version 1.0
// @description CRUD API for people with generated avatar images

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @BasePath /

func main() {
	// Initialize DI container (loads config, then the logger)
	container := di.NewContainer()

	// Initialize all dependencies
	if err := container.Initialize(); err != nil {
		logger.StartupError("container_init_failed", "Failed to initialize container", err, nil)
		os.Exit(1)
	}
	cfg := container.GetConfig()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(),
		AppName:      cfg.App.Name,
	})

	// Setup middleware
	app.Use(recover.New())
	app.Use(middleware.RequestIDMiddleware())
	app.Use(middleware.LoggerMiddleware())
	app.Use(middleware.CorsMiddleware(&cfg.CORS))
	app.Use(middleware.RateLimiter(&cfg.RateLimit))

	// Create handlers from services
	h := handlers.NewHandlers(container.GetHandlerServices(), container.GetHandlerInfrastructure())

	// Setup routes
	routes.SetupRoutes(app, h)

	// API reference
	scalar.SetupRoutes(app, scalar.Config{Title: cfg.App.Name + " API"})

	// Start server
	port := cfg.App.Port
	logger.Startup("server_starting", "Server starting", map[string]interface{}{
		"port":        port,
		"environment": cfg.App.Env,
		"health":      fmt.Sprintf("http://localhost:%s/health", port),
		"people":      fmt.Sprintf("http://localhost:%s/people", port),
		"docs":        fmt.Sprintf("http://localhost:%s/docs", port),
	})

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)

	ln, err := net.Listen("tcp", ":"+port)
	if err != nil {
		logger.StartupError("server_failed", "Server failed to start", err, nil)
		_ = container.Cleanup()
		os.Exit(1)
	}

	if err := serve(app, ln, signals, container.Cleanup); err != nil {
		logger.StartupError("server_failed", "Server stopped with error", err, nil)
		logger.Default().Close()
		os.Exit(1)
	}
	logger.Default().Close()
}

// serve runs app on ln until a signal arrives, then shuts the server down
// and runs cleanup. It returns only after cleanup has finished.
func serve(app *fiber.App, ln net.Listener, signals <-chan os.Signal, cleanup func() error) error {
	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)
		if _, ok := <-signals; !ok {
			return
		}
		logger.Startup("shutdown_started", "Gracefully shutting down", nil)

		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			logger.StartupError("server_shutdown_failed", "Error shutting down server", err, nil)
		}
	}()

	serveErr := app.Listener(ln)
	if serveErr == nil {
		// Listener returns as soon as the server stops accepting; wait for
		// in-flight requests to drain before tearing down dependencies
		<-shutdownDone
	}

	if err := cleanup(); err != nil {
		logger.StartupError("cleanup_failed", "Error during cleanup", err, nil)
	}
	logger.Startup("shutdown_complete", "Shutdown complete", nil)
	return serveErr
}
