package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/Abraxas-365/nerdyjobs/board/job/jobapi"
	"github.com/Abraxas-365/nerdyjobs/pkg/config"
	"github.com/Abraxas-365/nerdyjobs/pkg/errx"
	"github.com/Abraxas-365/nerdyjobs/pkg/logx"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func main() {
	envFile := flag.String("env", ".env", "dotenv file loaded before reading the environment")
	flag.Parse()

	// 1. Load configuration
	cfg, err := config.Load(*envFile)
	if err != nil {
		logx.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		logx.Fatalf("Invalid configuration: %v", err)
	}

	// 2. Initialize Logger
	logx.SetLevel(logx.ParseLevel(cfg.LogLevel))
	logx.Info("Starting NerdyJobs API Server...")

	// 3. Initialize Dependency Container
	container := NewContainer(cfg)
	defer container.Close()

	// 4. Create Fiber App with Config
	app := fiber.New(fiber.Config{
		AppName:               "NerdyJobs API",
		DisableStartupMessage: true,
		ErrorHandler:          globalErrorHandler,
	})

	// 5. Global Middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*", // Configure for production
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, DELETE, HEAD",
	}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))

	// 6. Health Check
	app.Get("/health", func(c *fiber.Ctx) error {
		status := fiber.Map{"status": "ok"}
		if container.DB != nil {
			status["db"] = container.DB.Ping() == nil
		}
		if container.Redis != nil {
			status["redis"] = container.Redis.Ping(c.Context()).Err() == nil
		}
		return c.JSON(status)
	})

	// 7. Register Routes

	// /uploads/* when logos are stored on local disk
	if container.UploadsDir != "" {
		app.Static("/uploads", container.UploadsDir)
	}

	// /api/auth/login
	container.AuthHandlers.RegisterRoutes(app)

	// Jobs: /api/jobs, /api/admin/jobs
	jobapi.RegisterRoutes(app, container.JobHandlers, container.IdentifyMiddleware, container.SubmitLimiter)

	// 8. Start Server with Graceful Shutdown
	port := cfg.Server.Port

	// Run server in a goroutine
	go func() {
		logx.Infof("Server listening on port %s", port)
		if err := app.Listen(":" + port); err != nil {
			logx.Fatalf("Server error: %v", err)
		}
	}()

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c // Wait for signal
	logx.Info("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		logx.Errorf("Server forced to shutdown: %v", err)
	}

	logx.Info("Server exited")
}

// globalErrorHandler converts internal errors to standard HTTP responses
func globalErrorHandler(c *fiber.Ctx, err error) error {
	// If it's a Fiber error (e.g., 404 handler not found)
	if e, ok := err.(*fiber.Error); ok {
		return c.Status(e.Code).JSON(fiber.Map{
			"error": e.Message,
			"code":  e.Code,
		})
	}

	// If it's our custom errx.Error
	if e, ok := errx.As(err); ok {
		if e.Type == errx.TypeInternal {
			logx.Errorf("Internal error on %s %s: %v", c.Method(), c.Path(), err)
		}
		return c.Status(e.HTTPStatus).JSON(e.ToHTTPResponse())
	}

	// Default unknown error
	logx.Errorf("Internal Server Error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error":   "Internal Server Error",
		"type":    "INTERNAL",
		"code":    "INTERNAL_ERROR",
		"message": "An unexpected error occurred",
	})
}
