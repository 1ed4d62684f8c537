package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/Abraxas-365/jobboard/pkg/config"
	"github.com/Abraxas-365/jobboard/pkg/errx"
	"github.com/Abraxas-365/jobboard/pkg/logx"
	"github.com/Abraxas-365/jobboard/recruitment/alert/alertapi"
	"github.com/Abraxas-365/jobboard/recruitment/application/applicationapi"
	"github.com/Abraxas-365/jobboard/recruitment/catalog/catalogapi"
	"github.com/Abraxas-365/jobboard/recruitment/job/jobapi"
	"github.com/Abraxas-365/jobboard/recruitment/savedjob/savedjobapi"
	"github.com/Abraxas-365/jobboard/recruitment/stats/statsapi"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// bodyLimit leaves room for a 10 MB resume plus multipart framing
const bodyLimit = 12 * 1024 * 1024

// runServer serves the HTTP API until SIGINT or SIGTERM
func runServer(cfg *config.Config) error {
	logx.Info("Starting Job Board API Server...")

	// 1. Initialize Dependency Container
	container := NewContainer(cfg)
	defer container.Close()

	// 2. Create Fiber App with Config
	app := fiber.New(fiber.Config{
		AppName:               "Job Board API",
		DisableStartupMessage: true,
		StrictRouting:         false,
		BodyLimit:             bodyLimit,
		ErrorHandler:          errx.FiberErrorHandler,
	})

	// 3. Global Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, PATCH, HEAD",
	}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	// 4. Health Check
	app.Get("/health", func(c *fiber.Ctx) error {
		status := fiber.Map{
			"status": "ok",
			"db":     container.DB.PingContext(c.UserContext()) == nil,
		}
		if container.Redis != nil {
			status["redis"] = container.Redis.Ping(c.UserContext()).Err() == nil
		}
		return c.JSON(status)
	})

	// 5. Register Routes

	// /auth/register, /auth/login, /auth/refresh, /auth/me
	container.AuthHandlers.RegisterRoutes(app, container.AuthMiddleware)

	jobapi.RegisterRoutes(app, container.JobHandlers, container.AuthMiddleware)
	applicationapi.RegisterRoutes(app, container.ApplicationHandlers, container.AuthMiddleware)
	catalogapi.RegisterRoutes(app, container.CatalogHandlers, container.AuthMiddleware)
	savedjobapi.RegisterRoutes(app, container.SavedJobHandlers, container.AuthMiddleware)
	alertapi.RegisterRoutes(app, container.AlertHandlers, container.AuthMiddleware)
	statsapi.RegisterRoutes(app, container.StatsHandlers)

	// 6. Start Server with Graceful Shutdown
	go func() {
		logx.Infof("Server listening on port %s", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			logx.Fatalf("Server error: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c
	logx.Info("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		logx.Errorf("Server forced to shutdown: %v", err)
		return err
	}

	logx.Info("Server exited")
	return nil
}
