package main

import (
	"log"

	"github.com/danivc/BioHackerBack/internal/config"
	applog "github.com/danivc/BioHackerBack/internal/logger"
	"github.com/danivc/BioHackerBack/internal/routes"
	"github.com/danivc/BioHackerBack/internal/storage"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Logger
	zlog, err := applog.New(cfg.LogLevel, cfg.AppEnv)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zlog.Sync()

	// 3. Storage backend
	store, err := storage.New(cfg, zlog)
	if err != nil {
		zlog.Fatalf("Failed to initialize storage: %v", err)
	}
	defer store.Close()
	zlog.Infow("storage ready", "backend", cfg.StorageBackend)

	// 4. Setup Fiber
	app := fiber.New()

	// Middleware
	app.Use(cors.New())
	app.Use(logger.New())
	app.Use(recover.New())

	// Routes
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
		})
	})
	routes.RegisterRoutes(app, store)

	// 5. Start Server
	zlog.Infow("server starting", "port", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		zlog.Fatalf("Server failed to start: %v", err)
	}
}
