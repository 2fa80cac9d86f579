package main

import (
	"log"
	"os"

	"easyquiz/backend/config"
	"easyquiz/backend/middleware"
	"easyquiz/backend/routes"
	"easyquiz/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Initialize database
	db, err := utils.InitDB(cfg)
	if err != nil {
		log.Fatalf("Error initializing database: %v", err)
	}

	// Initialize logger
	logger := utils.InitLogger()

	if err := os.MkdirAll(cfg.UploadsDir, 0o755); err != nil {
		log.Fatalf("Error creating uploads dir: %v", err)
	}

	// Create Fiber app with the envelope as the last-resort error shape
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			message := "Server error"
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
				message = e.Message
			}
			return utils.Fail(c, code, message)
		},
	})

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.ClientURL,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(middleware.LoggingMiddleware(logger))

	// Uploaded profile images are served as static files
	app.Static("/uploads", cfg.UploadsDir)

	// Setup routes
	routes.SetupRoutes(app, db, cfg)

	// Start server
	log.Fatal(app.Listen(":" + cfg.ServerPort))
}
