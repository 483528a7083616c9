package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dev-vision-ai/SwansonIndiaPortal-sub001/app/config"
	"github.com/dev-vision-ai/SwansonIndiaPortal-sub001/app/database"
	"github.com/dev-vision-ai/SwansonIndiaPortal-sub001/app/routes/auth"
	"github.com/dev-vision-ai/SwansonIndiaPortal-sub001/app/routes/autocomplete"
	"github.com/dev-vision-ai/SwansonIndiaPortal-sub001/app/routes/converter"
	"github.com/dev-vision-ai/SwansonIndiaPortal-sub001/app/routes/export"
	"github.com/dev-vision-ai/SwansonIndiaPortal-sub001/app/routes/inspection"
	"github.com/dev-vision-ai/SwansonIndiaPortal-sub001/app/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

var startTime = time.Now()

// customErrorHandler returns JSON errors for API paths.
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	if len(c.Path()) >= 4 && c.Path()[:4] == "/api" {
		return c.Status(code).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
			"code":    code,
		})
	}
	return c.Status(code).SendString(err.Error())
}

func uptimePayload() fiber.Map {
	uptime := time.Since(startTime)
	days := int(uptime.Hours()) / 24
	hours := int(uptime.Hours()) % 24
	minutes := int(uptime.Minutes()) % 60
	return fiber.Map{
		"status":  "alive",
		"uptime":  fmt.Sprintf("%dd %dh %dm", days, hours, minutes),
		"since":   startTime.Format(time.RFC3339),
		"message": "Server is running",
	}
}

func main() {
	// Factory timestamps render in IST.
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		log.Printf("Warning: Failed to load Asia/Kolkata location, falling back to UTC+5:30: %v", err)
		time.Local = time.FixedZone("IST", 5*3600+1800)
	} else {
		time.Local = loc
	}
	log.Printf("Application time zone set to: %s", time.Local.String())

	// Initialize database
	config.InitDB()
	defer config.GetDB().Close()

	// Run database migrations
	if err := database.RunMigrations(config.GetDB()); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// Start background keep-alive scheduler
	services.StartScheduler(config.GetDB())

	// Debounced full-document persistence bridge
	saver := services.NewLotSaver(config.GetDB(), services.DefaultSaveDelay)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     config.CORSOrigins(),
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
	}))

	// Uptime probes stay open for the hosting platform's health checks.
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/ping", func(c *fiber.Ctx) error {
		return c.JSON(uptimePayload())
	})
	app.Get("/keep-alive", func(c *fiber.Ctx) error {
		return c.JSON(uptimePayload())
	})

	// Routes
	auth.SetupAuthRoutes(app)
	inspection.SetupInspectionRoutes(app, saver)
	autocomplete.SetupAutocompleteRoutes(app)
	export.SetupExportRoutes(app)
	converter.SetupConverterRoutes(app)

	// Catch-all route for 404 errors (must be last)
	app.Use("*", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Not found")
	})

	// Flush pending saves on shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-quit
		log.Println("Shutting down, flushing pending saves...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := saver.Close(ctx); err != nil {
			log.Printf("Save flush on shutdown failed: %v", err)
		}
		_ = app.Shutdown()
	}()

	// Start server
	addr := ":" + config.AppConfig.Port
	log.Println("Server starting on " + addr)
	if err := app.Listen(addr); err != nil {
		log.Fatal(err)
	}
}
