package autocomplete

import (
	"github.com/dev-vision-ai/SwansonIndiaPortal-sub001/app/routes/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAutocompleteRoutes(app *fiber.App) {
	api := app.Group("/api/autocomplete")
	api.Use(auth.AuthMiddleware)

	api.Get("/defects", DefectsAPI)
	api.Get("/inspectors", InspectorsAPI)
	api.Get("/qc-inspectors", QCInspectorsAPI)
}
