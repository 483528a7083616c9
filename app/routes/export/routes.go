package export

import "github.com/gofiber/fiber/v2"

// The export endpoints stay outside AuthMiddleware: report links are opened
// directly from spreadsheets and shared chat messages.
func SetupExportRoutes(app *fiber.App) {
	app.Get("/export", InlineExportAPI)
	app.Get("/export-production-defects", ProductionDefectsExportAPI)
	app.Get("/api/export-mjr-record/:id", MJRExportAPI)
}
