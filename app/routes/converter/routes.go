package converter

import "github.com/gofiber/fiber/v2"

func SetupConverterRoutes(app *fiber.App) {
	app.Get("/api/convert-to-pdf", ConvertToPDFAPI)
}
