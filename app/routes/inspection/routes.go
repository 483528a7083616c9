package inspection

import (
	"github.com/dev-vision-ai/SwansonIndiaPortal-sub001/app/routes/auth"
	"github.com/dev-vision-ai/SwansonIndiaPortal-sub001/app/services"

	"github.com/gofiber/fiber/v2"
)

// saver is the shared persistence bridge, wired in from main.
var saver *services.LotSaver

func SetupInspectionRoutes(app *fiber.App, lotSaver *services.LotSaver) {
	saver = lotSaver

	api := app.Group("/api/inline-inspection")
	api.Use(auth.AuthMiddleware)

	api.Get("/forms", ListFormsAPI)
	api.Get("/filters", FilterOptionsAPI)
	api.Post("/forms", CreateFormAPI)

	api.Get("/lots", GetLotsAPI)
	api.Post("/lots", AddLotAPI)
	api.Post("/lots/:form_id/save", SaveLotAPI)
	api.Post("/lots/:form_id/rows", AddRowsAPI)
	api.Post("/lots/:form_id/disposition", SetDispositionAPI)
	api.Post("/lots/:form_id/indicator", IndicatorChangeAPI)
	api.Post("/lots/:form_id/fill-o", FillOAPI)
	api.Post("/lots/:form_id/clear-o", ClearOAPI)
	api.Delete("/lots/:form_id", DeleteLotAPI)

	api.Get("/statistics", StatisticsAPI)
	api.Get("/production-summary", ProductionSummaryAPI)
	api.Get("/defect-summary", DefectSummaryAPI)
}
