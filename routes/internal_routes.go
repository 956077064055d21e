package routes

import (
	"github.com/gofiber/fiber/v2"

	"school-appointment-api/handlers"
	"school-appointment-api/middleware"
)

// InternalRoutes carries the endpoints reserved for the external scheduler.
func InternalRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	internal := api.Group("/internal", middleware.CronAuthorized())
	internal.Post("/sweep", handlers.RunSweep)
}
