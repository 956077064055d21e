package routes

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"school-appointment-api/handlers"
	"school-appointment-api/middleware"
)

func AppointmentRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	// Teacher directory for the booking form.
	api.Get("/teachers", middleware.Protected(), handlers.ListTeachers)

	appointments := api.Group("/appointments", middleware.Protected())
	appointments.Post("", middleware.StudentRequired(), handlers.CreateAppointment)
	appointments.Get("/me", middleware.StudentRequired(), handlers.GetMyAppointments)
	// Direct lookup is shared by both parties, so only a session is required.
	appointments.Get("/:appointmentId", handlers.GetAppointment)
	appointments.Post("/:appointmentId/cancel", middleware.StudentRequired(), handlers.CancelAppointment)

	teacher := api.Group("/teacher/appointments", middleware.Protected(), middleware.TeacherRequired())
	teacher.Get("", handlers.GetTeacherAppointments)
	teacher.Post("/:appointmentId/decide", handlers.DecideAppointment)
	teacher.Post("/:appointmentId/complete", handlers.CompleteAppointment)

	api.Use("/ws", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		return c.Next()
	})
	api.Get("/ws", websocket.New(handlers.ServeWs))
}
