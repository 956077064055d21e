package routes

import (
	"github.com/gofiber/fiber/v2"

	"school-appointment-api/handlers"
)

func AuthRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	auth := api.Group("/auth")
	auth.Post("/student/register", handlers.RegisterStudent)
	auth.Post("/student/login", handlers.LoginStudent)
	auth.Post("/admin/login", handlers.LoginAdmin)
	auth.Post("/teacher/request-link", handlers.RequestTeacherLink)
	auth.Post("/teacher/login", handlers.LoginTeacher)
}
