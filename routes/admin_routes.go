package routes

import (
	"github.com/gofiber/fiber/v2"

	"school-appointment-api/handlers"
	"school-appointment-api/middleware"
)

func AdminRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	admin := api.Group("/admin", middleware.Protected(), middleware.AdminRequired())

	teachers := admin.Group("/teachers")
	teachers.Post("", handlers.AddTeacher)
	teachers.Get("", handlers.ListTeachers)
	teachers.Delete("/:teacherId", handlers.DeleteTeacher)

	students := admin.Group("/students")
	students.Get("/unverified", handlers.ListUnverifiedStudents)
	students.Post("/:studentId/verify", handlers.VerifyStudent)
	students.Delete("/:studentId", handlers.RemoveStudent)
}
