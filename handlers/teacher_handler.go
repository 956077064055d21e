package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"school-appointment-api/database"
	"school-appointment-api/models"
	"school-appointment-api/services"
)

// ListTeachers is the directory students pick a teacher from when booking.
func ListTeachers(c *fiber.Ctx) error {
	var teachers []models.Teacher
	if err := database.DB.Order("name asc").Find(&teachers).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(teachers)
}

func GetTeacherAppointments(c *fiber.Ctx) error {
	teacherID := claimedUserID(c)

	appointments, err := services.Appointments.ListForTeacher(teacherID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(appointments)
}

type DecisionRequest struct {
	Decision string `json:"decision" validate:"required,oneof=accepted rejected"`
}

func DecideAppointment(c *fiber.Ctx) error {
	teacherID := claimedUserID(c)

	appointmentID, err := uuid.Parse(c.Params("appointmentId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid appointment id"})
	}

	var req DecisionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	appointment, err := services.Appointments.Decide(appointmentID, teacherID, req.Decision)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(appointment)
}

func CompleteAppointment(c *fiber.Ctx) error {
	teacherID := claimedUserID(c)

	appointmentID, err := uuid.Parse(c.Params("appointmentId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid appointment id"})
	}

	appointment, err := services.Appointments.Complete(appointmentID, teacherID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(appointment)
}
