package handlers

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"school-appointment-api/services"
)

var validate = validator.New()

func claimedUserID(c *fiber.Ctx) uuid.UUID {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	id, _ := uuid.Parse(claims["user_id"].(string))
	return id
}

// serviceError maps the typed lifecycle errors onto HTTP statuses. Anything
// unrecognized is a transient store failure and stays a generic 500.
func serviceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrAppointmentNotFound),
		errors.Is(err, services.ErrStudentNotFound),
		errors.Is(err, services.ErrTeacherNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrNotOwner):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrTerminalState),
		errors.Is(err, services.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrNotAccepted),
		errors.Is(err, services.ErrNotElapsed),
		errors.Is(err, services.ErrInvalidDecision):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Operation failed"})
	}
}

type CreateAppointmentRequest struct {
	TeacherID string  `json:"teacher_id" validate:"required,uuid"`
	Time      string  `json:"time" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	Subject   string  `json:"subject" validate:"required,max=255"`
	Message   *string `json:"message,omitempty"`
}

func CreateAppointment(c *fiber.Ctx) error {
	studentID := claimedUserID(c)

	var req CreateAppointmentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	teacherID, _ := uuid.Parse(req.TeacherID)
	when, _ := time.Parse(time.RFC3339, req.Time)

	appointment, err := services.Appointments.Create(services.CreateAppointmentInput{
		StudentID: studentID,
		TeacherID: teacherID,
		Time:      when,
		Subject:   req.Subject,
		Message:   req.Message,
	})
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(appointment)
}

func GetMyAppointments(c *fiber.Ctx) error {
	studentID := claimedUserID(c)

	appointments, err := services.Appointments.ListForStudent(studentID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(appointments)
}

// GetAppointment looks an appointment up by id, bypassing the display
// window. Only the two parties may read it.
func GetAppointment(c *fiber.Ctx) error {
	userID := claimedUserID(c)

	appointmentID, err := uuid.Parse(c.Params("appointmentId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid appointment id"})
	}

	appointment, err := services.Appointments.GetByID(appointmentID)
	if err != nil {
		return serviceError(c, err)
	}
	if appointment.StudentID != userID && appointment.TeacherID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "This is not your appointment"})
	}
	return c.JSON(appointment)
}

func CancelAppointment(c *fiber.Ctx) error {
	studentID := claimedUserID(c)

	appointmentID, err := uuid.Parse(c.Params("appointmentId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid appointment id"})
	}

	appointment, err := services.Appointments.Cancel(appointmentID, studentID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(appointment)
}

func RunSweep(c *fiber.Ctx) error {
	deleted, err := services.Appointments.Sweep(time.Now())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Sweep failed"})
	}
	return c.JSON(fiber.Map{"success": true, "deleted": deleted})
}
