package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"school-appointment-api/database"
	"school-appointment-api/models"
)

// isDuplicateKey matches both GORM's translated error and the raw pgx
// unique-violation, so the check holds whether or not error translation is
// enabled on the connection.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

type AddTeacherRequest struct {
	Name       string   `json:"name" validate:"required,max=255"`
	Email      string   `json:"email" validate:"required,email"`
	Department string   `json:"department" validate:"required,max=255"`
	Subjects   []string `json:"subjects" validate:"required,min=1,dive,required"`
}

// AddTeacher creates a teacher account. Teachers created by an admin are
// verified from the start; they sign in through emailed links rather than
// passwords.
func AddTeacher(c *fiber.Ctx) error {
	var req AddTeacherRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	teacher := models.Teacher{
		Name:       req.Name,
		Email:      req.Email,
		Department: req.Department,
		Subjects:   pq.StringArray(req.Subjects),
		IsVerified: true,
	}

	if err := database.DB.Create(&teacher).Error; err != nil {
		if isDuplicateKey(err) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "A teacher with this email already exists"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create teacher"})
	}

	return c.Status(fiber.StatusCreated).JSON(teacher)
}

func DeleteTeacher(c *fiber.Ctx) error {
	teacherID, err := uuid.Parse(c.Params("teacherId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid teacher id"})
	}

	result := database.DB.Delete(&models.Teacher{}, "id = ?", teacherID)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete teacher"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Teacher not found"})
	}

	return c.JSON(fiber.Map{"message": "Teacher deleted"})
}

func ListUnverifiedStudents(c *fiber.Ctx) error {
	var students []models.Student
	if err := database.DB.Where("is_verified = ?", false).Order("created_at asc").Find(&students).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(students)
}

func VerifyStudent(c *fiber.Ctx) error {
	studentID, err := uuid.Parse(c.Params("studentId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid student id"})
	}

	var student models.Student
	if err := database.DB.First(&student, "id = ?", studentID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Student not found"})
	}

	student.IsVerified = true
	if err := database.DB.Save(&student).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to verify student"})
	}

	return c.JSON(student)
}

func RemoveStudent(c *fiber.Ctx) error {
	studentID, err := uuid.Parse(c.Params("studentId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid student id"})
	}

	result := database.DB.Delete(&models.Student{}, "id = ?", studentID)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to remove student"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Student not found"})
	}

	return c.JSON(fiber.Map{"message": "Student removed"})
}
