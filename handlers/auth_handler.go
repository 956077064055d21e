package handlers

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	config "school-appointment-api/configs"
	"school-appointment-api/database"
	"school-appointment-api/models"
	"school-appointment-api/notifications"
	"school-appointment-api/utils"
)

func signSessionToken(userID uuid.UUID, role, name string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID.String(),
		"role":    role,
		"name":    name,
		"exp":     time.Now().Add(time.Hour * 72).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.Config("JWT_SECRET")))
}

type RegisterStudentRequest struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type StudentResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	IsVerified bool   `json:"is_verified"`
}

// RegisterStudent creates an unverified account and notifies the admins.
// The student cannot sign in until an admin verifies them.
func RegisterStudent(c *fiber.Ctx) error {
	var req RegisterStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var existing models.Student
	err := database.DB.Where("email = ?", req.Email).First(&existing).Error
	if err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Email already exists"})
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to hash password"})
	}

	student := models.Student{
		Name:       req.Name,
		Email:      req.Email,
		Password:   string(hashedPassword),
		IsVerified: false,
	}
	if err := database.DB.Create(&student).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create student"})
	}

	go notifications.NotifyAdminsOfRegistration(&student)

	return c.Status(fiber.StatusCreated).JSON(StudentResponse{
		ID:         student.ID.String(),
		Name:       student.Name,
		Email:      student.Email,
		IsVerified: student.IsVerified,
	})
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func LoginStudent(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var student models.Student
	if err := database.DB.Where("email = ?", req.Email).First(&student).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid email or password"})
	}
	if err := bcrypt.CompareHashAndPassword([]byte(student.Password), []byte(req.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid email or password"})
	}
	if !student.IsVerified {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Account is awaiting admin verification"})
	}

	t, err := signSessionToken(student.ID, "student", student.Name)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create token"})
	}
	return c.JSON(fiber.Map{"token": t})
}

func LoginAdmin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var admin models.Admin
	if err := database.DB.Where("email = ?", req.Email).First(&admin).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid email or password"})
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(req.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid email or password"})
	}

	t, err := signSessionToken(admin.ID, "admin", admin.Name)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create token"})
	}
	return c.JSON(fiber.Map{"token": t})
}

type TeacherLinkRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// RequestTeacherLink emails a short-lived sign-in link. The response does
// not reveal whether the address belongs to a teacher.
func RequestTeacherLink(c *fiber.Ctx) error {
	var req TeacherLinkRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	sent := fiber.Map{"message": "If a teacher account with that email exists, a sign-in link has been sent."}

	var teacher models.Teacher
	if err := database.DB.Where("email = ?", req.Email).First(&teacher).Error; err != nil {
		return c.Status(fiber.StatusOK).JSON(sent)
	}

	token, err := utils.NewSignInToken(teacher.ID, teacher.Email)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create sign-in token"})
	}

	teacher.VerificationToken = &token
	if err := database.DB.Save(&teacher).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to store sign-in token"})
	}

	appURL := config.ConfigOr("APP_URL", "http://localhost:8080")
	link := fmt.Sprintf("%s/teacher/login?token=%s", appURL, token)
	subject, body := notifications.TeacherSignInMail(teacher.Name, link)
	go notifications.SendEmail(teacher.Name, teacher.Email, subject, body)

	return c.Status(fiber.StatusOK).JSON(sent)
}

type TeacherLoginRequest struct {
	Token string `json:"token" validate:"required"`
}

// LoginTeacher exchanges an emailed link token for a session token. The
// stored copy is cleared so each link works once.
func LoginTeacher(c *fiber.Ctx) error {
	var req TeacherLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	claims, err := utils.ParseSignInToken(req.Token)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired sign-in link"})
	}

	var teacher models.Teacher
	if err := database.DB.First(&teacher, "id = ?", claims.TeacherID).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired sign-in link"})
	}
	if teacher.VerificationToken == nil || *teacher.VerificationToken != req.Token {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired sign-in link"})
	}

	teacher.VerificationToken = nil
	if err := database.DB.Save(&teacher).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to consume sign-in link"})
	}

	t, err := signSessionToken(teacher.ID, "teacher", teacher.Name)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create token"})
	}
	return c.JSON(fiber.Map{"token": t})
}
