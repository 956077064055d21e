package database

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"school-appointment-api/models"
	"school-appointment-api/services"
)

// ActorDirectory resolves students and teachers for the lifecycle service.
type ActorDirectory struct{}

func NewActorDirectory() *ActorDirectory {
	return &ActorDirectory{}
}

func (d *ActorDirectory) StudentByID(id uuid.UUID) (*models.Student, error) {
	var student models.Student
	if err := DB.First(&student, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, services.ErrStudentNotFound
		}
		return nil, err
	}
	return &student, nil
}

func (d *ActorDirectory) TeacherByID(id uuid.UUID) (*models.Teacher, error) {
	var teacher models.Teacher
	if err := DB.First(&teacher, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, services.ErrTeacherNotFound
		}
		return nil, err
	}
	return &teacher, nil
}
