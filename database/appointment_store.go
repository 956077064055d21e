package database

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"school-appointment-api/models"
	"school-appointment-api/services"
)

// AppointmentStore is the GORM-backed implementation of
// services.AppointmentStore.
type AppointmentStore struct{}

func NewAppointmentStore() *AppointmentStore {
	return &AppointmentStore{}
}

func (s *AppointmentStore) Create(appointment *models.Appointment) error {
	return DB.Create(appointment).Error
}

func (s *AppointmentStore) GetByID(id uuid.UUID) (*models.Appointment, error) {
	var appointment models.Appointment
	if err := DB.First(&appointment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, services.ErrAppointmentNotFound
		}
		return nil, err
	}
	return &appointment, nil
}

func (s *AppointmentStore) ListForStudent(studentID uuid.UUID, from, to time.Time) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := DB.
		Where("student_id = ? AND time BETWEEN ? AND ?", studentID, from, to).
		Order("time asc").
		Find(&appointments).Error
	return appointments, err
}

func (s *AppointmentStore) ListForTeacher(teacherID uuid.UUID, from, to time.Time) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := DB.
		Where("teacher_id = ? AND time BETWEEN ? AND ?", teacherID, from, to).
		Order("time asc").
		Find(&appointments).Error
	return appointments, err
}

// Transition applies mutate under a row lock. The version check is the
// second line of defense: it turns any write that slipped past the lock
// into services.ErrConflict instead of a silent last-write-wins.
func (s *AppointmentStore) Transition(id uuid.UUID, mutate func(*models.Appointment) error) (*models.Appointment, error) {
	var appointment models.Appointment
	err := DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&appointment, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return services.ErrAppointmentNotFound
			}
			return err
		}

		if err := mutate(&appointment); err != nil {
			return err
		}

		prev := appointment.Version
		appointment.Version = prev + 1
		result := tx.Model(&models.Appointment{}).
			Where("id = ? AND version = ?", appointment.ID, prev).
			Updates(map[string]interface{}{
				"status":          appointment.Status,
				"approval_status": appointment.ApprovalStatus,
				"cancelled_at":    appointment.CancelledAt,
				"completed_at":    appointment.CompletedAt,
				"version":         appointment.Version,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return services.ErrConflict
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &appointment, nil
}

func (s *AppointmentStore) DeleteOlderThan(cutoff time.Time) (int64, error) {
	result := DB.Where("time < ?", cutoff).Delete(&models.Appointment{})
	return result.RowsAffected, result.Error
}
