package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusUpcoming  = "upcoming"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"

	ApprovalPending  = "pending"
	ApprovalAccepted = "accepted"
	ApprovalRejected = "rejected"
)

type Appointment struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	StudentID      uuid.UUID `gorm:"not null;index" json:"student_id"`
	TeacherID      uuid.UUID `gorm:"not null;index" json:"teacher_id"`
	StudentName    string    `gorm:"size:255;not null" json:"student_name"`
	TeacherName    string    `gorm:"size:255;not null" json:"teacher_name"`
	Subject        string    `gorm:"size:255;not null" json:"subject"`
	Message        *string   `gorm:"type:text" json:"message,omitempty"`
	Time           time.Time `gorm:"not null;index" json:"time"`
	Status         string    `gorm:"size:20;not null;default:'upcoming'" json:"status"`
	ApprovalStatus string    `gorm:"size:20;not null;default:'pending'" json:"approval_status"`

	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	// Bumped on every state transition; guards against lost updates when
	// a student cancel and a teacher decision race on the same row.
	Version int `gorm:"not null;default:0" json:"-"`

	Student Student `gorm:"foreignkey:StudentID" json:"-"`
	Teacher Teacher `gorm:"foreignkey:TeacherID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}

// Terminal reports whether the appointment has reached a state no further
// transition may leave.
func (a *Appointment) Terminal() bool {
	return a.Status == StatusCancelled || a.Status == StatusCompleted
}
