package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Teacher struct {
	ID         uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name       string         `gorm:"size:255;not null" json:"name"`
	Email      string         `gorm:"size:255;not null;unique" json:"email"`
	Department string         `gorm:"size:255" json:"department"`
	Subjects   pq.StringArray `gorm:"type:text[]" json:"subjects"`
	IsVerified bool           `gorm:"default:true" json:"is_verified"`

	// Holds the latest sign-in link token; overwritten on each request and
	// cleared once the link is used.
	VerificationToken *string `gorm:"size:512" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}
