package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// WorkerProfile is the bookable surface of a worker: which catalog services
// they offer and at what hourly rate. Bookings require an active profile.
// RatingAvg/RatingCount hold the running average from customer reviews and
// are only ever mutated with atomic SQL expressions, never read-modify-write.
type WorkerProfile struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	Services      datatypes.JSON `json:"services"`
	HourlyRate    float64        `gorm:"not null;default:0" json:"hourly_rate"`
	IsActive      bool           `gorm:"default:true" json:"is_active"`
	RatingAvg     float64        `gorm:"default:0" json:"rating_avg"`
	RatingCount   int            `gorm:"default:0" json:"rating_count"`
	CompletedJobs int            `gorm:"default:0" json:"completed_jobs"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
