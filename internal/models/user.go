package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// User roles. A customer posts jobs and books workers; a worker applies to
// jobs and receives bookings.
const (
	RoleCustomer = "customer"
	RoleWorker   = "worker"
)

// User holds identity plus the self-service profile attributes both roles
// share. RatingAvg/RatingCount track the running average a customer earns
// from worker reviews on completed bookings.
type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name     string    `gorm:"not null;size:120" json:"name"`
	Email    string    `gorm:"not null;size:255;uniqueIndex" json:"email"`
	Phone    string    `gorm:"not null;size:32;uniqueIndex" json:"phone"`
	Password string    `gorm:"not null" json:"-"`
	Role     string    `gorm:"size:20;not null;default:'customer'" json:"role"`

	Location        string         `gorm:"size:255" json:"location"`
	Age             int            `json:"age"`
	Skills          datatypes.JSON `json:"skills"`
	ExperienceYears int            `json:"experience_years"`
	WageMin         float64        `json:"wage_min"`
	WageMax         float64        `json:"wage_max"`
	Availability    datatypes.JSON `json:"availability"`
	Description     string         `gorm:"type:text" json:"description"`

	RatingAvg   float64 `gorm:"default:0" json:"rating_avg"`
	RatingCount int     `gorm:"default:0" json:"rating_count"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
