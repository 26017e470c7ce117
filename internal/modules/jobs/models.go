package jobs

import (
	"time"

	"github.com/craftlink/craftlink-backend/internal/models"
	"github.com/craftlink/craftlink-backend/internal/policy"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Job is a customer-posted work opportunity. The owner reference never
// changes after creation.
type Job struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"owner_id"`
	JobName      string         `gorm:"not null;size:200" json:"job_name"`
	Description  string         `gorm:"type:text;not null" json:"description"`
	Location     string         `gorm:"not null;size:255" json:"location"`
	Duration     string         `gorm:"not null;size:100" json:"duration"`
	Date         time.Time      `gorm:"not null" json:"date"`
	WageMin      float64        `gorm:"not null" json:"wage_min"`
	WageMax      float64        `gorm:"not null" json:"wage_max"`
	Requirements datatypes.JSON `json:"requirements"`
	Latitude     float64        `gorm:"not null" json:"latitude"`
	Longitude    float64        `gorm:"not null" json:"longitude"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	Owner models.User `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
}

// AllowsActor grants job mutations to the owner only.
func (j *Job) AllowsActor(actor policy.Actor, action policy.Action) bool {
	switch action {
	case policy.ActionDeleteJob:
		return actor.ID == j.OwnerID
	default:
		return false
	}
}

// --- DTOs ---

// CreateJobRequest uses pointers for the numeric fields so a missing field
// can be told apart from an explicit zero.
type CreateJobRequest struct {
	JobName      string   `json:"job_name"`
	Description  string   `json:"description"`
	Location     string   `json:"location"`
	Duration     string   `json:"duration"`
	Date         string   `json:"date"`
	WageMin      *float64 `json:"wage_min"`
	WageMax      *float64 `json:"wage_max"`
	Requirements []string `json:"requirements"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
}
