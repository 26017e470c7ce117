package bookings

import (
	"time"

	"github.com/craftlink/craftlink-backend/internal/lifecycle"
	"github.com/craftlink/craftlink-backend/internal/models"
	"github.com/craftlink/craftlink-backend/internal/policy"
	"github.com/google/uuid"
)

// Booking statuses. The assigned worker drives the forward path; the
// customer can only cancel, and only early.
const (
	StatusPending    lifecycle.Status = "pending"
	StatusAccepted   lifecycle.Status = "accepted"
	StatusInProgress lifecycle.Status = "in-progress"
	StatusCompleted  lifecycle.Status = "completed"
	StatusCancelled  lifecycle.Status = "cancelled"
	StatusRejected   lifecycle.Status = "rejected"
)

// Transitions is the booking state machine. Cancellation transitions are
// listed here but additionally gated to the customer in the service.
var Transitions = lifecycle.Table{
	StatusPending:    {StatusAccepted, StatusRejected, StatusCancelled},
	StatusAccepted:   {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted},
}

// WorkerTransitions is the subset of transitions the assigned worker may
// drive through the status endpoint. Cancellation is customer-only.
var WorkerTransitions = lifecycle.Table{
	StatusPending:    {StatusAccepted, StatusRejected},
	StatusAccepted:   {StatusInProgress},
	StatusInProgress: {StatusCompleted},
}

// Booking is a scheduled, priced engagement between a customer and a worker.
// Rating fields are write-once per party and only valid once completed.
type Booking struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CustomerID uuid.UUID `gorm:"type:uuid;not null;index" json:"customer_id"`
	WorkerID   uuid.UUID `gorm:"type:uuid;not null;index" json:"worker_id"`

	Service     string `gorm:"size:50;not null" json:"service"`
	Title       string `gorm:"size:200;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`

	ScheduledDate     time.Time `gorm:"not null" json:"scheduled_date"`
	StartTime         string    `gorm:"size:10" json:"start_time"`
	EndTime           string    `gorm:"size:10" json:"end_time"`
	EstimatedDuration float64   `gorm:"not null" json:"estimated_duration"`
	Address           string    `gorm:"size:500;not null" json:"address"`

	Status lifecycle.Status `gorm:"size:20;not null;default:'pending'" json:"status"`

	HourlyRate    float64 `json:"hourly_rate"`
	EstimatedCost float64 `json:"estimated_cost"`
	LaborCost     float64 `json:"labor_cost"`
	TotalCost     float64 `json:"total_cost"`

	CancelReason string `gorm:"size:500" json:"cancel_reason,omitempty"`

	CustomerRating *int   `json:"customer_rating"`
	CustomerReview string `gorm:"size:1000" json:"customer_review,omitempty"`
	WorkerRating   *int   `json:"worker_rating"`
	WorkerReview   string `gorm:"size:1000" json:"worker_review,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Customer models.User    `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Worker   models.User    `gorm:"foreignKey:WorkerID" json:"worker,omitempty"`
	Timeline []BookingEvent `gorm:"foreignKey:BookingID" json:"timeline,omitempty"`
}

// BookingEvent is one entry in the booking's append-only timeline. Entries
// are only ever inserted, never updated or deleted.
type BookingEvent struct {
	ID        uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	BookingID uuid.UUID        `gorm:"type:uuid;not null;index" json:"booking_id"`
	Status    lifecycle.Status `gorm:"size:20;not null" json:"status"`
	Note      string           `gorm:"size:500" json:"note"`
	ActorID   uuid.UUID        `gorm:"type:uuid;not null" json:"actor_id"`
	CreatedAt time.Time        `json:"created_at"`
}

// AllowsActor implements the booking access rules: status changes belong to
// the assigned worker, cancellation to the customer, reviews and reads to
// either party.
func (b *Booking) AllowsActor(actor policy.Actor, action policy.Action) bool {
	switch action {
	case policy.ActionBookingStatus:
		return actor.ID == b.WorkerID
	case policy.ActionBookingCancel:
		return actor.ID == b.CustomerID
	case policy.ActionBookingReview, policy.ActionBookingView:
		return actor.ID == b.CustomerID || actor.ID == b.WorkerID
	default:
		return false
	}
}

// --- DTOs ---

type CreateBookingRequest struct {
	WorkerID          string  `json:"worker_id"`
	Service           string  `json:"service"`
	Title             string  `json:"title"`
	Description       string  `json:"description"`
	ScheduledDate     string  `json:"scheduled_date"`
	StartTime         string  `json:"start_time"`
	EndTime           string  `json:"end_time"`
	EstimatedDuration float64 `json:"estimated_duration"`
	Address           string  `json:"address"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
	Note   string `json:"note"`
}

type CancelRequest struct {
	Reason string `json:"reason"`
}

type ReviewRequest struct {
	Rating int    `json:"rating"`
	Review string `json:"review"`
}
