package bookings

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/craftlink/craftlink-backend/internal/catalog"
	"github.com/craftlink/craftlink-backend/internal/contentfilter"
	"github.com/craftlink/craftlink-backend/internal/lifecycle"
	"github.com/craftlink/craftlink-backend/internal/models"
	"github.com/craftlink/craftlink-backend/internal/policy"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrBookingNotFound   = errors.New("booking not found")
	ErrWorkerNotFound    = errors.New("worker not found or inactive")
	ErrServiceUnknown    = errors.New("unknown service")
	ErrServiceNotOffered = errors.New("worker does not offer this service")
	ErrValidation        = errors.New("validation failed")
	ErrInvalidState      = errors.New("operation not allowed in current status")
	ErrInvalidRating     = errors.New("rating must be an integer between 1 and 5")
	ErrAlreadyReviewed   = errors.New("already reviewed")
	ErrReviewRejected    = errors.New("review rejected")
)

type BookingService struct {
	db       *gorm.DB
	services *catalog.Catalog
	filter   *contentfilter.Filter
}

func NewBookingService(db *gorm.DB, services *catalog.Catalog, filter *contentfilter.Filter) *BookingService {
	return &BookingService{db: db, services: services, filter: filter}
}

// Create books a worker for a catalog service. The worker must have an
// active profile offering the service; the estimated cost is the profile's
// hourly rate times the estimated duration.
func (s *BookingService) Create(customerID uuid.UUID, req *CreateBookingRequest) (*Booking, error) {
	var missing []string
	if req.WorkerID == "" {
		missing = append(missing, "worker_id")
	}
	if req.Service == "" {
		missing = append(missing, "service")
	}
	if req.Title == "" {
		missing = append(missing, "title")
	}
	if req.ScheduledDate == "" {
		missing = append(missing, "scheduled_date")
	}
	if req.EstimatedDuration <= 0 {
		missing = append(missing, "estimated_duration")
	}
	if req.Address == "" {
		missing = append(missing, "address")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing fields: %s", ErrValidation, strings.Join(missing, ", "))
	}

	workerID, err := uuid.Parse(req.WorkerID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid worker_id", ErrValidation)
	}

	scheduledDate, err := parseDate(req.ScheduledDate)
	if err != nil {
		return nil, fmt.Errorf("%w: scheduled_date must be YYYY-MM-DD or RFC3339", ErrValidation)
	}

	if !s.services.Exists(req.Service) {
		return nil, ErrServiceUnknown
	}

	var profile models.WorkerProfile
	if err := s.db.Where("user_id = ? AND is_active = ?", workerID, true).First(&profile).Error; err != nil {
		return nil, ErrWorkerNotFound
	}
	if !offersService(&profile, req.Service) {
		return nil, ErrServiceNotOffered
	}

	estimatedCost := profile.HourlyRate * req.EstimatedDuration

	booking := Booking{
		ID:                uuid.New(),
		CustomerID:        customerID,
		WorkerID:          workerID,
		Service:           req.Service,
		Title:             req.Title,
		Description:       req.Description,
		ScheduledDate:     scheduledDate,
		StartTime:         req.StartTime,
		EndTime:           req.EndTime,
		EstimatedDuration: req.EstimatedDuration,
		Address:           req.Address,
		Status:            StatusPending,
		HourlyRate:        profile.HourlyRate,
		EstimatedCost:     estimatedCost,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&booking).Error; err != nil {
			return err
		}
		return tx.Create(&BookingEvent{
			ID:        uuid.New(),
			BookingID: booking.ID,
			Status:    StatusPending,
			Note:      "Booking created",
			ActorID:   customerID,
		}).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	return &booking, nil
}

// ListForUser returns every booking the actor takes part in, as customer or
// worker.
func (s *BookingService) ListForUser(userID uuid.UUID) ([]Booking, error) {
	var list []Booking
	err := s.db.
		Where("customer_id = ? OR worker_id = ?", userID, userID).
		Preload("Customer").
		Preload("Worker").
		Order("created_at DESC").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return list, nil
}

// Get returns one booking with its full timeline; only the two parties may
// read it.
func (s *BookingService) Get(actor policy.Actor, bookingID uuid.UUID) (*Booking, error) {
	var booking Booking
	err := s.db.
		Preload("Customer").
		Preload("Worker").
		Preload("Timeline", func(db *gorm.DB) *gorm.DB {
			return db.Order("booking_events.created_at ASC")
		}).
		First(&booking, "id = ?", bookingID).Error
	if err != nil {
		return nil, ErrBookingNotFound
	}

	if err := policy.Authorize(actor, policy.ActionBookingView, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

// UpdateStatus advances the booking along the worker's transition table and
// appends a timeline entry. The status write is conditional on the previous
// status, so concurrent updates cannot skip a step. Completion increments
// the worker's completed-job counter best-effort: the counter write is not
// part of the status transaction.
func (s *BookingService) UpdateStatus(actor policy.Actor, bookingID uuid.UUID, newStatus lifecycle.Status, note string) (*Booking, error) {
	var booking Booking
	if err := s.db.First(&booking, "id = ?", bookingID).Error; err != nil {
		return nil, ErrBookingNotFound
	}

	if err := policy.Authorize(actor, policy.ActionBookingStatus, &booking); err != nil {
		return nil, err
	}

	if err := WorkerTransitions.Step(booking.Status, newStatus); err != nil {
		return nil, err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&Booking{}).
			Where("id = ? AND status = ?", bookingID, booking.Status).
			Update("status", newStatus)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return lifecycle.ErrInvalidTransition
		}
		return tx.Create(&BookingEvent{
			ID:        uuid.New(),
			BookingID: bookingID,
			Status:    newStatus,
			Note:      note,
			ActorID:   actor.ID,
		}).Error
	})
	if err != nil {
		if errors.Is(err, lifecycle.ErrInvalidTransition) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update booking status: %w", err)
	}

	if newStatus == StatusCompleted {
		result := s.db.Model(&models.WorkerProfile{}).
			Where("user_id = ?", booking.WorkerID).
			UpdateColumn("completed_jobs", gorm.Expr("completed_jobs + 1"))
		if result.Error != nil {
			slog.Error("failed to increment completed jobs",
				"action", "booking.complete",
				"worker_id", booking.WorkerID.String(),
				"error", result.Error.Error())
		}
	}

	booking.Status = newStatus
	return &booking, nil
}

// Cancel lets the customer abort a booking that has not started yet.
func (s *BookingService) Cancel(actor policy.Actor, bookingID uuid.UUID, reason string) (*Booking, error) {
	var booking Booking
	if err := s.db.First(&booking, "id = ?", bookingID).Error; err != nil {
		return nil, ErrBookingNotFound
	}

	if err := policy.Authorize(actor, policy.ActionBookingCancel, &booking); err != nil {
		return nil, err
	}

	if booking.Status != StatusPending && booking.Status != StatusAccepted {
		return nil, ErrInvalidState
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&Booking{}).
			Where("id = ? AND status = ?", bookingID, booking.Status).
			Updates(map[string]interface{}{
				"status":        StatusCancelled,
				"cancel_reason": reason,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrInvalidState
		}
		return tx.Create(&BookingEvent{
			ID:        uuid.New(),
			BookingID: bookingID,
			Status:    StatusCancelled,
			Note:      reason,
			ActorID:   actor.ID,
		}).Error
	})
	if err != nil {
		if errors.Is(err, ErrInvalidState) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to cancel booking: %w", err)
	}

	booking.Status = StatusCancelled
	booking.CancelReason = reason
	return &booking, nil
}

// Review records a 1-5 rating from one party about the other on a completed
// booking. Each party reviews once; the write is a conditional update so a
// concurrent duplicate loses. A customer review folds into the worker
// profile's running average in a single SQL update; a worker review does the
// same on the customer's user record.
func (s *BookingService) Review(actor policy.Actor, bookingID uuid.UUID, rating int, review string) (*Booking, error) {
	var booking Booking
	if err := s.db.First(&booking, "id = ?", bookingID).Error; err != nil {
		return nil, ErrBookingNotFound
	}

	if err := policy.Authorize(actor, policy.ActionBookingReview, &booking); err != nil {
		return nil, err
	}

	if booking.Status != StatusCompleted {
		return nil, ErrInvalidState
	}
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}
	if ok, reason := s.filter.Check(review); !ok {
		return nil, fmt.Errorf("%w: %s", ErrReviewRejected, contentfilter.RejectionMessage(reason))
	}

	isCustomer := actor.ID == booking.CustomerID

	ratingColumn := "customer_rating"
	reviewColumn := "customer_review"
	if !isCustomer {
		ratingColumn = "worker_rating"
		reviewColumn = "worker_review"
	}
	if (isCustomer && booking.CustomerRating != nil) || (!isCustomer && booking.WorkerRating != nil) {
		return nil, ErrAlreadyReviewed
	}

	result := s.db.Model(&Booking{}).
		Where("id = ? AND "+ratingColumn+" IS NULL AND status = ?", bookingID, StatusCompleted).
		Updates(map[string]interface{}{
			ratingColumn: rating,
			reviewColumn: review,
		})
	if result.Error != nil {
		return nil, fmt.Errorf("failed to store review: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrAlreadyReviewed
	}

	// Both columns read their pre-update values within one statement, so the
	// running average folds in atomically.
	if isCustomer {
		err := s.db.Model(&models.WorkerProfile{}).
			Where("user_id = ?", booking.WorkerID).
			Updates(map[string]interface{}{
				"rating_avg":   gorm.Expr("(rating_avg * rating_count + ?) / (rating_count + 1)", float64(rating)),
				"rating_count": gorm.Expr("rating_count + 1"),
			}).Error
		if err != nil {
			slog.Error("failed to update worker rating average",
				"action", "booking.review",
				"worker_id", booking.WorkerID.String(),
				"error", err.Error())
		}
	} else {
		err := s.db.Model(&models.User{}).
			Where("id = ?", booking.CustomerID).
			Updates(map[string]interface{}{
				"rating_avg":   gorm.Expr("(rating_avg * rating_count + ?) / (rating_count + 1)", float64(rating)),
				"rating_count": gorm.Expr("rating_count + 1"),
			}).Error
		if err != nil {
			slog.Error("failed to update customer rating average",
				"action", "booking.review",
				"customer_id", booking.CustomerID.String(),
				"error", err.Error())
		}
	}

	if isCustomer {
		booking.CustomerRating = &rating
		booking.CustomerReview = review
	} else {
		booking.WorkerRating = &rating
		booking.WorkerReview = review
	}
	return &booking, nil
}

func offersService(profile *models.WorkerProfile, service string) bool {
	var services []string
	if len(profile.Services) > 0 {
		if err := json.Unmarshal(profile.Services, &services); err != nil {
			return false
		}
	}
	for _, s := range services {
		if s == service {
			return true
		}
	}
	return false
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
