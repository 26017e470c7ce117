package requests

import (
	"errors"
	"fmt"

	"github.com/craftlink/craftlink-backend/internal/contentfilter"
	"github.com/craftlink/craftlink-backend/internal/lifecycle"
	"github.com/craftlink/craftlink-backend/internal/modules/jobs"
	"github.com/craftlink/craftlink-backend/internal/policy"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrJobNotFound      = errors.New("job not found")
	ErrRequestNotFound  = errors.New("join request not found")
	ErrDuplicateRequest = errors.New("you have already applied to this job")
	ErrMessageRejected  = errors.New("message rejected")
	ErrInvalidStatus    = errors.New("status must be accepted or rejected")
	ErrInvalidRating    = errors.New("rating must be an integer between 1 and 10")
	ErrNotAccepted      = errors.New("request must be accepted before rating")
	ErrAlreadyRated     = errors.New("already rated")
)

type RequestService struct {
	db     *gorm.DB
	filter *contentfilter.Filter
}

func NewRequestService(db *gorm.DB, filter *contentfilter.Filter) *RequestService {
	return &RequestService{db: db, filter: filter}
}

// Apply creates a pending request from worker to job. The unique index on
// (job_id, worker_id) rejects a second application even when two arrive
// concurrently.
func (s *RequestService) Apply(workerID uuid.UUID, jobID uuid.UUID, message string) (*JoinRequest, error) {
	var job jobs.Job
	if err := s.db.First(&job, "id = ?", jobID).Error; err != nil {
		return nil, ErrJobNotFound
	}

	if ok, reason := s.filter.Check(message); !ok {
		return nil, fmt.Errorf("%w: %s", ErrMessageRejected, contentfilter.RejectionMessage(reason))
	}

	request := JoinRequest{
		ID:       uuid.New(),
		JobID:    jobID,
		WorkerID: workerID,
		Status:   StatusPending,
		Message:  message,
	}

	if err := s.db.Create(&request).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateRequest
		}
		return nil, fmt.Errorf("failed to create join request: %w", err)
	}

	return &request, nil
}

// ListForJobOwner returns every request made against the owner's jobs, with
// worker and job details resolved.
func (s *RequestService) ListForJobOwner(ownerID uuid.UUID) ([]JoinRequest, error) {
	var list []JoinRequest
	err := s.db.
		Joins("JOIN jobs ON jobs.id = join_requests.job_id").
		Where("jobs.owner_id = ?", ownerID).
		Preload("Job").
		Preload("Worker").
		Order("join_requests.created_at DESC").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list join requests: %w", err)
	}
	return list, nil
}

// ListForWorker returns the worker's own applications with job details.
func (s *RequestService) ListForWorker(workerID uuid.UUID) ([]JoinRequest, error) {
	var list []JoinRequest
	err := s.db.
		Where("worker_id = ?", workerID).
		Preload("Job").
		Preload("Job.Owner").
		Order("created_at DESC").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list join requests: %w", err)
	}
	return list, nil
}

// Decide moves a pending request to accepted or rejected. Only the job owner
// may decide, and a decided request cannot be moved again. The update is
// conditional on the previous status so two concurrent decisions cannot both
// land.
func (s *RequestService) Decide(actor policy.Actor, requestID uuid.UUID, newStatus lifecycle.Status) (*JoinRequest, error) {
	var request JoinRequest
	if err := s.db.Preload("Job").First(&request, "id = ?", requestID).Error; err != nil {
		return nil, ErrRequestNotFound
	}

	if err := policy.Authorize(actor, policy.ActionDecideRequest, &request); err != nil {
		return nil, err
	}

	if newStatus != StatusAccepted && newStatus != StatusRejected {
		return nil, ErrInvalidStatus
	}
	if err := Transitions.Step(request.Status, newStatus); err != nil {
		return nil, err
	}

	result := s.db.Model(&JoinRequest{}).
		Where("id = ? AND status = ?", requestID, request.Status).
		Update("status", newStatus)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update join request: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, lifecycle.ErrInvalidTransition
	}

	request.Status = newStatus
	return &request, nil
}

// Rate records the job owner's 1-10 rating of the worker on an accepted
// request. The rating is write-once: the conditional update only lands when
// no rating exists yet.
func (s *RequestService) Rate(actor policy.Actor, requestID uuid.UUID, rating int) (*JoinRequest, error) {
	var request JoinRequest
	if err := s.db.Preload("Job").First(&request, "id = ?", requestID).Error; err != nil {
		return nil, ErrRequestNotFound
	}

	if err := policy.Authorize(actor, policy.ActionRateRequest, &request); err != nil {
		return nil, err
	}

	if rating < 1 || rating > 10 {
		return nil, ErrInvalidRating
	}
	if request.Status != StatusAccepted {
		return nil, ErrNotAccepted
	}
	if request.Rating != nil {
		return nil, ErrAlreadyRated
	}

	result := s.db.Model(&JoinRequest{}).
		Where("id = ? AND rating IS NULL AND status = ?", requestID, StatusAccepted).
		Update("rating", rating)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to store rating: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrAlreadyRated
	}

	request.Rating = &rating
	return &request, nil
}

// AggregateWorkerRatings computes the mean rating per worker across all rated
// requests. Workers with no rated request map to nil.
func (s *RequestService) AggregateWorkerRatings(workerIDs []uuid.UUID) (map[string]*float64, error) {
	result := make(map[string]*float64, len(workerIDs))
	for _, id := range workerIDs {
		result[id.String()] = nil
	}
	if len(workerIDs) == 0 {
		return result, nil
	}

	type row struct {
		WorkerID  uuid.UUID `gorm:"column:worker_id"`
		AvgRating float64   `gorm:"column:avg_rating"`
	}
	var rows []row
	err := s.db.Model(&JoinRequest{}).
		Select("worker_id, AVG(rating) AS avg_rating").
		Where("worker_id IN ? AND rating >= 1", workerIDs).
		Group("worker_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate ratings: %w", err)
	}

	for _, r := range rows {
		avg := r.AvgRating
		result[r.WorkerID.String()] = &avg
	}
	return result, nil
}
