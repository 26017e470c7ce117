package jobs

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/craftlink/craftlink-backend/internal/policy"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrValidation = errors.New("validation failed")
	// ErrJobNotFound covers both an absent job and a job owned by someone
	// else, so a failed delete does not reveal whether the id exists.
	ErrJobNotFound = errors.New("job not found")
)

type JobService struct {
	db *gorm.DB
}

func NewJobService(db *gorm.DB) *JobService {
	return &JobService{db: db}
}

// Create persists a new job owned by ownerID. Every field is required; the
// wage range is stored as sent, without ordering the bounds.
func (s *JobService) Create(ownerID uuid.UUID, req *CreateJobRequest) (*Job, error) {
	var missing []string
	if req.JobName == "" {
		missing = append(missing, "job_name")
	}
	if req.Description == "" {
		missing = append(missing, "description")
	}
	if req.Location == "" {
		missing = append(missing, "location")
	}
	if req.Duration == "" {
		missing = append(missing, "duration")
	}
	if req.Date == "" {
		missing = append(missing, "date")
	}
	if req.WageMin == nil {
		missing = append(missing, "wage_min")
	}
	if req.WageMax == nil {
		missing = append(missing, "wage_max")
	}
	if req.Latitude == nil {
		missing = append(missing, "latitude")
	}
	if req.Longitude == nil {
		missing = append(missing, "longitude")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing fields: %s", ErrValidation, strings.Join(missing, ", "))
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD or RFC3339", ErrValidation)
	}

	requirements := datatypes.JSON("[]")
	if len(req.Requirements) > 0 {
		b, err := json.Marshal(req.Requirements)
		if err != nil {
			return nil, fmt.Errorf("failed to encode requirements: %w", err)
		}
		requirements = datatypes.JSON(b)
	}

	job := Job{
		ID:           uuid.New(),
		OwnerID:      ownerID,
		JobName:      req.JobName,
		Description:  req.Description,
		Location:     req.Location,
		Duration:     req.Duration,
		Date:         date,
		WageMin:      *req.WageMin,
		WageMax:      *req.WageMax,
		Requirements: requirements,
		Latitude:     *req.Latitude,
		Longitude:    *req.Longitude,
	}

	if err := s.db.Create(&job).Error; err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}

	return &job, nil
}

// List returns every posted job with its owner resolved. Jobs have no closed
// state, so nothing is filtered out.
func (s *JobService) List() ([]Job, error) {
	var jobs []Job
	err := s.db.Preload("Owner").Order("created_at DESC").Find(&jobs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	return jobs, nil
}

// Delete removes a job if and only if the actor owns it. A job that does not
// exist and a job owned by another user fail identically.
func (s *JobService) Delete(actor policy.Actor, jobID uuid.UUID) error {
	var job Job
	if err := s.db.First(&job, "id = ?", jobID).Error; err != nil {
		return ErrJobNotFound
	}

	if err := policy.Authorize(actor, policy.ActionDeleteJob, &job); err != nil {
		return ErrJobNotFound
	}

	result := s.db.Where("id = ? AND owner_id = ?", jobID, actor.ID).Delete(&Job{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete job: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrJobNotFound
	}
	return nil
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
