package workers

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/craftlink/craftlink-backend/internal/catalog"
	"github.com/craftlink/craftlink-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrProfileNotFound = errors.New("worker profile not found")
	ErrUnknownService  = errors.New("unknown service in profile")
	ErrInvalidRate     = errors.New("hourly rate must be positive")
)

type WorkerService struct {
	db       *gorm.DB
	services *catalog.Catalog
}

func NewWorkerService(db *gorm.DB, services *catalog.Catalog) *WorkerService {
	return &WorkerService{db: db, services: services}
}

// UpsertProfileRequest carries the worker's self-service profile publication.
type UpsertProfileRequest struct {
	Services   []string `json:"services"`
	HourlyRate float64  `json:"hourly_rate"`
	IsActive   *bool    `json:"is_active"`
}

// List returns active worker profiles, optionally narrowed to one catalog
// service.
func (s *WorkerService) List(service string) ([]models.WorkerProfile, error) {
	query := s.db.Where("is_active = ?", true).Preload("User")
	if service != "" {
		// Services is a JSON array of catalog ids; a substring match on the
		// quoted id is enough for both Postgres and SQLite.
		query = query.Where("services LIKE ?", `%"`+service+`"%`)
	}

	var profiles []models.WorkerProfile
	if err := query.Order("rating_avg DESC").Find(&profiles).Error; err != nil {
		return nil, fmt.Errorf("failed to list worker profiles: %w", err)
	}
	return profiles, nil
}

// Get returns one worker profile by its user id.
func (s *WorkerService) Get(userID uuid.UUID) (*models.WorkerProfile, error) {
	var profile models.WorkerProfile
	if err := s.db.Preload("User").Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, ErrProfileNotFound
	}
	return &profile, nil
}

// Upsert creates or updates the worker's own profile. Every offered service
// must exist in the catalog.
func (s *WorkerService) Upsert(userID uuid.UUID, req *UpsertProfileRequest) (*models.WorkerProfile, error) {
	if req.HourlyRate <= 0 {
		return nil, ErrInvalidRate
	}
	for _, svc := range req.Services {
		if !s.services.Exists(svc) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownService, svc)
		}
	}

	servicesJSON, err := json.Marshal(req.Services)
	if err != nil {
		return nil, fmt.Errorf("failed to encode services: %w", err)
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	var profile models.WorkerProfile
	err = s.db.Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		profile = models.WorkerProfile{
			ID:         uuid.New(),
			UserID:     userID,
			Services:   datatypes.JSON(servicesJSON),
			HourlyRate: req.HourlyRate,
			IsActive:   isActive,
		}
		if err := s.db.Create(&profile).Error; err != nil {
			return nil, fmt.Errorf("failed to create worker profile: %w", err)
		}
		return &profile, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to load worker profile: %w", err)
	}

	updates := map[string]interface{}{
		"services":    datatypes.JSON(servicesJSON),
		"hourly_rate": req.HourlyRate,
		"is_active":   isActive,
	}
	if err := s.db.Model(&profile).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update worker profile: %w", err)
	}

	return s.Get(userID)
}
