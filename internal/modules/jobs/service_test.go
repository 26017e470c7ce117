package jobs_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/craftlink/craftlink-backend/internal/models"
	"github.com/craftlink/craftlink-backend/internal/modules/jobs"
	"github.com/craftlink/craftlink-backend/internal/policy"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := db.AutoMigrate(&models.User{}, &jobs.Job{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func createUser(t *testing.T, db *gorm.DB, role string) *models.User {
	t.Helper()
	user := models.User{
		ID:       uuid.New(),
		Name:     "User " + uuid.NewString()[:8],
		Email:    uuid.NewString() + "@example.com",
		Phone:    "+1" + uuid.NewString()[:10],
		Password: "x",
		Role:     role,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return &user
}

func validJobRequest() *jobs.CreateJobRequest {
	wageMin, wageMax := 100.0, 200.0
	lat, lng := 51.2194, 4.4025
	return &jobs.CreateJobRequest{
		JobName:     "Bathroom renovation",
		Description: "Tear out and re-tile a small bathroom",
		Location:    "Antwerp",
		Duration:    "3 days",
		Date:        "2026-09-15",
		WageMin:     &wageMin,
		WageMax:     &wageMax,
		Latitude:    &lat,
		Longitude:   &lng,
	}
}

func TestCreateJob(t *testing.T) {
	db := newTestDB(t)
	svc := jobs.NewJobService(db)
	owner := createUser(t, db, models.RoleCustomer)

	job, err := svc.Create(owner.ID, validJobRequest())
	if err != nil {
		t.Fatalf("create job: %v", err)
	}
	if job.OwnerID != owner.ID {
		t.Error("job owner mismatch")
	}
	if job.WageMin != 100 || job.WageMax != 200 {
		t.Errorf("wage range not stored: %v-%v", job.WageMin, job.WageMax)
	}
}

func TestCreateJobMissingFields(t *testing.T) {
	db := newTestDB(t)
	svc := jobs.NewJobService(db)
	owner := createUser(t, db, models.RoleCustomer)

	req := validJobRequest()
	req.JobName = ""
	req.WageMax = nil

	_, err := svc.Create(owner.ID, req)
	if !errors.Is(err, jobs.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	// The error names every missing field.
	if !strings.Contains(err.Error(), "job_name") || !strings.Contains(err.Error(), "wage_max") {
		t.Errorf("expected missing field names in error, got %q", err.Error())
	}
}

func TestCreateJobBadDate(t *testing.T) {
	db := newTestDB(t)
	svc := jobs.NewJobService(db)
	owner := createUser(t, db, models.RoleCustomer)

	req := validJobRequest()
	req.Date = "next tuesday"
	if _, err := svc.Create(owner.ID, req); !errors.Is(err, jobs.ErrValidation) {
		t.Fatalf("expected ErrValidation for bad date, got %v", err)
	}
}

func TestCreateJobUnorderedWageRangeAllowed(t *testing.T) {
	db := newTestDB(t)
	svc := jobs.NewJobService(db)
	owner := createUser(t, db, models.RoleCustomer)

	req := validJobRequest()
	*req.WageMin, *req.WageMax = 300.0, 100.0
	if _, err := svc.Create(owner.ID, req); err != nil {
		t.Fatalf("wage range is stored as sent, got %v", err)
	}
}

func TestListResolvesOwner(t *testing.T) {
	db := newTestDB(t)
	svc := jobs.NewJobService(db)
	owner := createUser(t, db, models.RoleCustomer)

	if _, err := svc.Create(owner.ID, validJobRequest()); err != nil {
		t.Fatalf("create job: %v", err)
	}

	list, err := svc.List()
	if err != nil {
		t.Fatalf("list jobs: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 job, got %d", len(list))
	}
	if list[0].Owner.Email != owner.Email {
		t.Errorf("expected owner resolved, got %+v", list[0].Owner)
	}
}

func TestDeleteJobOwnership(t *testing.T) {
	db := newTestDB(t)
	svc := jobs.NewJobService(db)
	owner := createUser(t, db, models.RoleCustomer)
	other := createUser(t, db, models.RoleCustomer)

	job, err := svc.Create(owner.ID, validJobRequest())
	if err != nil {
		t.Fatalf("create job: %v", err)
	}

	// A non-owner and a missing id fail with the same error.
	err = svc.Delete(policy.Actor{ID: other.ID, Role: other.Role}, job.ID)
	if !errors.Is(err, jobs.ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound for non-owner, got %v", err)
	}
	err = svc.Delete(policy.Actor{ID: owner.ID, Role: owner.Role}, uuid.New())
	if !errors.Is(err, jobs.ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound for missing job, got %v", err)
	}

	// The job is still listed after the failed delete.
	list, _ := svc.List()
	if len(list) != 1 {
		t.Fatalf("expected job to survive failed delete, got %d jobs", len(list))
	}

	if err := svc.Delete(policy.Actor{ID: owner.ID, Role: owner.Role}, job.ID); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	list, _ = svc.List()
	if len(list) != 0 {
		t.Fatalf("expected empty listing after delete, got %d", len(list))
	}
}
