package services_test

import (
	"errors"
	"testing"
	"time"

	"github.com/craftlink/craftlink-backend/internal/config"
	"github.com/craftlink/craftlink-backend/internal/dto"
	"github.com/craftlink/craftlink-backend/internal/models"
	"github.com/craftlink/craftlink-backend/internal/services"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestService(t *testing.T) (*services.AuthService, *gorm.DB) {
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

	if err := db.AutoMigrate(&models.User{}, &models.WorkerProfile{}, &models.RefreshToken{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	cfg := &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 24 * time.Hour,
	}
	return services.NewAuthService(db, cfg), db
}

func registerReq(email, phone, role string) *dto.RegisterRequest {
	return &dto.RegisterRequest{
		Name:     "Test User",
		Email:    email,
		Phone:    phone,
		Password: "password123",
		Role:     role,
	}
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newTestService(t)

	resp, err := svc.Register(registerReq("mara@example.com", "+15550001", models.RoleWorker))
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Fatal("expected both tokens in register response")
	}
	if resp.User.Role != models.RoleWorker {
		t.Errorf("expected role worker, got %q", resp.User.Role)
	}

	login, err := svc.Login(&dto.LoginRequest{Email: "mara@example.com", Password: "password123"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if login.User.ID != resp.User.ID {
		t.Error("login returned a different user")
	}

	_, err = svc.Login(&dto.LoginRequest{Email: "mara@example.com", Password: "wrong-password"})
	if !errors.Is(err, services.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.Register(registerReq("a@example.com", "+15550002", "admin")); !errors.Is(err, services.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}

	short := registerReq("a@example.com", "+15550002", models.RoleCustomer)
	short.Password = "short"
	if _, err := svc.Register(short); err == nil {
		t.Fatal("expected error for short password")
	}
}

func TestRegisterDuplicates(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.Register(registerReq("dup@example.com", "+15550003", models.RoleCustomer)); err != nil {
		t.Fatalf("first register: %v", err)
	}

	_, err := svc.Register(registerReq("dup@example.com", "+15550004", models.RoleCustomer))
	if !errors.Is(err, services.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}

	_, err = svc.Register(registerReq("other@example.com", "+15550003", models.RoleCustomer))
	if !errors.Is(err, services.ErrPhoneTaken) {
		t.Fatalf("expected ErrPhoneTaken, got %v", err)
	}
}

func TestRefreshRotation(t *testing.T) {
	svc, _ := newTestService(t)

	resp, err := svc.Register(registerReq("rot@example.com", "+15550005", models.RoleCustomer))
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	refreshed, err := svc.Refresh(&dto.RefreshRequest{RefreshToken: resp.RefreshToken})
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if refreshed.RefreshToken == resp.RefreshToken {
		t.Error("expected a new refresh token after rotation")
	}

	// The old token is revoked after use.
	if _, err := svc.Refresh(&dto.RefreshRequest{RefreshToken: resp.RefreshToken}); !errors.Is(err, services.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for reused token, got %v", err)
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	svc, _ := newTestService(t)

	resp, err := svc.Register(registerReq("out@example.com", "+15550006", models.RoleCustomer))
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if err := svc.Logout(&dto.LogoutRequest{RefreshToken: resp.RefreshToken}); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := svc.Refresh(&dto.RefreshRequest{RefreshToken: resp.RefreshToken}); !errors.Is(err, services.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken after logout, got %v", err)
	}
}

func TestUpdateProfile(t *testing.T) {
	svc, _ := newTestService(t)

	resp, err := svc.Register(registerReq("prof@example.com", "+15550007", models.RoleWorker))
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	location := "Antwerp"
	skills := []string{"plumbing", "carpentry"}
	wageMin := 20.0
	user, err := svc.UpdateProfile(resp.User.ID, &dto.UpdateProfileRequest{
		Location: &location,
		Skills:   &skills,
		WageMin:  &wageMin,
	})
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if user.Location != "Antwerp" || user.WageMin != 20.0 {
		t.Errorf("profile not updated: %+v", user)
	}
	if len(user.Skills) == 0 {
		t.Error("expected skills to be stored")
	}
	// Untouched fields survive a partial update.
	if user.Email != "prof@example.com" {
		t.Errorf("email changed unexpectedly: %q", user.Email)
	}
}

func TestDeleteAccount(t *testing.T) {
	svc, db := newTestService(t)

	resp, err := svc.Register(registerReq("gone@example.com", "+15550008", models.RoleCustomer))
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if err := svc.DeleteAccount(resp.User.ID, "wrong-password"); !errors.Is(err, services.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	if err := svc.DeleteAccount(resp.User.ID, "password123"); err != nil {
		t.Fatalf("delete account: %v", err)
	}

	var count int64
	db.Model(&models.User{}).Where("email = ?", "gone@example.com").Count(&count)
	if count != 0 {
		t.Errorf("expected user to be deleted, found %d", count)
	}
}
