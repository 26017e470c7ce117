package jobs_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/craftlink/craftlink-backend/internal/config"
	"github.com/craftlink/craftlink-backend/internal/models"
	"github.com/craftlink/craftlink-backend/internal/modules/jobs"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	app := fiber.New()

	cfg := &config.Config{JWTSecret: testSecret}
	jobs.New().RegisterRoutes(app.Group("/api"), db, cfg)
	return app, db
}

func signToken(t *testing.T, user *models.User) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
		"role":  user.Role,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(15 * time.Minute).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func doJSON(t *testing.T, app *fiber.App, method, path, token, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

const createJobBody = `{
	"job_name": "Garden cleanup",
	"description": "Clear leaves and trim the hedge",
	"location": "Bruges",
	"duration": "4 hours",
	"date": "2026-09-12",
	"wage_min": 60,
	"wage_max": 90,
	"latitude": 51.2093,
	"longitude": 3.2247
}`

func TestJobRoutes(t *testing.T) {
	app, db := newTestApp(t)
	customer := createUser(t, db, models.RoleCustomer)
	worker := createUser(t, db, models.RoleWorker)

	// Posting without a token is rejected before the handler runs.
	resp := doJSON(t, app, fiber.MethodPost, "/api/jobs", "", createJobBody)
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", resp.StatusCode)
	}

	// Workers cannot post jobs.
	resp = doJSON(t, app, fiber.MethodPost, "/api/jobs", signToken(t, worker), createJobBody)
	if resp.StatusCode != fiber.StatusForbidden {
		t.Fatalf("expected 403 for worker, got %d", resp.StatusCode)
	}

	resp = doJSON(t, app, fiber.MethodPost, "/api/jobs", signToken(t, customer), createJobBody)
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	var created jobs.Job
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode created job: %v", err)
	}
	if created.OwnerID != customer.ID {
		t.Errorf("expected owner %s, got %s", customer.ID, created.OwnerID)
	}

	// The listing is public.
	resp = doJSON(t, app, fiber.MethodGet, "/api/jobs", "", "")
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 listing, got %d", resp.StatusCode)
	}
	var list []jobs.Job
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		t.Fatalf("decode listing: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 job, got %d", len(list))
	}

	// A non-owner's delete reads as not-found.
	resp = doJSON(t, app, fiber.MethodDelete, "/api/jobs/"+created.ID.String(), signToken(t, worker), "")
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404 for non-owner delete, got %d", resp.StatusCode)
	}

	resp = doJSON(t, app, fiber.MethodDelete, "/api/jobs/"+created.ID.String(), signToken(t, customer), "")
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for owner delete, got %d", resp.StatusCode)
	}
}

func TestJobRoutesBadInput(t *testing.T) {
	app, db := newTestApp(t)
	customer := createUser(t, db, models.RoleCustomer)
	token := signToken(t, customer)

	resp := doJSON(t, app, fiber.MethodPost, "/api/jobs", token, `{"job_name": "only a name"}`)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for missing fields, got %d", resp.StatusCode)
	}

	resp = doJSON(t, app, fiber.MethodDelete, "/api/jobs/not-a-uuid", token, "")
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for bad id, got %d", resp.StatusCode)
	}
}
