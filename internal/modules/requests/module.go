package requests

import (
	"github.com/craftlink/craftlink-backend/internal/config"
	"github.com/craftlink/craftlink-backend/internal/contentfilter"
	"github.com/craftlink/craftlink-backend/internal/middleware"
	"github.com/craftlink/craftlink-backend/internal/models"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type RequestsModule struct {
	filter *contentfilter.Filter
}

func New(filter *contentfilter.Filter) *RequestsModule {
	return &RequestsModule{filter: filter}
}

func (m *RequestsModule) ID() string { return "join-requests" }

func (m *RequestsModule) Models() []interface{} {
	return []interface{}{
		&JoinRequest{},
	}
}

func (m *RequestsModule) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	svc := NewRequestService(db, m.filter)
	handler := NewRequestHandler(svc)

	router.Post("/join-requests", middleware.JWTProtected(cfg), middleware.RequireRole(models.RoleWorker), handler.Apply)
	router.Get("/join-requests/user", middleware.JWTProtected(cfg), handler.ListForJobOwner)
	router.Get("/join-requests/worker", middleware.JWTProtected(cfg), handler.ListForWorker)
	// worker-ratings is public: job listings show aggregate worker scores
	// before any authentication happens.
	router.Post("/join-requests/worker-ratings", handler.WorkerRatings)
	router.Patch("/join-requests/:id", middleware.JWTProtected(cfg), handler.Decide)
	router.Patch("/join-requests/:id/rate", middleware.JWTProtected(cfg), handler.Rate)
}
