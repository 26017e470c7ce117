package jobs

import (
	"github.com/craftlink/craftlink-backend/internal/config"
	"github.com/craftlink/craftlink-backend/internal/middleware"
	"github.com/craftlink/craftlink-backend/internal/models"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type JobsModule struct{}

func New() *JobsModule {
	return &JobsModule{}
}

func (m *JobsModule) ID() string { return "jobs" }

func (m *JobsModule) Models() []interface{} {
	return []interface{}{
		&Job{},
	}
}

func (m *JobsModule) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	svc := NewJobService(db)
	handler := NewJobHandler(svc)

	router.Post("/jobs", middleware.JWTProtected(cfg), middleware.RequireRole(models.RoleCustomer), handler.Create)
	router.Get("/jobs", handler.List)
	router.Delete("/jobs/:id", middleware.JWTProtected(cfg), handler.Delete)
}
