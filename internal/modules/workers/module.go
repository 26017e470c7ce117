package workers

import (
	"github.com/craftlink/craftlink-backend/internal/catalog"
	"github.com/craftlink/craftlink-backend/internal/config"
	"github.com/craftlink/craftlink-backend/internal/middleware"
	"github.com/craftlink/craftlink-backend/internal/models"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type WorkersModule struct {
	services *catalog.Catalog
}

func New(services *catalog.Catalog) *WorkersModule {
	return &WorkersModule{services: services}
}

func (m *WorkersModule) ID() string { return "workers" }

// Models is empty: WorkerProfile is shared with auth and bookings and
// migrates with the shared models.
func (m *WorkersModule) Models() []interface{} {
	return nil
}

func (m *WorkersModule) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	svc := NewWorkerService(db, m.services)
	handler := NewWorkerHandler(svc)

	router.Get("/workers", handler.List)
	router.Put("/workers/me", middleware.JWTProtected(cfg), middleware.RequireRole(models.RoleWorker), handler.Upsert)
	router.Get("/workers/:id", handler.Get)
}
