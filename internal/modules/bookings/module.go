package bookings

import (
	"github.com/craftlink/craftlink-backend/internal/catalog"
	"github.com/craftlink/craftlink-backend/internal/config"
	"github.com/craftlink/craftlink-backend/internal/contentfilter"
	"github.com/craftlink/craftlink-backend/internal/middleware"
	"github.com/craftlink/craftlink-backend/internal/models"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type BookingsModule struct {
	services *catalog.Catalog
	filter   *contentfilter.Filter
}

func New(services *catalog.Catalog, filter *contentfilter.Filter) *BookingsModule {
	return &BookingsModule{services: services, filter: filter}
}

func (m *BookingsModule) ID() string { return "bookings" }

func (m *BookingsModule) Models() []interface{} {
	return []interface{}{
		&Booking{},
		&BookingEvent{},
	}
}

func (m *BookingsModule) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	svc := NewBookingService(db, m.services, m.filter)
	handler := NewBookingHandler(svc)

	router.Post("/bookings", middleware.JWTProtected(cfg), middleware.RequireRole(models.RoleCustomer), handler.Create)
	router.Get("/bookings", middleware.JWTProtected(cfg), handler.List)
	router.Get("/bookings/:id", middleware.JWTProtected(cfg), handler.Get)
	router.Patch("/bookings/:id/status", middleware.JWTProtected(cfg), middleware.RequireRole(models.RoleWorker), handler.UpdateStatus)
	router.Patch("/bookings/:id/cancel", middleware.JWTProtected(cfg), middleware.RequireRole(models.RoleCustomer), handler.Cancel)
	router.Post("/bookings/:id/review", middleware.JWTProtected(cfg), handler.Review)
}
