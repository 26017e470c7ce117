package modules

import (
	"github.com/craftlink/craftlink-backend/internal/config"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Module defines the interface every marketplace feature implements.
type Module interface {
	// ID returns the unique module identifier.
	ID() string

	// Models returns the list of GORM model pointers for AutoMigrate.
	Models() []interface{}

	// RegisterRoutes mounts the module's routes on the given Fiber group.
	// The group is already prefixed with /api; modules attach their own
	// auth middleware since some routes are public.
	RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config)
}
