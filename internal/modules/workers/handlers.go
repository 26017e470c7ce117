package workers

import (
	"errors"

	"github.com/craftlink/craftlink-backend/internal/dto"
	"github.com/craftlink/craftlink-backend/internal/identity"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type WorkerHandler struct {
	workerService *WorkerService
}

func NewWorkerHandler(workerService *WorkerService) *WorkerHandler {
	return &WorkerHandler{workerService: workerService}
}

// List handles GET /workers. The optional ?service= query narrows the result
// to workers offering that catalog service.
func (h *WorkerHandler) List(c *fiber.Ctx) error {
	profiles, err := h.workerService.List(c.Query("service"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to list workers",
		})
	}
	return c.JSON(profiles)
}

// Get handles GET /workers/:id.
func (h *WorkerHandler) Get(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid worker id",
		})
	}

	profile, err := h.workerService.Get(userID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Worker profile not found",
		})
	}
	return c.JSON(profile)
}

// Upsert handles PUT /workers/me.
func (h *WorkerHandler) Upsert(c *fiber.Ctx) error {
	actor, err := identity.FromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req UpsertProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	profile, err := h.workerService.Upsert(actor.ID, &req)
	if err != nil {
		if errors.Is(err, ErrUnknownService) || errors.Is(err, ErrInvalidRate) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to save worker profile",
		})
	}
	return c.JSON(profile)
}
