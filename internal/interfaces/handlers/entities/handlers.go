package entities

import (
	"errors"

	entsvc "wealthpulse-backend/internal/application/entities"
	"wealthpulse-backend/internal/application/networth"
	"wealthpulse-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Handlers bundles entity registry handlers with dependencies. Views is the
// net-worth summary cache, invalidated on every registry mutation.
type Handlers struct {
	Service *entsvc.Service
	Views   *networth.ViewCache
}

// Create POST /api/v1/entities
func (h *Handlers) Create(c *fiber.Ctx) error {
	var in entsvc.CreateInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, entsvc.ErrNameRequired.Error(), 400, nil)
	}

	entity, err := h.Service.Create(c.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, entsvc.ErrNameRequired), errors.Is(err, entsvc.ErrInvalidType):
			return response.Error(c, err.Error(), 400, nil)
		case errors.Is(err, entsvc.ErrDuplicateName):
			return response.Error(c, err.Error(), 409, nil)
		default:
			return response.Error(c, "Internal Server Error", 500, nil)
		}
	}

	h.Views.Invalidate(c.Context())
	return response.SuccessCreated(c, "Entity created successfully", entity, nil)
}

// List GET /api/v1/entities
func (h *Handlers) List(c *fiber.Ctx) error {
	list, err := h.Service.List(c.Context())
	if err != nil {
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Entities fetched successfully", list, nil)
}

type renameRequest struct {
	NewName string `json:"new_name"`
}

// Rename PATCH /api/v1/entities/:id/rename
func (h *Handlers) Rename(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid entity ID format (must be a valid UUID)", 400, nil)
	}
	var req renameRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, entsvc.ErrNameRequired.Error(), 400, nil)
	}

	entity, err := h.Service.Rename(c.Context(), id, req.NewName)
	if err != nil {
		switch {
		case errors.Is(err, entsvc.ErrNameRequired):
			return response.Error(c, err.Error(), 400, nil)
		case errors.Is(err, entsvc.ErrDuplicateName):
			return response.Error(c, err.Error(), 409, nil)
		case errors.Is(err, entsvc.ErrEntityNotFound):
			return response.Error(c, err.Error(), 404, nil)
		default:
			return response.Error(c, "Internal Server Error", 500, nil)
		}
	}

	h.Views.Invalidate(c.Context())
	return response.Success(c, "Entity renamed successfully", entity, nil)
}

// Delete DELETE /api/v1/entities/:id
func (h *Handlers) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid entity ID format (must be a valid UUID)", 400, nil)
	}

	if err := h.Service.Delete(c.Context(), id); err != nil {
		switch {
		case errors.Is(err, entsvc.ErrLastEntity):
			return response.Error(c, err.Error(), 400, nil)
		case errors.Is(err, entsvc.ErrEntityNotFound):
			return response.Error(c, err.Error(), 404, nil)
		default:
			return response.Error(c, "Internal Server Error", 500, nil)
		}
	}

	h.Views.Invalidate(c.Context())
	return response.Success(c, "Entity deleted successfully", nil, nil)
}
