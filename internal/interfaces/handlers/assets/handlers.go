package assets

import (
	"errors"

	assetsvc "wealthpulse-backend/internal/application/assets"
	"wealthpulse-backend/internal/application/networth"
	"wealthpulse-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Handlers bundles asset handlers with dependencies.
type Handlers struct {
	Service *assetsvc.Service
	Views   *networth.ViewCache
}

// Create POST /api/v1/assets
func (h *Handlers) Create(c *fiber.Ctx) error {
	var in assetsvc.CreateInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, assetsvc.ErrNameRequired.Error(), 400, nil)
	}

	asset, err := h.Service.Create(c.Context(), in)
	if err != nil {
		return assetError(c, err)
	}

	h.Views.Invalidate(c.Context())
	return response.SuccessCreated(c, "Asset created successfully", asset, nil)
}

// List GET /api/v1/assets
func (h *Handlers) List(c *fiber.Ctx) error {
	list, err := h.Service.List(c.Context())
	if err != nil {
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Assets fetched successfully", list, nil)
}

// Get GET /api/v1/assets/:id
func (h *Handlers) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid asset ID format (must be a valid UUID)", 400, nil)
	}
	asset, err := h.Service.Get(c.Context(), id)
	if err != nil {
		return assetError(c, err)
	}
	return response.Success(c, "Asset fetched successfully", asset, nil)
}

// Update PATCH /api/v1/assets/:id
func (h *Handlers) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid asset ID format (must be a valid UUID)", 400, nil)
	}
	var in assetsvc.UpdateInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}

	asset, err := h.Service.Update(c.Context(), id, in)
	if err != nil {
		return assetError(c, err)
	}

	h.Views.Invalidate(c.Context())
	return response.Success(c, "Asset updated successfully", asset, nil)
}

// Delete DELETE /api/v1/assets/:id
func (h *Handlers) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid asset ID format (must be a valid UUID)", 400, nil)
	}
	if err := h.Service.Delete(c.Context(), id); err != nil {
		return assetError(c, err)
	}

	h.Views.Invalidate(c.Context())
	return response.Success(c, "Asset deleted successfully", nil, nil)
}

func assetError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, assetsvc.ErrNameRequired),
		errors.Is(err, assetsvc.ErrBadSplitKey),
		errors.Is(err, assetsvc.ErrUnknownEntity):
		return response.Error(c, err.Error(), 400, nil)
	case errors.Is(err, assetsvc.ErrAssetNotFound):
		return response.Error(c, err.Error(), 404, nil)
	default:
		return response.Error(c, "Internal Server Error", 500, nil)
	}
}
