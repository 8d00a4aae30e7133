package liabilities

import (
	"errors"
	"time"

	liabsvc "wealthpulse-backend/internal/application/liabilities"
	"wealthpulse-backend/internal/application/networth"
	"wealthpulse-backend/internal/ledger"
	"wealthpulse-backend/internal/pkg/money"
	"wealthpulse-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Handlers bundles liability handlers with dependencies. MaxPeriods caps
// schedule length when the request does not ask for a bound; zero falls back
// to the ledger default.
type Handlers struct {
	Service    *liabsvc.Service
	Views      *networth.ViewCache
	MaxPeriods int
}

// Create POST /api/v1/liabilities
func (h *Handlers) Create(c *fiber.Ctx) error {
	var in liabsvc.CreateInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, liabsvc.ErrNameRequired.Error(), 400, nil)
	}

	liability, err := h.Service.Create(c.Context(), in)
	if err != nil {
		return liabilityError(c, err)
	}

	h.Views.Invalidate(c.Context())
	return response.SuccessCreated(c, "Liability created successfully", liability, nil)
}

// List GET /api/v1/liabilities
func (h *Handlers) List(c *fiber.Ctx) error {
	list, err := h.Service.List(c.Context())
	if err != nil {
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Liabilities fetched successfully", list, nil)
}

// Get GET /api/v1/liabilities/:id
func (h *Handlers) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid liability ID format (must be a valid UUID)", 400, nil)
	}
	liability, err := h.Service.Get(c.Context(), id)
	if err != nil {
		return liabilityError(c, err)
	}
	return response.Success(c, "Liability fetched successfully", liability, nil)
}

// Update PATCH /api/v1/liabilities/:id
func (h *Handlers) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid liability ID format (must be a valid UUID)", 400, nil)
	}
	var in liabsvc.UpdateInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}

	liability, err := h.Service.Update(c.Context(), id, in)
	if err != nil {
		return liabilityError(c, err)
	}

	h.Views.Invalidate(c.Context())
	return response.Success(c, "Liability updated successfully", liability, nil)
}

// Delete DELETE /api/v1/liabilities/:id
func (h *Handlers) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid liability ID format (must be a valid UUID)", 400, nil)
	}
	if err := h.Service.Delete(c.Context(), id); err != nil {
		return liabilityError(c, err)
	}

	h.Views.Invalidate(c.Context())
	return response.Success(c, "Liability deleted successfully", nil, nil)
}

// scheduleRow mirrors ledger.Row with amounts rounded to cents for display.
type scheduleRow struct {
	Month     int     `json:"month"`
	Payment   float64 `json:"payment"`
	Principal float64 `json:"principal"`
	Interest  float64 `json:"interest"`
	Balance   float64 `json:"balance"`
}

type scheduleResponse struct {
	LiabilityID   uuid.UUID     `json:"liability_id"`
	Status        ledger.Status `json:"status"`
	Rows          []scheduleRow `json:"rows,omitempty"`
	TotalInterest float64       `json:"total_interest"`
	PayoffDate    string        `json:"payoff_date,omitempty"`
}

// Schedule GET /api/v1/liabilities/:id/schedule
//
// Unschedulable and non-amortizing liabilities are a 200 with the status field
// set; only an unknown liability is an HTTP error.
func (h *Handlers) Schedule(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid liability ID format (must be a valid UUID)", 400, nil)
	}
	defaultBound := h.MaxPeriods
	if defaultBound <= 0 {
		defaultBound = ledger.DefaultMaxPeriods
	}
	maxPeriods := c.QueryInt("max_periods", defaultBound)

	result, err := h.Service.Schedule(c.Context(), id, maxPeriods)
	if err != nil {
		return liabilityError(c, err)
	}

	resp := scheduleResponse{
		LiabilityID: result.LiabilityID,
		Status:      result.Status,
	}
	if result.Schedule != nil {
		resp.TotalInterest = money.Round2(result.Schedule.TotalInterest)
		for _, row := range result.Schedule.Rows {
			resp.Rows = append(resp.Rows, scheduleRow{
				Month:     row.Month,
				Payment:   money.Round2(row.Payment),
				Principal: money.Round2(row.Principal),
				Interest:  money.Round2(row.Interest),
				Balance:   money.Round2(row.Balance),
			})
		}
	}
	if result.PayoffDate != nil {
		resp.PayoffDate = result.PayoffDate.Format(time.DateOnly)
	}
	return response.Success(c, "Schedule computed successfully", resp, nil)
}

func liabilityError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, liabsvc.ErrNameRequired),
		errors.Is(err, liabsvc.ErrBadSplitKey),
		errors.Is(err, liabsvc.ErrUnknownEntity):
		return response.Error(c, err.Error(), 400, nil)
	case errors.Is(err, liabsvc.ErrLiabilityNotFound):
		return response.Error(c, err.Error(), 404, nil)
	default:
		return response.Error(c, "Internal Server Error", 500, nil)
	}
}
