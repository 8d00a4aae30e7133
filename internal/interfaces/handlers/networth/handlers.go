package networth

import (
	"errors"

	networthsvc "wealthpulse-backend/internal/application/networth"
	"wealthpulse-backend/internal/ledger"
	"wealthpulse-backend/internal/pkg/money"
	"wealthpulse-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Handlers bundles net-worth view handlers.
type Handlers struct {
	Service *networthsvc.Service
}

type summaryResponse struct {
	Entity         string  `json:"entity"`
	AssetTotal     float64 `json:"asset_total"`
	LiabilityTotal float64 `json:"liability_total"`
	NetWorth       float64 `json:"net_worth"`
}

// Summary GET /api/v1/networth/summary?entity=
//
// The entity query defaults to the aggregate "All" view.
func (h *Handlers) Summary(c *fiber.Ctx) error {
	viewing := c.Query("entity", ledger.AllEntities)

	sum, err := h.Service.Summary(c.Context(), viewing)
	if err != nil {
		if errors.Is(err, networthsvc.ErrUnknownViewingEntity) {
			return response.Error(c, err.Error(), 404, nil)
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}

	return response.Success(c, "Net worth computed successfully", summaryResponse{
		Entity:         sum.Entity,
		AssetTotal:     money.Round2(sum.AssetTotal),
		LiabilityTotal: money.Round2(sum.LiabilityTotal),
		NetWorth:       money.Round2(sum.NetWorth),
	}, nil)
}

// Breakdown GET /api/v1/networth/breakdown?entity=
func (h *Handlers) Breakdown(c *fiber.Ctx) error {
	viewing := c.Query("entity", ledger.AllEntities)

	b, err := h.Service.Breakdown(c.Context(), viewing)
	if err != nil {
		if errors.Is(err, networthsvc.ErrUnknownViewingEntity) {
			return response.Error(c, err.Error(), 404, nil)
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}

	for i := range b.Assets {
		b.Assets[i].Weighted = money.Round2(b.Assets[i].Weighted)
	}
	for i := range b.Liabilities {
		b.Liabilities[i].Weighted = money.Round2(b.Liabilities[i].Weighted)
	}
	return response.Success(c, "Breakdown computed successfully", b, nil)
}
