package networth

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	networthsvc "wealthpulse-backend/internal/application/networth"
	"wealthpulse-backend/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupNetWorthTest(t *testing.T) (*fiber.App, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Entity{}, &domain.Asset{}, &domain.Liability{}))

	h := &Handlers{Service: &networthsvc.Service{DB: db}}
	app := fiber.New()
	app.Get("/api/v1/networth/summary", h.Summary)
	app.Get("/api/v1/networth/breakdown", h.Breakdown)
	return app, db
}

func TestSummary_DefaultsToAll(t *testing.T) {
	app, db := setupNetWorthTest(t)
	alice := domain.Entity{Name: "Alice"}
	require.NoError(t, db.Create(&alice).Error)
	require.NoError(t, db.Create(&domain.Asset{
		Name: "Brokerage", Valuation: 1234.567, OwnerEntityID: &alice.ID,
	}).Error)

	req := httptest.NewRequest("GET", "/api/v1/networth/summary", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body struct {
		Data struct {
			Entity     string  `json:"entity"`
			AssetTotal float64 `json:"asset_total"`
			NetWorth   float64 `json:"net_worth"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(b, &body))
	assert.Equal(t, "All", body.Data.Entity)
	// Rounded to cents for display.
	assert.Equal(t, 1234.57, body.Data.AssetTotal)
	assert.Equal(t, 1234.57, body.Data.NetWorth)
}

func TestSummary_UnknownEntityIs404(t *testing.T) {
	app, db := setupNetWorthTest(t)
	require.NoError(t, db.Create(&domain.Entity{Name: "Alice"}).Error)

	req := httptest.NewRequest("GET", "/api/v1/networth/summary?entity=Carol", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestBreakdown_SharesAndWeights(t *testing.T) {
	app, db := setupNetWorthTest(t)
	alice := domain.Entity{Name: "Alice"}
	bob := domain.Entity{Name: "Bob"}
	require.NoError(t, db.Create(&alice).Error)
	require.NoError(t, db.Create(&bob).Error)
	require.NoError(t, db.Create(&domain.Asset{
		Name: "House", Valuation: 100000,
		OwnershipSplit: domain.NewSplit(map[string]float64{
			alice.ID.String(): 60,
			bob.ID.String():   40,
		}),
	}).Error)

	req := httptest.NewRequest("GET", "/api/v1/networth/breakdown?entity=Bob", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body struct {
		Data struct {
			Assets []struct {
				Name     string  `json:"name"`
				Share    float64 `json:"share"`
				Weighted float64 `json:"weighted"`
			} `json:"assets"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(b, &body))
	require.Len(t, body.Data.Assets, 1)
	assert.Equal(t, "House", body.Data.Assets[0].Name)
	assert.InDelta(t, 0.4, body.Data.Assets[0].Share, 1e-9)
	assert.Equal(t, 40000.0, body.Data.Assets[0].Weighted)
}
