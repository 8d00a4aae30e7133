package router

import (
	"context"

	assetsvc "wealthpulse-backend/internal/application/assets"
	entsvc "wealthpulse-backend/internal/application/entities"
	liabsvc "wealthpulse-backend/internal/application/liabilities"
	networthsvc "wealthpulse-backend/internal/application/networth"
	"wealthpulse-backend/internal/config"
	"wealthpulse-backend/internal/infrastructure/database"
	assethandler "wealthpulse-backend/internal/interfaces/handlers/assets"
	enthandler "wealthpulse-backend/internal/interfaces/handlers/entities"
	healthhandler "wealthpulse-backend/internal/interfaces/handlers/health"
	liabhandler "wealthpulse-backend/internal/interfaces/handlers/liabilities"
	networthhandler "wealthpulse-backend/internal/interfaces/handlers/networth"
	"wealthpulse-backend/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type gormDBPinger struct {
	db *gorm.DB
}

func (g *gormDBPinger) Ping() error {
	if g == nil || g.db == nil {
		return nil
	}
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// CreateApp builds the Fiber app with all middleware and route registration.
func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage:   true,
		ErrorHandler:            middleware.ErrorHandler,
		EnableTrustedProxyCheck: true,
	})

	app.Use(middleware.CORS(middleware.CORSConfig{
		AllowedSuffix: cfg.FrontendURLEndsWith,
		DevPassword:   cfg.DevPassword,
	}))

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, nil, err
		}
		rdb = redis.NewClient(opt)
		app.Use(middleware.HealthMarker(rdb))
	}

	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())

	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		var err error
		db, err = database.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := database.AutoMigrate(db); err != nil {
			return nil, nil, nil, err
		}
	}

	// Health endpoints stay up even without a DB (e.g. local smoke tests).
	healthHandlers := &healthhandler.Handlers{
		Rdb:            rdb,
		DB:             &gormDBPinger{db: db},
		HealthAdminKey: cfg.HealthAdminKey,
	}
	app.Get("/health/json", healthHandlers.JSON)
	app.Get("/health/reset", healthHandlers.Reset)

	if db != nil {
		views := &networthsvc.ViewCache{Rdb: rdb}

		entityService := &entsvc.Service{DB: db}
		if err := entityService.EnsureDefault(context.Background()); err != nil {
			return nil, nil, nil, err
		}
		entityHandlers := &enthandler.Handlers{Service: entityService, Views: views}
		entityGroup := app.Group("/api/v1/entities")
		entityGroup.Post("/", entityHandlers.Create)
		entityGroup.Get("/", entityHandlers.List)
		entityGroup.Patch("/:id/rename", entityHandlers.Rename)
		entityGroup.Delete("/:id", entityHandlers.Delete)

		assetService := &assetsvc.Service{DB: db}
		assetHandlers := &assethandler.Handlers{Service: assetService, Views: views}
		assetGroup := app.Group("/api/v1/assets")
		assetGroup.Post("/", assetHandlers.Create)
		assetGroup.Get("/", assetHandlers.List)
		assetGroup.Get("/:id", assetHandlers.Get)
		assetGroup.Patch("/:id", assetHandlers.Update)
		assetGroup.Delete("/:id", assetHandlers.Delete)

		liabilityService := &liabsvc.Service{DB: db}
		liabilityHandlers := &liabhandler.Handlers{
			Service:    liabilityService,
			Views:      views,
			MaxPeriods: cfg.MaxSchedulePeriods,
		}
		liabilityGroup := app.Group("/api/v1/liabilities")
		liabilityGroup.Post("/", liabilityHandlers.Create)
		liabilityGroup.Get("/", liabilityHandlers.List)
		liabilityGroup.Get("/:id", liabilityHandlers.Get)
		liabilityGroup.Get("/:id/schedule", liabilityHandlers.Schedule)
		liabilityGroup.Patch("/:id", liabilityHandlers.Update)
		liabilityGroup.Delete("/:id", liabilityHandlers.Delete)

		networthService := &networthsvc.Service{DB: db, Views: views}
		networthHandlers := &networthhandler.Handlers{Service: networthService}
		networthGroup := app.Group("/api/v1/networth")
		networthGroup.Get("/summary", networthHandlers.Summary)
		networthGroup.Get("/breakdown", networthHandlers.Breakdown)
	}

	return app, db, rdb, nil
}
