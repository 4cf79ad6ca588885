package app

import (
	"log/slog"

	"gorm.io/gorm"

	"github.com/oggyb/swipe-discovery/internal/cache"
	"github.com/oggyb/swipe-discovery/internal/catalog"
	"github.com/oggyb/swipe-discovery/internal/config"
)

// AppContext holds shared dependencies (Config, DB, Redis, Logger, Catalog)
type AppContext struct {
	Config     *config.Config
	DB         *gorm.DB
	RedisCache *cache.RedisCache
	Logger     *slog.Logger
	// Catalog resolves media metadata. Nil disables enrichment.
	Catalog catalog.Lookup
}

// New creates a new AppContext
func New(cfg *config.Config, db *gorm.DB, rdb *cache.RedisCache, logger *slog.Logger, lookup catalog.Lookup) *AppContext {
	return &AppContext{
		Config:     cfg,
		DB:         db,
		RedisCache: rdb,
		Logger:     logger,
		Catalog:    lookup,
	}
}

// NewCatalog builds the catalog client from config. Without a base URL the
// feed runs without metadata. Cooldowns are shared through Redis when
// CATALOG_SHARED_COOLDOWN is set, otherwise kept per process.
func NewCatalog(cfg *config.Config, rdb *cache.RedisCache, logger *slog.Logger) catalog.Lookup {
	if cfg.Catalog.BaseURL == "" {
		return nil
	}

	var cooldowns catalog.CooldownStore = catalog.NewMemoryCooldowns()
	if cfg.Catalog.SharedCooldown && rdb != nil {
		cooldowns = catalog.NewRedisCooldowns(rdb)
	}

	return catalog.NewGuarded(
		catalog.NewHTTPClient(cfg.Catalog.BaseURL, cfg.Catalog.Timeout),
		cooldowns,
		catalog.GuardedConfig{
			Endpoint:        "catalog-lookup",
			RatePerSec:      cfg.Catalog.RatePerSec,
			Burst:           cfg.Catalog.Burst,
			DefaultCooldown: cfg.Catalog.DefaultCooldown,
		},
		logger,
	)
}
