package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/oggyb/swipe-discovery/internal/app"
	"github.com/oggyb/swipe-discovery/internal/cache"
	"github.com/oggyb/swipe-discovery/internal/config"
	"github.com/oggyb/swipe-discovery/internal/db"
	"github.com/oggyb/swipe-discovery/internal/logger"
	"github.com/oggyb/swipe-discovery/internal/server"
	"github.com/oggyb/swipe-discovery/internal/service/discovery"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	// Init logger (global singleton)
	logger.InitFromConfig(cfg)
	log := logger.L() // slog.Logger pointer

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Init DB
	database, err := db.NewDB(cfg)
	if err != nil {
		log.Error("failed to init db", "err", err)
		return
	}

	// Init Redis
	redisCache := cache.NewRedisCache(cfg)
	if err := redisCache.Ping(ctx); err != nil {
		log.Error("failed to connect to redis", "err", err)
		return
	}
	defer redisCache.Close()

	// Inject logger and catalog into app context
	appCtx := app.New(cfg, database, redisCache, log, app.NewCatalog(cfg, redisCache, log))
	if appCtx.Catalog == nil {
		log.Info("catalog disabled, music candidates are served without metadata")
	}

	registrars := []server.Registrar{
		discovery.NewRegistrar(appCtx),
	}

	if cfg.App.ENV == "development" {
		if err := db.SeedTestData(database); err != nil {
			log.Error("failed to seed", "err", err)
		}
	}

	if cfg.Metrics.Addr != "" {
		sqlDB, err := database.DB()
		if err != nil {
			log.Error("failed to get sql db", "err", err)
			return
		}
		admin := server.NewAdminRouter(
			server.Check{Name: "db", Probe: sqlDB.PingContext},
			server.Check{Name: "redis", Probe: redisCache.Ping},
		)
		go func() {
			if err := server.StartAdminServer(ctx, cfg.Metrics.Addr, admin); err != nil {
				log.Error("admin server stopped", "err", err)
			}
		}()
	}

	addr := cfg.GRPC.Host + ":" + cfg.GRPC.Port
	log.Info("starting gRPC server", "addr", addr)

	if err := server.StartGRPCServer(ctx, cfg, registrars...); err != nil {
		log.Error("failed to start gRPC server", "err", err)
	}
}
