package main

import (
	"os"

	"github.com/oggyb/swipe-discovery/internal/config"
	"github.com/oggyb/swipe-discovery/internal/db"
	"github.com/oggyb/swipe-discovery/internal/logger"
)

func main() {
	// Load configuration
	cfg := config.New()
	logger.InitFromConfig(cfg)
	log := logger.L()

	database, err := db.NewDB(cfg)
	if err != nil {
		log.Error("failed to init db", "err", err)
		os.Exit(1)
	}

	if err := db.SeedTestData(database); err != nil {
		log.Error("failed to seed", "err", err)
		os.Exit(1)
	}

	log.Info("seeding completed")
}
