// main.go
package main

import (
	"context"
	"log"
	"time"

	"arena-hub/cmd"
	"arena-hub/internal/data/repository"
	"arena-hub/internal/pricing"
	"arena-hub/internal/wire"
	"arena-hub/pkg/database"
	"arena-hub/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Katalog harga harus valid sebelum terima traffic. Entry yang rusak
	// jadi startup failure, bukan zero-quote diam-diam.
	if err := pricing.ValidateCatalog(); err != nil {
		logger.Fatal("Invalid activity catalog", zap.Error(err))
	}

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	if err := database.Migrate(context.Background(), db); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, config, logger)

	// Background sweep: kembalikan kursi dari hold yang expired
	sweepCtx, cancelSweep := context.WithCancel(context.Background())
	defer cancelSweep()
	app.Service.Event.StartHoldSweeper(sweepCtx)

	// Bersihkan session expired tiap jam
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-sweepCtx.Done():
				return
			case <-ticker.C:
				if err := repos.Session.CleanExpiredSessions(sweepCtx); err != nil {
					logger.Error("Session cleanup failed", zap.Error(err))
				}
			}
		}
	}()

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}
