// Seed command: buat schema dan isi katalog event + seat pool.
// Jalankan sekali sebelum server pertama kali start:
//
//	go run ./cmd/seed
package main

import (
	"context"
	"log"

	"arena-hub/internal/data/repository"
	"arena-hub/internal/data/seed"
	"arena-hub/pkg/database"
	"arena-hub/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	ctx := context.Background()

	if err := database.Migrate(ctx, db); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	repos := repository.NewRepository(db, logger)

	if err := seed.Run(ctx, repos, logger); err != nil {
		logger.Fatal("Failed to seed data", zap.Error(err))
	}

	logger.Info("Seed completed")
}
