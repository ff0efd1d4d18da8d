// main.go
package main

import (
	"context"
	"log"

	"user-directory/cmd"
	"user-directory/internal/data/repository"
	"user-directory/internal/wire"
	"user-directory/pkg/database"
	"user-directory/pkg/utils"

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

	// Connect to document store
	store, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to document store", zap.Error(err))
	}
	defer store.Close(context.Background())

	logger.Info("Document store connected successfully")

	// Initialize repositories
	repos := repository.NewRepository(store.Database(), logger)

	// Unique index on email backs the duplicate-email guarantee
	if err := repos.User.EnsureIndexes(context.Background()); err != nil {
		logger.Fatal("Failed to ensure indexes", zap.Error(err))
	}

	// Wire all dependencies
	app := wire.Wiring(repos, logger)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}
