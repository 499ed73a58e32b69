package main

import (
	"log"

	api "dealersync-backend/cmd/api"
	agentUsecase "dealersync-backend/internal/agent/usecase"
	inventorydomain "dealersync-backend/internal/inventory/domain"
	inventoryRepo "dealersync-backend/internal/inventory/repository"
	inventoryUsecase "dealersync-backend/internal/inventory/usecase"
	"dealersync-backend/internal/scraper"
	"dealersync-backend/pkg/ai"
	"dealersync-backend/pkg/config"
	"dealersync-backend/pkg/database"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.NewPostgresConnection(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database schemas
	if err := db.AutoMigrate(&inventorydomain.Vehicle{}, &inventorydomain.SyncRun{}); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize repositories (dependency injection)
	vehicleRepo := inventoryRepo.NewGormVehicleRepository(db)
	syncRunRepo := inventoryRepo.NewGormSyncRunRepository(db)

	// Initialize scraper
	scraperService := scraper.NewService(cfg)

	// Initialize AI provider
	replyGenerator, err := ai.NewReplyGenerator(ai.Config{
		Provider:      ai.ProviderType(cfg.AIProvider),
		GeminiAPIKey:  cfg.GeminiAPIKey,
		OllamaBaseURL: cfg.OllamaBaseURL,
		OllamaModel:   cfg.OllamaModel,
	})
	if err != nil {
		// Reply requests fail individually with a config error; the
		// inventory surface keeps working without a provider.
		log.Printf("[WARN] AI provider not available: %v", err)
	}

	// Initialize use cases (dependency injection)
	inventoryUc := inventoryUsecase.NewInventoryUsecase(vehicleRepo, syncRunRepo, scraperService)
	replyUc := agentUsecase.NewReplyUsecase(replyGenerator, cfg.AITimeout)

	// Initialize HTTP handler
	handler := api.NewHandler(inventoryUc, replyUc, cfg)

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := handler.Start(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
