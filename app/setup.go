package app

import (
	"fmt"
	"os"

	"github.com/hackagra/mindverse-api/api"
	"github.com/hackagra/mindverse-api/config"
	"github.com/hackagra/mindverse-api/database"
	"github.com/hackagra/mindverse-api/router"
	"github.com/hackagra/mindverse-api/services"
	"github.com/hackagra/mindverse-api/services/cron"
)

// SetupAndRunServer loads configuration, connects the database, starts the
// cron scheduler, and runs the HTTP server until it exits.
func SetupAndRunServer() error {
	// Load ENV
	if err := config.LoadENV(); err != nil {
		return err
	}

	getEnv, err := config.Get()
	if err != nil {
		return err
	}

	// Initialize GORM database connection
	store, err := database.StartGORM(getEnv)
	if err != nil {
		print("Check whether the Postgres is running or not\n")
		return err
	}

	if err := store.Init(); err != nil {
		print("Failed to initialize database tables\n")
		return err
	}

	// Initialize Cron Manager (only if enabled via environment variable)
	var cronManager *cron.CronManager
	if os.Getenv("CRON_ENABLED") != "false" { // Default to enabled
		db := store.DB()
		reviewService := services.NewReviewService(db)
		ocrService := services.NewOCRService(getEnv.OCR_MODEL_DIR, getEnv.OCR_TEMP_DIR)

		cronManager = cron.NewCronManager(db, reviewService, ocrService)
		if err := cronManager.Start(); err != nil {
			print("Warning: Failed to start cron jobs\n")
			print("Error: ", err.Error(), "\n")
			// Don't fail the app, just log the warning
		}
	}

	// Defer Closing DB and stopping cron jobs
	defer func() {
		if cronManager != nil {
			cronManager.Stop()
		}
		store.Close()
	}()

	// Init API
	server := api.NewAPIServer(fmt.Sprintf(":%d", getEnv.PORT))
	app := server.GetEngine()

	// Setup Routes (security middleware is attached inside)
	router.SetupRoutes(app, store, getEnv)

	// Get the PORT & Start the Server
	return server.Run()
}
