package router

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/hackagra/mindverse-api/config"
	"github.com/hackagra/mindverse-api/database"
	"github.com/hackagra/mindverse-api/handlers"
	auth_handlers "github.com/hackagra/mindverse-api/handlers/auth"
	file_handlers "github.com/hackagra/mindverse-api/handlers/file"
	lostfound_handlers "github.com/hackagra/mindverse-api/handlers/lostfound"
	market_handlers "github.com/hackagra/mindverse-api/handlers/market"
	notification_handlers "github.com/hackagra/mindverse-api/handlers/notification"
	planner_handlers "github.com/hackagra/mindverse-api/handlers/planner"
	quiz_handlers "github.com/hackagra/mindverse-api/handlers/quiz"
	review_handlers "github.com/hackagra/mindverse-api/handlers/review"
	user_handlers "github.com/hackagra/mindverse-api/handlers/user"
	"github.com/hackagra/mindverse-api/services"
	"github.com/hackagra/mindverse-api/services/notify"
	"github.com/hackagra/mindverse-api/services/storage"
	"github.com/hackagra/mindverse-api/utils/auth"
	"github.com/hackagra/mindverse-api/utils/cache"
	"github.com/hackagra/mindverse-api/utils/middleware"
)

// SetupRoutes wires all middleware, services, and handlers onto the app
func SetupRoutes(app *fiber.App, store *database.GORMStore, getEnv *config.EnviornmentVariable) {
	if getEnv.JWT_SECRET == "" {
		log.Fatal("JWT_SECRET environment variable is not set")
	}

	jwtIssuer := getEnv.JWT_ISSUER
	if jwtIssuer == "" {
		jwtIssuer = "mindverse-api"
	}

	jwtManager := auth.NewJWTManager(auth.JWTConfig{
		Secret: getEnv.JWT_SECRET,
		Expiry: auth_handlers.TokenExpiry,
		Issuer: jwtIssuer,
	})

	db := store.DB()

	// Redis backs brute force protection and the notification stream. The API
	// stays up without it, with those features disabled.
	redisURL := getEnv.REDIS_URL
	if redisURL == "" {
		redisURL = "redis://localhost:6379/0"
	}
	redisCache, err := cache.NewRedisCache(redisURL)
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis: %v. Brute force protection and notifications will be disabled.", err)
	}

	var bruteForceProtection *middleware.BruteForceProtection
	var hub *notify.Hub
	if redisCache != nil {
		bruteForceProtection = middleware.NewBruteForceProtection(redisCache)
		hub = notify.NewHub(redisCache)
	}

	spaces, err := storage.NewSpacesClient(storage.SpacesConfig{
		AccessKey: getEnv.SPACES_ACCESS_KEY,
		SecretKey: getEnv.SPACES_SECRET_KEY,
		Bucket:    getEnv.SPACES_BUCKET,
		Region:    getEnv.SPACES_REGION,
		Endpoint:  getEnv.SPACES_ENDPOINT,
		CDNURL:    getEnv.SPACES_CDN_URL,
	})
	if err != nil {
		log.Fatalf("Failed to initialize Spaces client: %v", err)
	}

	reviewService := services.NewReviewService(db)
	ocrService := services.NewOCRService(getEnv.OCR_MODEL_DIR, getEnv.OCR_TEMP_DIR)
	leaderboardService := services.NewLeaderboardService(db)

	authMiddleware := middleware.NewAuthMiddleware(jwtManager, db)

	authHandler := auth_handlers.NewAuthHandler(db, jwtManager, bruteForceProtection)
	userHandler := user_handlers.NewUserHandler(db)
	reviewHandler := review_handlers.NewReviewHandler(db, reviewService, hub)
	fileHandler := file_handlers.NewFileHandler(db, spaces)
	ocrHandler := file_handlers.NewOCRHandler(ocrService)
	marketHandler := market_handlers.NewMarketHandler(db)
	lostFoundHandler := lostfound_handlers.NewLostFoundHandler(db)
	plannerHandler := planner_handlers.NewPlannerHandler(db)
	quizHandler := quiz_handlers.NewQuizHandler(db, leaderboardService)
	notificationHandler := notification_handlers.NewNotificationHandler(hub)

	middleware.SetupSecurity(app, middleware.SecurityConfig{
		AllowedOrigins:    "http://localhost:3000,http://localhost:5173",
		RateLimitRequests: 100,
		RateLimitWindow:   1 * time.Minute,
	})

	// Health check (public)
	app.Get("/ping", func(c *fiber.Ctx) error {
		return handlers.HandleCheckHealth(c, store)
	})

	api := app.Group("/api")

	api.Get("/ping", func(c *fiber.Ctx) error {
		return handlers.HandleCheckHealth(c, store)
	})

	// Auth routes
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	if bruteForceProtection != nil {
		authGroup.Post("/login", bruteForceProtection.CheckAndRecordAttempt(), authHandler.Login)
	} else {
		authGroup.Post("/login", authHandler.Login)
	}
	authGroup.Get("/me", authMiddleware.Required(), authHandler.Me)

	// User routes (all protected)
	users := api.Group("/users", authMiddleware.Required())
	users.Get("/seniors", userHandler.ListSeniors)
	users.Get("/seniors/:id", userHandler.GetSenior)
	users.Put("/senior-profile", userHandler.UpdateSeniorProfile)
	users.Put("/details", userHandler.UpdateDetails)
	users.Get("/dashboard", userHandler.Dashboard)

	// Review routes
	reviews := api.Group("/reviews", authMiddleware.Required())
	reviews.Post("/", reviewHandler.Submit)
	reviews.Get("/senior/:id", reviewHandler.ListForSenior)

	// File routes
	files := api.Group("/files", authMiddleware.Required())
	files.Post("/upload", fileHandler.Upload)
	files.Post("/upload-url", fileHandler.SaveURL)
	files.Get("/", fileHandler.List)
	files.Get("/search", fileHandler.Search)
	files.Get("/stats", fileHandler.Stats)
	files.Delete("/:id", fileHandler.Delete)
	files.Post("/ocr", ocrHandler.Extract)

	// Marketplace routes
	market := api.Group("/market", authMiddleware.Required())
	market.Get("/", marketHandler.List)
	market.Post("/", marketHandler.Create)
	market.Put("/:id", marketHandler.Update)
	market.Delete("/:id", marketHandler.Delete)

	// Lost and found routes
	lostfound := api.Group("/lostfound", authMiddleware.Required())
	lostfound.Get("/", lostFoundHandler.List)
	lostfound.Post("/", lostFoundHandler.Report)
	lostfound.Patch("/:id/resolve", lostFoundHandler.Resolve)
	lostfound.Delete("/:id", lostFoundHandler.Delete)

	// Revision planner routes
	planner := api.Group("/planner", authMiddleware.Required())
	planner.Get("/", plannerHandler.List)
	planner.Post("/", plannerHandler.Create)
	planner.Put("/:id", plannerHandler.Update)
	planner.Delete("/:id", plannerHandler.Delete)

	// Quiz and leaderboard routes
	quiz := api.Group("/quiz", authMiddleware.Required())
	quiz.Post("/results", quizHandler.SubmitResult)
	quiz.Get("/history", quizHandler.History)
	api.Get("/leaderboard", authMiddleware.Required(), quizHandler.Leaderboard)

	// Notification stream
	if hub != nil {
		api.Get("/notifications/stream", authMiddleware.Required(), notificationHandler.Stream)
	}
}
