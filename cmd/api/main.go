package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"alfredoptarigan/resumai/internal/config"
	"alfredoptarigan/resumai/internal/handlers"
	"alfredoptarigan/resumai/internal/middleware"
	"alfredoptarigan/resumai/internal/repositories"
	"alfredoptarigan/resumai/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}
	log.Info("✅ Config loaded successfully")

	sessionRepo := initSessionRepository(cfg)
	log.Info("✅ Repositories initialized successfully")

	// Initialize text generation
	generator, err := initTextGenerator(cfg.AI)
	if err != nil {
		log.Fatalf("❌ Failed to initialize text generation: %v", err)
	}
	log.Info("✅ Text generation initialized successfully")

	// Initialize services
	prompts := services.NewPromptBuilder()
	resumeService := services.NewResumeService(generator, prompts, sessionRepo)
	coverLetterService := services.NewCoverLetterService(generator, prompts, sessionRepo)
	portfolioService := services.NewPortfolioService(generator, prompts, sessionRepo)
	atsService := services.NewATSService(generator, prompts)
	log.Info("✅ Services initialized successfully")

	// Initialize Handlers
	h := handlers.Handlers{
		Sessions: handlers.NewSessionHandler(sessionRepo),
		Documents: handlers.NewDocumentHandler(
			resumeService,
			coverLetterService,
			portfolioService,
			services.NewPDFExporter(),
		),
		ATS: handlers.NewATSHandler(
			atsService,
			services.NewUploadReader(cfg.Storage.MaxFileSize),
			services.NewTextExtractor(),
			sessionRepo,
		),
	}
	log.Info("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "ResumAI API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.AI.Timeout*time.Duration(cfg.AI.MaxAttempts) + 30*time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize) + 1024*1024,
		ErrorHandler: handlers.ErrorHandler,
	})

	// Middleware
	app.Use(recover.New(recover.Config{
		EnableStackTrace: !cfg.IsProduction(),
	}))
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowMethods:  "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization",
		ExposeHeaders: "Content-Disposition",
	}))
	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))

	// Routes
	api := app.Group("/api/v1")
	handlers.RegisterRoutes(api, h, middleware.RateLimiter(cfg.RateLimit.Max, cfg.RateLimit.Expiration))

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "ResumAI API",
			"version": "1.0.0",
			"endpoints": []string{
				"GET /api/v1/health",
				"GET /api/v1/templates",
				"POST /api/v1/sessions",
				"GET /api/v1/sessions/:id",
				"PUT /api/v1/sessions/:id/profile",
				"DELETE /api/v1/sessions/:id",
				"POST /api/v1/sessions/:id/resume",
				"POST /api/v1/sessions/:id/cover-letter",
				"POST /api/v1/sessions/:id/portfolio",
				"POST /api/v1/sessions/:id/ats/scan",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Info("🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Errorf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Infof("🚀 Server starting on %s", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

func initSessionRepository(cfg *config.Config) repositories.SessionRepository {
	if cfg.Session.Store != config.SessionStorePostgres {
		log.Info("💾 Using in-memory session store")
		return repositories.NewMemorySessionRepository()
	}

	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}
	return repositories.NewSessionRepository(db)
}

// initTextGenerator puts Gemini first and OpenRouter, when configured, second.
func initTextGenerator(cfg config.AIConfig) (services.TextGenerator, error) {
	gemini, err := services.NewGeminiService(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiAPIVersion)
	if err != nil {
		return nil, err
	}
	providers := []services.TextProvider{gemini}

	if cfg.OpenRouterAPIKey != "" {
		providers = append(providers, services.NewOpenRouterService(
			cfg.OpenRouterAPIKey,
			cfg.OpenRouterModel,
			cfg.OpenRouterBaseURL,
		))
		log.Infof("🔁 OpenRouter fallback enabled (%s)", cfg.OpenRouterModel)
	}

	return services.NewGenerationService(cfg.Timeout, cfg.MaxAttempts, providers...), nil
}
