package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"jakaprasetya/resume-matcher/internal/config"
	"jakaprasetya/resume-matcher/internal/handlers"
	"jakaprasetya/resume-matcher/internal/repositories"
	"jakaprasetya/resume-matcher/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	// Initialize repositories
	candidateRepo := repositories.NewCandidateRepository(db)
	jobRepo := repositories.NewJobRepository(db)
	matchRepo := repositories.NewMatchRepository(db)
	bulkRepo := repositories.NewBulkAnalysisRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize storage and extraction
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	extractor := services.NewTextExtractor()
	archiveExtractor := services.NewArchiveExtractor(extractor)
	log.Println("✅ Extraction services initialized successfully")

	// Initialize Gemini AI
	retryPolicy := services.NewRetryPolicy(cfg.Worker.RetryMaxAttempts, cfg.Worker.RetryBaseDelay)
	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey, retryPolicy)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
	}
	log.Println("✅ Gemini AI initialized successfully")

	// Initialize vector index
	vectorIndex, err := services.NewVectorIndexService(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
		geminiService,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	if err := vectorIndex.InitCollection(); err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant collection: %v", err)
	}
	log.Println("✅ Vector index initialized successfully")

	// Initialize matching core
	matcherService := services.NewMatcherService(geminiService)
	normalizer := services.NewResponseNormalizer()
	orchestrator := services.NewMatchOrchestrator(
		matcherService,
		matchRepo,
		geminiService,
		normalizer,
	)
	log.Println("✅ Match orchestrator initialized")

	// Initialize worker
	worker := services.NewWorker(
		bulkRepo,
		orchestrator,
		archiveExtractor,
		cfg.Worker.Concurrency,
	)

	ctx := context.Background()
	worker.Start(ctx)
	log.Println("✅ Worker started successfully")

	// Initialize handlers
	resumeHandler := handlers.NewResumeHandler(
		candidateRepo,
		storageService,
		extractor,
		vectorIndex,
		cfg.Storage.MaxFileSize,
	)
	jobHandler := handlers.NewJobHandler(jobRepo)
	matchHandler := handlers.NewMatchHandler(
		jobRepo,
		candidateRepo,
		matchRepo,
		orchestrator,
		vectorIndex,
	)
	analyzeHandler := handlers.NewAnalyzeHandler(
		candidateRepo,
		jobRepo,
		bulkRepo,
		storageService,
		orchestrator,
		worker,
		cfg.Storage.MaxFileSize,
	)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Resume Matcher API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize),
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// Resumes
	api.Post("/resumes", resumeHandler.HandleUpload)
	api.Get("/resumes", resumeHandler.HandleList)

	// Jobs
	api.Post("/jobs", jobHandler.HandleCreate)
	api.Get("/jobs", jobHandler.HandleList)
	api.Get("/jobs/:id", jobHandler.HandleGet)

	// Matching
	api.Post("/match/job/:id", matchHandler.HandleRunMatching)
	api.Get("/match/job/:id", matchHandler.HandleGetResults)
	api.Get("/match/job/:id/similar", matchHandler.HandleSimilarCandidates)

	// Analysis
	api.Post("/analyze", analyzeHandler.HandleAnalyze)
	api.Post("/analyze/bulk", analyzeHandler.HandleBulkAnalyze)
	api.Get("/analyze/bulk/:id", analyzeHandler.HandleGetBulkResult)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Resume Matcher API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/resumes",
				"POST /api/v1/jobs",
				"POST /api/v1/match/job/:id",
				"GET /api/v1/match/job/:id",
				"POST /api/v1/analyze",
				"POST /api/v1/analyze/bulk",
				"GET /api/v1/analyze/bulk/:id",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		worker.Stop()
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
