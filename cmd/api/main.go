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
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"alfredoptarigan/resume-analyzer/internal/config"
	"alfredoptarigan/resume-analyzer/internal/handlers"
	"alfredoptarigan/resume-analyzer/internal/logger"
	"alfredoptarigan/resume-analyzer/internal/repositories"
	"alfredoptarigan/resume-analyzer/internal/services"
)

func main() {
	cfg := config.Load()

	zl, err := logger.New(!cfg.IsDevelopment(), cfg.IsDevelopment())
	if err != nil {
		log.Fatalf("❌ Failed to initialize logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	if err := cfg.Validate(); err != nil {
		zl.Fatal("invalid configuration", zap.Error(err))
	}
	zl.Info("config loaded", zap.String("env", cfg.Server.Env), zap.String("llm_provider", cfg.LLM.Provider))

	ctx := context.Background()

	db, err := config.InitDatabase(cfg, zl)
	if err != nil {
		zl.Fatal("failed to initialize database", zap.Error(err))
	}

	analysisRepo := repositories.NewAnalysisRepository(db)
	questionRepo := repositories.NewQuestionRepository(db)

	scratch := services.NewScratchStorage(cfg.Storage.ScratchPath, cfg.Storage.MaxFileSize)
	if err := scratch.EnsureDir(); err != nil {
		zl.Fatal("failed to create scratch directory", zap.Error(err))
	}

	apiKey, baseURL, model, embedModel := cfg.ProviderCredentials()
	provider, err := services.NewProvider(ctx, services.ProviderConfig{
		Name:       cfg.LLM.Provider,
		APIKey:     apiKey,
		BaseURL:    baseURL,
		Model:      model,
		EmbedModel: embedModel,
		Policy: services.CallPolicy{
			MaxAttempts: cfg.LLM.MaxAttempts,
			Timeout:     cfg.LLM.Timeout,
			Temperature: cfg.LLM.Temperature,
		},
	}, zl)
	if err != nil {
		zl.Fatal("failed to initialize LLM provider", zap.Error(err))
	}
	zl.Info("LLM provider initialized", zap.String("model", provider.Model()))

	var references services.ReferenceLibrary
	if cfg.QdrantEnabled() {
		qdrantService, err := services.NewQdrantService(
			cfg.Qdrant.URL,
			cfg.Qdrant.APIKey,
			cfg.Qdrant.Collection,
			cfg.Qdrant.VectorSize,
			zl,
		)
		if err != nil {
			zl.Fatal("failed to initialize qdrant", zap.Error(err))
		}
		if err := qdrantService.InitCollection(ctx); err != nil {
			zl.Fatal("failed to initialize qdrant collection", zap.Error(err))
		}
		references = services.NewReferenceLibrary(qdrantService, provider)
		zl.Info("reference library enabled", zap.String("collection", cfg.Qdrant.Collection))
	}

	var voice services.VoiceTranscriber
	if cfg.SpeechEnabled() {
		whisper := services.NewWhisperService(cfg.Speech.APIKey, cfg.Speech.BaseURL, cfg.Speech.Model, zl)
		voice = services.NewVoiceTranscriber(whisper, scratch, services.VoiceSettings{
			Duration:   cfg.Voice.Duration,
			SampleRate: cfg.Voice.SampleRate,
			BeamSize:   cfg.Voice.BeamSize,
		}, zl)
		zl.Info("voice questions enabled", zap.String("model", cfg.Speech.Model))
	}

	prompts := services.NewPromptBuilder()
	analyzer := services.NewAnalyzerService(services.AnalyzerDeps{
		Parser:       services.NewPDFParserService(zl),
		Skills:       services.NewSkillExtractor(provider, prompts, zl),
		Similarity:   services.NewSimilarityScorer(provider),
		Reports:      services.NewReportGenerator(provider, prompts, references, cfg.Qdrant.TopK, zl),
		Voice:        voice,
		LLM:          provider,
		Prompts:      prompts,
		AnalysisRepo: analysisRepo,
		QuestionRepo: questionRepo,
	}, zl)

	analyzeHandler := handlers.NewAnalyzeHandler(analyzer, scratch)
	resultHandler := handlers.NewResultHandler(analyzer)
	askHandler := handlers.NewAskHandler(analyzer, cfg.Storage.MaxFileSize)

	app := fiber.New(fiber.Config{
		AppName:      "AI Resume Analyzer API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize),
		ErrorHandler: handlers.ErrorHandler(zl),
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	handlers.RegisterRoutes(app, analyzeHandler, resultHandler, askHandler)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		zl.Info("shutting down server")
		if err := app.Shutdown(); err != nil {
			zl.Error("server forced to shutdown", zap.Error(err))
		}
	}()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	zl.Info("server starting", zap.String("addr", addr))

	if err := app.Listen(addr); err != nil {
		zl.Fatal("failed to start server", zap.Error(err))
	}
}
