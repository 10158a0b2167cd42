package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Shriiii01/know-your-local-offers/internal/application/assist"
	offersapp "github.com/Shriiii01/know-your-local-offers/internal/application/offers"
	"github.com/Shriiii01/know-your-local-offers/internal/infrastructure/config"
	"github.com/Shriiii01/know-your-local-offers/internal/infrastructure/llm"
	"github.com/Shriiii01/know-your-local-offers/internal/infrastructure/logger"
	"github.com/Shriiii01/know-your-local-offers/internal/infrastructure/ocr"
	"github.com/Shriiii01/know-your-local-offers/internal/infrastructure/persistence"
	"github.com/Shriiii01/know-your-local-offers/internal/infrastructure/speech"
	"github.com/Shriiii01/know-your-local-offers/internal/interfaces/http/handler"
	"github.com/Shriiii01/know-your-local-offers/internal/interfaces/http/middleware"
	"github.com/Shriiii01/know-your-local-offers/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting offers assistant",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize database connection
	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repository and upstream clients
	offerRepo := persistence.NewGormOfferRepository(db.DB)
	llmClient := llm.NewClient(&cfg.OpenAI)
	transcriber := llm.NewTranscriber(&cfg.OpenAI)
	ocrClient := ocr.NewClient(&cfg.OCR)
	synthesizer := speech.NewSynthesizer(cfg.ElevenLabs, cfg.TTS, log)

	// Initialize application services
	chatService := assist.NewChatService(offerRepo, llmClient, cfg.Chat.SearchLimit, cfg.Chat.TrendingLimit, log)
	mediaService := assist.NewMediaService(chatService, transcriber, ocrClient, synthesizer, log)
	offerService := offersapp.NewOfferService(offerRepo, log)

	// Initialize HTTP handlers
	chatHandler := handler.NewChatHandler(chatService)
	offerHandler := handler.NewOfferHandler(offerService)
	webhookHandler := handler.NewWebhookHandler(chatService, log)
	mediaHandler := handler.NewMediaHandler(mediaService)
	systemHandler := handler.NewSystemHandler(db)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Security - Add security headers
	// 5. CORS - Handle cross-origin requests
	// 6. BodyLimit - Limit request body size
	// 7. RateLimit - Apply rate limiting (if enabled)
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Health check endpoint
	engine.GET("/health", systemHandler.Health)

	// Register domain route groups
	r := router.NewRouter(engine)

	apiRoutes := router.NewDomainGroup("api", "/api")
	apiRoutes.POST("/chat", chatHandler.Chat)
	apiRoutes.GET("/offers", offerHandler.Search)
	apiRoutes.POST("/offers", offerHandler.Add)
	apiRoutes.GET("/cities", offerHandler.Cities)
	apiRoutes.GET("/categories", offerHandler.Categories)

	webhookRoutes := router.NewDomainGroup("webhook", "/webhook")
	webhookRoutes.POST("/twilio", webhookHandler.Twilio)

	mediaRoutes := router.NewDomainGroup("media", "")
	mediaRoutes.POST("/ocr", mediaHandler.ExtractDocument)
	mediaRoutes.POST("/voice/transcribe", mediaHandler.Transcribe)
	mediaRoutes.POST("/voice/synthesize", mediaHandler.Synthesize)
	mediaRoutes.POST("/multimodal", mediaHandler.Multimodal)

	r.Register(apiRoutes).
		Register(webhookRoutes).
		Register(mediaRoutes)

	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
