package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	ginprometheus "github.com/zsais/go-gin-prometheus"
	"go.uber.org/zap"

	"bookforge/internal/client"
	"bookforge/internal/config"
	"bookforge/internal/database"
	"bookforge/internal/handler"
	"bookforge/internal/logger"
	"bookforge/internal/repository"
	"bookforge/internal/service"
	"bookforge/internal/storage"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.LogLevel,
		Encoding: cfg.LogEncoding,
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()
	zapLogger.Info("Logger initialized", zap.String("level", cfg.LogLevel), zap.String("env", cfg.Env))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := database.InitPool(ctx, cfg, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer database.ClosePool(pool, zapLogger)

	store, err := storage.NewSupabaseStore(cfg.StorageURL, cfg.StorageServiceKey, cfg.StorageBucket, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to initialize artifact store", zap.Error(err))
	}

	bookClient, err := client.NewBookConfigClient(cfg.BookServiceURL, cfg.ClientTimeout, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to create book config client", zap.Error(err))
	}

	promptProvider, err := service.NewPromptProvider(cfg.PromptsDir, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to load prompt templates", zap.Error(err))
	}

	aiClient := service.NewOpenAIClient(cfg, zapLogger)
	imageClient := service.NewRenderAPIClient(cfg, zapLogger)

	generationRepo := repository.NewPgGenerationRepository(pool, zapLogger)
	artifactRepo := repository.NewPgArtifactRepository(pool, zapLogger)
	entityRepo := repository.NewPgEntityRepository(pool, zapLogger)
	sceneRepo := repository.NewPgScenePromptRepository(pool, zapLogger)
	contentRepo := repository.NewPgContentRepository(pool, zapLogger)

	workflowSvc := service.NewWorkflowService(generationRepo, artifactRepo, store, zapLogger)
	artifactSvc := service.NewArtifactService(artifactRepo, store, cfg.SignedURLTTL, zapLogger)
	step1Svc := service.NewStep1Service(generationRepo, artifactRepo, store, imageClient, bookClient, promptProvider, zapLogger)
	proofreadSvc := service.NewProofreadService(generationRepo, contentRepo, bookClient, aiClient, promptProvider, zapLogger)
	promptGenSvc := service.NewPromptGenService(generationRepo, contentRepo, entityRepo, sceneRepo, artifactRepo, store, aiClient, promptProvider, zapLogger)
	referenceSvc := service.NewReferenceService(generationRepo, entityRepo, artifactRepo, store, imageClient, promptProvider, zapLogger)
	sceneSvc := service.NewSceneService(generationRepo, entityRepo, sceneRepo, artifactRepo, store, imageClient, zapLogger)

	h := handler.NewAdminHandler(workflowSvc, artifactSvc, step1Svc, proofreadSvc, promptGenSvc, referenceSvc, sceneSvc, cfg.JWTSecret, zapLogger)

	gin.SetMode(gin.ReleaseMode)
	if cfg.Env == "development" {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(handler.RequestLogger(zapLogger))

	corsConfig := cors.DefaultConfig()
	if len(cfg.CORSAllowedOrigins) == 1 && cfg.CORSAllowedOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.CORSAllowedOrigins
		corsConfig.AllowCredentials = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	healthHandler := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
	router.GET("/healthz", healthHandler)
	router.HEAD("/healthz", healthHandler)

	h.RegisterRoutes(router)

	p := ginprometheus.NewPrometheus("gin")
	p.Use(router)

	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	go func() {
		zapLogger.Info("Server starting", zap.String("port", cfg.ServerPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zapLogger.Info("Shutdown signal received, stopping server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Fatal("Server shutdown failed", zap.Error(err))
	}
	zapLogger.Info("Server stopped")
}
