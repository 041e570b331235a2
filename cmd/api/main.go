package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"link1t-backend/config"
	_ "link1t-backend/docs" // Important for Swagger
	v1 "link1t-backend/internal/delivery/http/v1"
	"link1t-backend/internal/domain"
	"link1t-backend/internal/render"
	"link1t-backend/internal/repository/memory"
	mongorepo "link1t-backend/internal/repository/mongo"
	"link1t-backend/internal/repository/objectstore"
	"link1t-backend/internal/repository/postgres"
	"link1t-backend/internal/usecase"
	"link1t-backend/pkg/ai"
	"link1t-backend/pkg/auth"
	"link1t-backend/pkg/database"
	"link1t-backend/pkg/email"
	"link1t-backend/pkg/logger"
	redisclient "link1t-backend/pkg/redis"
	"link1t-backend/pkg/security"
	"link1t-backend/pkg/security/antivirus"
	"link1t-backend/pkg/storage"

	"github.com/gin-gonic/gin"
)

// @title           Link1t API
// @version         1.0
// @description     Portfolio storage, asset proxy and résumé parsing for Link1t public pages.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	gin.SetMode(cfg.GinMode)

	// 2. Setup Logger
	logger.Init(cfg.LogLevel)
	logger.Log.Info("Starting link1t backend", "port", cfg.Port, "db", cfg.DBDriver, "storage", cfg.StorageProvider)

	audit := security.NewProductionSecurityLogger("link1t-backend", cfg.IsProduction())
	defer func() { _ = audit.Sync() }()

	ctx := context.Background()

	// 3. Setup Portfolio Store
	portfolioRepo, closeDB, err := setupPortfolioStore(ctx, cfg)
	if err != nil {
		logger.Log.Error("Failed to set up portfolio store", "error", err)
		os.Exit(1)
	}
	defer closeDB()

	// 4. Setup Object Store
	objects, closeObjects, err := setupObjectStore(ctx, cfg)
	if err != nil {
		logger.Log.Error("Failed to set up object store", "error", err)
		os.Exit(1)
	}
	defer closeObjects()

	// 5. Setup Résumé Extractor
	extractor, closeExtractor, err := setupExtractor(ctx, cfg)
	if err != nil {
		logger.Log.Error("Failed to set up resume extractor", "error", err)
		os.Exit(1)
	}
	defer closeExtractor()
	if !extractor.Configured() {
		logger.Log.Warn("Resume extractor not configured - parse-resume will answer 500")
	}

	// 6. Setup Redis (optional)
	redisClient, err := redisclient.Connect(ctx, redisclient.Config{
		URL:      cfg.UpstashRedisURL,
		Password: cfg.UpstashRedisPassword,
	})
	if err != nil {
		if !errors.Is(err, redisclient.ErrNotConfigured) {
			logger.Log.Warn("Redis unavailable - rate limits fall back to memory", "error", err)
		}
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	// 7. Setup Email Service
	emailService := email.NewEmailService(email.Config{
		Host:      cfg.SMTPHost,
		Port:      cfg.SMTPPort,
		Username:  cfg.SMTPUsername,
		Password:  cfg.SMTPPassword,
		FromEmail: cfg.SMTPFromEmail,
		ToEmail:   cfg.ContactEmailTo,
	})
	if !emailService.IsConfigured() {
		logger.Log.Warn("Email service not fully configured - contact form will be unavailable")
	}

	// 8. Setup UseCases
	portfolioUC := usecase.NewPortfolioUsecase(portfolioRepo, audit)
	var assetOpts []usecase.AssetOption
	if cfg.ClamAVAddress != "" {
		scanner := antivirus.NewClamAVScanner(cfg.ClamAVAddress, 30*time.Second)
		if err := scanner.Ping(ctx); err != nil {
			logger.Log.Warn("clamd not reachable - uploads will be refused until it is", "address", cfg.ClamAVAddress, "error", err)
		}
		assetOpts = append(assetOpts, usecase.WithScanner(scanner))
	}
	assetUC := usecase.NewAssetUsecase(objects, nil, assetOpts...)
	resumeUC := usecase.NewResumeUsecase(extractor, audit)
	contactUC := usecase.NewContactUsecase(emailService)
	healthUC := usecase.NewHealthUsecase(portfolioRepo, redisClient)

	// 9. Setup Auth Verifier
	verifier := &auth.Verifier{Secret: cfg.AuthJWTSecret, Issuer: cfg.AuthIssuer}
	if cfg.AuthJWKSURL != "" {
		verifier.JWKS = auth.NewProvider(cfg.AuthJWKSURL)
	}

	renderer, err := render.New()
	if err != nil {
		logger.Log.Error("Failed to parse page templates", "error", err)
		os.Exit(1)
	}

	// 10. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		PortfolioUC:   portfolioUC,
		AssetUC:       assetUC,
		ResumeUC:      resumeUC,
		ContactUC:     contactUC,
		HealthUC:      healthUC,
		Verifier:      verifier,
		Audit:         audit,
		Redis:         redisClient,
		UploadLimiter: security.NewUploadLimiter(redisClient, cfg.UploadsPerMinute, cfg.UploadsPerDay),
		Renderer:      renderer,
		Config:        cfg,
	})

	// 11. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}

func setupPortfolioStore(ctx context.Context, cfg *config.Config) (domain.PortfolioRepository, func(), error) {
	switch cfg.DBDriver {
	case "postgres":
		pool, err := database.NewPostgresConnection(ctx, cfg.DBUrl)
		if err != nil {
			return nil, nil, err
		}
		if err := postgres.RunMigrations(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return postgres.NewPortfolioRepository(pool), pool.Close, nil

	case "mongo":
		client, err := database.NewMongoConnection(ctx, cfg.MongoURI)
		if err != nil {
			return nil, nil, err
		}
		db := client.Database(cfg.MongoDB)
		if err := mongorepo.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(ctx)
			return nil, nil, err
		}
		return mongorepo.NewPortfolioRepository(db), func() { _ = client.Disconnect(context.Background()) }, nil

	default:
		logger.Log.Warn("Using in-memory portfolio store - data is lost on restart")
		return memory.NewPortfolioRepository(), func() {}, nil
	}
}

func setupObjectStore(ctx context.Context, cfg *config.Config) (domain.ObjectStore, func(), error) {
	switch cfg.StorageProvider {
	case "gcs":
		store, err := objectstore.NewGCSStore(ctx, cfg.GCSBucket, cfg.GCSCredentialsFile)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil

	case "memory":
		return objectstore.NewMemoryStore(), func() {}, nil

	default:
		client, err := storage.NewS3Client(ctx, storage.S3ClientConfig{
			Endpoint:        cfg.R2Endpoint,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			Region:          cfg.S3Region,
		})
		if err != nil {
			return nil, nil, err
		}
		if err := storage.CheckBucket(ctx, client, cfg.Bucket); err != nil {
			// uploads will fail until the bucket is reachable, but pages still render
			logger.Log.Warn("Bucket check failed", "bucket", cfg.Bucket, "error", err)
		}
		return objectstore.NewS3Store(client, cfg.Bucket), func() {}, nil
	}
}

func setupExtractor(ctx context.Context, cfg *config.Config) (domain.ResumeExtractor, func(), error) {
	if cfg.ResumeProvider == "vertex" {
		gemini, err := ai.NewVertexGemini(ctx, cfg.VertexProjectID, cfg.VertexLocation, cfg.VertexModel)
		if err != nil {
			return nil, nil, err
		}
		return gemini, func() { _ = gemini.Close() }, nil
	}
	return ai.NewOpenRouterClient(cfg.OpenRouterBaseURL, cfg.OpenRouterAPIKey, cfg.OpenRouterModel, cfg.PublicBaseURL), func() {}, nil
}
