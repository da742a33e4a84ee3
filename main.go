package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Aashish23092/curriculum-ats/client"
	"github.com/Aashish23092/curriculum-ats/config"
	"github.com/Aashish23092/curriculum-ats/handler"
	"github.com/Aashish23092/curriculum-ats/logger"
	"github.com/Aashish23092/curriculum-ats/service"
	"github.com/Aashish23092/curriculum-ats/storage"
)

const uploadsRoute = "/uploads"

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logger.Init(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize storage
	profileStore, err := newProfileStore(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Str("driver", cfg.ProfileStore.Driver).Msg("Failed to open profile store")
	}
	defer profileStore.Close()

	fileStore, err := newFileStore(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize file store")
	}

	// Initialize OCR fallback for scanned PDFs
	var ocr service.OCRClient
	if cfg.OCR.Enabled {
		tesseractClient := client.NewTesseractClient(cfg.OCR.TessdataPrefix, cfg.OCR.Languages...)
		defer tesseractClient.Close()
		ocr = tesseractClient
		logger.Info().Str("languages", tesseractClient.Languages()).Msg("OCR fallback enabled")
	}

	// Initialize service layer
	decoder := service.NewDocumentDecoder(service.NewPDFProcessor(), ocr, cfg.OCR.MinChars)
	curriculumService := service.NewCurriculumService(fileStore, profileStore, decoder)

	// Initialize handler layer
	curriculumHandler := handler.NewCurriculumHandler(curriculumService, cfg.Server.MaxFileSize)

	// Setup Gin router
	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	router.Use(handler.RequestLogger(), gin.Recovery())

	// Configure max multipart memory (32 MB)
	router.MaxMultipartMemory = 32 << 20

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "Curriculum ATS",
		})
	})

	if local, ok := fileStore.(*storage.LocalFileStore); ok {
		router.Static(uploadsRoute, local.Dir())
	}

	// API routes
	curriculumHandler.RegisterRoutes(router.Group("/api/v1"))

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info().Str("port", cfg.Server.Port).Msg("Starting Curriculum ATS service")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Server shutdown failed")
	}
}

// newProfileStore opens the configured database, wrapped in a Redis read
// cache when enabled. A Redis outage at startup disables the cache.
func newProfileStore(ctx context.Context, cfg *config.Config) (storage.ProfileStore, error) {
	var (
		store storage.ProfileStore
		err   error
	)
	switch cfg.ProfileStore.Driver {
	case config.StoreMySQL:
		store, err = storage.NewGormProfileStore(storage.MySQLConfig{
			DSN:   cfg.ProfileStore.MySQLDSN,
			Debug: cfg.Server.Mode == gin.DebugMode,
		})
	default:
		store, err = storage.NewSQLiteProfileStore(cfg.ProfileStore.SQLitePath)
	}
	if err != nil {
		return nil, err
	}

	if !cfg.Redis.Enabled {
		return store, nil
	}
	cache, err := storage.NewRedisCache(ctx, storage.RedisConfig{
		Address:  cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		logger.Warn().Err(err).Str("address", cfg.Redis.Address).Msg("Redis unavailable, profile cache disabled")
		return store, nil
	}
	return storage.NewCachedProfileStore(store, cache, cfg.Redis.TTL), nil
}

func newFileStore(ctx context.Context, cfg *config.Config) (storage.FileStore, error) {
	if !cfg.Storage.UseCloudStorage {
		return storage.NewLocalFileStore(cfg.Storage.UploadsDir, uploadsRoute)
	}
	return storage.NewMinIOFileStore(ctx, storage.MinIOConfig{
		Endpoint:        cfg.MinIO.Endpoint,
		AccessKeyID:     cfg.MinIO.AccessKey,
		SecretAccessKey: cfg.MinIO.SecretKey,
		UseSSL:          cfg.MinIO.UseSSL,
		Bucket:          cfg.MinIO.Bucket,
		Location:        cfg.MinIO.Location,
		PresignExpiry:   cfg.MinIO.PresignExpiry,
	})
}
