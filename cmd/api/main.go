package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/komunitech/komunitech/docs"
	"github.com/komunitech/komunitech/internal/api/handlers"
	"github.com/komunitech/komunitech/internal/api/middleware"
	"github.com/komunitech/komunitech/internal/api/routes"
	"github.com/komunitech/komunitech/internal/application"
	"github.com/komunitech/komunitech/internal/config"
	"github.com/komunitech/komunitech/internal/config/db"
	"github.com/komunitech/komunitech/internal/realtime"
	"github.com/komunitech/komunitech/internal/repository"
	"github.com/komunitech/komunitech/pkg/logger"
	"github.com/komunitech/komunitech/pkg/storage"
	"github.com/redis/go-redis/v9"
)

// @title KomuniTech API
// @version 1.0
// @description Community needs board: projects, requirements, threaded comments, supports and notifications.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration from environment variables and .env file
	config.LoadConfig()
	log := logger.New("api")

	// Initialize JWT signing key
	middleware.Init()

	// Connect, AutoMigrate and apply SQL migrations
	db.Init()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var rdb *redis.Client
	if config.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     config.RedisAddr,
			Password: config.RedisPassword,
			DB:       config.RedisDB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Str("addr", config.RedisAddr).Msg("redis unreachable, realtime fan-out stays local")
			_ = rdb.Close()
			rdb = nil
		}
	}
	hub := realtime.NewHub(rdb, config.RedisChannel, log)
	go hub.Run(ctx)

	// Uploads are optional: without MinIO the endpoint answers 503.
	var uploader handlers.ImageUploader
	store, err := storage.NewMinioImageStore(ctx, storage.Config{
		Endpoint:  config.MinioEndpoint,
		AccessKey: config.MinioAccessKey,
		SecretKey: config.MinioSecretKey,
		UseSSL:    config.MinioUseSSL,
		Bucket:    config.MinioBucket,
		PublicURL: config.MinioPublicURL,
		MaxBytes:  config.MaxUploadBytes,
	}, log)
	if err != nil {
		log.Warn().Err(err).Msg("object storage unavailable, image uploads disabled")
	} else {
		uploader = store
	}

	repos := repository.NewRepositories(db.DB)
	svc := application.New(repos, application.Options{
		Engagement: config.Engagement(),
		TokenTTL:   config.TokenTTL,
		Publisher:  hub,
		Logger:     log,
	})

	if config.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware(config.AllowedOrigins))
	router.Use(middleware.LoggingMiddleware(log))

	routes.RegisterRoutes(router, handlers.New(svc, uploader, hub), middleware.NewAuth(repos))

	srv := &http.Server{
		Addr:              ":" + config.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("starting API server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server failed")
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	if rdb != nil {
		_ = rdb.Close()
	}
	if sqlDB, err := db.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
