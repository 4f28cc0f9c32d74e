package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"alcyxob/workout-tracker/internal/api"
	"alcyxob/workout-tracker/internal/catalog"
	"alcyxob/workout-tracker/internal/config"
	"alcyxob/workout-tracker/internal/logger"
	"alcyxob/workout-tracker/internal/repository/mongo"
	"alcyxob/workout-tracker/internal/service"
	"alcyxob/workout-tracker/internal/storage"

	"github.com/gin-gonic/gin"
)

// @title Workout Tracker API
// @version 1.0
// @description Exercise library search, workout logging and training insights.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Could not load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log.Mode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Could not build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()
	log.Info("Starting Workout Tracker server", "address", cfg.Server.Address, "catalogSource", cfg.Catalog.Source)

	if cfg.JWT.Secret == "" {
		log.Fatal("jwt.secret must be set")
	}

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		log.Fatal("Could not connect to MongoDB", "error", err)
	}
	defer func() {
		log.Info("Disconnecting MongoDB")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			log.Error("Failed to disconnect MongoDB", "error", err)
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		mongo.EnsureIndexes(ctx, appDB, log)
	}()

	// --- Initialize Storage ---
	var fileStorage storage.FileStorage
	if cfg.S3.BucketName != "" {
		fileStorage, err = storage.NewS3Storage(cfg.S3, log)
		if err != nil {
			log.Fatal("Failed to initialize S3 storage", "error", err)
		}
	} else {
		log.Warn("s3.bucket_name not set, exercise media URLs are disabled")
	}

	// --- Exercise Library ---
	source, err := catalogSource(cfg.Catalog, fileStorage)
	if err != nil {
		log.Fatal("Invalid catalog configuration", "error", err)
	}
	catalogRepo := catalog.NewRepository(source, log)
	go func() {
		// Warm the catalog so the first search does not pay for parsing. Failures are retried on demand.
		if _, err := catalogRepo.EnsureLoaded(context.Background()); err != nil {
			log.Warn("Catalog warm-up failed", "source", source.String(), "error", err)
		}
	}()

	// --- Initialize Repositories ---
	userRepo := mongo.NewMongoUserRepository(appDB)
	exerciseRepo := mongo.NewMongoExerciseRepository(appDB)
	routineRepo := mongo.NewMongoRoutineRepository(appDB)
	workoutRepo := mongo.NewMongoWorkoutRepository(appDB)

	// --- Initialize Services ---
	services := api.Services{
		Auth:     service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration),
		Exercise: service.NewExerciseService(exerciseRepo),
		Library:  service.NewLibraryService(catalogRepo, exerciseRepo, fileStorage, log),
		Workout:  service.NewWorkoutService(routineRepo, workoutRepo, exerciseRepo),
		Insights: service.NewInsightsService(workoutRepo, cfg.Insights.Location()),
	}

	// --- Initialize Gin Engine ---
	if cfg.Log.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), api.RequestLogger(log))
	api.SetupRoutes(router, cfg.JWT.Secret, services)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("ListenAndServe error", "error", err)
		}
	}()
	log.Info("Server listening", "address", cfg.Server.Address)

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Error("Server forced to shutdown", "error", err)
		return
	}

	log.Info("Server exiting")
}

func catalogSource(cfg config.CatalogConfig, fileStorage storage.FileStorage) (catalog.Source, error) {
	switch cfg.Source {
	case "", "file":
		return catalog.FileSource{
			EntriesPath:  cfg.Path,
			MetadataPath: cfg.MetadataPath,
			FacetsDir:    cfg.FacetsDir,
		}, nil
	case "s3":
		if fileStorage == nil {
			return nil, errors.New("catalog.source is s3 but s3.bucket_name is not set")
		}
		return catalog.ObjectSource{
			Storage:      fileStorage,
			EntriesKey:   cfg.ObjectKey,
			MetadataKey:  cfg.MetadataObjectKey,
			FacetsPrefix: cfg.FacetsPrefix,
		}, nil
	default:
		return nil, fmt.Errorf("unknown catalog.source %q", cfg.Source)
	}
}
