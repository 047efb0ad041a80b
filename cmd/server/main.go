package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"sample-registry/internal/config"
	apphttp "sample-registry/internal/http"
	"sample-registry/internal/repository"
	"sample-registry/internal/repository/postgres"
	"sample-registry/internal/repository/sqlite"
	"sample-registry/internal/service"
	"sample-registry/internal/storage"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, userRepo, sampleRepo, err := buildRepositories(cfg, logger)
	if err != nil {
		logger.Fatalf("setup database: %v", err)
	}
	defer db.Close()

	if err := userRepo.Init(ctx); err != nil {
		logger.Fatalf("init user repository: %v", err)
	}
	if err := sampleRepo.Init(ctx); err != nil {
		logger.Fatalf("init sample repository: %v", err)
	}

	userService := service.NewUserService(userRepo)
	sampleService := service.NewSampleService(sampleRepo)

	storageSvc, err := buildStorage(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("setup storage: %v", err)
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	handler := apphttp.NewHandler(
		userService,
		sampleService,
		storageSvc,
		logger,
		cfg.Static.Dir,
		cfg.Storage.KeyPrefix,
		cfg.IsDevelopment(),
	)
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    cfg.ListenAddr(),
		Handler: router,
	}

	go func() {
		logger.Infof("listening on %s", cfg.ListenAddr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("http shutdown: %v", err)
	}

	logger.Info("bye")
}

// buildRepositories selects the backend: DATABASE_URL when provided, else the
// local sqlite fallback.
func buildRepositories(cfg config.Config, logger *logrus.Logger) (*sql.DB, repository.UserRepository, repository.SampleRepository, error) {
	if cfg.Database.URL != "" {
		db, err := postgres.Open(cfg.Database.URL)
		if err != nil {
			return nil, nil, nil, err
		}
		logger.Info("using postgres database")
		return db, postgres.NewUserRepository(db), postgres.NewSampleRepository(db), nil
	}

	db, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		return nil, nil, nil, err
	}
	logger.Infof("using sqlite database at %s", cfg.Database.Path)
	return db, sqlite.NewUserRepository(db), sqlite.NewSampleRepository(db), nil
}

// buildStorage constructs the S3 image store when a bucket is configured.
// Without one the upload endpoint reports the storage as unavailable.
func buildStorage(ctx context.Context, cfg config.Config, logger *logrus.Logger) (storage.Service, error) {
	if cfg.Storage.Bucket == "" {
		logger.Info("image storage not configured")
		return nil, nil
	}

	loadOpts := []func(*awscfg.LoadOptions) error{
		awscfg.WithRegion(cfg.Storage.Region),
	}
	if cfg.AWS.Profile != "" {
		loadOpts = append(loadOpts, awscfg.WithSharedConfigProfile(cfg.AWS.Profile))
	}

	awsCfg, err := awscfg.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Storage.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Storage.Endpoint)
			o.UsePathStyle = true
		}
	})
	logger.Infof("using s3 bucket %s (region %s)", cfg.Storage.Bucket, cfg.Storage.Region)
	return storage.NewS3Service(client, cfg.Storage.Bucket, cfg.Storage.Region, cfg.Storage.Endpoint), nil
}
