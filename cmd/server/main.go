package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anonto42/nano-tube/backend/internal/cache"
	"github.com/anonto42/nano-tube/backend/internal/handlers"
	"github.com/anonto42/nano-tube/backend/internal/media"
	"github.com/anonto42/nano-tube/backend/internal/middleware"
	"github.com/anonto42/nano-tube/backend/internal/repositories"
	"github.com/anonto42/nano-tube/backend/internal/router"
	"github.com/anonto42/nano-tube/backend/internal/services"
	"github.com/anonto42/nano-tube/backend/internal/stats"
	"github.com/anonto42/nano-tube/backend/pkg/config"
	"github.com/anonto42/nano-tube/backend/pkg/firebase"
	"github.com/anonto42/nano-tube/backend/pkg/logger"
	"github.com/anonto42/nano-tube/backend/pkg/metrics"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}
	log := logger.New(cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log *logrus.Logger) error {
	store, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	var fb *firebase.App
	if cfg.NeedsFirebase() {
		if fb, err = firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath, cfg.FirebaseBucket); err != nil {
			return err
		}
	}

	storage, err := openStorage(ctx, cfg, fb)
	if err != nil {
		return err
	}
	auth, err := authMiddleware(ctx, cfg, fb, store)
	if err != nil {
		return err
	}

	var statsCache stats.Cache
	if cfg.RedisAddr != "" {
		client, err := cache.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, 0)
		if err != nil {
			return err
		}
		defer client.Close()
		statsCache = cache.NewRedisStatsCache(client, cfg.StatsCacheTTL)
		log.WithField("ttl", cfg.StatsCacheTTL).Info("channel stats cache enabled")
	}

	e := echo.New()
	e.HideBanner = true
	router.SetupMiddleware(e, log, cfg.RequestTimeout)
	router.SetupRoutes(e, services.New(store, storage, statsCache), auth, handlers.NewUploads(cfg.UploadDir))

	metricsServer := &http.Server{
		Addr:              ":" + cfg.MetricsPort,
		Handler:           metrics.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("metrics server failed")
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		log.WithField("port", cfg.Port).Info("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("metrics server shutdown")
	}
	return e.Shutdown(shutdownCtx)
}

func openStore(ctx context.Context, cfg *config.Config, log *logrus.Logger) (*repositories.Store, func(), error) {
	if cfg.StoreDriver == config.StoreMemory {
		log.Warn("using the in-memory store; data is lost on restart")
		return repositories.NewMemoryStore().Repositories(), func() {}, nil
	}

	db, err := config.InitDB(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	if err := repositories.MigratePostgres(db.Postgres); err != nil {
		db.CloseDB()
		return nil, nil, err
	}
	if err := repositories.EnsureMongoIndexes(ctx, db.Database()); err != nil {
		db.CloseDB()
		return nil, nil, err
	}
	return repositories.NewStore(db.Database(), db.Postgres), db.CloseDB, nil
}

func openStorage(ctx context.Context, cfg *config.Config, fb *firebase.App) (media.Storage, error) {
	switch cfg.StorageDriver {
	case config.StorageFirebase:
		bucket, name, err := fb.Bucket(ctx)
		if err != nil {
			return nil, err
		}
		return media.NewBucketStorage(bucket, name, media.FFProbe), nil
	case config.StorageMinio:
		return media.NewMinioStorage(ctx, media.MinioConfig{
			Endpoint:      cfg.MinioEndpoint,
			AccessKey:     cfg.MinioAccessKey,
			SecretKey:     cfg.MinioSecretKey,
			Bucket:        cfg.MinioBucket,
			PublicBaseURL: cfg.MinioPublicBaseURL,
		}, media.FFProbe)
	default:
		return media.Disabled{}, nil
	}
}

func authMiddleware(ctx context.Context, cfg *config.Config, fb *firebase.App, store *repositories.Store) (echo.MiddlewareFunc, error) {
	if cfg.AuthMode != config.AuthFirebase {
		return middleware.JWTAuthMiddleware(cfg.JWTSecret), nil
	}
	client, err := fb.Auth(ctx)
	if err != nil {
		return nil, err
	}
	return middleware.FirebaseAuthMiddleware(client, store.Users), nil
}
