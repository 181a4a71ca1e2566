// Package server initializes and runs the persistence backend: it wires the
// connection pool, schema migrations, repositories, the object-storage
// gateway, and the services the external routing layer calls, and handles
// graceful shutdown.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mkorobovs/sitekeeper/internal/logging"
	"github.com/mkorobovs/sitekeeper/internal/server/config"
	"github.com/mkorobovs/sitekeeper/internal/server/db"
	"github.com/mkorobovs/sitekeeper/internal/server/repositories/repomanager"
	"github.com/mkorobovs/sitekeeper/internal/server/services"
	"github.com/mkorobovs/sitekeeper/internal/server/storage"
)

type App struct {
	config *config.Config
	logger logging.Logger
	pool   *db.Pool

	UserService    *services.UserService
	ArticleService *services.ArticleService
	EventService   *services.EventService
	GalleryService *services.GalleryService
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	pool, err := db.Open(cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	m, err := repomanager.NewPostgresRepositoryManager(pool)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("repository manager init error: %w", err)
	}

	if err := m.RunMigrations(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	gateway, err := storage.NewGateway(cfg, logger)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	return &App{
		config:         cfg,
		logger:         logger,
		pool:           pool,
		UserService:    services.NewUserService(m, logger),
		ArticleService: services.NewArticleService(m, gateway, cfg.S3Bucket, logger),
		EventService:   services.NewEventService(m, logger),
		GalleryService: services.NewGalleryService(m, gateway, cfg.S3Bucket, logger),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run blocks until the context is cancelled or a termination signal
// arrives, then closes the pool.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "addr", app.config.EndpointAddr)

	app.initSignalHandler(cancelFunc)

	<-ctx.Done()

	app.logger.Info(ctx, "Shutting down...")
	if err := app.pool.Close(); err != nil {
		app.logger.Error(ctx, "pool close error", "error", err)
	}
}
