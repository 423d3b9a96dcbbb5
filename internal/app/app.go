// Package app wires together configuration, storage, services and the
// HTTP server, and owns startup and graceful shutdown.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/ranaIslam01/server/internal/auth"
	"github.com/ranaIslam01/server/internal/config"
	handler "github.com/ranaIslam01/server/internal/handler/http"
	"github.com/ranaIslam01/server/internal/repository"
	"github.com/ranaIslam01/server/internal/repository/memory"
	mongorepo "github.com/ranaIslam01/server/internal/repository/mongo"
	"github.com/ranaIslam01/server/internal/seed"
	"github.com/ranaIslam01/server/internal/service"
	"github.com/ranaIslam01/server/pkg/health"
	"github.com/ranaIslam01/server/pkg/middleware"
)

// App wires together all dependencies and runs the API server.
type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	client     *mongo.Client
	httpServer *http.Server
	demoMode   bool
}

// NewApp creates a new application instance, initializing all dependencies.
// When MONGO_URI is unset the server comes up in demo mode: storage is
// in-memory, pre-loaded with the demo dataset, and nothing survives a
// restart.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	var (
		client      *mongo.Client
		productRepo repository.ProductRepository
		userRepo    repository.UserRepository
		orderRepo   repository.OrderRepository
	)
	healthHandler := health.NewHandler()

	demoMode := cfg.DemoMode()
	if !demoMode {
		var db *mongo.Database
		var err error
		client, db, err = mongorepo.Connect(ctx, cfg.MongoURI, cfg.MongoDBName)
		if err != nil {
			// An unreachable database degrades to demo mode instead of
			// failing startup.
			logger.Warn("mongodb unreachable, falling back to demo mode",
				slog.String("error", err.Error()),
			)
			client = nil
			demoMode = true
		} else {
			logger.Info("connected to MongoDB", slog.String("database", cfg.MongoDBName))

			if err := mongorepo.EnsureIndexes(ctx, db); err != nil {
				_ = client.Disconnect(ctx)
				return nil, fmt.Errorf("ensure indexes: %w", err)
			}

			productRepo = mongorepo.NewProductRepository(db)
			userRepo = mongorepo.NewUserRepository(db)
			orderRepo = mongorepo.NewOrderRepository(db)

			healthHandler.Register("mongodb", func(ctx context.Context) error {
				return client.Ping(ctx, readpref.Primary())
			})
		}
	}

	if demoMode {
		logger.Warn("starting in demo mode with in-memory storage, data will not survive a restart")

		productRepo = memory.NewProductRepository()
		userRepo = memory.NewUserRepository()
		orderRepo = memory.NewOrderRepository()

		seeder := seed.New(userRepo, productRepo, orderRepo, logger)
		if err := seeder.Import(ctx); err != nil {
			return nil, fmt.Errorf("preload demo data: %w", err)
		}
	}

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiry)

	productService := service.NewProductService(productRepo, logger)
	userService := service.NewUserService(userRepo, jwtManager, logger)
	orderService := service.NewOrderService(orderRepo, productRepo, logger)

	router := handler.NewRouter(
		productService,
		userService,
		orderService,
		jwtManager,
		healthHandler,
		logger,
		middleware.CORSConfig{
			AllowedOrigins: cfg.CORSAllowedOrigins,
			Environment:    cfg.Environment,
		},
	)

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &App{
		cfg:        cfg,
		logger:     logger,
		client:     client,
		httpServer: httpServer,
		demoMode:   demoMode,
	}, nil
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
			slog.Bool("demo_mode", a.demoMode),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown drains in-flight requests, then closes the database client.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	var errs []error

	httpCtx, httpCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer httpCancel()
	if err := a.httpServer.Shutdown(httpCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	if a.client != nil {
		mongoCtx, mongoCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer mongoCancel()
		if err := a.client.Disconnect(mongoCtx); err != nil {
			a.logger.Error("mongodb disconnect error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	a.logger.Info("application shutdown complete")
	return errors.Join(errs...)
}
