// Package server wires the backend: storage, services, and the HTTP and gRPC
// listeners, with graceful shutdown on SIGINT/SIGTERM.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/staffkeeper/internal/logging"
	"github.com/dmitrijs2005/staffkeeper/internal/server/config"
	gs "github.com/dmitrijs2005/staffkeeper/internal/server/grpc"
	"github.com/dmitrijs2005/staffkeeper/internal/server/httpapi"
	"github.com/dmitrijs2005/staffkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/staffkeeper/internal/server/services"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	config          *config.Config
	logger          logging.Logger
	db              *sql.DB
	registry        *prometheus.Registry
	userService     *services.UserService
	employeeService *services.EmployeeService
}

// NewApp opens storage and builds the services. With an empty DatabaseDSN
// everything is kept in memory.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logging.ParseLevel(c.LogLevel)})
	logger := logging.NewSlogLogger(slog.New(handler))

	var (
		db *sql.DB
		m  repomanager.RepositoryManager
	)
	if c.DatabaseDSN == "" {
		logger.Warn(ctx, "no database configured, data is kept in memory")
		m = repomanager.NewMemoryRepositoryManager()
	} else {
		pm := repomanager.NewPostgresRepositoryManager()
		var err error
		db, err = repomanager.OpenPostgres(ctx, c.DatabaseDSN, pm)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
		m = pm
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	return &App{
		config:          c,
		logger:          logger,
		db:              db,
		registry:        registry,
		userService:     services.NewUserService(db, m, c, logger),
		employeeService: services.NewEmployeeService(db, m, logger),
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

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewGRPCServer(app.config.GRPCAddr, app.logger, app.userService, app.employeeService)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, "gRPC server failed", "error", err)
		cancelFunc()
	}
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	srv := &http.Server{
		Addr: app.config.HTTPAddr,
		Handler: httpapi.NewRouter(httpapi.RouterDeps{
			Users:       app.userService,
			Employees:   app.employeeService,
			Logger:      app.logger.With("module", "http_server"),
			AuthLimiter: httpapi.NewRateLimiter(30, 10),
			Metrics:     httpapi.NewMetrics(app.registry),
			Gatherer:    app.registry,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		app.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	app.logger.Info(ctx, "Starting HTTP server", "address", app.config.HTTPAddr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		app.logger.Error(ctx, "HTTP server failed", "error", err)
		cancelFunc()
	}
}

// Run seeds the administrator, serves until ctx is canceled or a signal
// arrives, then closes storage.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")
	app.initSignalHandler(cancelFunc)

	if app.config.AdminEmail != "" {
		if err := app.userService.EnsureAdmin(ctx, app.config.AdminEmail, app.config.AdminPassword); err != nil {
			return fmt.Errorf("seed admin: %w", err)
		}
		app.logger.Info(ctx, "admin account ready", "email", app.config.AdminEmail)
	}

	var wg sync.WaitGroup

	if app.config.GRPCAddr != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.startGRPCServer(ctx, cancelFunc)
		}()
	}
	if app.config.HTTPAddr != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.startHTTPServer(ctx, cancelFunc)
		}()
	}

	wg.Wait()

	if app.db != nil {
		return app.db.Close()
	}
	return nil
}
