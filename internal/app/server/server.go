package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/AlixSahil/Employee-onboarding-updated/internal/domain/employee"
	"github.com/AlixSahil/Employee-onboarding-updated/internal/platform/config"
	"github.com/AlixSahil/Employee-onboarding-updated/internal/platform/db"
	"github.com/AlixSahil/Employee-onboarding-updated/internal/platform/metrics"
	"github.com/AlixSahil/Employee-onboarding-updated/internal/transport/http/api"
	employeehandler "github.com/AlixSahil/Employee-onboarding-updated/internal/transport/http/handlers/employee"
	"github.com/AlixSahil/Employee-onboarding-updated/internal/transport/http/middleware"
)

const healthMessage = "Employee onboarding service is running"

type App struct {
	Config  config.Config
	DB      db.Gateway
	Router  http.Handler
	Logger  *zap.Logger
	Metrics *metrics.Collector
}

// New opens the store, applies pending migrations when enabled and wires the
// router. The caller owns the returned App and must Close it.
func New(ctx context.Context, cfg config.Config, logger *zap.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	gateway, err := db.Open(ctx, cfg, logger.Named("db"))
	if err != nil {
		return nil, err
	}

	if cfg.RunMigrations {
		applied, err := db.Migrate(ctx, gateway)
		if err != nil {
			gateway.Close()
			return nil, errors.Wrap(err, "migrations failed")
		}
		if len(applied) > 0 {
			logger.Info("migrations applied", zap.Strings("versions", applied))
		}
	}

	m := metrics.New()
	return &App{
		Config:  cfg,
		DB:      gateway,
		Router:  NewRouter(cfg, gateway, logger, m),
		Logger:  logger,
		Metrics: m,
	}, nil
}

func NewRouter(cfg config.Config, gateway db.Gateway, logger *zap.Logger, m *metrics.Collector) http.Handler {
	responder := api.NewResponder(logger.Named("http"), cfg.IsProduction(), employeehandler.Classify)
	service := employee.NewService(gateway, employee.Options{
		StrictDates:         cfg.StrictDates,
		AssembleConcurrency: cfg.AssembleConcurrency,
	}, logger, m)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(logger.Named("access")))
	router.Use(middleware.Metrics(m))
	router.Use(middleware.Recoverer(responder))
	router.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		api.Fail(w, r, http.StatusNotFound, api.TypeRouteNotFound, "Route "+r.URL.Path+" not found")
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		api.Fail(w, r, http.StatusMethodNotAllowed, api.TypeBadRequest, "Method "+r.Method+" not allowed on "+r.URL.Path)
	})

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		api.WriteJSON(w, http.StatusOK, api.Envelope{Status: "UP", Message: healthMessage})
	})

	router.Get("/ready", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := gateway.Ping(ctx); err != nil {
			logger.Warn("readiness check failed", zap.Error(err))
			api.Fail(w, r, http.StatusServiceUnavailable, api.TypeServer, "Database not ready")
			return
		}
		api.Success(w, r, nil, "ready")
	})

	if cfg.MetricsEnabled {
		router.Method(http.MethodGet, "/metrics", m.Handler())
	}

	router.Route("/api", func(r chi.Router) {
		r.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
		r.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute,
			middleware.MutationsOnly(),
			middleware.WithLogger(logger.Named("ratelimit")),
		))

		employeeHandler := employeehandler.NewHandler(service, responder)
		employeeHandler.RegisterRoutes(r)
	})

	return router
}

// Run serves until ctx is cancelled, then drains in-flight requests for up to
// ShutdownTimeout.
func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              a.Config.Addr,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info("server listening", zap.String("addr", a.Config.Addr), zap.String("env", a.Config.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return errors.Wrap(err, "server failed")
	case <-ctx.Done():
	}

	a.Logger.Info("shutting down", zap.Duration("timeout", a.Config.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "graceful shutdown")
	}
	return nil
}

func (a *App) Close() {
	if a.DB != nil {
		a.DB.Close()
	}
}
