package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"

	"hrpay/internal/app/payrun"
	"hrpay/internal/domain/attendance"
	"hrpay/internal/domain/audit"
	"hrpay/internal/domain/auth"
	"hrpay/internal/domain/core"
	"hrpay/internal/domain/payroll"
	"hrpay/internal/domain/reports"
	"hrpay/internal/platform/cache"
	"hrpay/internal/platform/config"
	cryptoutil "hrpay/internal/platform/crypto"
	"hrpay/internal/platform/db"
	"hrpay/internal/platform/jobs"
	"hrpay/internal/platform/logger"
	"hrpay/internal/platform/memstore"
	"hrpay/internal/platform/metrics"
	"hrpay/internal/requestctx"
	"hrpay/internal/transport/http/api"
	attendancehandler "hrpay/internal/transport/http/handlers/attendance"
	audithandler "hrpay/internal/transport/http/handlers/audit"
	authhandler "hrpay/internal/transport/http/handlers/auth"
	corehandler "hrpay/internal/transport/http/handlers/core"
	opshandler "hrpay/internal/transport/http/handlers/ops"
	payrollhandler "hrpay/internal/transport/http/handlers/payroll"
	reportshandler "hrpay/internal/transport/http/handlers/reports"
	"hrpay/internal/transport/http/middleware"
	"hrpay/internal/transport/http/shared"
)

type App struct {
	Config  config.Config
	DB      *pgxpool.Pool
	Router  http.Handler
	Jobs    *jobs.Service
	Cache   cache.Cache
	Runner  *payrun.Runner
	Metrics *metrics.Collector

	cancel context.CancelFunc
}

type stores struct {
	core       core.StoreAPI
	attendance attendance.StoreAPI
	payroll    payroll.StoreAPI
	reports    reports.StoreAPI
	audit      audit.Recorder
	backend    opshandler.Pinger
}

// New builds the application for cfg and starts its background workers.
// Callers must Close the returned App.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	logger.Init(cfg.LogLevel, cfg.LogFormat)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	app := &App{Config: cfg, Metrics: metrics.New()}

	st, err := app.openStores(ctx)
	if err != nil {
		return nil, err
	}

	app.Cache, err = cache.New(ctx, cache.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB})
	if err != nil {
		app.Close()
		return nil, err
	}

	authSvc, err := auth.NewService(cfg.JWTSecret, cfg.TokenTTL,
		auth.Account{Username: cfg.AdminUsername, Password: cfg.AdminPassword, RoleName: auth.RoleHR},
		auth.Account{Username: cfg.ViewerUsername, Password: cfg.ViewerPassword, RoleName: auth.RoleViewer},
	)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("auth setup: %w", err)
	}

	reportSvc := reports.NewService(st.reports, app.Cache, cfg.ReportCacheTTL)
	changes := &shared.ChangeLog{Audit: st.audit, Reports: reportSvc}
	payrollSvc := payroll.NewService(st.payroll)

	app.Runner = &payrun.Runner{Payroll: payrollSvc, Changes: changes, Metrics: app.Metrics}
	app.Jobs = jobs.New(app.Metrics)
	if cfg.PayrollScheduleInterval > 0 {
		app.Jobs.Every(jobs.JobPayrollCalculation, cfg.PayrollScheduleInterval, app.Runner.CurrentMonth())
	}

	ops := &opshandler.Handler{Backend: st.backend, Jobs: app.Jobs, Metrics: app.Metrics}
	authHandler := authhandler.NewHandler(authSvc)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(app.Metrics))
	router.Use(chimw.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		api.Fail(w, http.StatusNotFound, "not_found", "route not found", requestctx.GetRequestID(r.Context()))
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		api.Fail(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed", requestctx.GetRequestID(r.Context()))
	})

	ops.RegisterProbes(router)

	router.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute))
			r.Post("/auth/login", authHandler.HandleLogin)
			ops.RegisterPublic(r)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(authSvc))
			r.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute))
			r.Use(middleware.ReadOnlyRoles(authSvc))

			r.Get("/auth/me", authHandler.HandleMe)

			corehandler.NewHandler(core.NewService(st.core), changes).RegisterRoutes(r)
			attendancehandler.NewHandler(attendance.NewService(st.attendance), changes).RegisterRoutes(r)

			payrollHandler := &payrollhandler.Handler{
				Service:        payrollSvc,
				Runner:         app.Runner,
				Jobs:           app.Jobs,
				Changes:        changes,
				Auth:           authSvc,
				Idempotency:    app.Cache,
				IdempotencyTTL: cfg.IdempotencyTTL,
			}
			payrollHandler.RegisterRoutes(r)

			reportshandler.NewHandler(reportSvc).RegisterRoutes(r)
			audithandler.NewHandler(st.audit, authSvc).RegisterRoutes(r)
			ops.RegisterRoutes(r)
		})
	})

	app.Router = router

	jobCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	app.cancel = cancel
	app.Jobs.Start(jobCtx)
	return app, nil
}

func (a *App) openStores(ctx context.Context) (stores, error) {
	cfg := a.Config
	if !cfg.UseDatabase() {
		mem := memstore.NewSeeded()
		logger.Info(ctx, "using in-memory demo data")
		return stores{
			core:       mem,
			attendance: mem,
			payroll:    mem,
			reports:    mem,
			audit:      audit.NewMemory(500),
			backend:    mem,
		}, nil
	}

	cipher, err := cryptoutil.New(cfg.DataEncryptionKey)
	if err != nil {
		return stores{}, fmt.Errorf("encryption setup: %w", err)
	}

	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return stores{}, fmt.Errorf("db connect failed: %w", err)
	}
	a.DB = pool

	if cfg.RunMigrations {
		applied, err := db.Migrate(ctx, pool)
		if err != nil {
			pool.Close()
			return stores{}, fmt.Errorf("migrations failed: %w", err)
		}
		logger.From(ctx).Info().Strs("applied", applied).Msg("migrations complete")
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			pool.Close()
			return stores{}, fmt.Errorf("seed failed: %w", err)
		}
	}

	coreStore := core.NewStore(pool, cipher)
	return stores{
		core:       coreStore,
		attendance: attendance.NewStore(pool),
		payroll:    payroll.NewStore(pool),
		reports:    reports.NewStore(pool),
		audit:      audit.NewStore(pool),
		backend:    coreStore,
	}, nil
}

// Close stops background jobs and releases connections.
func (a *App) Close() {
	if a.cancel != nil {
		a.cancel()
		a.Jobs.Wait()
	}
	if a.Cache != nil {
		if err := a.Cache.Close(); err != nil {
			logger.Warn(context.Background(), err, "cache close failed")
		}
	}
	if a.DB != nil {
		a.DB.Close()
	}
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context, cfg config.Config) error {
	app, err := New(ctx, cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.From(ctx).Info().Str("addr", cfg.Addr).Bool("database", cfg.UseDatabase()).Msg("hrpay server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info(context.Background(), "server stopped")
	return nil
}
