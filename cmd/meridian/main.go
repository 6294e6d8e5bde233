package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meridian-pos/meridian-pos/internal/app"
	"github.com/meridian-pos/meridian-pos/internal/auth"
	"github.com/meridian-pos/meridian-pos/internal/cart"
	"github.com/meridian-pos/meridian-pos/internal/catalog"
	"github.com/meridian-pos/meridian-pos/internal/export"
	"github.com/meridian-pos/meridian-pos/internal/observability"
	"github.com/meridian-pos/meridian-pos/internal/persist"
	"github.com/meridian-pos/meridian-pos/internal/platform/cache"
	"github.com/meridian-pos/meridian-pos/internal/platform/db"
	"github.com/meridian-pos/meridian-pos/internal/procurement"
	"github.com/meridian-pos/meridian-pos/internal/reports"
	"github.com/meridian-pos/meridian-pos/internal/sales"
	"github.com/meridian-pos/meridian-pos/internal/shared"
	"github.com/meridian-pos/meridian-pos/internal/store"
	"github.com/meridian-pos/meridian-pos/internal/suppliers"
	"github.com/meridian-pos/meridian-pos/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	var pool *pgxpool.Pool
	var snapshots persist.SnapshotStore
	switch cfg.SnapshotBackend {
	case "postgres":
		pool, err = db.New(ctx, cfg.PGDSN)
		if err != nil {
			logger.Error("connect postgres", slog.Any("error", err))
			os.Exit(1)
		}
		defer pool.Close()
		pgStore := persist.NewPostgresStore(pool)
		if err := pgStore.EnsureSchema(ctx); err != nil {
			logger.Error("ensure snapshot schema", slog.Any("error", err))
			os.Exit(1)
		}
		snapshots = pgStore
	default:
		snapshots = persist.NewRedisStore(redisClient)
	}

	initial := store.Seed()
	if blob, err := snapshots.Load(ctx); err == nil {
		initial = store.Decode(blob)
		logger.Info("restored snapshot", slog.Int("products", len(initial.Products)), slog.Int("orders", len(initial.Orders)))
	} else if !errors.Is(err, persist.ErrNoSnapshot) {
		logger.Warn("load snapshot", slog.Any("error", err))
	}
	engine := store.New(initial)

	jobsClient := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := jobsClient.Close(); err != nil {
			logger.Warn("jobs client close", slog.Any("error", err))
		}
	}()

	engine.Subscribe(func(version int64, blob []byte) {
		enqueueCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		payload := jobs.SnapshotPayload{Version: version, Blob: blob}
		if _, err := jobsClient.EnqueueSnapshotPersist(enqueueCtx, payload); err != nil {
			logger.Warn("enqueue snapshot persist", slog.Int64("version", version), slog.Any("error", err))
		}
	})

	sessionManager := shared.NewSessionManager(redisClient, "meridian_session", cfg.SessionTTL, cfg.IsProduction())
	csrfManager := shared.NewCSRFManager(cfg.CSRFSecret)

	authService, err := auth.NewService([]auth.Credential{
		{ID: "user-admin", Email: cfg.AdminEmail, Name: "Store Owner", Password: cfg.AdminPassword, Role: auth.RoleAdmin},
		{ID: "user-cashier", Email: cfg.CashierEmail, Name: "Front Register", Password: cfg.CashierPassword, Role: auth.RoleCashier},
	})
	if err != nil {
		logger.Error("build credential list", slog.Any("error", err))
		os.Exit(1)
	}
	authHandler := auth.NewHandler(logger, authService, sessionManager, csrfManager)

	catalogService := catalog.NewService(engine)
	catalogHandler := catalog.NewHandler(logger, catalogService)

	suppliersService := suppliers.NewService(engine)
	suppliersHandler := suppliers.NewHandler(logger, suppliersService)

	metrics := observability.NewMetrics()

	salesService := sales.NewService(engine)
	salesHandler := sales.NewHandler(logger, salesService)

	cartHandler := cart.NewHandler(logger, catalogService, salesService, metrics)

	procurementService := procurement.NewService(engine)
	procurementHandler := procurement.NewHandler(logger, procurementService)

	reportsService := reports.NewService(engine)
	reportsHandler := reports.NewHandler(logger, reportsService)

	exportHandler := export.NewHandler(logger, engine)

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobHandler := jobs.NewHandler(inspector, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:             logger,
		Config:             cfg,
		SessionManager:     sessionManager,
		CSRFManager:        csrfManager,
		AuthHandler:        authHandler,
		CatalogHandler:     catalogHandler,
		SuppliersHandler:   suppliersHandler,
		CartHandler:        cartHandler,
		SalesHandler:       salesHandler,
		ProcurementHandler: procurementHandler,
		ReportsHandler:     reportsHandler,
		ExportHandler:      exportHandler,
		JobHandler:         jobHandler,
		Metrics:            metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
