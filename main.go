package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	alarmnotify "lgb-dashboard/internal/alarms/notify"
	"lgb-dashboard/internal/analytics/application"
	"lgb-dashboard/internal/analytics/application/eventbus"
	analyticshttp "lgb-dashboard/internal/analytics/interfaces/http"
	"lgb-dashboard/internal/auth"
	"lgb-dashboard/internal/observability/metrics"
	production "lgb-dashboard/internal/production/domain"
	"lgb-dashboard/internal/production/infrastructure/memory"
	"lgb-dashboard/internal/production/infrastructure/postgres"
	"lgb-dashboard/internal/production/infrastructure/sqlite"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
	logger, err := newLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openRecordStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("record store error", zap.String("store", cfg.RecordStore), zap.Error(err))
	}
	defer closeStore()

	bus := eventbus.NewInMemoryBus(logger)
	notifier, err := buildAlertNotifier(cfg, logger)
	if err != nil {
		logger.Fatal("alert notifier error", zap.Error(err))
	}
	dispatcher, err := alarmnotify.NewDispatcher(notifier, cfg.AlertNotifyQueueSize, logger)
	if err != nil {
		logger.Fatal("alert dispatcher error", zap.Error(err))
	}
	go dispatcher.Run(ctx)
	application.WireAlertNotifications(bus, dispatcher)

	service, err := application.NewService(store,
		application.WithPublisher(bus),
		application.WithLogger(logger),
	)
	if err != nil {
		logger.Fatal("dashboard service error", zap.Error(err))
	}
	dashboardHandler, err := analyticshttp.NewHandler(service, logger)
	if err != nil {
		logger.Fatal("dashboard handler error", zap.Error(err))
	}

	var authMiddleware *auth.Middleware
	if cfg.JWTSecret != "" {
		policy := auth.NewDefaultPolicy([]string{"/healthz", "/metrics"}, nil)
		authMiddleware = auth.NewMiddleware([]byte(cfg.JWTSecret), policy, logger)
	} else {
		logger.Warn("AUTH_JWT_SECRET is empty, API authentication disabled")
	}

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           newServerHandler(dashboardHandler, authMiddleware, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown error", zap.Error(err))
		}
	}()

	logger.Info("http listening", zap.String("addr", cfg.HTTPAddr), zap.String("store", cfg.RecordStore))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("http server error", zap.Error(err))
	}
	logger.Info("http server stopped")
}

func newServerHandler(dashboard *analyticshttp.Handler, authMiddleware *auth.Middleware, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Mount("/api/v1/dashboard", dashboard.Routes())
	return loggingMiddleware(authMiddleware.Wrap(r), logger)
}

func newLogger(level, format string) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	if format == "console" {
		zcfg = zap.NewDevelopmentConfig()
	}
	parsed, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	zcfg.Level = parsed
	return zcfg.Build()
}

// openRecordStore builds the configured store, seeds an empty SQL store and
// registers metrics against it.
func openRecordStore(ctx context.Context, cfg config, logger *zap.Logger) (application.RecordStore, func(), error) {
	seed, err := loadSeed(cfg.RecordsFile)
	if err != nil {
		return nil, nil, err
	}

	switch cfg.RecordStore {
	case storePostgres:
		db, err := sql.Open("pgx", cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("db open: %w", err)
		}
		db.SetMaxOpenConns(cfg.DBMaxOpenConns)
		if err := db.PingContext(ctx); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("db ping: %w", err)
		}
		repo, err := postgres.NewRecordRepository(db, postgres.WithTable(cfg.RecordTable))
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		if err := repo.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		count, err := repo.Count(ctx)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		if count == 0 {
			if err := repo.Insert(ctx, seed...); err != nil {
				_ = db.Close()
				return nil, nil, err
			}
			logger.Info("record store seeded", zap.Int("records", len(seed)))
		}
		metrics.Init(db, repo.Table(), logger)
		return repo, func() { _ = db.Close() }, nil

	case storeSQLite:
		store, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		count, err := store.Count(ctx)
		if err != nil {
			_ = store.Close()
			return nil, nil, err
		}
		if count == 0 {
			if err := store.Insert(ctx, seed...); err != nil {
				_ = store.Close()
				return nil, nil, err
			}
			logger.Info("record store seeded", zap.Int("records", len(seed)), zap.String("path", store.Path()))
		}
		metrics.Init(store.DB(), sqlite.Table, logger)
		return store, func() { _ = store.Close() }, nil

	default:
		metrics.Init(nil, "", logger)
		return memory.NewRecordStore(seed...), func() {}, nil
	}
}

func loadSeed(path string) ([]production.Record, error) {
	if path == "" {
		return memory.ReferenceRecords(), nil
	}
	return memory.LoadRecordsFile(path)
}

func buildAlertNotifier(cfg config, logger *zap.Logger) (*alarmnotify.MultiNotifier, error) {
	notifiers := []alarmnotify.AlertNotifier{alarmnotify.NewLogNotifier(logger)}
	if cfg.AlertWebhookURL != "" {
		channel, err := alarmnotify.NewWebhookChannel(cfg.AlertWebhookURL, alarmnotify.WithTimeout(cfg.AlertNotifyTimeout))
		if err != nil {
			return nil, err
		}
		template, err := alarmnotify.NewTemplate(cfg.AlertNotifyTemplate)
		if err != nil {
			return nil, err
		}
		webhook, err := alarmnotify.NewNotifier(channel, template,
			alarmnotify.WithLogger(logger),
			alarmnotify.WithRequestTimeout(cfg.AlertNotifyTimeout),
			alarmnotify.WithDedupeWindow(cfg.AlertNotifyDedupeWindow),
		)
		if err != nil {
			return nil, err
		}
		notifiers = append(notifiers, webhook)
	}
	return alarmnotify.NewMultiNotifier(notifiers...), nil
}

func loggingMiddleware(next http.Handler, logger *zap.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		resp := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(resp, r)
		logger.Info("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", resp.status),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
