package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/yungbote/servicehub-backend/internal/data/db"
	"github.com/yungbote/servicehub-backend/internal/http"
	"github.com/yungbote/servicehub-backend/internal/observability"
	"github.com/yungbote/servicehub-backend/internal/platform/logger"
	"github.com/yungbote/servicehub-backend/internal/realtime/bus"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Router   *gin.Engine
	Cfg      Config
	Repos    Repos
	Services Services
	Metrics  *observability.Metrics

	store         *db.PostgresService
	events        bus.Bus
	shutdownTrace func(context.Context) error
}

func New() (*App, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return NewWithConfig(cfg)
}

func NewWithConfig(cfg Config) (*App, error) {
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	cfg.LogSummary(log)
	if m := strings.ToLower(cfg.LogMode); m == "prod" || m == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	shutdownTrace := observability.InitOTel(context.Background(), log, cfg.Otel())
	metrics := observability.NewMetrics(log, cfg.MetricsEnabled, cfg.MetricsScrapeInterval)

	store, err := db.NewPostgresService(log, cfg.DB())
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init database: %w", err)
	}
	if err := store.AutoMigrateAll(); err != nil {
		_ = store.Close()
		log.Sync()
		return nil, fmt.Errorf("automigrate: %w", err)
	}
	theDB := store.DB()

	events, err := wireEventBus(log, cfg, metrics)
	if err != nil {
		_ = store.Close()
		log.Sync()
		return nil, err
	}

	reposet := wireRepos(theDB, log)
	serviceset := wireServices(theDB, log, reposet, events)
	handlerset := wireHandlers(log, serviceset)
	router := wireRouter(log, cfg, handlerset, metrics)

	return &App{
		Log:           log,
		DB:            theDB,
		Router:        router,
		Cfg:           cfg,
		Repos:         reposet,
		Services:      serviceset,
		Metrics:       metrics,
		store:         store,
		events:        events,
		shutdownTrace: shutdownTrace,
	}, nil
}

// Run serves HTTP until ctx is cancelled, then drains in-flight requests
// within Cfg.ShutdownTimeout.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.Router == nil {
		return fmt.Errorf("app not initialized")
	}
	srv := http.WrapEngine(a.Router, a.Cfg.Addr())
	g, gctx := errgroup.WithContext(ctx)

	a.Metrics.StartDBCollector(gctx, a.Log, a.DB)
	a.Metrics.StartRedisCollector(gctx, a.Log, a.Cfg.RedisAddr)

	g.Go(func() error {
		a.Log.Info("HTTP server listening", "addr", a.Cfg.Addr())
		return srv.Run()
	})
	g.Go(func() error {
		<-gctx.Done()
		a.Log.Info("shutting down HTTP server", "timeout", a.Cfg.ShutdownTimeout.String())
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func (a *App) Close() {
	if a == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), a.Cfg.ShutdownTimeout)
	defer cancel()
	if a.shutdownTrace != nil {
		if err := a.shutdownTrace(ctx); err != nil {
			a.Log.Warn("tracer shutdown failed", "error", err)
		}
	}
	if a.events != nil {
		if err := a.events.Close(); err != nil {
			a.Log.Warn("event bus close failed", "error", err)
		}
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.Log.Warn("database close failed", "error", err)
		}
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
