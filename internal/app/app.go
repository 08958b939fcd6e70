package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MrSnakeDoc/recommendations/internal/config"
	"github.com/MrSnakeDoc/recommendations/internal/httpserver"
	"github.com/MrSnakeDoc/recommendations/internal/httpserver/deps"
	"github.com/MrSnakeDoc/recommendations/internal/httpserver/mw"
	"github.com/MrSnakeDoc/recommendations/internal/logger"
	"github.com/MrSnakeDoc/recommendations/internal/metrics"
	"github.com/MrSnakeDoc/recommendations/internal/recommendation"
	"github.com/MrSnakeDoc/recommendations/internal/redis"
	"github.com/MrSnakeDoc/recommendations/internal/scheduler"
	"github.com/MrSnakeDoc/recommendations/internal/service"
	"github.com/MrSnakeDoc/recommendations/internal/store/memory"
	redisstore "github.com/MrSnakeDoc/recommendations/internal/store/redis"
	"github.com/MrSnakeDoc/recommendations/internal/store/sqlite"
	"github.com/MrSnakeDoc/recommendations/internal/version"
)

// httpServer is the part of *httpserver.Server the app lifecycle drives.
type httpServer interface {
	Start() error
	Stop(ctx context.Context) error
}

type App struct {
	cfg        *config.Config
	logger     logger.Logger
	server     httpServer
	store      service.Repository
	controller *recommendation.Controller
}

func New() *App {
	cfg := config.Load()

	var logOpts []logger.Option
	if cfg.LogFile != "" {
		logOpts = append(logOpts, logger.WithFile(logger.FileOptions{
			Path:       cfg.LogFile,
			MaxSizeMB:  cfg.LogMaxSizeMB,
			MaxBackups: cfg.LogMaxBackups,
		}))
	}
	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog, logOpts...)

	// Open the store early - fail fast if unavailable
	store, err := openStore(context.Background(), cfg, loggerClient)
	if err != nil {
		loggerClient.Errorf("Failed to open %s store: %v", cfg.StoreBackend, err)
		os.Exit(1)
	}
	loggerClient.Info("store initialized", logger.String("backend", cfg.StoreBackend))

	svc := service.NewRecommendationService(store, loggerClient)
	controller := recommendation.NewController(svc, loggerClient)

	var m *metrics.Metrics
	if cfg.MetricsEnabled {
		m = metrics.New()
	}

	d := deps.Deps{
		Logger:       loggerClient,
		StartTime:    time.Now(),
		Version:      version.Version,
		Commit:       version.Commit,
		BuildDate:    version.BuildDate,
		GoVersion:    version.GoVersion,
		AllowedHosts: cfg.AllowedHosts,
		AllowedCIDRS: cfg.AllowedCIDRS,
		TrustProxy:   cfg.TrustProxy,
		Controller:   controller,
		Store:        svc,
		StoreBackend: cfg.StoreBackend,
		Metrics:      m,
		RateLimit: mw.RateLimitConfig{
			Burst:             cfg.RateLimitBurst,
			RefillPerIPPerMin: cfg.RateLimitRefillPerMin,
			MaxEntries:        10000,
			TrustProxy:        cfg.TrustProxy,
		},
		CORSOrigins: cfg.CORSOrigins,
	}

	return &App{
		cfg:        cfg,
		logger:     loggerClient,
		server:     httpserver.New(cfg, loggerClient, d),
		store:      store,
		controller: controller,
	}
}

// openStore builds the repository selected by RECS_STORE.
func openStore(ctx context.Context, cfg *config.Config, log logger.Logger) (service.Repository, error) {
	switch cfg.StoreBackend {
	case config.BackendRedis:
		client, err := redis.Connect(ctx, redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			DB:             cfg.RedisDB,
			DialTimeout:    cfg.RedisDT,
			ReadTimeout:    cfg.RedisRT,
			WriteTimeout:   cfg.RedisWT,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
			WarnThreshold:  cfg.RedisWarnThreshold,
		}, log)
		if err != nil {
			return nil, err
		}
		return redisstore.NewStore(client), nil
	case config.BackendSQLite:
		store, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return memory.NewStore(), nil
	}
}

func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return a.run(ctx)
}

// run serves until ctx is done. The store is closed and the logger synced
// on every return path.
func (a *App) run(ctx context.Context) error {
	a.logger.Infof("🚀 Starting recommendations %s on %s", version.String(), a.cfg.ListenPort)
	defer func() { _ = a.logger.Sync() }()
	defer a.closeStore()

	if a.cfg.SeedFile != "" {
		importer := scheduler.NewSeedImporter(a.cfg.SeedFile, a.controller, a.logger)
		if _, err := importer.Import(ctx); err != nil {
			return fmt.Errorf("seed import failed: %w", err)
		}
	}

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	a.logger.Info("✅ recommendations stopped cleanly")
	return nil
}

func (a *App) closeStore() {
	if err := a.store.Close(); err != nil {
		a.logger.Warnf("failed to close %s store: %v", a.cfg.StoreBackend, err)
		return
	}
	a.logger.Info("✅ store closed cleanly", logger.String("backend", a.cfg.StoreBackend))
}
