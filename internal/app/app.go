package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MrSnakeDoc/notary/internal/affordance"
	"github.com/MrSnakeDoc/notary/internal/config"
	"github.com/MrSnakeDoc/notary/internal/controller"
	"github.com/MrSnakeDoc/notary/internal/httpserver"
	"github.com/MrSnakeDoc/notary/internal/httpserver/deps"
	"github.com/MrSnakeDoc/notary/internal/logger"
	"github.com/MrSnakeDoc/notary/internal/redis"
	"github.com/MrSnakeDoc/notary/internal/scheduler"
	"github.com/MrSnakeDoc/notary/internal/store"
	redisstore "github.com/MrSnakeDoc/notary/internal/store/redis"
	sqlitestore "github.com/MrSnakeDoc/notary/internal/store/sqlite"
	"github.com/MrSnakeDoc/notary/internal/utils"
	"github.com/MrSnakeDoc/notary/internal/version"
	"github.com/MrSnakeDoc/notary/internal/view"
)

type App struct {
	cfg        *config.Config
	logger     logger.Logger
	server     *httpserver.Server
	slot       store.Slot
	controller *controller.Controller
	syncer     *scheduler.ViewSyncer
	seeder     *scheduler.Seeder
}

// OpenSlot connects the configured card store backend.
func OpenSlot(ctx context.Context, cfg *config.Config, log logger.Logger) (store.Slot, error) {
	switch cfg.StoreBackend {
	case config.BackendRedis:
		client, err := redis.Connect(ctx, redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			RedisDB:        cfg.RedisDB,
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
		return redisstore.NewSlot(client, redisstore.CardsKey(cfg.StoreKey)), nil

	case config.BackendSQLite:
		log.Info("opening sqlite card store", logger.String("path", cfg.SQLitePath))
		return sqlitestore.Open(ctx, cfg.SQLitePath, cfg.StoreKey)

	case config.BackendMemory:
		log.Warn("memory card store in use, cards are lost on exit")
		return store.NewMemorySlot(""), nil

	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}

// New wires the card store, controller, scheduler and HTTP server.
func New(ctx context.Context, cfg *config.Config, loggerClient logger.Logger) (*App, error) {
	// Fail fast if the store is unavailable
	slot, err := OpenSlot(ctx, cfg, loggerClient)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s card store: %w", cfg.StoreBackend, err)
	}
	loggerClient.Info("card store initialized", logger.String("backend", slot.Name()))

	cards := store.NewCardStore(slot, loggerClient.With(logger.String("component", "store")))
	projection := view.NewProjection()
	ctrl := controller.New(cards, projection, controller.Options{
		ReaddOnDeselect: cfg.ReaddOnDeselect,
	}, loggerClient.With(logger.String("component", "controller")))

	if cfg.ReaddOnDeselect {
		loggerClient.Info("deselecting a card re-adds it to the store (NOTARY_READD_ON_DESELECT=true)")
	}

	// Create manual resync trigger channel
	reloadTrigger := make(chan struct{}, 1)

	syncer := scheduler.NewViewSyncer(ctrl, loggerClient, cfg.ResyncInterval, reloadTrigger)
	affordances := affordance.NewTracker(cfg.AffordanceDwell)

	// Dependencies passed to routes
	d := deps.Deps{
		Logger:         loggerClient,
		StartTime:      time.Now(),
		Version:        version.Version,
		Commit:         version.Commit,
		BuildDate:      version.BuildDate,
		GoVersion:      version.GoVersion,
		TimeNow:        time.Now,
		AllowedHosts:   cfg.AllowedHosts,
		AllowedCIDRS:   cfg.AllowedCIDRS,
		AllowedOrigins: cfg.AllowedOrigins,
		TrustProxy:     cfg.TrustProxy,
		Controller:     ctrl,
		Affordances:    affordances,
		Projection:     projection,
		Slot:           slot,
		ReloadTrigger:  reloadTrigger,
	}

	return &App{
		cfg:        cfg,
		logger:     loggerClient,
		server:     httpserver.New(cfg, loggerClient, d),
		slot:       slot,
		controller: ctrl,
		syncer:     syncer,
		seeder:     scheduler.NewSeeder(ctrl, loggerClient),
	}, nil
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting Notary %s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Info(version.String())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer utils.MustClose(a.slot, "card store", a.logger)

	// Load the views and start periodic resync
	if err := a.syncer.Start(ctx); err != nil {
		return fmt.Errorf("failed to start view syncer: %w", err)
	}
	a.logger.Info("view syncer started",
		logger.Duration("interval", a.cfg.ResyncInterval))

	if a.cfg.SeedFile != "" {
		if _, err := a.seeder.SeedFile(ctx, a.cfg.SeedFile); err != nil {
			// Don't fail - the store may already hold everything the file has
			a.logger.Warn("failed to seed cards", logger.String("file", a.cfg.SeedFile), logger.Error(err))
		}
	}

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case runErr = <-errCh:
	}

	a.syncer.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil && runErr == nil {
		runErr = fmt.Errorf("failed to stop server: %w", err)
	}

	if runErr == nil {
		a.logger.Info("✅ Notary stopped cleanly")
	}
	return runErr
}
