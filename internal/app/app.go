package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/freenight/internal/config"
	"github.com/MrSnakeDoc/freenight/internal/httpserver"
	"github.com/MrSnakeDoc/freenight/internal/httpserver/deps"
	"github.com/MrSnakeDoc/freenight/internal/index"
	"github.com/MrSnakeDoc/freenight/internal/logger"
	"github.com/MrSnakeDoc/freenight/internal/lookup"
	"github.com/MrSnakeDoc/freenight/internal/provider"
	"github.com/MrSnakeDoc/freenight/internal/redis"
	"github.com/MrSnakeDoc/freenight/internal/scheduler"
	redisstore "github.com/MrSnakeDoc/freenight/internal/store/redis"
	"github.com/MrSnakeDoc/freenight/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	memIndex    *index.MemoryIndex
	refresher   *scheduler.CatalogRefresher
	gc          *scheduler.GarbageCollector
}

// New wires the service. Redis is optional: when it is disabled or
// unreachable the service runs without result cache or catalog persistence.
func New(cfg *config.Config, loggerClient logger.Logger) (*App, error) {
	prober, providers, err := NewProber(cfg, loggerClient)
	if err != nil {
		return nil, fmt.Errorf("failed to build prober: %w", err)
	}
	loggerClient.Info("providers configured",
		logger.Bool("lightweight", providers.Lightweight.Configured()),
		logger.Bool("primary_js", providers.PrimaryJS.Configured()),
		logger.Bool("secondary_js", providers.SecondaryJS.Configured()))

	redisClient := connectRedis(cfg, loggerClient)

	var (
		store      *redisstore.Store
		cache      lookup.ResultCache
		hotelStore scheduler.HotelStore
	)
	memIndex := index.NewMemoryIndex()

	if redisClient != nil {
		store = redisstore.NewStore(redisClient)
		cache = store
		hotelStore = store

		// Warm the catalog from Redis so it is served before the first refresh ends
		syncer := scheduler.NewRedisSyncer(store, memIndex, loggerClient)
		if err := syncer.Sync(context.Background()); err != nil {
			loggerClient.Warn("failed to sync hotels from redis on startup",
				logger.Error(err))
		}
	}

	// Create manual refresh trigger channel
	refreshTrigger := make(chan struct{}, 1)

	var landingFetchers []provider.Fetcher
	if cfg.CatalogScrape {
		landingFetchers = []provider.Fetcher{providers.PrimaryJS, providers.SecondaryJS, providers.Lightweight}
	}
	refresher := scheduler.NewCatalogRefresher(scheduler.CatalogOptions{
		SeedFile:   cfg.HotelsFile,
		LandingURL: cfg.CatalogURL,
		Fetchers:   landingFetchers,
		Interval:   cfg.CatalogInterval,
	}, hotelStore, memIndex, loggerClient, refreshTrigger)
	if !refresher.Enabled() {
		refreshTrigger = nil
	}

	gc := scheduler.NewGarbageCollector(
		hotelStore,
		memIndex,
		loggerClient,
		cfg.GCInterval,
		scheduler.DefaultGCThreshold,
	)

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
		TrustProxy:     cfg.TrustProxy,
		Store:          store,
		MemoryIndex:    memIndex,
		Prober:         prober,
		Lookup:         lookup.NewService(prober, cache, cfg.ResultCacheTTL, loggerClient),
		RefreshTrigger: refreshTrigger,
		MaxDates:       cfg.MaxDates,
		RateBurst:      cfg.RateBurst,
		RatePerMin:     cfg.RatePerMin,
	}

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      httpserver.New(cfg, loggerClient, d),
		redisClient: redisClient,
		memIndex:    memIndex,
		refresher:   refresher,
		gc:          gc,
	}, nil
}

func connectRedis(cfg *config.Config, loggerClient logger.Logger) *goredis.Client {
	if !cfg.RedisEnabled() {
		loggerClient.Info("redis not configured, result cache disabled")
		return nil
	}

	loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
	client, err := redis.Connect(context.Background(), redis.ConnectOptions{
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
	}, loggerClient)
	if err != nil {
		if !errors.Is(err, redis.ErrDisabled) {
			loggerClient.Warn("redis unavailable, running without result cache", logger.Error(err))
		}
		return nil
	}
	loggerClient.Info("Redis initialized successfully")
	return client
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting freenight v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Info(version.String())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start catalog refresher (loads hotels and starts periodic refresh)
	if err := a.refresher.Start(ctx); err != nil {
		return fmt.Errorf("failed to start catalog refresher: %w", err)
	}
	a.logger.Info("catalog refresher started",
		logger.Duration("interval", a.cfg.CatalogInterval))

	if err := a.gc.Start(ctx); err != nil {
		return fmt.Errorf("failed to start garbage collector: %w", err)
	}
	a.logger.Info("garbage collector started",
		logger.Duration("interval", a.cfg.GCInterval))

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

	a.refresher.Stop()
	a.gc.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		} else {
			a.logger.Info("✅ Redis closed cleanly")
		}
	}

	a.logger.Info("✅ freenight stopped cleanly")
	return nil
}
