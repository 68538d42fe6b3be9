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

	"github.com/MrSnakeDoc/planopro/internal/assets"
	"github.com/MrSnakeDoc/planopro/internal/config"
	"github.com/MrSnakeDoc/planopro/internal/httpserver"
	"github.com/MrSnakeDoc/planopro/internal/httpserver/deps"
	"github.com/MrSnakeDoc/planopro/internal/logger"
	"github.com/MrSnakeDoc/planopro/internal/metrics"
	"github.com/MrSnakeDoc/planopro/internal/nav"
	"github.com/MrSnakeDoc/planopro/internal/redis"
	"github.com/MrSnakeDoc/planopro/internal/scheduler"
	"github.com/MrSnakeDoc/planopro/internal/session"
	"github.com/MrSnakeDoc/planopro/internal/store"
	"github.com/MrSnakeDoc/planopro/internal/store/memory"
	redisstore "github.com/MrSnakeDoc/planopro/internal/store/redis"
	"github.com/MrSnakeDoc/planopro/internal/ui"
	"github.com/MrSnakeDoc/planopro/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	collector   *scheduler.SessionCollector // nil when Redis holds the state
}

func New() (*App, error) {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	menu, err := nav.Load(cfg.NavFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load navigation menu: %w", err)
	}
	loggerClient.Info("navigation menu loaded",
		logger.String("source", navSource(cfg.NavFile)),
		logger.Int("links", len(menu.Links())))
	for _, item := range ui.UnknownIcons(menu) {
		loggerClient.Warn("unknown menu icon, a placeholder will be shown",
			logger.String("href", item.Href),
			logger.String("icon", item.Icon))
	}

	set, err := assets.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to build assets: %w", err)
	}

	sessions, err := session.NewManager(cfg.SessionSecret, cfg.SessionCookie, cfg.SessionTTL, cfg.SecureCookie)
	if err != nil {
		return nil, fmt.Errorf("failed to init sessions: %w", err)
	}

	var (
		stateStore  store.StateStore
		storeMode   string
		redisClient *goredis.Client
		collector   *scheduler.SessionCollector
	)

	if cfg.UseRedis() {
		// Fail fast: a configured Redis that never answers is a deploy error.
		redisClient, err = redis.New(context.Background(), redis.ConnectOptions{
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
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		stateStore = redisstore.NewStore(redisClient, cfg.SessionTTL)
		storeMode = deps.StoreModeRedis
	} else {
		mem := memory.New()
		stateStore = mem
		storeMode = deps.StoreModeMemory
		collector = scheduler.NewSessionCollector(mem, loggerClient, cfg.GCInterval, cfg.SessionTTL)
	}
	loggerClient.Info("sidebar state store ready",
		logger.String("mode", storeMode),
		logger.Bool("shared", cfg.UseRedis()),
		logger.Duration("ttl", cfg.SessionTTL))

	d := deps.Deps{
		Logger:       loggerClient,
		StartTime:    time.Now(),
		Version:      version.Version,
		Commit:       version.Commit,
		BuildDate:    version.BuildDate,
		GoVersion:    version.GoVersion,
		TimeNow:      time.Now,
		AppName:      cfg.AppName,
		Menu:         menu,
		Store:        stateStore,
		StoreMode:    storeMode,
		Sessions:     sessions,
		Assets:       set,
		Metrics:      metrics.New(),
		AllowedHosts: cfg.AllowedHosts,
		AllowedCIDRS: cfg.AllowedCIDRS,
		TrustProxy:   cfg.TrustProxy,
		RateBurst:    cfg.RateBurst,
		RatePerMin:   cfg.RatePerMin,
	}

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      httpserver.New(cfg, loggerClient, d),
		redisClient: redisClient,
		collector:   collector,
	}, nil
}

func navSource(path string) string {
	if path == "" {
		return "embedded"
	}
	return path
}

func (a *App) Run() error {
	defer func() { _ = a.logger.Sync() }()

	a.logger.Infof("🚀 Starting %s %s on %s", a.cfg.AppName, version.String(), a.cfg.ListenPort)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if a.collector != nil {
		a.collector.Start(ctx)
		a.logger.Info("session collector started",
			logger.Duration("interval", a.cfg.GCInterval))
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
		a.logger.Error("server stopped unexpectedly", logger.Error(runErr))
	}

	if err := a.shutdown(); err != nil {
		return errors.Join(runErr, err)
	}
	if runErr != nil {
		return runErr
	}

	a.logger.Infof("✅ %s stopped cleanly", a.cfg.AppName)
	return nil
}

// shutdown releases everything Run started, whatever made it return.
func (a *App) shutdown() error {
	if a.collector != nil {
		a.collector.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	stopErr := a.server.Stop(ctx)
	if stopErr != nil {
		stopErr = fmt.Errorf("failed to stop server: %w", stopErr)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		} else {
			a.logger.Info("✅ Redis closed cleanly")
		}
	}
	return stopErr
}
