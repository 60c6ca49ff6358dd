package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/zbreeden/FourTwentyAnalytics/internal/clock"
	"github.com/zbreeden/FourTwentyAnalytics/internal/config"
	"github.com/zbreeden/FourTwentyAnalytics/internal/httpserver"
	"github.com/zbreeden/FourTwentyAnalytics/internal/httpserver/deps"
	"github.com/zbreeden/FourTwentyAnalytics/internal/ingest"
	"github.com/zbreeden/FourTwentyAnalytics/internal/logger"
	"github.com/zbreeden/FourTwentyAnalytics/internal/metrics"
	"github.com/zbreeden/FourTwentyAnalytics/internal/redis"
	"github.com/zbreeden/FourTwentyAnalytics/internal/seeds"
	"github.com/zbreeden/FourTwentyAnalytics/internal/sequence"
	"github.com/zbreeden/FourTwentyAnalytics/internal/store/ledger"
	redisstore "github.com/zbreeden/FourTwentyAnalytics/internal/store/redis"
	"github.com/zbreeden/FourTwentyAnalytics/internal/store/snapshot"
	"github.com/zbreeden/FourTwentyAnalytics/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	metrics.Register()

	// The Redis mirror is optional: a missing address or an unreachable
	// server disables it, never the service.
	var redisClient *goredis.Client
	var mirror *redisstore.Mirror
	if cfg.MirrorEnabled() {
		loggerClient.Infof("Connecting to Redis mirror at %s", cfg.RedisAddr)
		client, err := redis.Connect(redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			DB:             cfg.RedisDB,
			DialTimeout:    cfg.RedisDT,
			ReadTimeout:    cfg.RedisRT,
			WriteTimeout:   cfg.RedisWT,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
		}, loggerClient)
		if err != nil {
			loggerClient.Warnf("Redis mirror unavailable, continuing without it: %v", err)
		} else {
			loggerClient.Info("Redis mirror initialized")
			redisClient = client
			mirror = redisstore.NewMirror(client)
		}
	} else {
		loggerClient.Info("Redis mirror not configured")
	}

	seedLoader := seeds.NewLoader(cfg.SeedsDir)
	authority := clock.New(cfg.TimeZone)
	if authority.UsingFallback() {
		loggerClient.Warnf("zone %s unavailable, timestamps will use UTC", cfg.TimeZone)
	}

	ledgerStore := ledger.New(cfg.LedgerFile)
	if err := ledgerStore.EnsureSchema(); err != nil {
		loggerClient.Errorf("Failed to prepare ledger at %s: %v", cfg.LedgerFile, err)
		os.Exit(1)
	}

	snapshots := snapshot.New(cfg.SignalsDir)
	tickets := sequence.New(cfg.SequenceFile)

	ingestService := ingest.New(seedLoader, authority, ledgerStore, snapshots, mirror, loggerClient)

	d := deps.Deps{
		Logger:        loggerClient,
		StartTime:     time.Now(),
		Version:       version.Version,
		Commit:        version.Commit,
		BuildDate:     version.BuildDate,
		GoVersion:     version.GoVersion,
		TimeNow:       time.Now,
		Ingest:        ingestService,
		Snapshots:     snapshots,
		Seeds:         seedLoader,
		Clock:         authority,
		Sequence:      tickets,
		MirrorEnabled: mirror != nil,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		redisClient: redisClient,
	}
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting broadcastd v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("broadcastd %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

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

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		} else {
			a.logger.Info("✅ Redis closed cleanly")
		}
	}

	a.logger.Info("✅ broadcastd stopped cleanly")
	return nil
}
