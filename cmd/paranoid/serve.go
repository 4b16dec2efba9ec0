package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/paranoid/core/config"
	"github.com/dmitrymomot/paranoid/core/cookie"
	"github.com/dmitrymomot/paranoid/core/health"
	"github.com/dmitrymomot/paranoid/core/logger"
	"github.com/dmitrymomot/paranoid/core/paranoid"
	"github.com/dmitrymomot/paranoid/core/server"
	"github.com/dmitrymomot/paranoid/core/session"
	"github.com/dmitrymomot/paranoid/core/sessiontransport"
	"github.com/dmitrymomot/paranoid/integration/database/pg"
	"github.com/dmitrymomot/paranoid/integration/database/redis"
	"github.com/dmitrymomot/paranoid/integration/sessionstore/pgstore"
	"github.com/dmitrymomot/paranoid/integration/sessionstore/redisstore"
)

// Session store backends.
const (
	storeMemory   = "memory"
	storeRedis    = "redis"
	storePostgres = "postgres"
)

// serveConfig is loaded from the environment (and .env) at startup.
type serveConfig struct {
	AppName         string        `env:"APP_NAME" envDefault:"paranoid-demo"`
	Store           string        `env:"SESSION_STORE" envDefault:"memory"`
	CleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL" envDefault:"10m"`

	Log       logger.Config
	Server    server.Config
	Session   session.Config
	Cookie    cookie.Config
	Transport sessiontransport.CookieConfig
	Paranoid  paranoid.Config
	Redis     redis.Config
	DB        pg.Config
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the demo web app",
	Long: `Runs a small login app whose sessions are bound to the client fingerprint.
Log in, then repeat a request from another address or browser: the session is
reset and the client is sent back to the login form.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "Listen address (overrides SERVER_ADDR)")
	serveCmd.Flags().String("store", "", "Session store: memory, redis or postgres (overrides SESSION_STORE)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cfg serveConfig
	if err := config.Load(&cfg); err != nil {
		return err
	}
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Server.Addr = addr
	}
	if store, _ := cmd.Flags().GetString("store"); store != "" {
		cfg.Store = store
	}

	log := logger.NewFromConfig(cfg.Log, logger.WithAttr(slog.String("service", cfg.AppName)))
	logger.SetAsDefault(log)

	store, checks, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		log.Error("failed to open session store", logger.Component("session"), logger.Error(err))
		return err
	}
	defer closeStore()

	sessions := session.NewFromConfig(store, cfg.Session)

	if cfg.Cookie.Secrets == "" {
		secret, err := randomSecret()
		if err != nil {
			return err
		}
		cfg.Cookie.Secrets = secret
		log.Warn("COOKIE_SECRETS is not set, using a random secret; sessions will not survive a restart",
			logger.Component("cookie"),
		)
	}
	cookies, err := cookie.NewFromConfig(cfg.Cookie)
	if err != nil {
		log.Error("failed to create cookie manager", logger.Component("cookie"), logger.Error(err))
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	h, err := newHandler(appDeps{
		Logger:    log,
		Transport: sessiontransport.NewCookieFromConfig(cfg.Transport, sessions, cookies),
		Cookies:   cookies,
		Paranoid:  cfg.Paranoid,
		Registry:  reg,
		Checks:    checks,
	})
	if err != nil {
		log.Error("failed to build handler", logger.Component("paranoid"), logger.Error(err))
		return err
	}

	srv, err := server.NewFromConfig(cfg.Server, server.WithLogger(log.With(logger.Component("server"))))
	if err != nil {
		return err
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(srv.Run(ctx, h))
	eg.Go(func() error {
		cleanupLoop(ctx, sessions, cfg.CleanupInterval, log)
		return nil
	})

	if err := eg.Wait(); err != nil {
		log.Error("server stopped with error", logger.Component("server"), logger.Error(err))
		return err
	}

	log.Info("application stopped")
	return nil
}

// openStore connects the configured session backend and returns its readiness
// checks and a close function.
func openStore(ctx context.Context, cfg serveConfig) (session.Store, []health.Check, func(), error) {
	switch cfg.Store {
	case storeMemory, "":
		return session.NewMemoryStore(), nil, func() {}, nil

	case storeRedis:
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, nil, err
		}
		return redisstore.New(client), []health.Check{redis.Healthcheck(client)}, func() { _ = client.Close() }, nil

	case storePostgres:
		pool, err := pg.Connect(ctx, cfg.DB)
		if err != nil {
			return nil, nil, nil, err
		}
		if _, err := pool.Exec(ctx, pgstore.Schema); err != nil {
			pool.Close()
			return nil, nil, nil, fmt.Errorf("create sessions table: %w", err)
		}
		store, err := pgstore.New(pool)
		if err != nil {
			pool.Close()
			return nil, nil, nil, err
		}
		return store, []health.Check{pg.Healthcheck(pool)}, pool.Close, nil

	default:
		return nil, nil, nil, fmt.Errorf("unknown session store %q", cfg.Store)
	}
}

// cleanupLoop removes expired sessions from stores without native expiry.
func cleanupLoop(ctx context.Context, sessions *session.Manager, interval time.Duration, log *slog.Logger) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := sessions.Cleanup(ctx)
			if err != nil {
				log.ErrorContext(ctx, "session cleanup failed", logger.Component("session"), logger.Error(err))
				continue
			}
			if n > 0 {
				log.DebugContext(ctx, "expired sessions removed", logger.Component("session"), slog.Int64("count", n))
			}
		}
	}
}

func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
