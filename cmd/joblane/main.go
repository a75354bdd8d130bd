package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/joblane/backend/cache/ristretto"
	"github.com/joblane/backend/config"
	"github.com/joblane/backend/core"
	"github.com/joblane/backend/db/zombiezen"
	"github.com/joblane/backend/mail"
	"github.com/joblane/backend/router/httprouter"
	"github.com/joblane/backend/server"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to the TOML configuration file")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))

	if err := run(*configPath, logger); err != nil {
		logger.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(configPath string, logger *slog.Logger) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	pool, err := sqlitex.NewPool(cfg.DBFile, sqlitex.PoolOptions{})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	dbAuth, err := zombiezen.New(pool)
	if err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}
	if err := dbAuth.Migrate(context.Background()); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	throttleCache, err := ristretto.New[int]()
	if err != nil {
		return fmt.Errorf("failed to initialize cache: %w", err)
	}

	provider := config.NewProvider(cfg)

	app, err := core.NewApp(
		core.WithDbAuth(dbAuth),
		core.WithCache(throttleCache),
		core.WithConfigProvider(provider),
		core.WithLogger(logger),
		core.WithMailer(mail.New(cfg.Smtp, logger)),
	)
	if err != nil {
		return fmt.Errorf("failed to build app: %w", err)
	}

	r := httprouter.New()
	registerRoutes(app, r)

	srv := server.NewServer(cfg.Server, r, logger, func(ctx context.Context) error {
		logger.Info("closing database pool")
		return pool.Close()
	})
	return srv.Run()
}
