package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"ishakiro/internal/adapters/api"
	"ishakiro/internal/adapters/cli"
	"ishakiro/internal/application"
	"ishakiro/internal/config"
	"ishakiro/internal/infrastructure/i18n"
	"ishakiro/internal/infrastructure/logging"
	"ishakiro/internal/infrastructure/state"
	"ishakiro/internal/infrastructure/storage"
	"ishakiro/internal/infrastructure/telemetry"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	level, _ := cfg.Level()
	logger, closeLog, err := logging.New(logging.Options{Level: level, File: cfg.LogFile})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Init(ctx, cfg.TraceFile, logger)
	if err != nil {
		logger.Error("telemetry init failed", "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer shutdownTracing()

	translator, err := i18n.NewTranslator(logger)
	if err != nil {
		logger.Error("load translations failed", "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	// Without durable storage the session still works for this process.
	var store storage.Store
	store, err = storage.Open(ctx, storage.Options{
		Backend:     cfg.StorageBackend,
		FilePath:    cfg.StatePath,
		SQLitePath:  cfg.SQLitePath,
		DatabaseURL: cfg.DatabaseURL,
	}, logger)
	if err != nil {
		logger.Warn("durable storage unavailable, keeping state in memory", "backend", cfg.StorageBackend, "error", err)
		store = storage.NewMemory()
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("close storage failed", "error", err)
		}
	}()

	session := state.NewSessionStore(store, logger)
	if err := session.Load(ctx); err != nil {
		logger.Warn("load session failed", "error", err)
	}
	locale := application.NewLocaleService(translator, state.NewLocaleStore(i18n.DefaultLocale, store, logger))
	if err := locale.InitLanguage(ctx); err != nil {
		logger.Warn("load language failed", "error", err)
	}

	client := api.New(cfg.APIURL, session,
		api.WithTimeout(cfg.HTTPTimeout),
		api.WithLogger(logger),
	)
	auth := application.NewAuthService(client.Auth, session, logger)

	handler := cli.NewHandler(auth, locale, client, os.Stdout, os.Stderr, logger)
	return handler.Run(ctx, os.Args[1:])
}
