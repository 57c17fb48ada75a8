package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/iudanet/niplan/internal/client/api"
	"github.com/iudanet/niplan/internal/client/auth"
	"github.com/iudanet/niplan/internal/client/cli"
	"github.com/iudanet/niplan/internal/client/iocli"
	"github.com/iudanet/niplan/internal/client/storage"
	"github.com/iudanet/niplan/internal/client/storage/boltdb"
	"github.com/iudanet/niplan/internal/client/storage/memory"
	"github.com/iudanet/niplan/internal/client/transport"
	"github.com/iudanet/niplan/internal/config"
	"github.com/iudanet/niplan/internal/crypto"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	cfg, err := config.LoadClient()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	// Глобальные флаги переопределяют окружение
	showVersion := flag.Bool("version", false, "Show version information")
	flag.StringVar(&cfg.APIURL, "server", cfg.APIURL, "API base URL")
	flag.StringVar(&cfg.DBPath, "db", cfg.DBPath, "Path to local session database")
	flag.StringVar(&cfg.KeyPath, "key", cfg.KeyPath, "Path to session encryption key")
	flag.TextVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level")
	ephemeral := flag.Bool("ephemeral", false, "Keep the session in memory only")
	flag.Usage = func() { cli.PrintUsage(os.Stderr) }
	flag.Parse()

	if *showVersion {
		printVersion()
		return 0
	}

	args := flag.Args()
	if len(args) == 0 {
		cli.PrintUsage(os.Stderr)
		return 1
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg, *ephemeral)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer closeStore()

	stdio := iocli.NewStdio()
	coordinator := transport.NewCoordinator(transport.Config{
		BaseURL:        cfg.APIURL,
		RefreshTimeout: cfg.RefreshTimeout,
	}, store, cli.Navigator(stdio), transport.WithLogger(logger))

	apiClient := api.NewClient(coordinator)
	authService := auth.NewService(apiClient, store, logger)
	app := cli.New(stdio, authService, apiClient, cfg.ShopOrigin)

	if err := app.Run(ctx, args[0], args[1:]); err != nil {
		if errors.Is(err, cli.ErrUnknownCommand) {
			fmt.Fprintf(os.Stderr, "Unknown command: %s\n", args[0])
			cli.PrintUsage(os.Stderr)
			return 1
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// openStore открывает хранилище сессии: BoltDB с шифрованием токенов или память для --ephemeral
func openStore(ctx context.Context, cfg *config.ClientConfig, ephemeral bool) (storage.CredentialStorage, func(), error) {
	if ephemeral {
		return memory.New(), func() {}, nil
	}

	key, err := crypto.LoadOrCreateKey(cfg.KeyPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load encryption key: %w", err)
	}

	boltStorage, err := boltdb.New(ctx, cfg.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	closeStore := func() {
		if err := boltStorage.Close(); err != nil {
			slog.Error("failed to close database", slog.Any("error", err))
		}
	}

	sealed, err := auth.NewSealedStore(boltStorage, key)
	if err != nil {
		closeStore()
		return nil, nil, err
	}
	return sealed, closeStore, nil
}

func printVersion() {
	fmt.Printf("Niplan Client\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
