package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/warrick-io/warrick/cmd/warrickctl/cli"
	"github.com/warrick-io/warrick/internal/app"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "warning: could not load .env file: %v\n", err)
	}

	cfg, err := app.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	open := func(ctx context.Context) (*cli.Env, func(), error) {
		store, closeStore, err := app.OpenStore(ctx, cfg, logger)
		if err != nil {
			return nil, nil, err
		}
		services, err := app.NewServices(store, cfg, logger, nil)
		if err != nil {
			closeStore()
			return nil, nil, err
		}
		return &cli.Env{Store: store, Services: services}, closeStore, nil
	}

	if err := cli.NewRootCommand(open).ExecuteContext(ctx); err != nil {
		logger.Error("command failed", slog.Any("error", err))
		os.Exit(1)
	}
}
