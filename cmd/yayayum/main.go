// Package main консольный клиент yayayum.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/magabrotheeeer/yayayum/internal/app/yayayum"
	"github.com/magabrotheeeer/yayayum/internal/cli"
	"github.com/magabrotheeeer/yayayum/internal/config"
	"github.com/magabrotheeeer/yayayum/internal/lib/sl"
)

const envLocal = "local"

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "cannot read .env: %s\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCmd(func(ctx context.Context) (*yayayum.App, error) {
		cfg := config.MustLoad()
		logger := setupLogger(cfg)
		logger.Debug("starting yayayum", slog.String("env", cfg.Env), slog.String("api", cfg.BaseURL))
		return yayayum.New(ctx, cfg, logger)
	})

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
}

func setupLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: sl.ParseLevel(cfg.LogLevel)}
	if cfg.Env == envLocal {
		return slog.New(slog.NewTextHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, opts))
}
