package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rovshanmuradov/polymarket-pnl/internal/app"
	"github.com/rovshanmuradov/polymarket-pnl/internal/config"
	"github.com/rovshanmuradov/polymarket-pnl/internal/logger"
)

func main() {
	opts, err := app.ParseArgs(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log, err := logger.New(&logger.Config{
		Debug:      opts.Debug || cfg.Logging.Debug,
		LogFile:    cfg.Logging.LogFile,
		MaxSize:    cfg.Logging.MaxSizeMB,
		MaxAge:     cfg.Logging.MaxAgeDays,
		MaxBackups: cfg.Logging.MaxBackups,
		Compress:   cfg.Logging.Compress,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	// One run id correlates every log line of this invocation.
	log = log.WithRun()

	// OCR is the only blocking call; Ctrl+C cancels it.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runner := app.NewRunner(cfg, opts, log)
	if err := runner.Run(ctx); err != nil {
		log.LogError("💥 Run failed", err)
		_ = log.Sync()
		if errors.Is(err, app.ErrUsage) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
