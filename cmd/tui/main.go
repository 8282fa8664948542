package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rovshanmuradov/polymarket-pnl/internal/config"
	"github.com/rovshanmuradov/polymarket-pnl/internal/logger"
	"github.com/rovshanmuradov/polymarket-pnl/internal/report"
	"github.com/rovshanmuradov/polymarket-pnl/internal/ui"
	"github.com/rovshanmuradov/polymarket-pnl/internal/ui/screen"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Console output would corrupt the alt screen, so the TUI logger
	// writes to the rotated file only (or nowhere).
	appLogger, err := logger.NewTUI(&logger.Config{
		Debug:      *debug || cfg.Logging.Debug,
		LogFile:    cfg.Logging.LogFile,
		MaxSize:    cfg.Logging.MaxSizeMB,
		MaxAge:     cfg.Logging.MaxAgeDays,
		MaxBackups: cfg.Logging.MaxBackups,
		Compress:   cfg.Logging.Compress,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = appLogger.Sync()
	}()

	// One run id correlates every log line of this session.
	appLogger = appLogger.WithRun()

	appLogger.Info("🚀 Starting PnL calculator TUI")

	writer := report.NewWriter(appLogger.WithComponent("report"))
	calculator := screen.NewCalculator(cfg, writer, appLogger.WithComponent("ui"))
	model := ui.NewSafeUIWrapper(calculator, appLogger.WithComponent("ui"))

	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		appLogger.LogError("💥 TUI application failed", err)
		_ = appLogger.Sync()
		fmt.Fprintf(os.Stderr, "TUI failed: %v\n", err)
		os.Exit(1)
	}

	appLogger.Info("👋 PnL calculator TUI closed")
}
