package app

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/polymarket-pnl/internal/bet"
	"github.com/rovshanmuradov/polymarket-pnl/internal/config"
	"github.com/rovshanmuradov/polymarket-pnl/internal/logger"
	"github.com/rovshanmuradov/polymarket-pnl/internal/price"
	"github.com/rovshanmuradov/polymarket-pnl/internal/report"
)

func newTestRunner(cfg *config.Config, opts *Options, out *bytes.Buffer) *Runner {
	return &Runner{
		logger: &logger.Logger{Logger: zap.NewNop()},
		cfg:    cfg,
		opts:   opts,
		writer: report.NewWriter(zap.NewNop()),
		out:    out,
	}
}

func TestRunnerHappyPath(t *testing.T) {
	dir := t.TempDir()
	opts := &Options{
		Stake:     "500",
		Side:      "yes",
		Entry:     "0.43",
		ProfitFee: "0.02",
		TakerFee:  "0.0001",
		OutputDir: dir,
		Title:     "Will the Fed cut rates in September?",
	}
	var out bytes.Buffer
	r := newTestRunner(&config.Config{}, opts, &out)

	require.NoError(t, r.Run(context.Background()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	console := out.String()
	assert.Contains(t, console, "Will the Fed cut rates in September?")
	assert.Contains(t, console, "WIN")
	assert.Contains(t, console, "LOSE")
	assert.Contains(t, console, "1149.4849")
	assert.Contains(t, console, "-500.0500")
	assert.Contains(t, console, "129.897%")
	assert.Contains(t, console, ".csv")
	assert.Contains(t, console, ".xlsx")
}

func TestRunnerEntryWinsOverScreenshot(t *testing.T) {
	// With an explicit entry price OCR must not run: the screenshot path does
	// not exist and no OCR engine is installed, yet the run succeeds.
	dir := t.TempDir()
	opts := &Options{
		Stake:      "100",
		Side:       "no",
		Entry:      "0.6",
		Screenshot: filepath.Join(dir, "missing.png"),
		OutputDir:  dir,
	}
	var out bytes.Buffer
	r := newTestRunner(&config.Config{}, opts, &out)

	require.NoError(t, r.Run(context.Background()))
}

func TestRunnerDomainErrorIsNotUsage(t *testing.T) {
	opts := &Options{
		Stake:     "500",
		Side:      "yes",
		Entry:     "1.2",
		OutputDir: t.TempDir(),
	}
	var out bytes.Buffer
	r := newTestRunner(&config.Config{}, opts, &out)

	err := r.Run(context.Background())
	require.Error(t, err)

	var ipe *bet.InvalidParameterError
	require.True(t, errors.As(err, &ipe))
	assert.Equal(t, "entry_price", ipe.Field)
	assert.False(t, errors.Is(err, ErrUsage))
	assert.Empty(t, out.String(), "no summary on failure")
}

func TestResolveFeePrecedence(t *testing.T) {
	cfg := &config.Config{
		Fees: config.Fees{ProfitFeePct: "0.02", TakerFeePct: "0.0001"},
	}
	opts := &Options{Stake: "500", Side: "yes", Entry: "0.43", OutputDir: "out"}
	r := newTestRunner(cfg, opts, &bytes.Buffer{})

	params, src, dir, err := r.resolve()
	require.NoError(t, err)
	assert.Equal(t, "out", dir)
	assert.True(t, params.ProfitFeePct.Equal(decimal.RequireFromString("0.02")), "config fills the gap")
	assert.True(t, params.TakerFeePct.Equal(decimal.RequireFromString("0.0001")))
	assert.IsType(t, price.Explicit{}, src)

	opts.ProfitFee = "0.1"
	params, _, _, err = r.resolve()
	require.NoError(t, err)
	assert.True(t, params.ProfitFeePct.Equal(decimal.RequireFromString("0.1")), "flag wins over config")
}

func TestResolveTitlePrecedence(t *testing.T) {
	cfg := &config.Config{Report: config.Report{Title: "From Config", OutputDir: "cfg-out"}}
	opts := &Options{Stake: "1", Side: "yes", Entry: "0.5"}
	r := newTestRunner(cfg, opts, &bytes.Buffer{})

	params, _, dir, err := r.resolve()
	require.NoError(t, err)
	assert.Equal(t, "From Config", params.MarketTitle)
	assert.Equal(t, "cfg-out", dir)

	opts.Title = "From Flag"
	params, _, _, err = r.resolve()
	require.NoError(t, err)
	assert.Equal(t, "From Flag", params.MarketTitle)
}

func TestResolveScreenshotSource(t *testing.T) {
	cfg := &config.Config{OCR: config.OCR{TesseractPath: "/opt/ocr/tesseract"}}
	opts := &Options{Stake: "5", Side: "yes", Screenshot: "shot.png", OutputDir: "out"}
	r := newTestRunner(cfg, opts, &bytes.Buffer{})

	_, src, _, err := r.resolve()
	require.NoError(t, err)

	shot, ok := src.(*price.Screenshot)
	require.True(t, ok)
	assert.Equal(t, "shot.png", shot.Path)
	assert.Equal(t, bet.SideYes, shot.Side)
	assert.Equal(t, "/opt/ocr/tesseract", shot.Binary)
}

func TestResolveMissingOutputDir(t *testing.T) {
	opts := &Options{Stake: "5", Side: "yes", Entry: "0.5"}
	r := newTestRunner(&config.Config{}, opts, &bytes.Buffer{})

	_, _, _, err := r.resolve()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUsage))
	assert.Contains(t, err.Error(), "output_dir")
}

func TestRunnerCSVCarriesResolvedTitle(t *testing.T) {
	dir := t.TempDir()
	opts := &Options{
		Stake:     "250",
		Side:      "no",
		Entry:     "0.58",
		OutputDir: dir,
	}
	cfg := &config.Config{Report: config.Report{Title: "Fed September Cut"}}
	var out bytes.Buffer
	r := newTestRunner(cfg, opts, &out)

	require.NoError(t, r.Run(context.Background()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	var csvName string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".csv") {
			csvName = e.Name()
		}
	}
	require.NotEmpty(t, csvName)

	raw, err := os.ReadFile(filepath.Join(dir, csvName))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "Fed September Cut")
	assert.Contains(t, string(raw), "NO")
}
