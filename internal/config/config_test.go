package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	// No config file anywhere near the test working directory.
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "0", cfg.Fees.ProfitFeePct)
	assert.Equal(t, "0", cfg.Fees.TakerFeePct)
	assert.Equal(t, "0", cfg.Fees.TradingFeePct)
	assert.Equal(t, "0", cfg.Fees.Gas)
	assert.Empty(t, cfg.Report.OutputDir)
	assert.Empty(t, cfg.OCR.TesseractPath)
	assert.False(t, cfg.Logging.Debug)
	assert.Equal(t, 100, cfg.Logging.MaxSizeMB)
	assert.Equal(t, 3, cfg.Logging.MaxBackups)
	assert.Equal(t, 7, cfg.Logging.MaxAgeDays)
	assert.True(t, cfg.Logging.Compress)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
fees:
  profit_fee_pct: "0.02"
  taker_fee_pct: 0.0001
  gas: "0.15"
report:
  output_dir: reports
  title: Test Market
ocr:
  tesseract_path: /usr/local/bin/tesseract
logging:
  debug: true
  log_file: pnl.log
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "0.02", cfg.Fees.ProfitFeePct)
	// Unquoted YAML numbers must survive as their exact literal.
	assert.Equal(t, "0.0001", cfg.Fees.TakerFeePct)
	assert.Equal(t, "0", cfg.Fees.TradingFeePct, "untouched key keeps its default")
	assert.Equal(t, "0.15", cfg.Fees.Gas)
	assert.Equal(t, "reports", cfg.Report.OutputDir)
	assert.Equal(t, "Test Market", cfg.Report.Title)
	assert.Equal(t, "/usr/local/bin/tesseract", cfg.OCR.TesseractPath)
	assert.True(t, cfg.Logging.Debug)
	assert.Equal(t, "pnl.log", cfg.Logging.LogFile)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "fees:\n  taker_fee_pct: \"0.5\"\n")
	t.Setenv("POLYPNL_FEES_TAKER_FEE_PCT", "0.0001")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "0.0001", cfg.Fees.TakerFeePct)
}

func TestLoadExplicitMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope.yaml")
}

func TestLoadValidation(t *testing.T) {
	cases := []struct {
		name    string
		content string
		wantIn  string
	}{
		{"fee out of range", "fees:\n  profit_fee_pct: \"1.5\"\n", "fees.profit_fee_pct"},
		{"fee negative", "fees:\n  taker_fee_pct: \"-0.1\"\n", "fees.taker_fee_pct"},
		{"fee not a number", "fees:\n  trading_fee_pct: lots\n", "fees.trading_fee_pct"},
		{"gas negative", "fees:\n  gas: \"-1\"\n", "fees.gas"},
		{"gas not a number", "fees:\n  gas: cheap\n", "fees.gas"},
		{"negative rotation", "logging:\n  max_backups: -2\n", "rotation"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantIn)
		})
	}
}
