// internal/app/runner.go
package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/polymarket-pnl/internal/bet"
	"github.com/rovshanmuradov/polymarket-pnl/internal/config"
	"github.com/rovshanmuradov/polymarket-pnl/internal/logger"
	"github.com/rovshanmuradov/polymarket-pnl/internal/price"
	"github.com/rovshanmuradov/polymarket-pnl/internal/report"
)

// Runner wires one CLI invocation end to end: resolve inputs, pull the entry
// price from its source, compute, write the report pair, print the summary.
type Runner struct {
	logger *logger.Logger
	cfg    *config.Config
	opts   *Options
	writer *report.Writer
	out    io.Writer
}

func NewRunner(cfg *config.Config, opts *Options, log *logger.Logger) *Runner {
	return &Runner{
		logger: log,
		cfg:    cfg,
		opts:   opts,
		writer: report.NewWriter(log.WithComponent("report")),
		out:    os.Stdout,
	}
}

func (r *Runner) Run(ctx context.Context) error {
	defer r.logger.TrackPerformance("pnl_run")()

	params, src, outputDir, err := r.resolve()
	if err != nil {
		return err
	}

	entry, err := src.Resolve(ctx)
	if err != nil {
		return fmt.Errorf("entry price: %w", err)
	}
	params.EntryPrice = entry

	if shot, ok := src.(*price.Screenshot); ok {
		r.logger.Info("🔍 Entry price extracted from screenshot",
			zap.String("image", shot.Path),
			zap.String("entry_price", entry.String()))
		if params.MarketTitle == "" {
			if ex := shot.Extraction(); ex != nil {
				params.MarketTitle = ex.Title
			}
		}
	}

	res, err := bet.Compute(params)
	if err != nil {
		return err
	}
	r.logger.Info("📊 PnL computed",
		zap.String("market", res.Params.MarketTitle),
		zap.String("side", res.Params.Side.String()),
		zap.String("stake", res.Params.Stake.String()),
		zap.String("entry_price", res.Params.EntryPrice.String()),
		zap.String("shares", res.Shares.String()))

	files, err := r.writer.Write(res, outputDir)
	if err != nil {
		return err
	}

	r.printSummary(res, files)
	return nil
}

// resolve merges flags with the config layer. Flags win when given; config
// values already carry env > file > default precedence from viper.
func (r *Runner) resolve() (bet.Parameters, price.Source, string, error) {
	var p bet.Parameters
	var err error

	// Side and stake were syntax-checked by ParseArgs.
	p.Side, err = bet.ParseSide(r.opts.Side)
	if err != nil {
		return p, nil, "", usageErr("--side must be yes or no, got %q", r.opts.Side)
	}
	p.Stake, err = decimal.NewFromString(r.opts.Stake)
	if err != nil {
		return p, nil, "", usageErr("--stake: %q is not a number", r.opts.Stake)
	}

	if p.ProfitFeePct, err = resolveDecimal("profit_fee_pct", r.opts.ProfitFee, r.cfg.Fees.ProfitFeePct); err != nil {
		return p, nil, "", err
	}
	if p.TakerFeePct, err = resolveDecimal("taker_fee_pct", r.opts.TakerFee, r.cfg.Fees.TakerFeePct); err != nil {
		return p, nil, "", err
	}
	if p.TradingFeePct, err = resolveDecimal("trading_fee_pct", r.opts.TradingFee, r.cfg.Fees.TradingFeePct); err != nil {
		return p, nil, "", err
	}
	if p.Gas, err = resolveDecimal("gas", r.opts.Gas, r.cfg.Fees.Gas); err != nil {
		return p, nil, "", err
	}

	p.MarketTitle = r.opts.Title
	if p.MarketTitle == "" {
		p.MarketTitle = r.cfg.Report.Title
	}

	outputDir := r.opts.OutputDir
	if outputDir == "" {
		outputDir = r.cfg.Report.OutputDir
	}
	if outputDir == "" {
		return p, nil, "", usageErr("--output_dir is required (or set report.output_dir)")
	}

	// An explicit entry price wins over the screenshot; OCR is not invoked.
	var src price.Source
	if r.opts.Entry != "" {
		v, err := decimal.NewFromString(r.opts.Entry)
		if err != nil {
			return p, nil, "", usageErr("--entry: %q is not a number", r.opts.Entry)
		}
		src = price.Explicit{Value: v}
	} else {
		shot := price.NewScreenshot(r.opts.Screenshot, p.Side, r.logger.WithComponent("ocr"))
		if r.cfg.OCR.TesseractPath != "" {
			shot.Binary = r.cfg.OCR.TesseractPath
		}
		src = shot
	}

	return p, src, outputDir, nil
}

// resolveDecimal picks the flag value when given, otherwise the config value,
// otherwise zero.
func resolveDecimal(field, flagVal, cfgVal string) (decimal.Decimal, error) {
	s := flagVal
	if s == "" {
		s = cfgVal
	}
	if s == "" {
		return decimal.Decimal{}, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid %s value %q", field, s)
	}
	return d, nil
}

var hundred = decimal.NewFromInt(100)

func pctLabel(fraction decimal.Decimal) string {
	return fraction.Mul(hundred).StringFixed(3) + "%"
}

func (r *Runner) printSummary(res *bet.Result, files *report.Files) {
	p := res.Params

	fmt.Fprintf(r.out, "\n%s | %s @ %s | stake %s USDC\n",
		p.MarketTitle, p.Side, p.EntryPrice.StringFixed(4), p.Stake.StringFixed(2))

	table := tablewriter.NewWriter(r.out)
	table.Header("Scenario", "Gross Payout", "Fees", "Net Payout", "Net Profit", "Return")
	table.Append("WIN",
		res.WinGrossPayout.StringFixed(4),
		res.WinProfitFee.Add(res.EntryFees).Add(p.Gas).StringFixed(4),
		res.WinNetPayout.StringFixed(4),
		res.WinNetProfit.StringFixed(4),
		pctLabel(res.WinReturnPct),
	)
	table.Append("LOSE",
		decimal.Zero.StringFixed(4),
		res.EntryFees.Add(p.Gas).StringFixed(4),
		res.LoseNetPayout.StringFixed(4),
		res.LoseNetLoss.StringFixed(4),
		pctLabel(res.LoseReturnPct),
	)
	table.Render()

	fmt.Fprintf(r.out, "  shares: %s | entry fees: %s | gas: %s\n",
		res.Shares.StringFixed(6), res.EntryFees.StringFixed(4), p.Gas.StringFixed(2))
	if files != nil {
		fmt.Fprintf(r.out, "  reports: %s | %s\n", files.CSVPath, files.XLSXPath)
	}
}
