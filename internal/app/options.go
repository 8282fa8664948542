package app

import (
	"errors"
	"flag"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rovshanmuradov/polymarket-pnl/internal/bet"
)

// ErrUsage marks command-line mistakes. main exits with the conventional
// code 2 for these, and 1 for everything else.
var ErrUsage = errors.New("invalid usage")

func usageErr(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrUsage, fmt.Sprintf(format, args...))
}

// Options holds the raw command line. Numeric values stay strings here so
// they can be parsed into decimals without a float64 round trip; empty means
// the flag was not given and the config layer decides.
type Options struct {
	Stake      string
	Side       string
	Entry      string
	Screenshot string
	ProfitFee  string
	TakerFee   string
	TradingFee string
	Gas        string
	OutputDir  string
	Title      string
	ConfigPath string
	Debug      bool
}

// ParseArgs parses and validates the command line. Flag-level problems come
// back wrapped in ErrUsage; -h/-help returns flag.ErrHelp untouched.
func ParseArgs(args []string) (*Options, error) {
	opts := &Options{}

	fs := flag.NewFlagSet("pnl", flag.ContinueOnError)
	fs.StringVar(&opts.Stake, "stake", "", "amount wagered in USDC (required)")
	fs.StringVar(&opts.Side, "side", "", "bet side: yes or no (required)")
	fs.StringVar(&opts.Entry, "entry", "", "entry price per share, in (0, 1)")
	fs.StringVar(&opts.Screenshot, "screenshot", "", "market screenshot to OCR the entry price from")
	fs.StringVar(&opts.ProfitFee, "profit_fee_pct", "", "fee fraction charged on winning profit")
	fs.StringVar(&opts.TakerFee, "taker_fee_pct", "", "taker fee fraction charged on the stake")
	fs.StringVar(&opts.TradingFee, "trading_fee_pct", "", "trading fee fraction charged on the stake")
	fs.StringVar(&opts.Gas, "gas", "", "flat gas cost in USDC")
	fs.StringVar(&opts.OutputDir, "output_dir", "", "directory for the report pair (required)")
	fs.StringVar(&opts.Title, "title", "", "market title shown in the report")
	fs.StringVar(&opts.ConfigPath, "config", "", "path to a config file")
	fs.BoolVar(&opts.Debug, "debug", false, "enable debug logging")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}

	if err := opts.validate(); err != nil {
		return nil, err
	}
	return opts, nil
}

func (o *Options) validate() error {
	if o.Stake == "" {
		return usageErr("--stake is required")
	}
	if o.Side == "" {
		return usageErr("--side is required")
	}
	if _, err := bet.ParseSide(o.Side); err != nil {
		return usageErr("--side must be yes or no, got %q", o.Side)
	}
	if o.Entry == "" && o.Screenshot == "" {
		return usageErr("either --entry or --screenshot is required")
	}

	// Range checks belong to the calculator; here only "is it a number".
	numeric := []struct {
		name, value string
	}{
		{"stake", o.Stake},
		{"entry", o.Entry},
		{"profit_fee_pct", o.ProfitFee},
		{"taker_fee_pct", o.TakerFee},
		{"trading_fee_pct", o.TradingFee},
		{"gas", o.Gas},
	}
	for _, f := range numeric {
		if f.value == "" {
			continue
		}
		if _, err := decimal.NewFromString(f.value); err != nil {
			return usageErr("--%s: %q is not a number", f.name, f.value)
		}
	}
	return nil
}
