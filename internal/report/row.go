package report

import (
	"github.com/shopspring/decimal"

	"github.com/rovshanmuradov/polymarket-pnl/internal/bet"
)

// Headers returns the column names shared by the CSV and XLSX reports.
func Headers() []string {
	return []string{
		"Market",
		"Side",
		"Stake (USDC)",
		"Entry Price",
		"Shares",
		"Settlement/Share",
		"Profit Fee %",
		"Taker Fee %",
		"Trading Fee %",
		"Gas (USDC)",
		"Win: Gross Payout",
		"Win: Gross Profit",
		"Win: Profit Fee",
		"Win: Entry Fees",
		"Win: Net Payout",
		"Win: Net Profit",
		"Win: Return %",
		"Lose: Net Loss",
		"Lose: Return %",
	}
}

// Record flattens one computed bet into report cells. All rounding lives
// here, at the presentation boundary; the calculator keeps full precision.
func Record(res *bet.Result) []string {
	p := res.Params
	return []string{
		p.MarketTitle,
		p.Side.String(),
		p.Stake.StringFixed(2),
		p.EntryPrice.StringFixed(4),
		res.Shares.StringFixed(6),
		p.SettlementPerShare.StringFixed(4),
		percent(p.ProfitFeePct),
		percent(p.TakerFeePct),
		percent(p.TradingFeePct),
		p.Gas.StringFixed(2),
		res.WinGrossPayout.StringFixed(4),
		res.WinGrossProfit.StringFixed(4),
		res.WinProfitFee.StringFixed(4),
		res.EntryFees.StringFixed(4),
		res.WinNetPayout.StringFixed(4),
		res.WinNetProfit.StringFixed(4),
		percent(res.WinReturnPct),
		res.LoseNetLoss.StringFixed(4),
		percent(res.LoseReturnPct),
	}
}

var hundred = decimal.NewFromInt(100)

// percent renders a fraction as a percentage number, three decimals.
func percent(fraction decimal.Decimal) string {
	return fraction.Mul(hundred).StringFixed(3)
}
