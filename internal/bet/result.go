// internal/bet/result.go
package bet

import "github.com/shopspring/decimal"

// Result holds the derived quantities for both resolution scenarios of one
// bet. It is computed fresh per invocation and never mutated; Params is the
// normalized input it was derived from.
type Result struct {
	Params Parameters

	Shares decimal.Decimal // stake / entry price

	// Entry-side fees, charged on the stake regardless of outcome.
	EntryTakerFee   decimal.Decimal
	EntryTradingFee decimal.Decimal
	EntryFees       decimal.Decimal // taker + trading

	// Win scenario.
	WinGrossPayout decimal.Decimal // shares x settlement per share
	WinGrossProfit decimal.Decimal // gross payout - stake
	WinProfitFee   decimal.Decimal // zero when gross profit is not positive
	WinNetPayout   decimal.Decimal // gross payout - profit fee - entry fees - gas
	WinNetProfit   decimal.Decimal // net payout - stake
	WinReturnPct   decimal.Decimal // net profit / stake (1.0 == +100%)

	// Lose scenario.
	LoseNetPayout decimal.Decimal // always zero, shares expire worthless
	LoseNetLoss   decimal.Decimal // -(stake + entry fees + gas), negative
	LoseReturnPct decimal.Decimal // net loss / stake, negative
}
