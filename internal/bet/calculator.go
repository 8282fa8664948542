// =============================
// File: internal/bet/calculator.go
// =============================

package bet

import "github.com/shopspring/decimal"

// Compute derives the win and lose scenarios for one bet. The transform is
// pure: either a complete Result is returned or validation fails before any
// arithmetic runs. Side never changes the numbers, only the report labels.
func Compute(p Parameters) (*Result, error) {
	p = p.withDefaults()
	if err := p.Validate(); err != nil {
		return nil, err
	}

	// 1. Shares bought at entry.
	shares := p.Stake.Div(p.EntryPrice)

	// 2. Entry-side fees on the notional, owed in both outcomes.
	takerFee := p.Stake.Mul(p.TakerFeePct)
	tradingFee := p.Stake.Mul(p.TradingFeePct)
	entryFees := takerFee.Add(tradingFee)

	// 3. Win scenario: profit fee on gross profit, then entry fees, gas last.
	grossPayout := shares.Mul(p.SettlementPerShare)
	grossProfit := grossPayout.Sub(p.Stake)
	fee := profitFee(grossProfit, p.ProfitFeePct)
	netPayout := grossPayout.Sub(fee).Sub(entryFees).Sub(p.Gas)
	netProfit := netPayout.Sub(p.Stake)

	// 4. Lose scenario: shares expire worthless, sunk costs stay.
	netLoss := p.Stake.Add(entryFees).Add(p.Gas).Neg()

	return &Result{
		Params:          p,
		Shares:          shares,
		EntryTakerFee:   takerFee,
		EntryTradingFee: tradingFee,
		EntryFees:       entryFees,
		WinGrossPayout:  grossPayout,
		WinGrossProfit:  grossProfit,
		WinProfitFee:    fee,
		WinNetPayout:    netPayout,
		WinNetProfit:    netProfit,
		WinReturnPct:    netProfit.Div(p.Stake),
		LoseNetPayout:   decimal.Zero,
		LoseNetLoss:     netLoss,
		LoseReturnPct:   netLoss.Div(p.Stake),
	}, nil
}

// profitFee charges pct on the gross profit. Break-even and losing exits pay
// no profit fee.
func profitFee(grossProfit, pct decimal.Decimal) decimal.Decimal {
	if grossProfit.Sign() <= 0 {
		return decimal.Zero
	}
	return grossProfit.Mul(pct)
}
