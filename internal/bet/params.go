// internal/bet/params.go
package bet

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultMarketTitle labels reports when no market title was supplied or extracted.
const DefaultMarketTitle = "Polymarket Market"

// Side is the outcome token held in a binary market.
type Side string

const (
	SideYes Side = "YES"
	SideNo  Side = "NO"
)

// ParseSide accepts "yes"/"no" in any case.
func ParseSide(s string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes":
		return SideYes, nil
	case "no":
		return SideNo, nil
	default:
		return "", invalidParam("side", "must be \"yes\" or \"no\", got %q", s)
	}
}

func (s Side) String() string { return string(s) }

// Parameters describes a single binary-outcome bet. All monetary values are
// exact decimals; nothing is rounded until report time.
type Parameters struct {
	MarketTitle        string          // free-text label for the report
	Side               Side            // which outcome token is held
	Stake              decimal.Decimal // amount wagered, USDC
	EntryPrice         decimal.Decimal // price paid per share, in (0, SettlementPerShare)
	ProfitFeePct       decimal.Decimal // fraction of gross profit charged on a win, [0, 1)
	TakerFeePct        decimal.Decimal // fraction of stake charged at entry, [0, 1)
	TradingFeePct      decimal.Decimal // additional fraction of stake charged at entry, [0, 1)
	Gas                decimal.Decimal // flat on-chain cost, deducted in both outcomes
	SettlementPerShare decimal.Decimal // payout per share if the side wins; zero means the 1.0 default
}

var one = decimal.NewFromInt(1)

// withDefaults fills the optional fields the zero value leaves empty.
func (p Parameters) withDefaults() Parameters {
	if p.SettlementPerShare.IsZero() {
		p.SettlementPerShare = one
	}
	if p.MarketTitle == "" {
		p.MarketTitle = DefaultMarketTitle
	}
	return p
}

// Validate checks every parameter range and names the first offender.
// A zero SettlementPerShare is treated as the 1.0 default, not an error.
func (p Parameters) Validate() error {
	p = p.withDefaults()
	if p.Side != SideYes && p.Side != SideNo {
		return invalidParam("side", "must be \"yes\" or \"no\", got %q", string(p.Side))
	}
	if p.Stake.Sign() <= 0 {
		return invalidParam("stake", "must be > 0, got %s", p.Stake)
	}
	if p.SettlementPerShare.Sign() <= 0 {
		return invalidParam("settlement_per_share", "must be > 0, got %s", p.SettlementPerShare)
	}
	if p.EntryPrice.Sign() <= 0 || p.EntryPrice.GreaterThanOrEqual(p.SettlementPerShare) {
		return invalidParam("entry_price", "must be in (0, %s), got %s", p.SettlementPerShare, p.EntryPrice)
	}
	for _, fee := range []struct {
		name string
		pct  decimal.Decimal
	}{
		{"profit_fee_pct", p.ProfitFeePct},
		{"taker_fee_pct", p.TakerFeePct},
		{"trading_fee_pct", p.TradingFeePct},
	} {
		if fee.pct.Sign() < 0 || fee.pct.GreaterThanOrEqual(one) {
			return invalidParam(fee.name, "must be in [0, 1), got %s", fee.pct)
		}
	}
	if p.Gas.Sign() < 0 {
		return invalidParam("gas", "must be >= 0, got %s", p.Gas)
	}
	return nil
}
