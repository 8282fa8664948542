// Package price resolves the entry price for a bet. Two sources exist: an
// explicit user-supplied value and a best-effort OCR read of a market
// screenshot. A source is resolved exactly once, before any calculation.
package price

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// ErrExtractorUnavailable means the OCR engine is not installed. It is
	// only ever surfaced when a screenshot source is actually resolved.
	ErrExtractorUnavailable = errors.New("ocr engine unavailable")
	// ErrExtractionFailed means OCR ran but produced no usable price.
	ErrExtractionFailed = errors.New("no entry price found in screenshot")
	// ErrExtractionImplausible means OCR produced a number outside (0, 1).
	ErrExtractionImplausible = errors.New("extracted entry price is implausible")
)

// Source yields the entry price for one bet.
type Source interface {
	Resolve(ctx context.Context) (decimal.Decimal, error)
}

// Explicit is a user-supplied entry price, passed through untouched. Range
// validation stays with the calculator.
type Explicit struct {
	Value decimal.Decimal
}

func (e Explicit) Resolve(context.Context) (decimal.Decimal, error) {
	return e.Value, nil
}
