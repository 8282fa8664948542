// =============================
// File: internal/price/ocr.go
// =============================

package price

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/polymarket-pnl/internal/bet"
)

// DefaultBinary is the OCR engine looked up on PATH when no explicit path is
// configured.
const DefaultBinary = "tesseract"

// Extraction is everything OCR could recover from one screenshot. Prices are
// null when the respective side's price text was not found.
type Extraction struct {
	Title   string              // best-effort market title guess
	Yes     decimal.NullDecimal // YES share price
	No      decimal.NullDecimal // NO share price
	RawText string              // raw OCR output, for debug logging
}

// runnerFunc executes the OCR engine and returns its text output. Swapped in
// tests so extraction is testable without tesseract installed.
type runnerFunc func(ctx context.Context, binary, imagePath string) (string, error)

// Screenshot extracts the entry price for one side from a market screenshot.
// The result is advisory: always prefer an explicitly supplied entry price.
type Screenshot struct {
	Path   string   // image file path
	Side   bet.Side // which side's price to pick
	Binary string   // OCR engine; defaults to tesseract on PATH

	logger *zap.Logger
	run    runnerFunc

	extraction *Extraction // filled by Resolve
}

func NewScreenshot(path string, side bet.Side, logger *zap.Logger) *Screenshot {
	return &Screenshot{
		Path:   path,
		Side:   side,
		Binary: DefaultBinary,
		logger: logger,
		run:    runTesseract,
	}
}

// Resolve runs OCR over the screenshot and returns the requested side's
// price. Failure modes: ErrExtractorUnavailable when the engine is missing,
// ErrExtractionFailed when no price text parses, ErrExtractionImplausible
// when the parsed value cannot be a share price.
func (s *Screenshot) Resolve(ctx context.Context) (decimal.Decimal, error) {
	text, err := s.run(ctx, s.Binary, s.Path)
	if err != nil {
		return decimal.Decimal{}, err
	}

	ext := parseExtraction(text)
	s.extraction = ext
	s.logger.Debug("OCR extraction finished",
		zap.String("screenshot", s.Path),
		zap.String("title_guess", ext.Title),
		zap.Bool("yes_found", ext.Yes.Valid),
		zap.Bool("no_found", ext.No.Valid))

	var found decimal.NullDecimal
	switch s.Side {
	case bet.SideNo:
		found = ext.No
	default:
		found = ext.Yes
	}
	if !found.Valid {
		return decimal.Decimal{}, fmt.Errorf("%w: no %s price in %s", ErrExtractionFailed, s.Side, s.Path)
	}

	price := found.Decimal
	if price.Sign() <= 0 || price.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return decimal.Decimal{}, fmt.Errorf("%w: got %s for %s", ErrExtractionImplausible, price, s.Side)
	}

	s.logger.Warn("Using OCR-extracted entry price; verify it against the market",
		zap.String("side", s.Side.String()),
		zap.String("entry_price", price.String()),
		zap.String("screenshot", s.Path))
	return price, nil
}

// Extraction returns what the last Resolve recovered, or nil before any
// resolve. The app uses it to borrow the title guess.
func (s *Screenshot) Extraction() *Extraction {
	return s.extraction
}

// runTesseract shells out to the OCR engine, reading the recognized text
// from stdout.
func runTesseract(ctx context.Context, binary, imagePath string) (string, error) {
	if binary == "" {
		binary = DefaultBinary
	}
	bin, err := exec.LookPath(binary)
	if err != nil {
		return "", fmt.Errorf("%w: %q not found in PATH", ErrExtractorUnavailable, binary)
	}

	cmd := exec.CommandContext(ctx, bin, imagePath, "stdout")
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%w: %s failed on %s: %v: %s",
			ErrExtractionFailed, binary, imagePath, err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}

// sidePricePattern finds a side word followed by a nearby price token:
// "$0.43", "0.43", ".43", "43¢" or "43c".
var sidePricePattern = regexp.MustCompile(`(?i)\b(yes|no)\b[^0-9$.]{0,12}([$]?[0-9]*\.[0-9]{1,4}|[0-9]{1,3}\s*[¢cC])`)

// priceTokenPattern marks lines that carry price-like text, which are never
// title candidates.
var priceTokenPattern = regexp.MustCompile(`(?i)[¢$%]|\b(yes|no)\b|[0-9]+\.[0-9]+`)

// parseExtraction pulls both side prices and a title guess out of raw OCR
// text.
func parseExtraction(text string) *Extraction {
	ext := &Extraction{RawText: text}

	for _, m := range sidePricePattern.FindAllStringSubmatch(text, -1) {
		price, ok := normPrice(m[2])
		if !ok {
			continue
		}
		switch strings.ToLower(m[1]) {
		case "yes":
			if !ext.Yes.Valid {
				ext.Yes = decimal.NullDecimal{Decimal: price, Valid: true}
			}
		case "no":
			if !ext.No.Valid {
				ext.No = decimal.NullDecimal{Decimal: price, Valid: true}
			}
		}
	}

	ext.Title = guessTitle(text)
	return ext
}

// normPrice turns an OCR price token into a decimal share price. Cents forms
// are divided by 100.
func normPrice(tok string) (decimal.Decimal, bool) {
	tok = strings.TrimSpace(tok)
	tok = strings.TrimPrefix(tok, "$")

	cents := false
	for _, suffix := range []string{"¢", "c", "C"} {
		if strings.HasSuffix(tok, suffix) {
			tok = strings.TrimSpace(strings.TrimSuffix(tok, suffix))
			cents = true
			break
		}
	}

	price, err := decimal.NewFromString(tok)
	if err != nil {
		return decimal.Decimal{}, false
	}
	if cents {
		price = price.Div(decimal.NewFromInt(100))
	}
	return price, true
}

// guessTitle picks the longest line that looks like a market question rather
// than price or button text.
func guessTitle(text string) string {
	var title string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if len(line) < 12 || priceTokenPattern.MatchString(line) {
			continue
		}
		if len(line) > len(title) {
			title = line
		}
	}
	return title
}
