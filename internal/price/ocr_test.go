package price

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/polymarket-pnl/internal/bet"
)

// screenText mimics tesseract output for a typical market page.
const screenText = `Will the Fed cut rates in September?

Yes 43¢
No 58¢

Buy Yes  Buy No
$120,540 Vol
`

func fakeRunner(text string, err error) runnerFunc {
	return func(context.Context, string, string) (string, error) {
		return text, err
	}
}

func TestExplicitResolve(t *testing.T) {
	want := decimal.RequireFromString("0.43")
	got, err := Explicit{Value: want}.Resolve(context.Background())
	require.NoError(t, err)
	assert.True(t, got.Equal(want))
}

func TestNormPrice(t *testing.T) {
	cases := []struct {
		tok  string
		want string
		ok   bool
	}{
		{"$0.43", "0.43", true},
		{"0.43", "0.43", true},
		{".43", "0.43", true},
		{"43¢", "0.43", true},
		{"43c", "0.43", true},
		{"43 ¢", "0.43", true},
		{"7C", "0.07", true},
		{"0.005", "0.005", true},
		{"garbage", "", false},
		{"$", "", false},
	}

	for _, tc := range cases {
		got, ok := normPrice(tc.tok)
		require.Equal(t, tc.ok, ok, "normPrice(%q)", tc.tok)
		if tc.ok {
			assert.True(t, got.Equal(decimal.RequireFromString(tc.want)),
				"normPrice(%q) = %s, want %s", tc.tok, got, tc.want)
		}
	}
}

func TestParseExtraction(t *testing.T) {
	ext := parseExtraction(screenText)

	require.True(t, ext.Yes.Valid, "yes price not found")
	require.True(t, ext.No.Valid, "no price not found")
	assert.True(t, ext.Yes.Decimal.Equal(decimal.RequireFromString("0.43")))
	assert.True(t, ext.No.Decimal.Equal(decimal.RequireFromString("0.58")))
	assert.Equal(t, "Will the Fed cut rates in September?", ext.Title)
	assert.Equal(t, screenText, ext.RawText)
}

func TestParseExtractionDollarForm(t *testing.T) {
	ext := parseExtraction("Outcome\nYes: $0.07\nNo: $0.94\n")

	require.True(t, ext.Yes.Valid)
	require.True(t, ext.No.Valid)
	assert.True(t, ext.Yes.Decimal.Equal(decimal.RequireFromString("0.07")))
	assert.True(t, ext.No.Decimal.Equal(decimal.RequireFromString("0.94")))
	assert.Empty(t, ext.Title, "short header line must not become the title")
}

func TestScreenshotResolve(t *testing.T) {
	for _, tc := range []struct {
		side bet.Side
		want string
	}{
		{bet.SideYes, "0.43"},
		{bet.SideNo, "0.58"},
	} {
		s := NewScreenshot("market.png", tc.side, zap.NewNop())
		s.run = fakeRunner(screenText, nil)

		got, err := s.Resolve(context.Background())
		require.NoError(t, err, "side %s", tc.side)
		assert.True(t, got.Equal(decimal.RequireFromString(tc.want)), "side %s: got %s", tc.side, got)

		require.NotNil(t, s.Extraction())
		assert.Equal(t, "Will the Fed cut rates in September?", s.Extraction().Title)
	}
}

func TestScreenshotResolveNoPrice(t *testing.T) {
	s := NewScreenshot("market.png", bet.SideYes, zap.NewNop())
	s.run = fakeRunner("nothing useful here", nil)

	_, err := s.Resolve(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrExtractionFailed), "got %v", err)
}

func TestScreenshotResolveImplausible(t *testing.T) {
	s := NewScreenshot("market.png", bet.SideYes, zap.NewNop())
	s.run = fakeRunner("Yes 0.000\nNo 0.999\n", nil)

	_, err := s.Resolve(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrExtractionImplausible), "got %v", err)
}

func TestScreenshotResolveRunnerError(t *testing.T) {
	s := NewScreenshot("market.png", bet.SideNo, zap.NewNop())
	s.run = fakeRunner("", errors.New("image unreadable"))

	_, err := s.Resolve(context.Background())
	require.Error(t, err)
	assert.Nil(t, s.Extraction())
}

func TestScreenshotEngineUnavailable(t *testing.T) {
	// The default runner looks the engine up on PATH; a name that cannot
	// exist must surface the unavailability error without running anything.
	s := NewScreenshot("market.png", bet.SideYes, zap.NewNop())
	s.Binary = "tesseract-definitely-not-installed-anywhere"

	_, err := s.Resolve(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrExtractorUnavailable), "got %v", err)
}

func TestGuessTitlePicksLongestPlausibleLine(t *testing.T) {
	text := "Polymarket\nWho wins the 2026 World Cup final match?\nShorter header line\nYes 12¢\n"
	assert.Equal(t, "Who wins the 2026 World Cup final match?", guessTitle(text))
}
