// internal/ui/style/palette.go
package style

import "github.com/charmbracelet/lipgloss"

// Palette is the color set shared by the calculator screen and its
// components. Win and Lose are fixed by convention: green profit, red loss.
type Palette struct {
	Primary       lipgloss.Color // focus borders, headings
	Secondary     lipgloss.Color // section headers
	Success       lipgloss.Color
	Error         lipgloss.Color
	Text          lipgloss.Color
	TextMuted     lipgloss.Color
	BackgroundAlt lipgloss.Color // input boxes
	Win           lipgloss.Color
	Lose          lipgloss.Color
}

// DefaultPalette returns the dark neon theme used across the TUI.
func DefaultPalette() Palette {
	return Palette{
		Primary:       lipgloss.Color("#00E5FF"),
		Secondary:     lipgloss.Color("#FF1B6B"),
		Success:       lipgloss.Color("#2AFFAA"),
		Error:         lipgloss.Color("#FF5555"),
		Text:          lipgloss.Color("#ECEFF4"),
		TextMuted:     lipgloss.Color("#6C7280"),
		BackgroundAlt: lipgloss.Color("#262831"),
		Win:           lipgloss.Color("#2AFFAA"),
		Lose:          lipgloss.Color("#FF5555"),
	}
}
