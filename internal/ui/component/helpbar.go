package component

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/rovshanmuradov/polymarket-pnl/internal/ui/style"
)

// HelpBar renders one line of key hints. Hints that do not fit the width are
// dropped from the end rather than wrapped, so the bar never grows past a row.
type HelpBar struct {
	bindings []key.Binding
	width    int

	keyStyle  lipgloss.Style
	descStyle lipgloss.Style
	sepStyle  lipgloss.Style
}

// NewHelpBar builds a help bar over the given bindings.
func NewHelpBar(bindings ...key.Binding) *HelpBar {
	palette := style.DefaultPalette()

	return &HelpBar{
		bindings:  bindings,
		width:     80,
		keyStyle:  lipgloss.NewStyle().Foreground(palette.Primary).Bold(true),
		descStyle: lipgloss.NewStyle().Foreground(palette.TextMuted),
		sepStyle:  lipgloss.NewStyle().Foreground(palette.TextMuted),
	}
}

const helpSeparator = " • "

// SetWidth returns the receiver so the call can chain into View.
func (h *HelpBar) SetWidth(width int) *HelpBar {
	if width > 0 {
		h.width = width
	}
	return h
}

// View renders as many hints as fit, separated by bullets.
func (h *HelpBar) View() string {
	var bar strings.Builder
	used := 0

	for _, binding := range h.bindings {
		if !binding.Enabled() {
			continue
		}
		hint := binding.Help()

		needed := len(hint.Key) + 1 + len(hint.Desc)
		if used > 0 {
			needed += len(helpSeparator)
		}
		if used+needed > h.width {
			break
		}
		used += needed

		if bar.Len() > 0 {
			bar.WriteString(h.sepStyle.Render(helpSeparator))
		}
		bar.WriteString(h.keyStyle.Render(hint.Key))
		bar.WriteString(" ")
		bar.WriteString(h.descStyle.Render(hint.Desc))
	}

	return bar.String()
}
