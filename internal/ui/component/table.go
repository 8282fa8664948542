package component

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rovshanmuradov/polymarket-pnl/internal/ui/style"
)

// Column describes one table column. Widths are fixed by the caller; numeric
// columns read best right-aligned.
type Column struct {
	Title string
	Width int
	Right bool
}

// Table is a small static table with per-row styling, used for the scenario
// preview. It renders text, it is not an interactive bubble.
type Table struct {
	columns   []Column
	rows      [][]string
	rowStyles map[int]lipgloss.Style

	headerStyle lipgloss.Style
	cellStyle   lipgloss.Style
}

// NewTable builds a table over a fixed column layout.
func NewTable(columns ...Column) *Table {
	palette := style.DefaultPalette()

	return &Table{
		columns:   columns,
		rowStyles: make(map[int]lipgloss.Style),
		headerStyle: lipgloss.NewStyle().
			Foreground(palette.TextMuted).
			Bold(true).
			Underline(true),
		cellStyle: lipgloss.NewStyle().
			Foreground(palette.Text),
	}
}

// SetRows replaces the table body. Row styles reset with the rows.
func (t *Table) SetRows(rows [][]string) {
	t.rows = rows
	t.rowStyles = make(map[int]lipgloss.Style)
}

// StyleRow overrides the style of one body row.
func (t *Table) StyleRow(index int, s lipgloss.Style) {
	t.rowStyles[index] = s
}

// View renders the header and body rows.
func (t *Table) View() string {
	if len(t.columns) == 0 {
		return ""
	}

	var b strings.Builder
	for i, col := range t.columns {
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(t.headerStyle.Render(fitCell(col.Title, col.Width, col.Right)))
	}

	for ri, row := range t.rows {
		b.WriteString("\n")
		rowStyle, styled := t.rowStyles[ri]
		if !styled {
			rowStyle = t.cellStyle
		}
		for ci, col := range t.columns {
			cell := ""
			if ci < len(row) {
				cell = row[ci]
			}
			if ci > 0 {
				b.WriteString("  ")
			}
			b.WriteString(rowStyle.Render(fitCell(cell, col.Width, col.Right)))
		}
	}

	return b.String()
}

// fitCell pads or truncates a cell to its column width.
func fitCell(s string, width int, right bool) string {
	if width <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) > width {
		if width <= 3 {
			return string(runes[:width])
		}
		return string(runes[:width-3]) + "..."
	}
	pad := strings.Repeat(" ", width-len(runes))
	if right {
		return pad + s
	}
	return s + pad
}
