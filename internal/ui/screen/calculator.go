package screen

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/polymarket-pnl/internal/bet"
	"github.com/rovshanmuradov/polymarket-pnl/internal/config"
	"github.com/rovshanmuradov/polymarket-pnl/internal/report"
	"github.com/rovshanmuradov/polymarket-pnl/internal/ui"
	"github.com/rovshanmuradov/polymarket-pnl/internal/ui/component"
	"github.com/rovshanmuradov/polymarket-pnl/internal/ui/style"
)

var hundred = decimal.NewFromInt(100)

// Calculator is the interactive PnL screen: a bet form with a live
// win/lose preview that recomputes on every keystroke once the inputs
// parse. Ctrl+S writes the CSV and XLSX report pair.
type Calculator struct {
	width  int
	height int
	keyMap ui.KeyMap
	logger *zap.Logger

	cfg    *config.Config
	writer *report.Writer

	// UI components
	form         *component.Form
	previewTable *component.Table
	gauge        *component.PnLGauge
	helpBar      *component.HelpBar

	// State
	result   *bet.Result
	parseErr string // live-preview problem, refreshed on every recompute
	saved    *report.Files
	errors   []string

	// Styling
	titleStyle     lipgloss.Style
	headerStyle    lipgloss.Style
	errorStyle     lipgloss.Style
	successStyle   lipgloss.Style
	containerStyle lipgloss.Style
	previewStyle   lipgloss.Style
	mutedStyle     lipgloss.Style
	winStyle       lipgloss.Style
	loseStyle      lipgloss.Style
}

// NewCalculator creates the calculator screen
func NewCalculator(cfg *config.Config, writer *report.Writer, logger *zap.Logger) *Calculator {
	palette := style.DefaultPalette()

	calc := &Calculator{
		keyMap: ui.DefaultKeyMap(),
		logger: logger,
		cfg:    cfg,
		writer: writer,
		errors: make([]string, 0),

		titleStyle: lipgloss.NewStyle().
			Foreground(palette.Primary).
			Bold(true).
			Margin(1, 0).
			Align(lipgloss.Center),

		headerStyle: lipgloss.NewStyle().
			Foreground(palette.Secondary).
			Bold(true),

		errorStyle: lipgloss.NewStyle().
			Foreground(palette.Error).
			Bold(true).
			Padding(0, 2),

		successStyle: lipgloss.NewStyle().
			Foreground(palette.Success).
			Bold(true).
			Padding(0, 2),

		containerStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(palette.Primary).
			Padding(1, 2),

		previewStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(palette.TextMuted).
			Padding(1, 2),

		mutedStyle: lipgloss.NewStyle().
			Foreground(palette.TextMuted),

		winStyle: lipgloss.NewStyle().
			Foreground(palette.Win).
			Padding(0, 1),

		loseStyle: lipgloss.NewStyle().
			Foreground(palette.Lose).
			Padding(0, 1),
	}

	calc.initializeForm()
	calc.initializePreview()
	calc.initializeHelpBar()
	calc.applyDefaults()

	return calc
}

// initializeForm creates the bet input form
func (c *Calculator) initializeForm() {
	c.form = component.NewForm().
		AddField("title", component.FieldTypeText, "Market", false, "Polymarket Market").
		AddField("side", component.FieldTypeSelect, "Side", true, "").
		AddField("stake", component.FieldTypeNumber, "Stake (USDC)", true, "500").
		AddField("entry_price", component.FieldTypeNumber, "Entry Price", true, "0.43").
		AddField("profit_fee_pct", component.FieldTypeNumber, "Profit Fee", false, "0.02").
		AddField("taker_fee_pct", component.FieldTypeNumber, "Taker Fee", false, "0").
		AddField("trading_fee_pct", component.FieldTypeNumber, "Trading Fee", false, "0.0001").
		AddField("gas", component.FieldTypeNumber, "Gas (USDC)", false, "0.05").
		AddField("output_dir", component.FieldTypeText, "Output Directory", true, "reports").
		SetSelectOptions("side", []string{string(bet.SideYes), string(bet.SideNo)})

	numeric := func(raw string) error {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return nil
		}
		if _, err := decimal.NewFromString(raw); err != nil {
			return fmt.Errorf("not a number")
		}
		return nil
	}

	for _, name := range []string{"stake", "entry_price", "profit_fee_pct", "taker_fee_pct", "trading_fee_pct", "gas"} {
		c.form.SetFieldValidation(name, numeric)
	}
}

// initializePreview creates the scenario table and the return gauge
func (c *Calculator) initializePreview() {
	c.previewTable = component.NewTable(
		component.Column{Title: "Scenario", Width: 10},
		component.Column{Title: "Net Payout", Width: 14, Right: true},
		component.Column{Title: "Net Profit", Width: 14, Right: true},
		component.Column{Title: "Return", Width: 12, Right: true},
	)

	c.gauge = component.NewPnLGauge(24)
}

// initializeHelpBar creates the help bar
func (c *Calculator) initializeHelpBar() {
	c.helpBar = component.NewHelpBar(c.keyMap.ShortHelp()...)
}

// applyDefaults prefills the form from the loaded configuration. Editing
// a field afterwards overrides the config value, mirroring how flags
// override config on the command line.
func (c *Calculator) applyDefaults() {
	if c.cfg == nil {
		return
	}
	if c.cfg.Report.Title != "" {
		c.form.SetFieldValue("title", c.cfg.Report.Title)
	}
	if c.cfg.Fees.ProfitFeePct != "" {
		c.form.SetFieldValue("profit_fee_pct", c.cfg.Fees.ProfitFeePct)
	}
	if c.cfg.Fees.TakerFeePct != "" {
		c.form.SetFieldValue("taker_fee_pct", c.cfg.Fees.TakerFeePct)
	}
	if c.cfg.Fees.TradingFeePct != "" {
		c.form.SetFieldValue("trading_fee_pct", c.cfg.Fees.TradingFeePct)
	}
	if c.cfg.Fees.Gas != "" {
		c.form.SetFieldValue("gas", c.cfg.Fees.Gas)
	}
	if c.cfg.Report.OutputDir != "" {
		c.form.SetFieldValue("output_dir", c.cfg.Report.OutputDir)
	}
}

// Init initializes the screen
func (c *Calculator) Init() tea.Cmd {
	return c.form.Init()
}

// Update handles screen updates
func (c *Calculator) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		c.SetSize(msg.Width, msg.Height)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, c.keyMap.Quit), key.Matches(msg, c.keyMap.Back):
			return c, tea.Quit

		case key.Matches(msg, c.keyMap.Save):
			c.save()

		case key.Matches(msg, c.keyMap.Reset):
			c.form.Reset()
			c.applyDefaults()
			c.result = nil
			c.parseErr = ""
			c.saved = nil
			c.errors = make([]string, 0)

		default:
			// Pass to the form, then recompute the preview
			form, cmd := c.form.Update(msg)
			c.form = form
			cmds = append(cmds, cmd)
			c.recompute()
		}
	}

	return c, tea.Batch(cmds...)
}

// View renders the calculator screen
func (c *Calculator) View() string {
	if c.width == 0 || c.height == 0 {
		return "Loading..."
	}

	var content strings.Builder

	content.WriteString(c.titleStyle.Width(c.width).Render("📊 Polymarket PnL Calculator"))
	content.WriteString("\n\n")

	if len(c.errors) > 0 {
		for _, err := range c.errors {
			content.WriteString(c.errorStyle.Render("❌ " + err))
			content.WriteString("\n")
		}
		content.WriteString("\n")
	}

	formPane := c.containerStyle.Render(c.form.View())
	previewPane := c.previewStyle.Render(c.renderPreview())

	if c.width >= 100 {
		content.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, formPane, " ", previewPane))
	} else {
		content.WriteString(lipgloss.JoinVertical(lipgloss.Left, formPane, previewPane))
	}
	content.WriteString("\n")

	if c.saved != nil {
		content.WriteString(c.successStyle.Render("✅ Report saved"))
		content.WriteString("\n")
		content.WriteString(c.mutedStyle.Padding(0, 2).Render(c.saved.CSVPath))
		content.WriteString("\n")
		content.WriteString(c.mutedStyle.Padding(0, 2).Render(c.saved.XLSXPath))
		content.WriteString("\n")
	}

	content.WriteString(c.helpBar.SetWidth(c.width).View())

	return content.String()
}

// SetSize sets the screen dimensions
func (c *Calculator) SetSize(width, height int) {
	c.width = width
	c.height = height
	c.helpBar.SetWidth(width)

	if width >= 100 {
		c.form.SetWidth(width/2 - 8)
	} else {
		c.form.SetWidth(width - 8)
	}
}

// renderPreview renders the live scenario panel
func (c *Calculator) renderPreview() string {
	if c.result == nil {
		reason := c.parseErr
		if reason == "" {
			reason = "fill in stake and entry price"
		}
		return c.mutedStyle.Render("Waiting for valid inputs: " + reason)
	}

	res := c.result

	var content strings.Builder
	content.WriteString(c.headerStyle.Render("📋 Scenario Preview"))
	content.WriteString("\n\n")

	content.WriteString(fmt.Sprintf("%s | %s @ %s\n",
		res.Params.MarketTitle,
		res.Params.Side,
		res.Params.EntryPrice.StringFixed(4)))
	content.WriteString(c.mutedStyle.Render(fmt.Sprintf("shares %s | entry fees %s | gas %s",
		res.Shares.StringFixed(6),
		res.EntryFees.StringFixed(4),
		res.Params.Gas.StringFixed(2))))
	content.WriteString("\n\n")

	content.WriteString(c.previewTable.View())
	content.WriteString("\n\n")

	content.WriteString(c.gauge.View())
	content.WriteString("  ")
	statusStyle := lipgloss.NewStyle().Foreground(c.gauge.GetColor()).Bold(true)
	content.WriteString(statusStyle.Render(c.gauge.GetStatus()))

	return content.String()
}

// recompute re-runs the calculation from the current form values and
// refreshes the preview. Incomplete or invalid input clears the result
// and records the reason instead of failing.
func (c *Calculator) recompute() {
	c.parseErr = ""
	c.result = nil

	params, err := c.params()
	if err != nil {
		c.parseErr = err.Error()
		return
	}

	res, err := bet.Compute(params)
	if err != nil {
		c.parseErr = err.Error()
		return
	}

	c.result = res
	c.gauge.SetValue(res.WinReturnPct.Mul(hundred).InexactFloat64())

	c.previewTable.SetRows([][]string{
		{"WIN", res.WinNetPayout.StringFixed(4), res.WinNetProfit.StringFixed(4), percent(res.WinReturnPct)},
		{"LOSE", res.LoseNetPayout.StringFixed(4), res.LoseNetLoss.StringFixed(4), percent(res.LoseReturnPct)},
	})
	c.previewTable.StyleRow(0, c.winStyle)
	c.previewTable.StyleRow(1, c.loseStyle)
}

// params assembles bet parameters from the form values
func (c *Calculator) params() (bet.Parameters, error) {
	var p bet.Parameters
	var err error

	side, err := bet.ParseSide(c.form.GetValue("side"))
	if err != nil {
		return p, err
	}
	p.Side = side
	p.MarketTitle = strings.TrimSpace(c.form.GetValue("title"))

	if p.Stake, err = parseRequired("stake", c.form.GetValue("stake")); err != nil {
		return p, err
	}
	if p.EntryPrice, err = parseRequired("entry price", c.form.GetValue("entry_price")); err != nil {
		return p, err
	}
	if p.ProfitFeePct, err = parseOptional("profit fee", c.form.GetValue("profit_fee_pct")); err != nil {
		return p, err
	}
	if p.TakerFeePct, err = parseOptional("taker fee", c.form.GetValue("taker_fee_pct")); err != nil {
		return p, err
	}
	if p.TradingFeePct, err = parseOptional("trading fee", c.form.GetValue("trading_fee_pct")); err != nil {
		return p, err
	}
	if p.Gas, err = parseOptional("gas", c.form.GetValue("gas")); err != nil {
		return p, err
	}

	return p, nil
}

// save validates the form, recomputes and writes the report pair
func (c *Calculator) save() {
	c.errors = make([]string, 0)
	c.saved = nil

	if !c.form.Validate() {
		c.errors = append(c.errors, "Please fill in all required fields correctly.")
		return
	}

	c.recompute()
	if c.result == nil {
		c.errors = append(c.errors, c.parseErr)
		return
	}

	outputDir := strings.TrimSpace(c.form.GetValue("output_dir"))
	files, err := c.writer.Write(c.result, outputDir)
	if err != nil {
		c.logger.Error("Report write failed", zap.Error(err))
		c.errors = append(c.errors, err.Error())
		return
	}

	c.logger.Info("Report saved",
		zap.String("csv", files.CSVPath),
		zap.String("xlsx", files.XLSXPath))
	c.saved = files
}

func parseRequired(name, raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Decimal{}, fmt.Errorf("%s is empty", name)
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%s: %q is not a number", name, raw)
	}
	return d, nil
}

func parseOptional(name, raw string) (decimal.Decimal, error) {
	if strings.TrimSpace(raw) == "" {
		return decimal.Decimal{}, nil
	}
	return parseRequired(name, raw)
}

func percent(fraction decimal.Decimal) string {
	return fraction.Mul(hundred).StringFixed(3) + "%"
}
