// Package wizard is the interactive four-step invoice wizard: Settings,
// Upload, Review, Generate. The wizard state machine lives in Update;
// View only reads state. Derived data flows one way: parsed sessions are
// kept for the lifetime of the loaded file, groups and invoices are
// recomputed from them whenever settings change, never the other way.
package wizard

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/webdevsha/solazyinvoice/internal/billing"
	"github.com/webdevsha/solazyinvoice/internal/model"
	"github.com/webdevsha/solazyinvoice/internal/parse"
	"github.com/webdevsha/solazyinvoice/internal/pdf"
	"github.com/webdevsha/solazyinvoice/internal/timecalc"
	"github.com/webdevsha/solazyinvoice/internal/toast"
)

// Indices into the settings inputs.
const (
	fieldRate = iota
	fieldMinDuration
	fieldInvoiceDate
	fieldDiscount
	fieldTax
	fieldBusinessDetails
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Hourly rate (RM)",
	"Minimum duration (hours)",
	"Invoice date (YYYY-MM-DD)",
	"Discount (%)",
	"Tax (%)",
	"Business details",
}

type sessionsLoadedMsg struct {
	sessions []model.Session
	note     toast.Toast
}

type toastMsg toast.Toast

// Model is the wizard's bubbletea model.
type Model struct {
	step   Step
	width  int
	height int

	inputs    [fieldCount]textinput.Model
	focus     int
	pathInput textinput.Model

	settings model.Settings
	outDir   string

	sessions []model.Session
	groups   []model.ClientGroup
	invoices []model.Invoice
	selected int // invoice tab cursor

	note     toast.Toast
	quitting bool
}

// New builds a wizard starting at the settings step, pre-filled from the
// loaded configuration. PDFs are written into outDir.
func New(settings model.Settings, outDir string) Model {
	m := Model{
		step:     StepSettings,
		settings: settings,
		outDir:   outDir,
		width:    100,
		height:   30,
	}

	defaults := [fieldCount]string{
		strconv.FormatFloat(settings.HourlyRate, 'f', -1, 64),
		strconv.FormatFloat(settings.MinDuration, 'f', -1, 64),
		settings.InvoiceDate,
		strconv.FormatFloat(settings.Discount, 'f', -1, 64),
		strconv.FormatFloat(settings.Tax, 'f', -1, 64),
		settings.BusinessDetails,
	}
	for i := range m.inputs {
		ti := textinput.New()
		ti.CharLimit = 200
		ti.SetValue(defaults[i])
		m.inputs[i] = ti
	}
	m.inputs[0].Focus()

	pi := textinput.New()
	pi.Placeholder = "path/to/sessions.csv"
	pi.CharLimit = 500
	m.pathInput = pi

	return m
}

// Step exposes the current wizard step.
func (m Model) Step() Step { return m.step }

// Invoices exposes the invoices built in the generate step.
func (m Model) Invoices() []model.Invoice { return m.invoices }

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case toastMsg:
		m.note = toast.Toast(msg)
		return m, nil

	case sessionsLoadedMsg:
		m.sessions = msg.sessions
		m.note = msg.note
		m.groups = billing.Aggregate(m.sessions, m.settings.HourlyRate, m.settings.MinDuration)
		m.step = m.step.Next()
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		switch m.step {
		case StepSettings:
			return m.updateSettings(msg)
		case StepUpload:
			return m.updateUpload(msg)
		case StepReview:
			return m.updateReview(msg)
		case StepGenerate:
			return m.updateGenerate(msg)
		}
	}
	return m, nil
}

func (m Model) updateSettings(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		m.focus = (m.focus + 1) % fieldCount
		return m.refocus(), nil
	case "shift+tab", "up":
		m.focus = (m.focus + fieldCount - 1) % fieldCount
		return m.refocus(), nil
	case "enter":
		if m.focus < fieldCount-1 {
			m.focus++
			return m.refocus(), nil
		}
		s, err := m.readSettings()
		if err != nil {
			m.note = toast.Errorf("Invalid Settings", "%v", err)
			return m, nil
		}
		m.settings = s
		m.note = toast.Toast{}
		if len(m.sessions) > 0 {
			// A file is already loaded: re-aggregate under the new
			// settings and return to review without re-parsing.
			m.groups = billing.Aggregate(m.sessions, s.HourlyRate, s.MinDuration)
			m.step = StepReview
			return m, nil
		}
		m.step = m.step.Next()
		m.pathInput.Focus()
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m Model) updateUpload(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.step = m.step.Back()
		m.focus = 0
		return m.refocus(), nil
	case "enter":
		path := strings.TrimSpace(m.pathInput.Value())
		if path == "" {
			m.note = toast.Errorf("No File", "enter the path of a session-log CSV")
			return m, nil
		}
		return m, loadSessions(path)
	}

	var cmd tea.Cmd
	m.pathInput, cmd = m.pathInput.Update(msg)
	return m, cmd
}

func (m Model) updateReview(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit
	case "esc":
		m.step = m.step.Back()
		return m, nil
	case "s":
		// Edit settings, keeping the parsed sessions. On return the
		// review step re-aggregates; the file is never re-parsed.
		m.step = StepSettings
		m.focus = 0
		return m.refocus(), nil
	case "enter":
		// Snapshot the settings in effect right now.
		snapshot := m.settings
		invoices, err := billing.BuildAll(m.groups, snapshot)
		if err != nil {
			m.note = toast.Errorf("Generation Failed", "%v", err)
			return m, nil
		}
		if len(invoices) == 0 {
			m.note = toast.Errorf("No Valid Sessions", "%v", billing.ErrNoSessions)
			return m, nil
		}
		m.invoices = invoices
		m.selected = 0
		m.note = toast.Successf("Invoices Generated!", "successfully created %d invoices", len(invoices))
		m.step = m.step.Next()
		return m, nil
	}
	return m, nil
}

func (m Model) updateGenerate(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit
	case "esc":
		// Regenerating later rebuilds the list wholesale.
		m.invoices = nil
		m.step = m.step.Back()
		return m, nil
	case "left", "h":
		if m.selected > 0 {
			m.selected--
		}
		return m, nil
	case "right", "l", "tab":
		if m.selected < len(m.invoices)-1 {
			m.selected++
		}
		return m, nil
	case "w":
		if len(m.invoices) == 0 {
			return m, nil
		}
		return m, m.writePDFs(m.invoices[m.selected : m.selected+1])
	case "a":
		return m, m.writePDFs(m.invoices)
	case "r":
		return m.reset(), nil
	}
	return m, nil
}

// reset discards all loaded and derived state and returns to step 1.
func (m Model) reset() Model {
	fresh := New(m.settings, m.outDir)
	fresh.width = m.width
	fresh.height = m.height
	return fresh
}

func (m Model) refocus() Model {
	for i := range m.inputs {
		if i == m.focus {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	return m
}

// readSettings parses the settings inputs into an immutable snapshot.
func (m Model) readSettings() (model.Settings, error) {
	rate, err := parseFloatField(m.inputs[fieldRate].Value(), fieldLabels[fieldRate])
	if err != nil {
		return model.Settings{}, err
	}
	minDur, err := parseFloatField(m.inputs[fieldMinDuration].Value(), fieldLabels[fieldMinDuration])
	if err != nil {
		return model.Settings{}, err
	}
	discount, err := parseFloatField(m.inputs[fieldDiscount].Value(), fieldLabels[fieldDiscount])
	if err != nil {
		return model.Settings{}, err
	}
	tax, err := parseFloatField(m.inputs[fieldTax].Value(), fieldLabels[fieldTax])
	if err != nil {
		return model.Settings{}, err
	}
	if rate < 0 || minDur < 0 {
		return model.Settings{}, fmt.Errorf("rate and minimum duration must not be negative")
	}
	dateStr := strings.TrimSpace(m.inputs[fieldInvoiceDate].Value())
	if _, err := timecalc.ParseISODate(dateStr); err != nil {
		return model.Settings{}, err
	}
	return model.Settings{
		HourlyRate:      rate,
		MinDuration:     minDur,
		InvoiceDate:     dateStr,
		Discount:        discount,
		Tax:             tax,
		BusinessDetails: m.inputs[fieldBusinessDetails].Value(),
	}, nil
}

func parseFloatField(v, label string) (float64, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: not a number: %q", label, v)
	}
	return f, nil
}

func loadSessions(path string) tea.Cmd {
	return func() tea.Msg {
		sessions, err := parse.ReadSessionsFile(path)
		if err != nil {
			return toastMsg(toast.Errorf("CSV Parsing Failed", "%v", err))
		}
		if len(sessions) == 0 {
			return toastMsg(toast.Errorf("No Valid Sessions", "%v", billing.ErrNoSessions))
		}
		clients := map[string]struct{}{}
		for _, s := range sessions {
			clients[s.ClientName] = struct{}{}
		}
		return sessionsLoadedMsg{
			sessions: sessions,
			note: toast.Successf("CSV Parsed Successfully!",
				"found %d valid sessions from %d clients", len(sessions), len(clients)),
		}
	}
}

func (m Model) writePDFs(invoices []model.Invoice) tea.Cmd {
	outDir := m.outDir
	return func() tea.Msg {
		for _, inv := range invoices {
			if _, err := pdf.WriteFile(inv, outDir); err != nil {
				return toastMsg(toast.Errorf("PDF Failed", "%v", err))
			}
		}
		if len(invoices) == 1 {
			return toastMsg(toast.Successf("PDF Written", "%s", pdf.Filename(invoices[0])))
		}
		return toastMsg(toast.Successf("All PDFs Written", "%d invoices written", len(invoices)))
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("SoLazyInvoice"))
	b.WriteString("  ")
	b.WriteString(m.progressView())
	b.WriteString("\n\n")

	switch m.step {
	case StepSettings:
		b.WriteString(m.settingsView())
	case StepUpload:
		b.WriteString(m.uploadView())
	case StepReview:
		b.WriteString(m.reviewView())
	case StepGenerate:
		b.WriteString(m.generateView())
	}

	if !m.note.Zero() {
		b.WriteString("\n")
		b.WriteString(m.toastView())
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) progressView() string {
	parts := make([]string, 0, 4)
	for s := StepSettings; s <= StepGenerate; s++ {
		label := fmt.Sprintf("%d. %s", int(s)+1, s.Title())
		switch {
		case s == m.step:
			parts = append(parts, stepActiveStyle.Render(label))
		case s < m.step:
			parts = append(parts, stepDoneStyle.Render(label))
		default:
			parts = append(parts, stepIdleStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m Model) settingsView() string {
	var b strings.Builder
	for i := range m.inputs {
		label := fieldLabels[i]
		if i == m.focus {
			b.WriteString(selectedStyle.Render(label))
		} else {
			b.WriteString(normalStyle.Render(label))
		}
		b.WriteString("\n  ")
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("tab/shift+tab move · enter on last field continues · ctrl+c quit"))
	return b.String()
}

func (m Model) uploadView() string {
	var b strings.Builder
	b.WriteString(labelStyle.Render("Session-log CSV"))
	b.WriteString("\n  ")
	b.WriteString(m.pathInput.View())
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Expected columns: %q, %q, %q", parse.ColTopic, parse.ColStart, parse.ColEnd)))
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("enter parse · esc back · ctrl+c quit"))
	return b.String()
}

func (m Model) reviewView() string {
	var b strings.Builder

	var totalSessions int
	for _, g := range m.groups {
		totalSessions += len(g.Sessions)
	}
	b.WriteString(dimStyle.Render(fmt.Sprintf("%d sessions from %d clients meet the %gh minimum duration",
		totalSessions, len(m.groups), m.settings.MinDuration)))
	b.WriteString("\n\n")

	if len(m.groups) == 0 {
		b.WriteString(normalStyle.Render("No clients found"))
		b.WriteString("\n")
	}
	for _, g := range m.groups {
		line := fmt.Sprintf("%-30s %s", g.ClientName,
			amountStyle.Render(billing.FormatWholeMoney(int(math.Round(g.TotalAmount())))))
		b.WriteString(normalStyle.Render(line))
		b.WriteString("\n")
		b.WriteString(dimStyle.Render(fmt.Sprintf("   %d sessions · %s hours",
			len(g.Sessions), timecalc.FormatHours(g.TotalHours()))))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter generate invoices · s edit settings · esc back · q quit"))
	return b.String()
}

func (m Model) generateView() string {
	var b strings.Builder

	tabs := make([]string, 0, len(m.invoices))
	for i, inv := range m.invoices {
		if i == m.selected {
			tabs = append(tabs, selectedStyle.Render(inv.ClientName))
		} else {
			tabs = append(tabs, normalStyle.Render(inv.ClientName))
		}
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	b.WriteString("\n\n")

	if m.selected < len(m.invoices) {
		b.WriteString(m.invoiceView(m.invoices[m.selected]))
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("←/→ switch invoice · w write PDF · a write all · esc back · r start over · q quit"))
	return b.String()
}

func (m Model) invoiceView(inv model.Invoice) string {
	date, _ := timecalc.ParseISODate(inv.InvoiceDate)

	var b strings.Builder
	b.WriteString(labelStyle.Render("INVOICE "))
	b.WriteString(amountStyle.Render(billing.FormatWholeMoney(inv.Total)))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("  Bill to:        %s\n", inv.ClientName))
	b.WriteString(fmt.Sprintf("  Invoice number: %s\n", inv.InvoiceNumber))
	b.WriteString(fmt.Sprintf("  Invoice date:   %s\n", timecalc.FormatDateGB(date)))
	b.WriteString(fmt.Sprintf("  Payment due:    %s\n", timecalc.FormatDateGB(timecalc.DueDate(date))))
	b.WriteString("\n")

	for _, s := range inv.Sessions {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  %s: %s - %s (%d min)",
			s.Date, s.StartTime, s.EndTime, s.DurationMinutes)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  Subtotal: %s\n", billing.FormatMoney(inv.Subtotal)))
	if inv.DiscountAmount > 0 {
		b.WriteString(fmt.Sprintf("  Discount (%g%%): -%s\n", inv.Settings.Discount, billing.FormatMoney(inv.DiscountAmount)))
	}
	if inv.TaxAmount > 0 {
		b.WriteString(fmt.Sprintf("  Tax (%g%%): %s\n", inv.Settings.Tax, billing.FormatMoney(inv.TaxAmount)))
	}
	b.WriteString(fmt.Sprintf("  Amount due (%s): %s\n", billing.CurrencyCode, billing.FormatWholeMoney(inv.Total)))
	return b.String()
}

func (m Model) toastView() string {
	switch m.note.Severity {
	case toast.Success:
		return toastSuccessStyle.Render(m.note.String())
	case toast.Error:
		return toastErrorStyle.Render(m.note.String())
	default:
		return toastInfoStyle.Render(m.note.String())
	}
}
