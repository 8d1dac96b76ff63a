package wizard_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webdevsha/solazyinvoice/internal/model"
	"github.com/webdevsha/solazyinvoice/internal/wizard"
)

func testSettings() model.Settings {
	return model.Settings{
		HourlyRate:  50,
		MinDuration: 0.25,
		InvoiceDate: "2024-03-05",
	}
}

func press(t *testing.T, m wizard.Model, msg tea.Msg) (wizard.Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	wm, ok := next.(wizard.Model)
	require.True(t, ok, "Update must return a wizard.Model")
	return wm, cmd
}

func key(k tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: k} }

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

// submitSettings presses enter through every settings field.
func submitSettings(t *testing.T, m wizard.Model) wizard.Model {
	t.Helper()
	for i := 0; i < 6; i++ {
		m, _ = press(t, m, key(tea.KeyEnter))
	}
	return m
}

func writeSampleCSV(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sessions.csv")
	content := "Topic,Start time,End time\n" +
		"Acme Corp,03/01/2024 09:00:00 AM,03/01/2024 10:30:00 AM\n" +
		"Globex,03/01/2024 11:00:00 AM,03/01/2024 11:05:00 AM\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// loadFile types the path into the upload step and runs the resulting
// parse command, feeding its message back into the model.
func loadFile(t *testing.T, m wizard.Model, path string) wizard.Model {
	t.Helper()
	m, _ = press(t, m, runes(path))
	m, cmd := press(t, m, key(tea.KeyEnter))
	require.NotNil(t, cmd, "enter on a non-empty path must trigger parsing")
	m, _ = press(t, m, cmd())
	return m
}

func TestWizardStartsAtSettings(t *testing.T) {
	m := wizard.New(testSettings(), t.TempDir())
	assert.Equal(t, wizard.StepSettings, m.Step())
}

func TestWizardSettingsAdvanceToUpload(t *testing.T) {
	m := wizard.New(testSettings(), t.TempDir())
	m = submitSettings(t, m)
	assert.Equal(t, wizard.StepUpload, m.Step())
}

func TestWizardRejectsInvalidSettings(t *testing.T) {
	m := wizard.New(testSettings(), t.TempDir())
	// Corrupt the hourly rate field, then try to submit.
	m, _ = press(t, m, runes("x"))
	m = submitSettings(t, m)
	assert.Equal(t, wizard.StepSettings, m.Step(), "invalid settings must not advance")
}

func TestWizardUploadParsesAndAdvancesToReview(t *testing.T) {
	m := wizard.New(testSettings(), t.TempDir())
	m = submitSettings(t, m)
	m = loadFile(t, m, writeSampleCSV(t))
	assert.Equal(t, wizard.StepReview, m.Step())
	assert.Contains(t, m.View(), "Acme Corp")
}

func TestWizardUploadMissingFileStays(t *testing.T) {
	m := wizard.New(testSettings(), t.TempDir())
	m = submitSettings(t, m)
	m, _ = press(t, m, runes(filepath.Join(t.TempDir(), "nope.csv")))
	m, cmd := press(t, m, key(tea.KeyEnter))
	require.NotNil(t, cmd)
	m, _ = press(t, m, cmd())
	assert.Equal(t, wizard.StepUpload, m.Step())
	assert.Contains(t, m.View(), "CSV Parsing Failed")
}

func TestWizardGenerateBuildsInvoices(t *testing.T) {
	m := wizard.New(testSettings(), t.TempDir())
	m = submitSettings(t, m)
	m = loadFile(t, m, writeSampleCSV(t))

	m, _ = press(t, m, key(tea.KeyEnter))
	require.Equal(t, wizard.StepGenerate, m.Step())

	// The 5-minute Globex session is below the 0.25h minimum, so only
	// Acme Corp is invoiced.
	invoices := m.Invoices()
	require.Len(t, invoices, 1)
	assert.Equal(t, "Acme Corp", invoices[0].ClientName)
	assert.Equal(t, 75.0, invoices[0].Subtotal)
	assert.Equal(t, 75, invoices[0].Total)
	assert.Equal(t, "ACMECO030524", invoices[0].InvoiceNumber)
}

func TestWizardWritePDF(t *testing.T) {
	outDir := t.TempDir()
	m := wizard.New(testSettings(), outDir)
	m = submitSettings(t, m)
	m = loadFile(t, m, writeSampleCSV(t))
	m, _ = press(t, m, key(tea.KeyEnter))
	require.Equal(t, wizard.StepGenerate, m.Step())

	m, cmd := press(t, m, runes("w"))
	require.NotNil(t, cmd)
	m, _ = press(t, m, cmd())

	data, err := os.ReadFile(filepath.Join(outDir, "Invoice_ACMECORP_2024-03-05.pdf"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "%PDF-"))
}

func TestWizardStartOverResetsEverything(t *testing.T) {
	m := wizard.New(testSettings(), t.TempDir())
	m = submitSettings(t, m)
	m = loadFile(t, m, writeSampleCSV(t))
	m, _ = press(t, m, key(tea.KeyEnter))
	require.Equal(t, wizard.StepGenerate, m.Step())

	m, _ = press(t, m, runes("r"))
	assert.Equal(t, wizard.StepSettings, m.Step())
	assert.Empty(t, m.Invoices(), "start over discards built invoices")
}

func TestWizardEditSettingsReaggregatesWithoutReparse(t *testing.T) {
	m := wizard.New(testSettings(), t.TempDir())
	m = submitSettings(t, m)

	path := writeSampleCSV(t)
	m = loadFile(t, m, path)
	require.Equal(t, wizard.StepReview, m.Step())

	// Delete the file: a re-parse would now fail, a re-aggregation from
	// the in-memory sessions must not.
	require.NoError(t, os.Remove(path))

	// Jump to settings, raise the minimum above every session, resubmit.
	m, _ = press(t, m, runes("s"))
	require.Equal(t, wizard.StepSettings, m.Step())
	m, _ = press(t, m, key(tea.KeyTab)) // focus min duration
	for i := 0; i < 4; i++ {
		m, _ = press(t, m, key(tea.KeyBackspace))
	}
	m, _ = press(t, m, runes("9"))
	// Four enters walk focus to the last field, the fifth submits.
	for i := 0; i < 5; i++ {
		m, _ = press(t, m, key(tea.KeyEnter))
	}

	require.Equal(t, wizard.StepReview, m.Step(), "with a file loaded, settings return to review")
	assert.Contains(t, m.View(), "0 sessions from 0 clients")
}
