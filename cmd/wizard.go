package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/webdevsha/solazyinvoice/internal/config"
	"github.com/webdevsha/solazyinvoice/internal/wizard"
)

var wizardOutDir string

var wizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Run the interactive four-step invoice wizard",
	Args:  cobra.NoArgs,
	RunE:  runWizard,
}

func init() {
	wizardCmd.Flags().StringVar(&wizardOutDir, "out-dir", ".", "Directory for the generated PDFs")
}

func runWizard(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	m := wizard.New(cfg.Billing, wizardOutDir)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("wizard error: %w", err)
	}
	return nil
}
