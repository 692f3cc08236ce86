package main

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/modelcatalog/pricectl/internal/journal"
	"github.com/modelcatalog/pricectl/internal/tui"
	"github.com/spf13/cobra"

	tea "github.com/charmbracelet/bubbletea"
	_ "modernc.org/sqlite"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse the run journal interactively",
	Long:  `Open an interactive TUI to browse recorded runs and their file records.`,
	RunE:  runTUI,
}

var tuiJournal string

func init() {
	tuiCmd.Flags().StringVar(&tuiJournal, "journal", "./data/journal.db", "Path to journal database")
}

func runTUI(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(tuiJournal); err != nil {
		return fmt.Errorf("no journal at %s (run `pricectl touch` first)", tuiJournal)
	}

	database, err := sql.Open("sqlite", tuiJournal)
	if err != nil {
		return fmt.Errorf("failed to open journal: %w", err)
	}
	defer database.Close()

	if err := journal.ApplyReadPragmas(database); err != nil {
		return fmt.Errorf("failed to apply pragmas: %w", err)
	}

	model := tui.NewModel(database)
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
