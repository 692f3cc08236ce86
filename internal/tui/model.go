package tui

import (
	"database/sql"

	"github.com/modelcatalog/pricectl/internal/journal"

	tea "github.com/charmbracelet/bubbletea"
)

const runLimit = 500

type view int

const (
	viewRuns view = iota
	viewFiles
)

// Model holds the TUI state.
type Model struct {
	db       *sql.DB
	view     view
	runs     []journal.Run
	files    []journal.FileRecord
	selected journal.Run
	cursor   int
	width    int
	height   int
	err      error
}

// NewModel creates a new TUI model.
func NewModel(database *sql.DB) *Model {
	return &Model{
		db: database,
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.loadRuns
}

type runsLoadedMsg struct {
	runs []journal.Run
	err  error
}

func (m *Model) loadRuns() tea.Msg {
	runs, err := journal.ListRuns(m.db, runLimit)
	return runsLoadedMsg{runs: runs, err: err}
}

type filesLoadedMsg struct {
	run   journal.Run
	files []journal.FileRecord
	err   error
}

func (m *Model) loadFiles(run journal.Run) tea.Cmd {
	return func() tea.Msg {
		files, err := journal.LoadRunFiles(m.db, run.ID)
		return filesLoadedMsg{run: run, files: files, err: err}
	}
}

func (m *Model) itemCount() int {
	if m.view == viewFiles {
		return len(m.files)
	}
	return len(m.runs)
}

func (m *Model) helpLine() string {
	if m.view == viewFiles {
		return "↑/↓ move | Backspace: back to runs | q: quit"
	}
	return "↑/↓ move | Enter: open run | r: reload | q: quit"
}
