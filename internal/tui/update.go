package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case runsLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.runs = msg.runs
		m.view = viewRuns
		m.cursor = 0
		return m, nil

	case filesLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.selected = msg.run
		m.files = msg.files
		m.view = viewFiles
		m.cursor = 0
		return m, nil
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down", "j":
		if m.cursor < m.itemCount()-1 {
			m.cursor++
		}
		return m, nil

	case "enter", "l", "right":
		if m.view == viewRuns && len(m.runs) > 0 && m.cursor < len(m.runs) {
			return m, m.loadFiles(m.runs[m.cursor])
		}
		return m, nil

	case "backspace", "h", "left", "esc":
		if m.view == viewFiles {
			m.view = viewRuns
			m.files = nil
			m.cursor = 0
		}
		return m, nil

	case "r":
		if m.view == viewRuns {
			return m, m.loadRuns
		}
		return m, nil

	case "home", "g":
		m.cursor = 0
		return m, nil

	case "end", "G":
		if n := m.itemCount(); n > 0 {
			m.cursor = n - 1
		}
		return m, nil

	case "pgup":
		m.cursor -= 10
		if m.cursor < 0 {
			m.cursor = 0
		}
		return m, nil

	case "pgdown":
		m.cursor += 10
		if n := m.itemCount(); m.cursor >= n {
			m.cursor = n - 1
		}
		if m.cursor < 0 {
			m.cursor = 0
		}
		return m, nil
	}

	return m, nil
}
