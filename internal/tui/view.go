package tui

import (
	"fmt"
	"strings"

	"github.com/modelcatalog/pricectl/internal/journal"
)

// View implements tea.Model.
func (m *Model) View() string {
	if m.err != nil {
		return fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err)
	}

	if m.view == viewFiles {
		return m.filesView()
	}
	return m.runsView()
}

func (m *Model) runsView() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("pricectl - Run Journal"))
	b.WriteString("\n")

	if len(m.runs) == 0 {
		b.WriteString(statusStyle.Render("No runs recorded yet."))
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render(m.helpLine()))
		return b.String()
	}

	header := fmt.Sprintf("%-16s  %-6s  %7s  %7s  %10s  %s",
		"WHEN", "CMD", "FILES", "CHANGED", "BYTES", "DIR")
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n")

	start, end := m.visibleRange(len(m.runs))
	for i := start; i < end; i++ {
		r := m.runs[i]
		line := fmt.Sprintf("%-16s  %-6s  %7s  %7s  %10s  %s",
			r.StartTime.Format("2006-01-02 15:04"),
			r.Command,
			FormatCount(r.FileCount),
			FormatCount(r.ChangedCount),
			FormatSize(r.BytesAfter),
			truncateMiddle(r.Dir, max(10, m.width-60)),
		)
		if i == m.cursor {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(fmt.Sprintf("%s [%d/%d]", m.helpLine(), m.cursor+1, len(m.runs))))
	return b.String()
}

func (m *Model) filesView() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("pricectl - Run Journal"))
	b.WriteString("\n")

	info := fmt.Sprintf("Run #%d | %s | %s | %s file(s), %s changed",
		m.selected.ID,
		m.selected.Command,
		m.selected.StartTime.Format("2006-01-02 15:04:05"),
		FormatCount(m.selected.FileCount),
		FormatCount(m.selected.ChangedCount),
	)
	b.WriteString(statsStyle.Render(info))
	b.WriteString("\n")

	if len(m.files) == 0 {
		b.WriteString(statusStyle.Render("No files recorded for this run."))
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render(m.helpLine()))
		return b.String()
	}

	header := fmt.Sprintf("%10s  %10s  %-9s  %s", "BEFORE", "AFTER", "STATUS", "PATH")
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n")

	start, end := m.visibleRange(len(m.files))
	for i := start; i < end; i++ {
		f := m.files[i]
		b.WriteString(m.formatFile(f, i == m.cursor))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(fmt.Sprintf("%s [%d/%d]", m.helpLine(), m.cursor+1, len(m.files))))
	return b.String()
}

func (m *Model) formatFile(f journal.FileRecord, selected bool) string {
	status := "unchanged"
	if f.Changed {
		status = "changed"
	}
	line := fmt.Sprintf("%10s  %10s  %-9s  %s",
		FormatSize(f.BytesBefore),
		FormatSize(f.BytesAfter),
		status,
		truncateMiddle(f.Path, max(10, m.width-40)),
	)
	if selected {
		return selectedStyle.Render(line)
	}
	if f.Changed {
		return changedStyle.Render(line)
	}
	return line
}

// visibleRange computes the scroll window for the cursor given the terminal
// height.
func (m *Model) visibleRange(total int) (int, int) {
	visibleRows := m.height - 6
	if visibleRows < 5 {
		visibleRows = 5
	}

	start := 0
	if m.cursor >= visibleRows {
		start = m.cursor - visibleRows + 1
	}
	end := start + visibleRows
	if end > total {
		end = total
	}
	return start, end
}

func truncateMiddle(s string, maxLen int) string {
	if maxLen <= 0 || len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	head := (maxLen - 3) / 2
	tail := maxLen - 3 - head
	return s[:head] + "..." + s[len(s)-tail:]
}
