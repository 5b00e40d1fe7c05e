package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"wifiwarden/internal/reporting"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "r":
			filename, err := reporting.GenerateSessionReport(m.evaluator, m.alerts, "html")
			if err != nil {
				m.reportMsg = fmt.Sprintf("report failed: %v", err)
			} else {
				m.reportMsg = "report written to " + filename
			}
			return m, nil
		}

	case TickMsg:
		if summary, ok := m.evaluator.LastSummary(); ok {
			m.summary = summary
			m.haveSummary = true
		}
		m.recent = m.alerts.Recent(10)

		rows := make([]table.Row, len(m.recent))
		for i, alert := range m.recent {
			detail := alert.Message
			rows[i] = table.Row{
				alert.Timestamp.Format("15:04:05"),
				string(alert.Kind),
				detail,
			}
		}
		m.table.SetRows(rows)

		return m, tickCmd()
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}
