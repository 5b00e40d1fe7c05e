package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFF7DB")).
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1).
			Margin(0, 1)
)

func (m Model) View() string {
	title := titleStyle.Render(fmt.Sprintf("wifiwarden - Watching: %s", m.interfaceName))

	ch := m.channel()
	mode := "lock"
	if ch.Hopping {
		mode = "hop"
	}
	radio := fmt.Sprintf("Channel: %d (%s)", ch.Channel, mode)
	radioBox := infoStyle.Render(radio)

	var summary string
	if m.haveSummary {
		summary = fmt.Sprintf(
			"Uptime: %s\nDeauth: %d  Beacon: %d  Probe: %d\nHidden SSID: %d  Unique MACs: %d  Randomized: %d%%",
			m.summary.Uptime.Truncate(time.Second),
			m.summary.Deauth, m.summary.Beacon, m.summary.Probe,
			m.summary.Hidden, m.summary.UniqueAddresses, m.summary.RandomizedPct,
		)
	} else {
		summary = "Waiting for first window..."
	}
	summaryBox := infoStyle.Render("Last window\n" + summary)

	alertsBox := infoStyle.Render("Alerts\n" + m.table.View())

	row1 := lipgloss.JoinHorizontal(lipgloss.Top, summaryBox, radioBox)
	body := lipgloss.JoinVertical(lipgloss.Left, title, row1, alertsBox)

	footer := "\nPress q to quit, r for session report."
	if m.reportMsg != "" {
		footer += " " + m.reportMsg
	}
	return body + footer
}
