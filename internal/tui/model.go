package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"wifiwarden/internal/detect"
	"wifiwarden/internal/models"
)

// TickMsg drives the periodic refresh of the view.
type TickMsg time.Time

type Model struct {
	evaluator *detect.Evaluator
	alerts    *detect.AlertLog
	channel   func() models.ChannelState

	interfaceName string
	table         table.Model

	summary     detect.WindowSummary
	haveSummary bool
	recent      []detect.Alert
	reportMsg   string
}

func NewModel(evaluator *detect.Evaluator, alerts *detect.AlertLog, channel func() models.ChannelState, iface string) Model {
	columns := []table.Column{
		{Title: "Time", Width: 8},
		{Title: "Kind", Width: 22},
		{Title: "Detail", Width: 60},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(false),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return Model{
		evaluator:     evaluator,
		alerts:        alerts,
		channel:       channel,
		interfaceName: iface,
		table:         t,
	}
}

func (m Model) Init() tea.Cmd {
	return tickCmd()
}

func tickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
