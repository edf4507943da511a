package dashboard

import (
	"context"
	"fmt"
	"strings"
	"time"

	"GalaPilot/internal/model"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const refreshInterval = 30 * time.Second

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	buyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	sellStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

type tickMsg time.Time

type snapshotMsg struct {
	snapshot *Snapshot
}

type uiModel struct {
	collector *Collector
	snapshot  *Snapshot
	width     int
}

func newUIModel(c *Collector) uiModel {
	return uiModel{collector: c}
}

func (m uiModel) Init() tea.Cmd {
	return m.refresh()
}

func (m uiModel) refresh() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), refreshInterval)
		defer cancel()
		return snapshotMsg{snapshot: m.collector.Collect(ctx)}
	}
}

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m uiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			return m, m.refresh()
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case snapshotMsg:
		m.snapshot = msg.snapshot
		return m, tick()
	case tickMsg:
		return m, m.refresh()
	}
	return m, nil
}

func (m uiModel) View() string {
	if m.snapshot == nil {
		return "loading..."
	}
	snap := m.snapshot

	width := m.width - 4
	if width < 72 {
		width = 72
	}
	half := width/2 - 1

	header := m.renderHeader(snap)
	top := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderPrice(snap, half), " ", m.renderPortfolio(snap, half))
	bottom := m.renderActions(snap, width)

	return lipgloss.JoinVertical(lipgloss.Left, header, top, bottom,
		dimStyle.Render("q: quit  r: refresh"))
}

func (m uiModel) renderHeader(snap *Snapshot) string {
	next := "due now"
	if snap.NextRun > 0 {
		next = "in " + snap.NextRun.Round(time.Second).String()
	}
	return headerStyle.Render(fmt.Sprintf("GalaPilot | %s | next run %s",
		snap.UpdatedAt.Format("15:04:05"), next))
}

func (m uiModel) renderPrice(snap *Snapshot, width int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("GALA / GUSDC"))
	b.WriteByte('\n')
	if snap.Summary == nil {
		b.WriteString(dimStyle.Render("no price history"))
	} else {
		s := snap.Summary
		b.WriteString(fmt.Sprintf("price   %s\n", s.Latest))
		change := s.Change24h.StringFixed(2) + "%"
		if s.Change24h.IsNegative() {
			change = sellStyle.Render(change)
		} else if s.Change24h.IsPositive() {
			change = buyStyle.Render("+" + change)
		}
		b.WriteString(fmt.Sprintf("24h     %s\n", change))
		b.WriteString(fmt.Sprintf("high    %s\n", s.High))
		b.WriteString(fmt.Sprintf("low     %s\n", s.Low))
		b.WriteString(fmt.Sprintf("sma     %s (%d samples)", s.SMA.StringFixed(6), s.Samples))
	}
	return boxStyle.Width(width).Render(b.String())
}

func (m uiModel) renderPortfolio(snap *Snapshot, width int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Holdings"))
	b.WriteByte('\n')
	switch {
	case snap.PortfolioErr != nil:
		b.WriteString(dimStyle.Render(fmt.Sprintf("unavailable: %v", snap.PortfolioErr)))
	case snap.Portfolio == nil || len(snap.Portfolio.Balances) == 0:
		b.WriteString(dimStyle.Render("no holdings"))
	default:
		for _, bal := range snap.Portfolio.Balances {
			b.WriteString(fmt.Sprintf("%-8s %s\n", bal.Symbol, bal.Quantity))
		}
	}
	if snap.Swaps != nil {
		b.WriteString(fmt.Sprintf("\nswaps   %d (%s GALA)", snap.Swaps.Count, snap.Swaps.Volume.StringFixed(2)))
	} else if snap.SwapsErr != nil {
		b.WriteString(dimStyle.Render("\nswap totals unavailable"))
	}
	return boxStyle.Width(width).Render(b.String())
}

func (m uiModel) renderActions(snap *Snapshot, width int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Recent decisions"))
	b.WriteByte('\n')
	if len(snap.Actions) == 0 {
		b.WriteString(dimStyle.Render("none yet"))
	}
	limit := 5
	for i, rec := range snap.Actions {
		if i >= limit {
			b.WriteString(dimStyle.Render(fmt.Sprintf("... %d more", len(snap.Actions)-limit)))
			break
		}
		side := string(rec.Action.Action)
		if rec.Action.Action == model.SideBuy {
			side = buyStyle.Render(side)
		} else {
			side = sellStyle.Render(side)
		}
		b.WriteString(fmt.Sprintf("%s  %s %s %s  %s\n",
			rec.Timestamp.Format("01-02 15:04"),
			side, rec.Action.Amount, rec.Action.Token,
			truncate(rec.Result, width-40)))
	}
	return boxStyle.Width(width).Render(strings.TrimRight(b.String(), "\n"))
}

func truncate(s string, max int) string {
	if max < 10 {
		max = 10
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

// Run starts the dashboard and blocks until the user quits.
func Run(c *Collector) error {
	p := tea.NewProgram(newUIModel(c), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
