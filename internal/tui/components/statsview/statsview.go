// Package statsview renders the aggregate statistics tab.
package statsview

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/haeunlee/ofter/internal/engine"
	"github.com/haeunlee/ofter/internal/icons"
	"github.com/haeunlee/ofter/internal/utils"
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")).
			Bold(true)

	totalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)
)

type row struct {
	name     string
	icon     string
	sessions int
	total    int64
	today    int
	streak   int
}

type Model struct {
	rows   []row
	width  int
	height int
}

func New(eng *engine.Engine, width, height int) Model {
	m := Model{width: width, height: height}
	m.Refresh(eng)
	return m
}

// Refresh recomputes all aggregates from current engine state.
func (m *Model) Refresh(eng *engine.Engine) {
	activities := eng.Activities()
	rows := make([]row, len(activities))
	for i, a := range activities {
		rows[i] = row{
			name:     a.Name,
			icon:     icons.Glyph(a.Icon),
			sessions: a.TotalCount,
			total:    a.TotalDuration,
			today:    eng.TodayCount(a.ID),
			streak:   eng.StreakDays(a.ID),
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].total > rows[j].total
	})
	m.rows = rows
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m, nil
}

func (m Model) View() string {
	if len(m.rows) == 0 {
		return "No activities yet. Press tab, then 'a' to add one."
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%-24s %9s %12s %7s %7s", "ACTIVITY", "SESSIONS", "TOTAL", "TODAY", "STREAK")))
	b.WriteString("\n")

	var grandSessions int
	var grandTotal int64
	for _, r := range m.rows {
		grandSessions += r.sessions
		grandTotal += r.total
		fmt.Fprintf(&b, "%s %-22s %9d %12s %7d %7d\n",
			r.icon, r.name, r.sessions, utils.FormatDuration(r.total), r.today, r.streak)
	}

	b.WriteString("\n")
	b.WriteString(totalStyle.Render(fmt.Sprintf("%d sessions · %s tracked",
		grandSessions, utils.FormatDuration(grandTotal))))
	return b.String()
}
