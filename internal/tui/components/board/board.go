// Package board renders the activity cards with running-timer state and
// emits messages for the actions the user takes on them.
package board

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/haeunlee/ofter/internal/engine"
	"github.com/haeunlee/ofter/internal/icons"
	"github.com/haeunlee/ofter/internal/models"
	"github.com/haeunlee/ofter/internal/utils"
)

type ToggleMsg struct {
	ID string
}

type AddMsg struct{}

type EditMsg struct {
	ID string
}

type RemoveMsg struct {
	ID string
}

type Item struct {
	Activity models.Activity
	Running  bool
	Elapsed  int64
	Today    int
	Streak   int
}

func (i Item) Title() string {
	title := fmt.Sprintf("%s %s", icons.Glyph(i.Activity.Icon), i.Activity.Name)
	if i.Running {
		title = fmt.Sprintf("▶ %s  %s", title, utils.FormatDuration(i.Elapsed))
	}
	return title
}

func (i Item) Description() string {
	desc := fmt.Sprintf("%d today · %d total · %s",
		i.Today, i.Activity.TotalCount, utils.FormatDuration(i.Activity.TotalDuration))
	if i.Streak > 0 {
		desc += fmt.Sprintf(" · 🔥 %d", i.Streak)
	}
	return desc
}

func (i Item) FilterValue() string { return i.Activity.Name }

type KeyMap struct {
	Toggle key.Binding
	Add    key.Binding
	Edit   key.Binding
	Remove key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Toggle: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "start/stop"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Remove: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "remove"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(eng *engine.Engine, width, height int) Model {
	l := list.New(buildItems(eng), list.NewDefaultDelegate(), width, height)
	l.Title = "Activities"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Toggle, keys.Add, keys.Edit, keys.Remove}
	}
	l.AdditionalFullHelpKeys = l.AdditionalShortHelpKeys

	return Model{list: l, keys: keys}
}

func buildItems(eng *engine.Engine) []list.Item {
	activities := eng.Activities()
	items := make([]list.Item, len(activities))
	for i, a := range activities {
		elapsed, running := eng.ElapsedSeconds(a.ID)
		items[i] = Item{
			Activity: a,
			Running:  running,
			Elapsed:  elapsed,
			Today:    eng.TodayCount(a.ID),
			Streak:   eng.StreakDays(a.ID),
		}
	}
	return items
}

// Refresh rebuilds the card list from current engine state, keeping the
// cursor position.
func (m *Model) Refresh(eng *engine.Engine) {
	selected := m.list.Index()
	m.list.SetItems(buildItems(eng))
	if selected < len(m.list.Items()) {
		m.list.Select(selected)
	}
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}

// Selected returns the activity under the cursor.
func (m Model) Selected() (models.Activity, bool) {
	if i, ok := m.list.SelectedItem().(Item); ok {
		return i.Activity, true
	}
	return models.Activity{}, false
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Toggle):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return ToggleMsg{ID: i.Activity.ID} }
			}
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddMsg{} }
		case key.Matches(msg, m.keys.Edit):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return EditMsg{ID: i.Activity.ID} }
			}
		case key.Matches(msg, m.keys.Remove):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return RemoveMsg{ID: i.Activity.ID} }
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.list.View()
}
