package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/haeunlee/ofter/internal/constants"
	"github.com/haeunlee/ofter/internal/models"
	"github.com/haeunlee/ofter/internal/tui/components/board"
)

// tickMsg drives the 1-second refresh of running timer displays.
type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		contentHeight := msg.Height - 6
		m.boardModel.SetSize(msg.Width-4, contentHeight)
		m.statsModel.SetSize(msg.Width-4, contentHeight)
		return m, nil

	case tickMsg:
		// Elapsed display only; reads never mutate timer state.
		m.boardModel.Refresh(m.eng)
		return m, tickCmd()
	}

	switch m.state {
	case constants.StateAddActivity, constants.StateEditActivity:
		return m.updateForm(msg)
	case constants.StateConfirmRemove, constants.StateConfirmClear:
		return m.updateConfirmation(msg)
	}

	return m.updateMain(msg)
}

func (m Model) updateMain(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case msg.String() == "C":
			m.confirmation = &constants.ConfirmationMsg{
				Message: "Delete ALL activities, sessions, and running timers?",
			}
			m.previousState = m.state
			m.state = constants.StateConfirmClear
			return m, nil
		case key.Matches(msg, m.keys.Tab), key.Matches(msg, m.keys.ShiftTab):
			if m.state == constants.StateBoard {
				m.state = constants.StateStats
				m.statsModel.Refresh(m.eng)
			} else {
				m.state = constants.StateBoard
				m.boardModel.Refresh(m.eng)
			}
			return m, nil
		}

	case board.ToggleMsg:
		m.eng.StartTimer(msg.ID)
		m.boardModel.Refresh(m.eng)
		return m, nil

	case board.AddMsg:
		m.activityForm = &ActivityFormModel{Icon: "auto", Color: string(models.Palette[len(m.eng.Activities())%len(models.Palette)]), Notify: true}
		m.form = newActivityForm(m.activityForm)
		m.editingID = ""
		m.previousState = m.state
		m.state = constants.StateAddActivity
		return m, m.form.Init()

	case board.EditMsg:
		activity, ok := m.eng.Activity(msg.ID)
		if !ok {
			return m, nil
		}
		m.activityForm = &ActivityFormModel{
			Name:   activity.Name,
			Icon:   activity.Icon,
			Color:  string(activity.Color),
			Notify: activity.NotificationEnabled,
		}
		m.form = newActivityForm(m.activityForm)
		m.editingID = activity.ID
		m.previousState = m.state
		m.state = constants.StateEditActivity
		return m, m.form.Init()

	case board.RemoveMsg:
		activity, ok := m.eng.Activity(msg.ID)
		if !ok {
			return m, nil
		}
		id := activity.ID
		m.confirmation = &constants.ConfirmationMsg{
			Message: "Remove \"" + activity.Name + "\" and all its sessions?",
		}
		m.editingID = id
		m.previousState = m.state
		m.state = constants.StateConfirmRemove
		return m, nil
	}

	if m.state == constants.StateBoard {
		var cmd tea.Cmd
		m.boardModel, cmd = m.boardModel.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.statsModel, cmd = m.statsModel.Update(msg)
	return m, cmd
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = constants.StateBoard
		return m, nil
	}

	var cmds []tea.Cmd
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	cmds = append(cmds, cmd)

	switch m.form.State {
	case huh.StateCompleted:
		m.applyActivityForm()
		m.boardModel.Refresh(m.eng)
		m.state = constants.StateBoard
	case huh.StateAborted:
		m.state = constants.StateBoard
	}

	return m, tea.Batch(cmds...)
}

// applyActivityForm commits the form to the engine, as an add or an update
// depending on whether an activity was being edited.
func (m *Model) applyActivityForm() {
	f := m.activityForm

	icon := f.Icon
	if icon == "auto" {
		icon = ""
	}

	if m.editingID == "" {
		// An empty icon makes AddActivity resolve one from the name.
		added, err := m.eng.AddActivity(f.Name, icon, models.Color(f.Color))
		if err == nil && !f.Notify {
			m.eng.UpdateActivity(added.ID, models.ActivityPatch{NotificationEnabled: &f.Notify})
		}
		return
	}

	color := models.Color(f.Color)
	patch := models.ActivityPatch{
		Name:                &f.Name,
		Color:               &color,
		NotificationEnabled: &f.Notify,
	}
	if icon != "" {
		patch.Icon = &icon
	}
	m.eng.UpdateActivity(m.editingID, patch)
}

func (m Model) updateConfirmation(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "y", "Y", "enter":
			switch m.state {
			case constants.StateConfirmRemove:
				m.eng.RemoveActivity(m.editingID)
			case constants.StateConfirmClear:
				m.eng.ClearAll()
			}
			m.confirmation = nil
			m.boardModel.Refresh(m.eng)
			m.statsModel.Refresh(m.eng)
			m.state = constants.StateBoard
			return m, nil
		case "n", "N", "esc", "q":
			m.confirmation = nil
			m.state = m.previousState
			return m, nil
		}
	}
	return m, nil
}
