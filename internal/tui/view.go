package tui

import (
	"fmt"
	"strings"

	"github.com/haeunlee/ofter/internal/constants"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.state {
	case constants.StateAddActivity, constants.StateEditActivity:
		return docStyle.Render(m.form.View())
	case constants.StateConfirmRemove, constants.StateConfirmClear:
		return docStyle.Render(m.confirmationView())
	}

	var b strings.Builder
	b.WriteString(m.tabsView())
	b.WriteString("\n\n")

	switch m.state {
	case constants.StateStats:
		b.WriteString(m.statsModel.View())
	default:
		b.WriteString(m.boardModel.View())
	}

	if n := m.eng.ActiveTimerCount(); n > 0 {
		b.WriteString("\n")
		b.WriteString(statusStyle.Render(fmt.Sprintf("▶ %d timer(s) running", n)))
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m))

	return docStyle.Render(b.String())
}

func (m Model) tabsView() string {
	tabs := []struct {
		name  string
		state constants.SessionState
	}{
		{"Board", constants.StateBoard},
		{"Stats", constants.StateStats},
	}

	rendered := make([]string, len(tabs))
	for i, t := range tabs {
		if m.state == t.state {
			rendered[i] = activeTabStyle.Render(t.name)
		} else {
			rendered[i] = inactiveTabStyle.Render(t.name)
		}
	}
	return strings.Join(rendered, " ")
}

func (m Model) confirmationView() string {
	msg := ""
	if m.confirmation != nil {
		msg = m.confirmation.Message
	}
	return dangerStyle.Render(msg) + "\n\n[y] yes  [n] no"
}
