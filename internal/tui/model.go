package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/haeunlee/ofter/internal/constants"
	"github.com/haeunlee/ofter/internal/engine"
	"github.com/haeunlee/ofter/internal/icons"
	"github.com/haeunlee/ofter/internal/models"
	"github.com/haeunlee/ofter/internal/tui/components/board"
	"github.com/haeunlee/ofter/internal/tui/components/statsview"
)

// ActivityFormModel backs the add/edit activity form.
type ActivityFormModel struct {
	Name   string
	Icon   string
	Color  string
	Notify bool
}

type Model struct {
	eng           *engine.Engine
	state         constants.SessionState
	previousState constants.SessionState
	keys          KeyMap
	help          help.Model
	boardModel    board.Model
	statsModel    statsview.Model
	form          *huh.Form
	activityForm  *ActivityFormModel
	editingID     string
	confirmation  *constants.ConfirmationMsg
	quitting      bool
	width         int
	height        int
}

func NewModel(eng *engine.Engine) Model {
	return Model{
		eng:        eng,
		state:      constants.StateBoard,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		boardModel: board.New(eng, 0, 0),
		statsModel: statsview.New(eng, 0, 0),
	}
}

func (m Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
}

func (m Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help},
		{m.keys.Up, m.keys.Down, m.keys.Enter},
	}
}

func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// newActivityForm builds the huh form for adding or editing an activity.
// The icon select offers "auto" which resolves from name keywords on save.
func newActivityForm(f *ActivityFormModel) *huh.Form {
	iconOptions := []huh.Option[string]{huh.NewOption("auto (match name)", "auto")}
	for _, k := range icons.Keys() {
		iconOptions = append(iconOptions, huh.NewOption(fmt.Sprintf("%s %s", icons.Glyph(k), k), k))
	}

	colorOptions := make([]huh.Option[string], len(models.Palette))
	for i, c := range models.Palette {
		colorOptions[i] = huh.NewOption(string(c), string(c))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&f.Name).
				Validate(func(s string) error {
					trimmed := strings.TrimSpace(s)
					if trimmed == "" {
						return fmt.Errorf("name cannot be empty")
					}
					if utf8.RuneCountInString(trimmed) > constants.MaxActivityNameLen {
						return fmt.Errorf("name must be at most %d characters", constants.MaxActivityNameLen)
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Icon").
				Options(iconOptions...).
				Value(&f.Icon),
			huh.NewSelect[string]().
				Title("Color").
				Options(colorOptions...).
				Value(&f.Color),
			huh.NewConfirm().
				Title("Session notifications").
				Value(&f.Notify),
		),
	)
}
