package system

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/haeunlee/ofter/internal/cli"
	"github.com/haeunlee/ofter/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	eng := ctx.Engine()

	// Automatic safety backup on TUI startup. Skipped for non-file stores.
	if ctx.Store.GetConfigPath() != "postgresql" {
		ctx.PerformAutomaticBackup()
	}

	p := tea.NewProgram(tui.NewModel(eng), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Alas, there's been an error: %v", err)
		os.Exit(1)
	}
	return nil
}
