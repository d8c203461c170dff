package system

import (
	"fmt"

	"github.com/haeunlee/ofter/internal/cli"
	"github.com/haeunlee/ofter/internal/notifier"
)

// NotifyCmd sends a desktop notification through the tray app. Hidden; used
// by scripts and for troubleshooting the notification path.
type NotifyCmd struct {
	Text   string `arg:"" help:"Notification text."`
	DryRun bool   `help:"Print the notification to stdout instead of sending it."`
}

func (c *NotifyCmd) Run(ctx *cli.Context) error {
	if c.DryRun {
		fmt.Println("[DryRun] " + c.Text)
		return nil
	}

	if err := notifier.New().Notify(c.Text); err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}
	return nil
}
