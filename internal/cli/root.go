package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/haeunlee/ofter/internal/backup"
	"github.com/haeunlee/ofter/internal/engine"
	"github.com/haeunlee/ofter/internal/logger"
	"github.com/haeunlee/ofter/internal/models"
	"github.com/haeunlee/ofter/internal/notifier"
	"github.com/haeunlee/ofter/internal/storage"
)

type Context struct {
	Store storage.Provider

	eng *engine.Engine
}

// Engine returns the tracking engine, loading persisted state on first use.
// A failed load degrades to an empty engine so the command can still run;
// the cause is logged and echoed to stderr.
func (c *Context) Engine() *engine.Engine {
	if c.eng == nil {
		snap, err := c.Store.Load()
		if err != nil {
			logger.Warn("Failed to load stored state, starting empty", "error", err)
			fmt.Fprintf(os.Stderr, "Warning: %v (starting with empty state)\n", err)
			snap = models.Snapshot{}
		}
		c.eng = engine.New(
			engine.WithStore(c.Store),
			engine.WithSnapshot(snap),
		)
	}
	return c.eng
}

// PerformAutomaticBackup creates an automatic backup and silently handles
// errors so it never interrupts the user's workflow.
func (c *Context) PerformAutomaticBackup() {
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.CreateBackup(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// NotifySessionEnd sends a desktop notification for a committed session when
// the owning activity has notifications enabled. Best-effort: the tray app
// may not be running.
func (c *Context) NotifySessionEnd(activity models.Activity, durationText string) {
	if !activity.NotificationEnabled {
		return
	}
	n := notifier.New()
	if err := n.Notify(fmt.Sprintf("%s %s · %s recorded", activity.Icon, activity.Name, durationText)); err != nil {
		logger.Debug("Session notification skipped", "error", err)
	}
}

// ResolveActivity finds an activity by id or (case-insensitive) name.
func (c *Context) ResolveActivity(ref string) (models.Activity, error) {
	eng := c.Engine()
	if a, ok := eng.Activity(ref); ok {
		return a, nil
	}
	if a, ok := eng.ActivityByName(ref); ok {
		return a, nil
	}
	for _, a := range eng.Activities() {
		if strings.EqualFold(a.Name, ref) {
			return a, nil
		}
	}
	return models.Activity{}, fmt.Errorf("no activity named %q", ref)
}

// ColorDot renders a terminal color swatch for an activity color.
func ColorDot(color models.Color) string {
	codes := map[models.Color]string{
		models.ColorBlue:   "34",
		models.ColorGreen:  "32",
		models.ColorYellow: "33",
		models.ColorPurple: "35",
		models.ColorOrange: "91",
	}
	code, ok := codes[color]
	if !ok {
		return "●"
	}
	return fmt.Sprintf("\x1b[%sm●\x1b[0m", code)
}

// Confirm prompts for a y/N answer on stdin.
func Confirm(prompt string) (bool, error) {
	fmt.Printf("%s [y/N]: ", prompt)
	var response string
	if _, err := fmt.Fscanln(os.Stdin, &response); err != nil && err.Error() != "unexpected newline" {
		return false, nil
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}
