// Package activities implements the activity management commands.
package activities

import (
	"fmt"
	"sort"
	"strings"

	"github.com/haeunlee/ofter/internal/cli"
	"github.com/haeunlee/ofter/internal/icons"
	"github.com/haeunlee/ofter/internal/models"
	"github.com/haeunlee/ofter/internal/utils"
)

type ActivityCmd struct {
	Add  ActivityAddCmd  `cmd:"" help:"Add a new activity."`
	List ActivityListCmd `cmd:"" help:"List activities."`
	Edit ActivityEditCmd `cmd:"" help:"Edit an existing activity."`
	Rm   ActivityRmCmd   `cmd:"" help:"Remove an activity and its session history."`
}

type ActivityAddCmd struct {
	Name  string `arg:"" help:"Activity name (max 20 characters)."`
	Icon  string `help:"Icon key. Defaults to a keyword match on the name."`
	Color string `help:"Card color." enum:"blue,green,yellow,purple,orange," default:""`
}

func (c *ActivityAddCmd) Run(ctx *cli.Context) error {
	eng := ctx.Engine()

	if _, exists := eng.ActivityByName(strings.TrimSpace(c.Name)); exists {
		return fmt.Errorf("activity %q already exists", strings.TrimSpace(c.Name))
	}

	icon := c.Icon
	if icon == "" {
		icon = icons.Resolve(c.Name)
	} else if !icons.Valid(icon) {
		return fmt.Errorf("unknown icon %q (see 'ofter activity list --icons')", icon)
	}

	color := models.Color(c.Color)
	if c.Color == "" {
		// Cycle through the palette so adjacent cards get distinct colors.
		color = models.Palette[len(eng.Activities())%len(models.Palette)]
	}

	activity, err := eng.AddActivity(c.Name, icon, color)
	if err != nil {
		return err
	}

	fmt.Printf("Added %s %s (%s)\n", icons.Glyph(activity.Icon), activity.Name, activity.Color)
	return nil
}

type ActivityListCmd struct {
	Icons bool `help:"List available icon keys instead of activities."`
}

func (c *ActivityListCmd) Run(ctx *cli.Context) error {
	if c.Icons {
		keys := icons.Keys()
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Printf("  %s %s\n", icons.Glyph(k), k)
		}
		return nil
	}

	eng := ctx.Engine()
	activities := eng.Activities()
	if len(activities) == 0 {
		fmt.Println("No activities yet. Add one with 'ofter activity add NAME'.")
		return nil
	}

	for _, a := range activities {
		marker := " "
		if eng.IsTimerActive(a.ID) {
			marker = "▶"
		}
		fmt.Printf("%s %s %s %-20s  %3d sessions  %s\n",
			marker, cli.ColorDot(a.Color), icons.Glyph(a.Icon), a.Name,
			a.TotalCount, utils.FormatDuration(a.TotalDuration))
	}
	return nil
}

type ActivityEditCmd struct {
	Name string `arg:"" help:"Activity name or id."`

	NewName string `help:"New activity name."`
	Icon    string `help:"New icon key."`
	Color   string `help:"New card color." enum:"blue,green,yellow,purple,orange," default:""`
	Notify  string `help:"Enable or disable session notifications." enum:"on,off," default:""`
}

func (c *ActivityEditCmd) Run(ctx *cli.Context) error {
	activity, err := ctx.ResolveActivity(c.Name)
	if err != nil {
		return err
	}

	var patch models.ActivityPatch
	if c.NewName != "" {
		patch.Name = &c.NewName
	}
	if c.Icon != "" {
		if !icons.Valid(c.Icon) {
			return fmt.Errorf("unknown icon %q", c.Icon)
		}
		patch.Icon = &c.Icon
	}
	if c.Color != "" {
		color := models.Color(c.Color)
		patch.Color = &color
	}
	if c.Notify != "" {
		enabled := c.Notify == "on"
		patch.NotificationEnabled = &enabled
	}

	if patch == (models.ActivityPatch{}) {
		return fmt.Errorf("nothing to change, pass --new-name, --icon, --color, or --notify")
	}

	ctx.Engine().UpdateActivity(activity.ID, patch)

	updated, _ := ctx.Engine().Activity(activity.ID)
	fmt.Printf("Updated %s %s\n", icons.Glyph(updated.Icon), updated.Name)
	return nil
}

type ActivityRmCmd struct {
	Name  string `arg:"" help:"Activity name or id."`
	Force bool   `help:"Skip the confirmation prompt."`
}

func (c *ActivityRmCmd) Run(ctx *cli.Context) error {
	activity, err := ctx.ResolveActivity(c.Name)
	if err != nil {
		return err
	}

	if !c.Force {
		ok, err := cli.Confirm(fmt.Sprintf(
			"Remove %q and its %d recorded session(s)?", activity.Name, activity.TotalCount))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	ctx.Engine().RemoveActivity(activity.ID)
	fmt.Printf("Removed %s\n", activity.Name)
	return nil
}
