// Package timers implements the start/stop/status commands.
package timers

import (
	"fmt"

	"github.com/haeunlee/ofter/internal/cli"
	"github.com/haeunlee/ofter/internal/icons"
	"github.com/haeunlee/ofter/internal/utils"
)

type StartCmd struct {
	Name string `arg:"" help:"Activity name or id. Starting an already-running activity stops it."`
}

func (c *StartCmd) Run(ctx *cli.Context) error {
	activity, err := ctx.ResolveActivity(c.Name)
	if err != nil {
		return err
	}

	eng := ctx.Engine()
	session, committed := eng.StartTimer(activity.ID)
	if committed {
		text := utils.FormatDuration(session.Duration)
		fmt.Printf("Stopped %s %s, recorded %s\n", icons.Glyph(activity.Icon), activity.Name, text)
		ctx.NotifySessionEnd(activity, text)
		return nil
	}

	fmt.Printf("Started %s %s\n", icons.Glyph(activity.Icon), activity.Name)
	return nil
}

type StopCmd struct {
	Name string `arg:"" optional:"" help:"Activity name or id. Omit to stop all running timers."`
}

func (c *StopCmd) Run(ctx *cli.Context) error {
	eng := ctx.Engine()

	if c.Name == "" {
		timers := eng.ActiveTimers()
		if len(timers) == 0 {
			fmt.Println("No timers running.")
			return nil
		}
		for _, t := range timers {
			activity, ok := eng.Activity(t.ActivityID)
			if session, stopped := eng.StopTimer(t.ActivityID); stopped && ok {
				text := utils.FormatDuration(session.Duration)
				fmt.Printf("Stopped %s %s, recorded %s\n", icons.Glyph(activity.Icon), activity.Name, text)
				ctx.NotifySessionEnd(activity, text)
			}
		}
		return nil
	}

	activity, err := ctx.ResolveActivity(c.Name)
	if err != nil {
		return err
	}

	session, stopped := eng.StopTimer(activity.ID)
	if !stopped {
		fmt.Printf("%s is not running.\n", activity.Name)
		return nil
	}

	text := utils.FormatDuration(session.Duration)
	fmt.Printf("Stopped %s %s, recorded %s\n", icons.Glyph(activity.Icon), activity.Name, text)
	ctx.NotifySessionEnd(activity, text)
	return nil
}

type StatusCmd struct{}

func (c *StatusCmd) Run(ctx *cli.Context) error {
	eng := ctx.Engine()
	timers := eng.ActiveTimers()
	if len(timers) == 0 {
		fmt.Println("No timers running.")
		return nil
	}

	for _, t := range timers {
		activity, ok := eng.Activity(t.ActivityID)
		if !ok {
			continue
		}
		elapsed, _ := eng.ElapsedSeconds(t.ActivityID)
		fmt.Printf("▶ %s %s  %s (started %s)\n",
			icons.Glyph(activity.Icon), activity.Name,
			utils.FormatDuration(elapsed), utils.ClockOfMillis(t.StartTime))
	}
	return nil
}
