// Package stats implements the reporting commands: today, streak, summary.
package stats

import (
	"fmt"
	"sort"

	"github.com/haeunlee/ofter/internal/cli"
	"github.com/haeunlee/ofter/internal/icons"
	"github.com/haeunlee/ofter/internal/utils"
)

type TodayCmd struct {
	Name string `arg:"" optional:"" help:"Activity name or id. Omit for all activities."`
}

func (c *TodayCmd) Run(ctx *cli.Context) error {
	eng := ctx.Engine()

	if c.Name != "" {
		activity, err := ctx.ResolveActivity(c.Name)
		if err != nil {
			return err
		}

		sessions := eng.TodaySessions(activity.ID)
		if len(sessions) == 0 {
			fmt.Printf("No sessions today for %s.\n", activity.Name)
			return nil
		}

		var total int64
		for _, s := range sessions {
			fmt.Printf("  %s - %s  %s\n",
				utils.ClockOfMillis(s.StartTime), utils.ClockOfMillis(s.EndTime),
				utils.FormatDuration(s.Duration))
			total += s.Duration
		}
		fmt.Printf("%s %s today: %d session(s), %s\n",
			icons.Glyph(activity.Icon), activity.Name, len(sessions), utils.FormatDuration(total))
		return nil
	}

	any := false
	for _, a := range eng.Activities() {
		count := eng.TodayCount(a.ID)
		if count == 0 {
			continue
		}
		any = true

		var total int64
		for _, s := range eng.TodaySessions(a.ID) {
			total += s.Duration
		}
		fmt.Printf("%s %s %-20s  %d session(s)  %s\n",
			cli.ColorDot(a.Color), icons.Glyph(a.Icon), a.Name, count, utils.FormatDuration(total))
	}
	if !any {
		fmt.Println("No sessions recorded today.")
	}
	return nil
}

type StreakCmd struct {
	Name string `arg:"" optional:"" help:"Activity name or id. Omit for all activities."`
}

func (c *StreakCmd) Run(ctx *cli.Context) error {
	eng := ctx.Engine()

	if c.Name != "" {
		activity, err := ctx.ResolveActivity(c.Name)
		if err != nil {
			return err
		}
		fmt.Printf("%s %s: %s\n", icons.Glyph(activity.Icon), activity.Name, formatStreak(eng.StreakDays(activity.ID)))
		return nil
	}

	activities := eng.Activities()
	if len(activities) == 0 {
		fmt.Println("No activities yet.")
		return nil
	}
	for _, a := range activities {
		fmt.Printf("%s %s %-20s  %s\n",
			cli.ColorDot(a.Color), icons.Glyph(a.Icon), a.Name, formatStreak(eng.StreakDays(a.ID)))
	}
	return nil
}

func formatStreak(days int) string {
	if days == 0 {
		return "no streak"
	}
	return fmt.Sprintf("🔥 %d day streak", days)
}

type SummaryCmd struct{}

func (c *SummaryCmd) Run(ctx *cli.Context) error {
	eng := ctx.Engine()
	activities := eng.Activities()
	if len(activities) == 0 {
		fmt.Println("No activities yet.")
		return nil
	}

	// Most-practiced first.
	sorted := make([]int, len(activities))
	for i := range sorted {
		sorted[i] = i
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return activities[sorted[i]].TotalDuration > activities[sorted[j]].TotalDuration
	})

	var grandCount int
	var grandDuration int64
	fmt.Printf("%-24s %10s %12s %8s %8s\n", "ACTIVITY", "SESSIONS", "TOTAL", "TODAY", "STREAK")
	for _, i := range sorted {
		a := activities[i]
		grandCount += a.TotalCount
		grandDuration += a.TotalDuration
		fmt.Printf("%s %s %-20s %10d %12s %8d %8d\n",
			cli.ColorDot(a.Color), icons.Glyph(a.Icon), a.Name,
			a.TotalCount, utils.FormatDuration(a.TotalDuration),
			eng.TodayCount(a.ID), eng.StreakDays(a.ID))
	}
	fmt.Printf("\n%d activities, %d sessions, %s tracked in total\n",
		len(activities), grandCount, utils.FormatDuration(grandDuration))
	return nil
}
