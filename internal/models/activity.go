package models

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/haeunlee/ofter/internal/constants"
)

// Color is one of the fixed activity palette colors.
type Color string

const (
	ColorBlue   Color = "blue"
	ColorGreen  Color = "green"
	ColorYellow Color = "yellow"
	ColorPurple Color = "purple"
	ColorOrange Color = "orange"
)

// Palette lists the valid activity colors in display order.
var Palette = []Color{ColorBlue, ColorGreen, ColorYellow, ColorPurple, ColorOrange}

// ValidColor reports whether c is a member of the palette.
func ValidColor(c Color) bool {
	for _, p := range Palette {
		if c == p {
			return true
		}
	}
	return false
}

// Activity represents a tracked habit. TotalCount and TotalDuration are
// derived caches over the session set; every mutation path that adds or
// removes sessions must update them in the same step.
type Activity struct {
	ID                  string `json:"id"`
	Name                string `json:"name"`
	Icon                string `json:"icon"`
	Color               Color  `json:"color"`
	TotalCount          int    `json:"totalCount"`
	TotalDuration       int64  `json:"totalDuration"` // seconds
	CreatedAt           int64  `json:"createdAt"`     // Unix milliseconds
	NotificationEnabled bool   `json:"notificationEnabled"`
}

// Validate checks the input constraints for a new or renamed activity.
func (a Activity) Validate() error {
	name := strings.TrimSpace(a.Name)
	if name == "" {
		return fmt.Errorf("activity name cannot be empty")
	}
	if utf8.RuneCountInString(name) > constants.MaxActivityNameLen {
		return fmt.Errorf("activity name cannot exceed %d characters", constants.MaxActivityNameLen)
	}
	if !ValidColor(a.Color) {
		return fmt.Errorf("invalid activity color: %s", a.Color)
	}
	return nil
}

// ActivityPatch carries the fields of a partial activity update. Nil fields
// are left untouched by the merge.
type ActivityPatch struct {
	Name                *string
	Icon                *string
	Color               *Color
	TotalCount          *int
	TotalDuration       *int64
	NotificationEnabled *bool
}
