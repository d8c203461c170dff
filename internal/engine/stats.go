package engine

import (
	"github.com/haeunlee/ofter/internal/constants"
	"github.com/haeunlee/ofter/internal/models"
)

// TodaySessions returns the sessions attributed to the activity on the local
// calendar day at query time. A session created before midnight and queried
// after will not match.
func (e *Engine) TodaySessions(activityID string) []models.Session {
	e.mu.Lock()
	defer e.mu.Unlock()

	today := e.today()
	var out []models.Session
	for _, s := range e.sessions {
		if s.ActivityID == activityID && s.Date == today {
			out = append(out, s)
		}
	}
	return out
}

// TodayCount returns how many sessions the activity has today.
func (e *Engine) TodayCount(activityID string) int {
	return len(e.TodaySessions(activityID))
}

// StreakDays counts consecutive calendar days with at least one session,
// walking backward from today and stopping at the first gap. A streak
// requires a session today: with sessions yesterday and the day before but
// none today, the streak is 0.
func (e *Engine) StreakDays(activityID string) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	days := make(map[string]bool)
	for _, s := range e.sessions {
		if s.ActivityID == activityID {
			days[s.Date] = true
		}
	}
	if len(days) == 0 {
		return 0
	}

	streak := 0
	current := e.now()
	for {
		if !days[current.Format(constants.DateFormat)] {
			break
		}
		streak++
		current = current.AddDate(0, 0, -1)
	}
	return streak
}

// TotalsFor returns the cached completed-session count and duration total for
// the activity.
func (e *Engine) TotalsFor(activityID string) (count int, duration int64, ok bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, a := range e.activities {
		if a.ID == activityID {
			return a.TotalCount, a.TotalDuration, true
		}
	}
	return 0, 0, false
}
