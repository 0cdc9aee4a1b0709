package streak

import (
	"fmt"
	"time"

	v1 "github.com/scriptoria-lab/project-scriptoria/internal/api/v1"
	"github.com/scriptoria-lab/project-scriptoria/internal/core/calendar"
)

// DeriveVirtualClosures synthesizes DayClosed events for every working day
// in (start, end] that has no real activity.
//
// start is exclusive (the cursor already evaluated); end is inclusive and
// must already honor the optimistic rule: the caller passes today only
// when today has real activity, otherwise yesterday. A day is skipped when
// it is a weekend, appears in holidays, or has at least one entry in
// eventsByDay.
//
// The result is ordered ascending by day key (equivalently by CreatedAt,
// since every closure is stamped end-of-day). The function is pure:
// identical inputs always yield identical output, which is what makes
// replay-from-checkpoint safe.
func DeriveVirtualClosures(
	userID string,
	start, end calendar.DayKey,
	eventsByDay map[calendar.DayKey][]*v1.Event,
	loc *time.Location,
	holidays calendar.HolidayMap,
) ([]*v1.Event, error) {
	if loc == nil {
		return nil, fmt.Errorf("derive closures: location is required")
	}
	// start == end is an empty range: the cursor day itself is never
	// re-evaluated.
	if !start.Before(end) {
		return nil, nil
	}

	var closures []*v1.Event
	day := start
	for {
		next, err := day.AddDays(1, loc)
		if err != nil {
			return nil, fmt.Errorf("derive closures: %w", err)
		}
		day = next
		if day.After(end) {
			return closures, nil
		}

		working, err := calendar.IsWorkingDay(day, loc, holidays)
		if err != nil {
			return nil, fmt.Errorf("derive closures: %w", err)
		}
		if !working {
			continue
		}
		if len(eventsByDay[day]) > 0 {
			continue
		}

		endOfDay, err := day.EndOfDay(loc)
		if err != nil {
			return nil, fmt.Errorf("derive closures: %w", err)
		}
		closures = append(closures, v1.NewVirtualDayClosed(userID, day, endOfDay))
	}
}

// GroupEventsByDay indexes events by their stamped day key.
func GroupEventsByDay(events []*v1.Event) map[calendar.DayKey][]*v1.Event {
	byDay := make(map[calendar.DayKey][]*v1.Event, len(events))
	for _, evt := range events {
		byDay[evt.DayKey] = append(byDay[evt.DayKey], evt)
	}
	return byDay
}
