// Package agenda derives display lists from an event collection and the
// current wall-clock time. The functions are pure: they never touch the
// store and are recomputed on every render.
package agenda

import (
	"sort"
	"time"

	"github.com/quietvalley/beacon/internal/model"
)

// Upcoming returns events that have not finished yet: start time at or after
// now, or still ongoing (end time present and at or after now). Sorted by
// start time ascending, capped at limit. A limit <= 0 means no cap.
func Upcoming(events []model.Event, now time.Time, limit int) []model.Event {
	var out []model.Event
	for _, e := range events {
		if !e.StartTime.Before(now) {
			out = append(out, e)
			continue
		}
		if e.EndTime != nil && !e.EndTime.Before(now) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartTime.Before(out[j].StartTime)
	})
	return truncate(out, limit)
}

// Recent returns past events: start time before now and not ongoing. Sorted
// by start time descending, capped at limit.
func Recent(events []model.Event, now time.Time, limit int) []model.Event {
	var out []model.Event
	for _, e := range events {
		if !e.StartTime.Before(now) {
			continue
		}
		if e.EndTime != nil && !e.EndTime.Before(now) {
			continue
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[j].StartTime.Before(out[i].StartTime)
	})
	return truncate(out, limit)
}

func truncate(events []model.Event, limit int) []model.Event {
	if limit > 0 && len(events) > limit {
		return events[:limit]
	}
	return events
}
