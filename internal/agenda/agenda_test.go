package agenda

import (
	"testing"
	"time"

	"github.com/quietvalley/beacon/internal/model"
)

func event(name string, start time.Time, end *time.Time) model.Event {
	return model.Event{Name: name, StartTime: start, EndTime: end}
}

func TestUpcomingIncludesFutureAndOngoing(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	campEnd := now.Add(48 * time.Hour)
	events := []model.Event{
		event("Past Lesson", now.Add(-72*time.Hour), nil),
		event("Camp", now.Add(-24*time.Hour), &campEnd),
		event("Future Activity", now.Add(24*time.Hour), nil),
	}

	upcoming := Upcoming(events, now, 0)
	if len(upcoming) != 2 {
		t.Fatalf("got %d upcoming, want 2", len(upcoming))
	}
	if upcoming[0].Name != "Camp" {
		t.Errorf("first = %q, want Camp (started earlier, still ongoing)", upcoming[0].Name)
	}
	if upcoming[1].Name != "Future Activity" {
		t.Errorf("second = %q, want Future Activity", upcoming[1].Name)
	}
}

func TestUpcomingEventStartingNowCounts(t *testing.T) {
	now := time.Date(2026, 3, 10, 19, 0, 0, 0, time.UTC)
	events := []model.Event{event("Starts Now", now, nil)}

	if got := Upcoming(events, now, 0); len(got) != 1 {
		t.Errorf("event starting exactly now should be upcoming, got %d", len(got))
	}
}

func TestUpcomingLimit(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	var events []model.Event
	for i := 1; i <= 8; i++ {
		events = append(events, event("e", now.Add(time.Duration(i)*time.Hour), nil))
	}

	if got := Upcoming(events, now, 5); len(got) != 5 {
		t.Errorf("got %d, want 5", len(got))
	}
	if got := Upcoming(events, now, 0); len(got) != 8 {
		t.Errorf("limit 0 should not cap, got %d", len(got))
	}
}

func TestRecentExcludesOngoing(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	ongoingEnd := now.Add(6 * time.Hour)
	events := []model.Event{
		event("Older", now.Add(-96*time.Hour), nil),
		event("Newer", now.Add(-24*time.Hour), nil),
		event("Ongoing", now.Add(-2*time.Hour), &ongoingEnd),
	}

	recent := Recent(events, now, 0)
	if len(recent) != 2 {
		t.Fatalf("got %d recent, want 2", len(recent))
	}
	if recent[0].Name != "Newer" {
		t.Errorf("first = %q, want Newer (most recent first)", recent[0].Name)
	}
	if recent[1].Name != "Older" {
		t.Errorf("second = %q, want Older", recent[1].Name)
	}
}

func TestRecentEmptyInput(t *testing.T) {
	now := time.Now()
	if got := Recent(nil, now, 5); len(got) != 0 {
		t.Errorf("got %d from nil input", len(got))
	}
}
