package store

import "testing"

func TestAnnouncementCreateAndList(t *testing.T) {
	s := NewAnnouncementStore(setupTestDB(t))

	first, err := s.Create("Camp signups open", "Sign up by **Friday**.", "high")
	if err != nil {
		t.Fatalf("create announcement: %v", err)
	}
	if first.Priority != "high" {
		t.Errorf("priority = %q, want %q", first.Priority, "high")
	}

	second, err := s.Create("Bring scriptures", "Lesson on service this week.", "low")
	if err != nil {
		t.Fatalf("create announcement: %v", err)
	}

	announcements, err := s.List()
	if err != nil {
		t.Fatalf("list announcements: %v", err)
	}
	if len(announcements) != 2 {
		t.Fatalf("got %d announcements, want 2", len(announcements))
	}
	// Newest first.
	if announcements[0].ID != second.ID {
		t.Errorf("first listed = %d, want %d", announcements[0].ID, second.ID)
	}
}

func TestAnnouncementUpdate(t *testing.T) {
	s := NewAnnouncementStore(setupTestDB(t))

	a, err := s.Create("Draft", "wip", "low")
	if err != nil {
		t.Fatalf("create announcement: %v", err)
	}

	updated, err := s.Update(a.ID, "Final", "Done now.", "medium")
	if err != nil {
		t.Fatalf("update announcement: %v", err)
	}
	if updated.Title != "Final" || updated.Content != "Done now." || updated.Priority != "medium" {
		t.Errorf("update mismatch: %+v", updated)
	}
}

func TestAnnouncementDelete(t *testing.T) {
	s := NewAnnouncementStore(setupTestDB(t))

	a, err := s.Create("Ephemeral", "gone soon", "low")
	if err != nil {
		t.Fatalf("create announcement: %v", err)
	}

	if err := s.Delete(a.ID); err != nil {
		t.Fatalf("delete announcement: %v", err)
	}
	got, err := s.GetByID(a.ID)
	if err != nil {
		t.Fatalf("get after delete: %v", err)
	}
	if got != nil {
		t.Error("expected nil after delete")
	}
}
