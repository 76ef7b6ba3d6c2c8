package store

import "testing"

func TestRewardCreateWithDefaults(t *testing.T) {
	s := NewRewardStore(setupTestDB(t))

	reward, err := s.Create("Tyler", 50, "", "")
	if err != nil {
		t.Fatalf("create reward: %v", err)
	}
	if reward.Points != 50 {
		t.Errorf("points = %d, want 50", reward.Points)
	}
	if reward.Description != "Young men member" {
		t.Errorf("description = %q, want default", reward.Description)
	}
	if reward.Emoji != "👤" {
		t.Errorf("emoji = %q, want default", reward.Emoji)
	}
}

func TestRewardCreateExplicitFields(t *testing.T) {
	s := NewRewardStore(setupTestDB(t))

	reward, err := s.Create("Quorum President", 300, "Leads opening exercises", "🏆")
	if err != nil {
		t.Fatalf("create reward: %v", err)
	}
	if reward.Description != "Leads opening exercises" {
		t.Errorf("description = %q", reward.Description)
	}
	if reward.Emoji != "🏆" {
		t.Errorf("emoji = %q, want 🏆", reward.Emoji)
	}
}

func TestRewardGetByName(t *testing.T) {
	s := NewRewardStore(setupTestDB(t))

	created, err := s.Create("Marcus", 10, "", "")
	if err != nil {
		t.Fatalf("create reward: %v", err)
	}

	got, err := s.GetByName("Marcus")
	if err != nil {
		t.Fatalf("get by name: %v", err)
	}
	if got == nil || got.ID != created.ID {
		t.Errorf("got %+v, want id %d", got, created.ID)
	}

	missing, err := s.GetByName("Nobody")
	if err != nil {
		t.Fatalf("get by name: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for unknown name")
	}
}

func TestRewardAddPointsExisting(t *testing.T) {
	s := NewRewardStore(setupTestDB(t))

	if _, err := s.Create("Ethan", 100, "", ""); err != nil {
		t.Fatalf("create reward: %v", err)
	}

	reward, err := s.AddPoints("Ethan", 25)
	if err != nil {
		t.Fatalf("add points: %v", err)
	}
	if reward.Points != 125 {
		t.Errorf("points = %d, want 125", reward.Points)
	}

	reward, err = s.AddPoints("Ethan", 25)
	if err != nil {
		t.Fatalf("add points again: %v", err)
	}
	if reward.Points != 150 {
		t.Errorf("points = %d, want 150", reward.Points)
	}

	// Still a single entry.
	rewards, err := s.List()
	if err != nil {
		t.Fatalf("list rewards: %v", err)
	}
	if len(rewards) != 1 {
		t.Errorf("got %d rewards, want 1", len(rewards))
	}
}

func TestRewardAddPointsNewName(t *testing.T) {
	s := NewRewardStore(setupTestDB(t))

	reward, err := s.AddPoints("Newcomer", 15)
	if err != nil {
		t.Fatalf("add points: %v", err)
	}
	if reward.Points != 15 {
		t.Errorf("points = %d, want 15", reward.Points)
	}
	if reward.Description != "Young men member" {
		t.Errorf("description = %q, want default", reward.Description)
	}
	if reward.Emoji != "👤" {
		t.Errorf("emoji = %q, want default", reward.Emoji)
	}
}

func TestRewardListOrderedByPoints(t *testing.T) {
	s := NewRewardStore(setupTestDB(t))

	s.Create("Bronze", 100, "", "")
	s.Create("Gold", 300, "", "")
	s.Create("Silver", 200, "", "")

	rewards, err := s.List()
	if err != nil {
		t.Fatalf("list rewards: %v", err)
	}
	if len(rewards) != 3 {
		t.Fatalf("got %d rewards, want 3", len(rewards))
	}
	want := []string{"Gold", "Silver", "Bronze"}
	for i, name := range want {
		if rewards[i].Name != name {
			t.Errorf("rewards[%d] = %q, want %q", i, rewards[i].Name, name)
		}
	}
}

func TestRewardUpdateAndDelete(t *testing.T) {
	s := NewRewardStore(setupTestDB(t))

	reward, err := s.Create("Temp", 5, "", "")
	if err != nil {
		t.Fatalf("create reward: %v", err)
	}

	updated, err := s.Update(reward.ID, "Renamed", 75, "New role", "⭐")
	if err != nil {
		t.Fatalf("update reward: %v", err)
	}
	if updated.Name != "Renamed" || updated.Points != 75 || updated.Emoji != "⭐" {
		t.Errorf("update mismatch: %+v", updated)
	}

	if err := s.Delete(reward.ID); err != nil {
		t.Fatalf("delete reward: %v", err)
	}
	got, err := s.GetByID(reward.ID)
	if err != nil {
		t.Fatalf("get after delete: %v", err)
	}
	if got != nil {
		t.Error("expected nil after delete")
	}
}
