package catalog

import (
	"testing"
)

func TestMemory_PreservesOrder(t *testing.T) {
	fixture := Fixture()
	c := NewMemory(fixture)

	tracks, err := c.Tracks()
	if err != nil {
		t.Fatalf("Tracks() returned error: %v", err)
	}
	if len(tracks) != len(fixture) {
		t.Fatalf("got %d tracks, want %d", len(tracks), len(fixture))
	}
	for i := range tracks {
		if tracks[i].ID != fixture[i].ID {
			t.Errorf("track %d: got id %s, want %s", i, tracks[i].ID, fixture[i].ID)
		}
	}
}

func TestMemory_CopiesInput(t *testing.T) {
	fixture := Fixture()
	c := NewMemory(fixture)

	fixture[0].Title = "mutated"

	tracks, err := c.Tracks()
	if err != nil {
		t.Fatalf("Tracks() returned error: %v", err)
	}
	if tracks[0].Title == "mutated" {
		t.Error("catalog should not share backing storage with caller")
	}
}

func TestFixture_UniqueIDs(t *testing.T) {
	seen := make(map[string]bool)
	for _, track := range Fixture() {
		if seen[track.ID] {
			t.Errorf("duplicate fixture track id %s", track.ID)
		}
		seen[track.ID] = true
	}
}

func TestDB_SeedsAndPreservesOrder(t *testing.T) {
	db, err := OpenPath(":memory:")
	if err != nil {
		t.Fatalf("OpenPath: %v", err)
	}
	defer db.Close()

	tracks, err := db.Tracks()
	if err != nil {
		t.Fatalf("Tracks() returned error: %v", err)
	}

	fixture := Fixture()
	if len(tracks) != len(fixture) {
		t.Fatalf("got %d tracks, want %d", len(tracks), len(fixture))
	}
	for i := range tracks {
		if tracks[i].ID != fixture[i].ID {
			t.Errorf("track %d: got id %s, want %s", i, tracks[i].ID, fixture[i].ID)
		}
		if tracks[i].Duration != fixture[i].Duration {
			t.Errorf("track %d: got duration %v, want %v", i, tracks[i].Duration, fixture[i].Duration)
		}
	}
}
