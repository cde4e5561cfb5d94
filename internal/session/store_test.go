package session

import (
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"reelops/internal/campaign"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "reelops.db"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveLoadCurrent_RoundTrip(t *testing.T) {
	s := newTestStore(t)

	orig := campaign.Demo()
	if err := s.SaveCurrent(orig); err != nil {
		t.Fatalf("SaveCurrent: %v", err)
	}

	got, err := s.LoadCurrent()
	if err != nil {
		t.Fatalf("LoadCurrent: %v", err)
	}
	if got == nil {
		t.Fatal("expected a restored campaign")
	}
	if !reflect.DeepEqual(orig, got) {
		t.Errorf("restored campaign differs:\n got %+v\nwant %+v", got, orig)
	}
}

func TestSaveCurrent_ReplacesPrevious(t *testing.T) {
	s := newTestStore(t)

	first := campaign.Demo()
	s.SaveCurrent(first)

	second := campaign.Demo()
	second.Strategy.PrimaryAngle = "replacement angle"
	if err := s.SaveCurrent(second); err != nil {
		t.Fatalf("SaveCurrent: %v", err)
	}

	got, _ := s.LoadCurrent()
	if got.Strategy.PrimaryAngle != "replacement angle" {
		t.Errorf("slot not replaced, primary_angle = %q", got.Strategy.PrimaryAngle)
	}
}

func TestLoadCurrent_EmptyStore(t *testing.T) {
	s := newTestStore(t)

	got, err := s.LoadCurrent()
	if err != nil {
		t.Fatalf("LoadCurrent: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil campaign, got %+v", got)
	}
}

func TestLoadCurrent_CorruptPayloadSwallowed(t *testing.T) {
	s := newTestStore(t)

	// Write garbage directly into the slot.
	_, err := s.db.Exec(
		`INSERT INTO session (key, payload, updated_at) VALUES (?, ?, ?)`,
		currentKey, `{definitely not json`, time.Now().UTC(),
	)
	if err != nil {
		t.Fatalf("seed garbage: %v", err)
	}

	got, err := s.LoadCurrent()
	if err != nil {
		t.Fatalf("corrupt slot must not error: %v", err)
	}
	if got != nil {
		t.Errorf("corrupt slot must restore nothing, got %+v", got)
	}
}

func TestLoadCurrent_MissingStrategyKeySwallowed(t *testing.T) {
	s := newTestStore(t)

	_, err := s.db.Exec(
		`INSERT INTO session (key, payload, updated_at) VALUES (?, ?, ?)`,
		currentKey, `{"tiktok": {"hook": "h"}}`, time.Now().UTC(),
	)
	if err != nil {
		t.Fatalf("seed payload: %v", err)
	}

	got, _ := s.LoadCurrent()
	if got != nil {
		t.Errorf("payload without strategy key must not restore, got %+v", got)
	}
}

func TestClearCurrent(t *testing.T) {
	s := newTestStore(t)

	s.SaveCurrent(campaign.Demo())
	if err := s.ClearCurrent(); err != nil {
		t.Fatalf("ClearCurrent: %v", err)
	}

	got, _ := s.LoadCurrent()
	if got != nil {
		t.Error("slot should be empty after clear")
	}
}

func TestCampaignHistory(t *testing.T) {
	s := newTestStore(t)

	c := campaign.Demo()
	if err := s.AddCampaign("id-1", "clip.mp4", c); err != nil {
		t.Fatalf("AddCampaign: %v", err)
	}
	if err := s.AddCampaign("id-2", "promo.webm", c); err != nil {
		t.Fatalf("AddCampaign: %v", err)
	}

	records, err := s.ListCampaigns()
	if err != nil {
		t.Fatalf("ListCampaigns: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	// Newest first.
	if records[0].ID != "id-2" {
		t.Errorf("first record = %s, want id-2", records[0].ID)
	}

	got, err := s.GetCampaign("id-1")
	if err != nil {
		t.Fatalf("GetCampaign: %v", err)
	}
	if got == nil || got.Strategy.PrimaryAngle != c.Strategy.PrimaryAngle {
		t.Errorf("history campaign not restored: %+v", got)
	}

	if missing, _ := s.GetCampaign("nope"); missing != nil {
		t.Error("unknown id should return nil")
	}
}

func TestEvents(t *testing.T) {
	s := newTestStore(t)

	s.AddEvent("attempt-1", "coordinator", "submitted", "clip.mp4")
	s.AddEvent("attempt-1", "backend", "finalized", "campaign accepted")
	s.AddEvent("attempt-2", "coordinator", "submitted", "other.mp4")

	events, err := s.EventsForAttempt("attempt-1")
	if err != nil {
		t.Fatalf("EventsForAttempt: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Type != "submitted" || events[1].Type != "finalized" {
		t.Errorf("events out of order: %+v", events)
	}

	recent, err := s.ListEvents(10)
	if err != nil {
		t.Fatalf("ListEvents: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("expected 3 events, got %d", len(recent))
	}
	// Chronological order.
	if recent[0].AttemptID != "attempt-1" || recent[2].AttemptID != "attempt-2" {
		t.Errorf("events not chronological: %+v", recent)
	}
}
