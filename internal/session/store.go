// Package session persists campaign state across invocations: the current
// campaign slot, a history of finalized campaigns, and the pipeline event
// log. A corrupt slot is treated as no prior session, never as a startup
// failure.
package session

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"reelops/internal/campaign"
)

// currentKey is the fixed slot name for the restorable campaign.
const currentKey = "current"

// Store provides access to the reelops state database.
type Store struct {
	db *sql.DB
}

// New opens (or creates) the SQLite database at the given path.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Enable WAL mode for better concurrent access.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS session (
		key         TEXT PRIMARY KEY,
		payload     TEXT NOT NULL,
		updated_at  DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS campaigns (
		id           TEXT PRIMARY KEY,
		video_title  TEXT DEFAULT '',
		payload      TEXT NOT NULL,
		created_at   DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS events (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		attempt_id  TEXT DEFAULT '',
		source      TEXT DEFAULT '',
		event_type  TEXT NOT NULL,
		content     TEXT DEFAULT '',
		timestamp   DATETIME NOT NULL
	);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return err
	}
	return nil
}

// SaveCurrent stores the campaign in the restorable slot, replacing any
// previous one.
func (s *Store) SaveCurrent(c *campaign.Campaign) error {
	payload, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode campaign: %w", err)
	}

	now := time.Now().UTC()
	_, err = s.db.Exec(
		`INSERT INTO session (key, payload, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		currentKey, string(payload), now,
	)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// LoadCurrent restores the campaign from the slot. A missing, unparseable,
// or structurally invalid slot yields (nil, nil): startup must never fail
// on stale local state. Valid payloads are re-run through the normalizer so
// defaults hold even for snapshots written by an older version.
func (s *Store) LoadCurrent() (*campaign.Campaign, error) {
	row := s.db.QueryRow(`SELECT payload FROM session WHERE key = ?`, currentKey)

	var payload string
	err := row.Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	// Structural check: the slot must decode and contain a strategy object.
	var probe map[string]json.RawMessage
	if err := json.Unmarshal([]byte(payload), &probe); err != nil {
		return nil, nil
	}
	if _, ok := probe["strategy"]; !ok {
		return nil, nil
	}

	c, err := campaign.Normalize([]byte(payload))
	if err != nil {
		return nil, nil
	}
	return c, nil
}

// ClearCurrent removes the restorable slot.
func (s *Store) ClearCurrent() error {
	if _, err := s.db.Exec(`DELETE FROM session WHERE key = ?`, currentKey); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// AddCampaign records a finalized campaign in the history.
func (s *Store) AddCampaign(id, videoTitle string, c *campaign.Campaign) error {
	payload, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode campaign: %w", err)
	}

	now := time.Now().UTC()
	_, err = s.db.Exec(
		`INSERT INTO campaigns (id, video_title, payload, created_at) VALUES (?, ?, ?, ?)`,
		id, videoTitle, string(payload), now,
	)
	if err != nil {
		return fmt.Errorf("add campaign: %w", err)
	}
	return nil
}

// ListCampaigns returns history records, newest first.
func (s *Store) ListCampaigns() ([]CampaignRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, video_title, payload, created_at FROM campaigns ORDER BY created_at DESC, id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}
	defer rows.Close()

	var records []CampaignRecord
	for rows.Next() {
		var r CampaignRecord
		if err := rows.Scan(&r.ID, &r.VideoTitle, &r.Payload, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan campaign: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// GetCampaign returns one history entry's campaign, or nil if absent.
func (s *Store) GetCampaign(id string) (*campaign.Campaign, error) {
	row := s.db.QueryRow(`SELECT payload FROM campaigns WHERE id = ?`, id)

	var payload string
	err := row.Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get campaign: %w", err)
	}
	return campaign.Normalize([]byte(payload))
}

// ClearCampaigns wipes the history.
func (s *Store) ClearCampaigns() error {
	if _, err := s.db.Exec(`DELETE FROM campaigns`); err != nil {
		return fmt.Errorf("clear campaigns: %w", err)
	}
	return nil
}

// AddEvent records a pipeline event. Best-effort: event logging never
// interrupts the pipeline.
func (s *Store) AddEvent(attemptID, source, eventType, content string) {
	now := time.Now().UTC()
	s.db.Exec(
		`INSERT INTO events (attempt_id, source, event_type, content, timestamp) VALUES (?, ?, ?, ?, ?)`,
		attemptID, source, eventType, content, now,
	)
}

// ListEvents returns the most recent events, oldest first, capped at limit.
func (s *Store) ListEvents(limit int) ([]Event, error) {
	rows, err := s.db.Query(
		`SELECT id, attempt_id, source, event_type, content, timestamp FROM events
		 ORDER BY id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.AttemptID, &e.Source, &e.Type, &e.Content, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Reverse into chronological order.
	for i, j := 0, len(events)-1; i < j; i, j = i+1, j-1 {
		events[i], events[j] = events[j], events[i]
	}
	return events, nil
}

// EventsForAttempt returns all events of one pipeline attempt in order.
func (s *Store) EventsForAttempt(attemptID string) ([]Event, error) {
	rows, err := s.db.Query(
		`SELECT id, attempt_id, source, event_type, content, timestamp FROM events
		 WHERE attempt_id = ? ORDER BY id`, attemptID,
	)
	if err != nil {
		return nil, fmt.Errorf("events for attempt: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.AttemptID, &e.Source, &e.Type, &e.Content, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
