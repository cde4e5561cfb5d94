package session

import "time"

// CampaignRecord is one history entry. Payload is the canonical campaign
// JSON as it was finalized.
type CampaignRecord struct {
	ID         string    `json:"id"`
	VideoTitle string    `json:"video_title,omitempty"`
	Payload    string    `json:"payload"`
	CreatedAt  time.Time `json:"created_at"`
}

// Event is one pipeline event: a transition, a finalization, or a skipped
// completion signal.
type Event struct {
	ID        int64     `json:"id"`
	AttemptID string    `json:"attempt_id,omitempty"`
	Source    string    `json:"source,omitempty"` // backend, simulator, coordinator
	Type      string    `json:"event_type"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}
