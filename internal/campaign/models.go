// Package campaign defines the canonical campaign model and the normalizer
// that reconciles the backend's payload variants into it.
package campaign

import "strings"

// Priority is a production task priority.
type Priority string

const (
	PriorityHigh   Priority = "HIGH"
	PriorityMedium Priority = "MEDIUM"
	PriorityLow    Priority = "LOW"
)

// NormalizePriority maps an arbitrary priority string onto the known set.
// Anything unrecognized becomes MEDIUM.
func NormalizePriority(s string) Priority {
	switch Priority(strings.ToUpper(strings.TrimSpace(s))) {
	case PriorityHigh:
		return PriorityHigh
	case PriorityLow:
		return PriorityLow
	default:
		return PriorityMedium
	}
}

// Campaign is the canonical model every view and export reads.
// All fields are always present; the normalizer fills defaults for
// anything the backend omitted.
type Campaign struct {
	Strategy Strategy `json:"strategy"`
	TikTok   TikTok   `json:"tiktok"`
	Tasks    []Task   `json:"tasks"`
}

// Strategy is the campaign strategy section.
type Strategy struct {
	PrimaryAngle   string   `json:"primary_angle"`
	TargetAudience string   `json:"target_audience"`
	KeyMessages    []string `json:"key_messages"`
	ContentPillars []string `json:"content_pillars"`
}

// TikTok is the platform content section.
type TikTok struct {
	Hook        string   `json:"hook"`
	Caption     string   `json:"caption"`
	Hashtags    []string `json:"hashtags"`
	OptimalTime string   `json:"optimal_time"`
	Format      string   `json:"format,omitempty"`
	Duration    string   `json:"duration,omitempty"`
	CTA         string   `json:"cta,omitempty"`
}

// Task is a single production task.
type Task struct {
	Task          string   `json:"task"`
	Priority      Priority `json:"priority"`
	EstimatedTime string   `json:"estimated_time"`
	Completed     bool     `json:"completed"`
}

// TasksDone counts completed tasks.
func (c *Campaign) TasksDone() int {
	n := 0
	for _, t := range c.Tasks {
		if t.Completed {
			n++
		}
	}
	return n
}

// Demo returns the placeholder campaign used when no backend is configured.
// Content mirrors a real generated campaign so the dashboard stays usable
// offline.
func Demo() *Campaign {
	return &Campaign{
		Strategy: Strategy{
			PrimaryAngle:   "Educational with entertainment blend",
			TargetAudience: "25-34 tech-savvy professionals",
			KeyMessages:    []string{"AI automation", "productivity", "innovation"},
			ContentPillars: []string{"efficiency", "scalability", "simplicity"},
		},
		TikTok: TikTok{
			Hook:        "POV: You just discovered the marketing hack that saves 3 hours per video",
			Caption:     "Transform your video content into complete campaigns in minutes, not hours! #MarketingAutomation #AI",
			Hashtags:    []string{"#MarketingAutomation", "#AIMarketing", "#ProductivityHack", "#ContentCreation"},
			OptimalTime: "Tuesday 7PM EST",
			Format:      "15-30 second vertical video",
			Duration:    "15-30 seconds",
			CTA:         "Follow for more insights!",
		},
		Tasks: []Task{
			{Task: "Create 3-second hook animation with text overlay", Priority: PriorityHigh, EstimatedTime: "15 minutes"},
			{Task: "Add dynamic captions with motion tracking", Priority: PriorityHigh, EstimatedTime: "20 minutes"},
			{Task: "Color grade for mobile viewing optimization", Priority: PriorityMedium, EstimatedTime: "10 minutes"},
			{Task: "Add trending audio and sync to visuals", Priority: PriorityHigh, EstimatedTime: "15 minutes"},
			{Task: "Export in TikTok-optimized format (9:16 ratio)", Priority: PriorityHigh, EstimatedTime: "5 minutes"},
		},
	}
}
