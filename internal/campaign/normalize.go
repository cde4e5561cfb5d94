package campaign

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// The backend returns one of two observed shapes: a flat one
// (strategy.primary_angle, tiktok.hook, top-level tasks) and a nested one
// (platform_content.tiktok.*, production_tasks.tasks with title /
// estimated_hours / status). Any field may be missing. The raw types below
// cover the union of both; Normalize resolves each canonical field through a
// fixed fallback chain ending in a concrete default.

type rawPayload struct {
	Strategy        *rawStrategy `json:"strategy"`
	TikTok          *rawTikTok   `json:"tiktok"`
	Tasks           []rawTask    `json:"tasks"`
	PlatformContent struct {
		TikTok *rawTikTok `json:"tiktok"`
	} `json:"platform_content"`
	ProductionTasks struct {
		Tasks []rawTask `json:"tasks"`
	} `json:"production_tasks"`
}

type rawStrategy struct {
	// The orchestrator wraps the strategy agent's output one level deep
	// (strategy.strategy.*); unwrapped transparently.
	Strategy *rawStrategy `json:"strategy"`

	PrimaryAngle   string   `json:"primary_angle"`
	TargetAudience string   `json:"target_audience"`
	KeyMessages    []string `json:"key_messages"`
	KeyThemes      []string `json:"key_themes"`
	ContentPillars []string `json:"content_pillars"`
}

type rawTikTok struct {
	Hook        string   `json:"hook"`
	Caption     string   `json:"caption"`
	Hashtags    []string `json:"hashtags"`
	OptimalTime string   `json:"optimal_time"`
	PostingTime string   `json:"posting_time"`
	Format      string   `json:"format"`
	Duration    string   `json:"duration"`
	CTA         string   `json:"cta"`
}

type rawTask struct {
	Task           string  `json:"task"`
	Title          string  `json:"title"`
	Priority       string  `json:"priority"`
	EstimatedTime  string  `json:"estimated_time"`
	EstimatedHours float64 `json:"estimated_hours"`
	Completed      *bool   `json:"completed"`
	Status         string  `json:"status"`
}

// Normalize converts an arbitrary backend payload into the canonical
// Campaign. It is total over known and partial shapes (every canonical
// field gets a concrete default when the source lacks it) and idempotent
// over already-canonical input. Only a syntactically broken payload is an
// error.
func Normalize(data []byte) (*Campaign, error) {
	var raw rawPayload
	if err := json.Unmarshal(data, &raw); err != nil {
		// A field of the wrong type leaves its zero value behind and the
		// defaults cover it; only malformed JSON is fatal.
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) {
			return nil, fmt.Errorf("decode campaign payload: %w", err)
		}
	}

	return &Campaign{
		Strategy: normalizeStrategy(raw.Strategy),
		TikTok:   normalizeTikTok(raw.PlatformContent.TikTok, raw.TikTok),
		Tasks:    normalizeTasks(raw.Tasks, raw.ProductionTasks.Tasks),
	}, nil
}

func normalizeStrategy(s *rawStrategy) Strategy {
	if s == nil {
		s = &rawStrategy{}
	}
	if s.Strategy != nil {
		s = s.Strategy
	}

	messages := s.KeyMessages
	if len(messages) == 0 {
		messages = s.KeyThemes
	}

	return Strategy{
		PrimaryAngle:   s.PrimaryAngle,
		TargetAudience: s.TargetAudience,
		KeyMessages:    orEmpty(messages),
		ContentPillars: orEmpty(s.ContentPillars),
	}
}

// normalizeTikTok resolves each field preferring the nested
// platform_content.tiktok source over the flat tiktok one.
func normalizeTikTok(nested, flat *rawTikTok) TikTok {
	if nested == nil {
		nested = &rawTikTok{}
	}
	if flat == nil {
		flat = &rawTikTok{}
	}

	return TikTok{
		Hook:     firstOf(nested.Hook, flat.Hook),
		Caption:  firstOf(nested.Caption, flat.Caption),
		Hashtags: orEmpty(firstSlice(nested.Hashtags, flat.Hashtags)),
		OptimalTime: firstOf(
			nested.OptimalTime, nested.PostingTime,
			flat.OptimalTime, flat.PostingTime,
			"TBD",
		),
		Format:   firstOf(nested.Format, flat.Format),
		Duration: firstOf(nested.Duration, flat.Duration),
		CTA:      firstOf(nested.CTA, flat.CTA),
	}
}

func normalizeTasks(flat, nested []rawTask) []Task {
	src := flat
	if len(src) == 0 {
		src = nested
	}

	tasks := make([]Task, 0, len(src))
	for _, rt := range src {
		completed := rt.Status == "DONE"
		if rt.Completed != nil {
			completed = *rt.Completed
		}

		est := rt.EstimatedTime
		if est == "" && rt.EstimatedHours > 0 {
			est = formatHours(rt.EstimatedHours)
		}
		if est == "" {
			est = "TBD"
		}

		tasks = append(tasks, Task{
			Task:          firstOf(rt.Task, rt.Title),
			Priority:      NormalizePriority(rt.Priority),
			EstimatedTime: est,
			Completed:     completed,
		})
	}
	return tasks
}

func formatHours(h float64) string {
	s := strconv.FormatFloat(h, 'f', -1, 64)
	if h == 1 {
		return s + " hour"
	}
	return s + " hours"
}

// firstOf returns the first non-empty string.
func firstOf(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstSlice(vals ...[]string) []string {
	for _, v := range vals {
		if len(v) > 0 {
			return v
		}
	}
	return nil
}

// orEmpty pins nil slices to empty ones so the canonical model always
// serializes arrays, never null.
func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
