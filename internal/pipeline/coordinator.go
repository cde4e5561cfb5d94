// Package pipeline owns the campaign attempt state machine. A submission
// moves idle, uploading, orchestrating, then completed or error; in
// parallel with the real backend call a cosmetic stage display advances on
// its own timer. Both the backend response and the stage runner can try to finish
// the attempt, so finalization is a single guarded write: the first
// accepted campaign wins and every later signal is logged and dropped. The
// authoritative backend result always outranks the simulator, which may
// only finalize in demo mode.
package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"reelops/internal/backend"
	"reelops/internal/campaign"
	"reelops/internal/config"
	"reelops/internal/session"
)

// Status is the pipeline's single live state.
type Status string

const (
	StatusIdle          Status = "idle"
	StatusUploading     Status = "uploading"
	StatusOrchestrating Status = "orchestrating"
	StatusCompleted     Status = "completed"
	StatusError         Status = "error"
)

// StageState is the display state of one cosmetic agent stage.
type StageState string

const (
	StagePending    StageState = "pending"
	StageProcessing StageState = "processing"
	StageCompleted  StageState = "completed"
	StageError      StageState = "error"
)

// Stage is one step of the visible agent pipeline.
type Stage struct {
	Name        string
	Description string
	Estimated   time.Duration
	State       StageState
}

// Source identifies which signal tried to finalize the attempt.
type Source string

const (
	SourceBackend   Source = "backend"
	SourceSimulator Source = "simulator"
)

// Backend is the subset of the HTTP client the coordinator needs.
type Backend interface {
	UploadVideo(ctx context.Context, path string) (*backend.UploadResult, error)
	CreateCampaign(ctx context.Context, transcript string, meta backend.VideoMetadata) ([]byte, error)
	CreateFromTranscript(ctx context.Context, transcript, videoTitle string) ([]byte, error)
}

// Options configures a Coordinator.
type Options struct {
	Backend  Backend        // nil runs in demo mode: the simulator supplies a placeholder
	Sessions *session.Store // may be nil; disables persistence and event logging
	Stages   []config.StageConfig
	Upload   config.Upload
	Clock    Clock // nil uses the wall clock
}

// Request is one user submission: a video file, or a manual transcript.
type Request struct {
	FilePath   string
	Transcript string
	VideoTitle string
}

// Coordinator drives one campaign attempt at a time.
type Coordinator struct {
	backend   Backend
	sessions  *session.Store
	upload    config.Upload
	stageDefs []Stage
	clock     Clock

	mu         sync.Mutex
	status     Status
	stages     []Stage
	campaign   *campaign.Campaign
	errMsg     string
	finalized  bool
	attemptID  string
	videoTitle string
}

// NewCoordinator creates a coordinator in the idle state.
func NewCoordinator(opts Options) *Coordinator {
	defs := make([]Stage, len(opts.Stages))
	for i, s := range opts.Stages {
		defs[i] = Stage{
			Name:        s.Name,
			Description: s.Description,
			Estimated:   time.Duration(s.DurationSec) * time.Second,
			State:       StagePending,
		}
	}

	clock := opts.Clock
	if clock == nil {
		clock = wallClock{}
	}

	return &Coordinator{
		backend:   opts.Backend,
		sessions:  opts.Sessions,
		upload:    opts.Upload,
		stageDefs: defs,
		clock:     clock,
		status:    StatusIdle,
		stages:    cloneStages(defs),
	}
}

// Snapshot is a consistent read of the coordinator's state. The campaign
// pointer is shared and read-only by contract.
type Snapshot struct {
	Status     Status
	Stages     []Stage
	Campaign   *campaign.Campaign
	Err        string
	AttemptID  string
	VideoTitle string
}

// Snapshot returns the current state.
func (c *Coordinator) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		Status:     c.status,
		Stages:     cloneStages(c.stages),
		Campaign:   c.campaign,
		Err:        c.errMsg,
		AttemptID:  c.attemptID,
		VideoTitle: c.videoTitle,
	}
}

// Restore loads a persisted campaign into the completed state. Returns
// false when nothing valid is stored. Only meaningful before the first
// submission.
func (c *Coordinator) Restore() bool {
	if c.sessions == nil {
		return false
	}
	camp, err := c.sessions.LoadCurrent()
	if err != nil || camp == nil {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.status != StatusIdle {
		return false
	}
	c.campaign = camp
	c.status = StatusCompleted
	c.finalized = true
	for i := range c.stages {
		c.stages[i].State = StageCompleted
	}
	return true
}

// Submit starts a new campaign attempt. Validation failures are returned
// synchronously as *ValidationError and leave the pipeline idle; after
// that the attempt runs in the background and progress is observed via
// Snapshot. A second submission while one is in flight is rejected.
func (c *Coordinator) Submit(ctx context.Context, req Request) error {
	req.Transcript = strings.TrimSpace(req.Transcript)

	if req.FilePath == "" && req.Transcript == "" {
		return &ValidationError{Reason: "select a video file or paste a transcript"}
	}
	if req.FilePath != "" {
		if err := c.validateFile(req.FilePath); err != nil {
			return err
		}
	}

	title := req.VideoTitle
	if title == "" {
		if req.FilePath != "" {
			title = filepath.Base(req.FilePath)
		} else {
			title = "Manual Input"
		}
	}
	req.VideoTitle = title

	c.mu.Lock()
	if c.status == StatusUploading || c.status == StatusOrchestrating {
		c.mu.Unlock()
		return fmt.Errorf("a campaign attempt is already in flight")
	}
	attempt := uuid.NewString()
	c.attemptID = attempt
	c.status = StatusUploading
	c.stages = cloneStages(c.stageDefs)
	c.campaign = nil
	c.errMsg = ""
	c.finalized = false
	c.videoTitle = title
	c.mu.Unlock()

	c.logEvent(attempt, "coordinator", "submitted", title)

	go c.runStages(ctx, attempt)
	go c.runBackend(ctx, attempt, req)

	return nil
}

// Reset returns the pipeline to idle and removes the persisted session.
// Not allowed mid-flight: an attempt runs to completion or failure.
func (c *Coordinator) Reset() error {
	c.mu.Lock()
	if c.status == StatusUploading || c.status == StatusOrchestrating {
		c.mu.Unlock()
		return fmt.Errorf("cannot reset while a campaign attempt is in flight")
	}
	c.attemptID = ""
	c.status = StatusIdle
	c.stages = cloneStages(c.stageDefs)
	c.campaign = nil
	c.errMsg = ""
	c.finalized = false
	c.videoTitle = ""

	var clearErr error
	if c.sessions != nil {
		clearErr = c.sessions.ClearCurrent()
	}
	c.mu.Unlock()
	return clearErr
}

// ToggleTask flips the completion mark of one production task on the
// finalized campaign and re-persists the session slot.
func (c *Coordinator) ToggleTask(i int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.status != StatusCompleted || c.campaign == nil {
		return fmt.Errorf("no finalized campaign")
	}
	if i < 0 || i >= len(c.campaign.Tasks) {
		return fmt.Errorf("no task %d", i)
	}
	c.campaign.Tasks[i].Completed = !c.campaign.Tasks[i].Completed
	if c.sessions != nil {
		return c.sessions.SaveCurrent(c.campaign)
	}
	return nil
}

// runBackend performs the real calls for one attempt.
func (c *Coordinator) runBackend(ctx context.Context, attempt string, req Request) {
	if c.backend == nil {
		// Demo mode: no authoritative source; the stage runner finalizes.
		c.setStatus(attempt, StatusOrchestrating)
		return
	}

	transcript := req.Transcript
	title := req.VideoTitle

	var raw []byte
	var err error
	if req.FilePath != "" {
		var up *backend.UploadResult
		up, err = c.backend.UploadVideo(ctx, req.FilePath)
		if err != nil {
			c.fail(attempt, err)
			return
		}
		transcript = up.Transcript
		if up.VideoTitle != "" {
			title = up.VideoTitle
			c.setTitle(attempt, title)
		}
		c.logEvent(attempt, string(SourceBackend), "transcribed", fmt.Sprintf("%d characters", len(transcript)))
		c.setStatus(attempt, StatusOrchestrating)

		raw, err = c.backend.CreateCampaign(ctx, transcript, backend.VideoMetadata{Title: title})
	} else {
		c.setStatus(attempt, StatusOrchestrating)
		raw, err = c.backend.CreateFromTranscript(ctx, transcript, title)
	}
	if err != nil {
		c.fail(attempt, err)
		return
	}

	camp, err := campaign.Normalize(raw)
	if err != nil {
		c.fail(attempt, err)
		return
	}
	c.accept(attempt, camp, SourceBackend)
}

// accept is the single finalization gate shared by every completion
// signal: check-then-set under one lock, first acceptance wins. The
// simulator may only win when no backend exists to deliver an
// authoritative result. Returns whether the campaign was taken.
func (c *Coordinator) accept(attempt string, camp *campaign.Campaign, source Source) bool {
	c.mu.Lock()

	switch {
	case attempt != c.attemptID:
		c.mu.Unlock()
		c.logEvent(attempt, string(source), "completion_skipped", "stale attempt")
		return false
	case c.finalized:
		c.mu.Unlock()
		c.logEvent(attempt, string(source), "completion_skipped", "already finalized")
		return false
	case c.status == StatusError:
		c.mu.Unlock()
		c.logEvent(attempt, string(source), "completion_skipped", "attempt already failed")
		return false
	case source == SourceSimulator && c.backend != nil:
		c.mu.Unlock()
		c.logEvent(attempt, string(source), "completion_skipped", "authoritative result outranks simulator")
		return false
	}

	c.finalized = true
	c.campaign = camp
	c.status = StatusCompleted
	for i := range c.stages {
		c.stages[i].State = StageCompleted
	}
	title := c.videoTitle

	// Persist inside the critical section so a concurrent Reset cannot
	// interleave between finalize and snapshot.
	if c.sessions != nil {
		if err := c.sessions.SaveCurrent(camp); err != nil {
			c.sessions.AddEvent(attempt, string(source), "persist_failed", err.Error())
		}
		if err := c.sessions.AddCampaign(attempt, title, camp); err != nil {
			c.sessions.AddEvent(attempt, string(source), "history_failed", err.Error())
		}
	}
	c.mu.Unlock()

	c.logEvent(attempt, string(source), "finalized", title)
	return true
}

// fail moves the attempt to the error state. Ignored after finalization:
// a completed campaign is never torn down by a late failure signal.
func (c *Coordinator) fail(attempt string, err error) {
	c.mu.Lock()
	if attempt != c.attemptID || c.finalized || c.status == StatusError {
		c.mu.Unlock()
		return
	}
	c.status = StatusError
	c.errMsg = err.Error()
	for i := range c.stages {
		if c.stages[i].State == StageProcessing {
			c.stages[i].State = StageError
		}
	}
	c.mu.Unlock()
	c.logEvent(attempt, string(SourceBackend), "failed", err.Error())
}

// setStatus advances uploading → orchestrating for a live attempt.
func (c *Coordinator) setStatus(attempt string, status Status) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if attempt != c.attemptID || c.finalized || c.status == StatusError {
		return
	}
	c.status = status
}

func (c *Coordinator) setTitle(attempt, title string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if attempt != c.attemptID {
		return
	}
	c.videoTitle = title
}

func (c *Coordinator) logEvent(attempt, source, eventType, content string) {
	if c.sessions != nil {
		c.sessions.AddEvent(attempt, source, eventType, content)
	}
}

func cloneStages(stages []Stage) []Stage {
	out := make([]Stage, len(stages))
	copy(out, stages)
	return out
}
