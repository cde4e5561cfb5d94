package pipeline

import (
	"context"
	"time"

	"reelops/internal/campaign"
)

// runStages advances the cosmetic agent display for one attempt. Each
// stage shows processing for its configured duration, then completes. The
// runner stops silently once the attempt is finalized, failed, or
// superseded. In demo mode it is also the finishing source: after the
// last stage it offers the placeholder campaign through the same
// acceptance gate the backend uses.
func (c *Coordinator) runStages(ctx context.Context, attempt string) {
	for i := range c.stageDefs {
		d, ok := c.beginStage(attempt, i)
		if !ok {
			return
		}
		if err := c.clock.Sleep(ctx, d); err != nil {
			return
		}
		if !c.completeStage(attempt, i) {
			return
		}
	}

	if c.backend == nil {
		c.accept(attempt, campaign.Demo(), SourceSimulator)
		return
	}
	c.logEvent(attempt, string(SourceSimulator), "stages_done", "waiting for backend result")
}

func (c *Coordinator) beginStage(attempt string, i int) (time.Duration, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if attempt != c.attemptID || c.finalized || c.status == StatusError {
		return 0, false
	}
	c.stages[i].State = StageProcessing
	return c.stages[i].Estimated, true
}

func (c *Coordinator) completeStage(attempt string, i int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if attempt != c.attemptID || c.finalized || c.status == StatusError {
		return false
	}
	c.stages[i].State = StageCompleted
	return true
}
