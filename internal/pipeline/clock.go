package pipeline

import (
	"context"
	"time"
)

// Clock abstracts stage pacing so tests can run the pipeline instantly.
type Clock interface {
	// Sleep blocks for d or until the context is cancelled.
	Sleep(ctx context.Context, d time.Duration) error
}

type wallClock struct{}

func (wallClock) Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
