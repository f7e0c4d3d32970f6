package controller

import (
	"context"
	"fmt"
	"time"

	"trafficdash/internal/record"
	"trafficdash/internal/traffic"
)

// pollLoop issues step requests on a fixed period until ctx is cancelled.
// Each request runs in its own goroutine: a slow response never delays the
// next tick, and overlapping responses are applied in completion order.
func (c *Controller) pollLoop(ctx context.Context, gen uint64) {
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			go c.pollOnce(ctx, gen)
		}
	}
}

func (c *Controller) pollOnce(ctx context.Context, gen uint64) {
	snap, err := c.svc.PollStep(ctx)
	if err != nil {
		if ctx.Err() != nil {
			// Response to a cancelled poll; discard silently.
			return
		}
		c.failPoll(gen, err)
		return
	}
	c.applySnapshot(gen, snap)
}

// applySnapshot replaces the current snapshot wholesale if the response still
// belongs to the active session generation.
func (c *Controller) applySnapshot(gen uint64, snap traffic.TelemetrySnapshot) {
	c.mu.Lock()
	if gen != c.gen || !c.session.Running {
		c.mu.Unlock()
		return
	}
	c.snapshot = &snap
	row := record.NewStepRow(c.session, snap, c.now())
	c.mu.Unlock()

	if c.steps != nil {
		if err := c.steps.WriteStep(row); err != nil {
			c.log.Warn("step write failed", "error", err)
		}
	}
}

// failPoll ends the session on the first failed poll. The interactive session
// is strictly tied to backend reachability; there is no retry.
func (c *Controller) failPoll(gen uint64, err error) {
	c.mu.Lock()
	if gen != c.gen || !c.session.Running {
		c.mu.Unlock()
		return
	}
	mapID := c.session.MapID
	c.lastErr = fmt.Sprintf("session on %s ended: %v", mapID, err)
	c.stopLocked()
	c.mu.Unlock()

	c.log.Warn("poll failed, session stopped", "map", mapID, "error", err)
}
