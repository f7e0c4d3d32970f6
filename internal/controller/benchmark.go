package controller

import (
	"context"
	"fmt"

	"trafficdash/internal/record"
	"trafficdash/internal/traffic"
)

// RunBenchmark runs a complete backend-synchronous benchmark for the given
// kind and captures its summary. Interactive sessions and benchmark runs are
// mutually exclusive; a second run while one is in flight is rejected, not
// queued. The call blocks for the full duration of the simulation run.
func (c *Controller) RunBenchmark(ctx context.Context, kind traffic.RunKind) (traffic.BenchmarkSummary, error) {
	c.mu.Lock()
	mapID := c.mapID
	if c.session.Running {
		c.mu.Unlock()
		return traffic.BenchmarkSummary{}, fmt.Errorf("%s run on %s: %w", kind, mapID, ErrSessionRunning)
	}
	if c.testing {
		c.mu.Unlock()
		return traffic.BenchmarkSummary{}, fmt.Errorf("%s run on %s: %w", kind, mapID, ErrBenchmarkBusy)
	}
	c.testing = true
	// A fresh run invalidates any prior comparison: one side of it is about
	// to change. Only this kind's slot is cleared.
	c.comparison = nil
	if kind == traffic.RunWithAI {
		c.withAI = nil
	} else {
		c.baseline = nil
	}
	c.mu.Unlock()

	runID := kind.RunID(mapID)
	c.log.Info("benchmark started", "run", runID, "map", mapID, "ai", kind.AIMode())
	sum, err := c.svc.RunBenchmark(ctx, mapID, runID, kind.AIMode())

	c.mu.Lock()
	c.testing = false
	if err != nil {
		err = fmt.Errorf("%s run on %s: %w", kind, mapID, err)
		c.lastErr = err.Error()
		c.mu.Unlock()
		return traffic.BenchmarkSummary{}, err
	}
	slot := &summarySlot{summary: sum, mapID: mapID}
	if kind == traffic.RunWithAI {
		c.withAI = slot
	} else {
		c.baseline = slot
	}
	c.lastErr = ""
	row := record.NewBenchmarkRow(mapID, kind, sum, c.now())
	c.mu.Unlock()

	if c.benches != nil {
		if err := c.benches.WriteBenchmark(row); err != nil {
			c.log.Warn("benchmark write failed", "run", runID, "error", err)
		}
	}
	c.log.Info("benchmark finished", "run", runID,
		"travel", sum.AvgTravelTime, "wait", sum.AvgWaitingTime,
		"completed", sum.VehiclesCompleted, "ev_wait", sum.AvgEVWaitTime)
	return sum, nil
}
