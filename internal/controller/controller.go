// Controller owning the interactive session lifecycle and benchmark state
package controller

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"trafficdash/internal/record"
	"trafficdash/internal/traffic"
)

// DefaultPollInterval is the period of the live telemetry poller.
const DefaultPollInterval = 50 * time.Millisecond

// Service is the remote simulation backend as seen by the controller.
type Service interface {
	StartSession(ctx context.Context, mapID string) (string, error)
	PollStep(ctx context.Context) (traffic.TelemetrySnapshot, error)
	ToggleAI(ctx context.Context) (traffic.ToggleResult, error)
	RunBenchmark(ctx context.Context, mapID, runID string, aiMode bool) (traffic.BenchmarkSummary, error)
	DispatchEmergency(ctx context.Context) (string, error)
}

// summarySlot stores a captured summary together with the map it ran against.
type summarySlot struct {
	summary traffic.BenchmarkSummary
	mapID   string
}

// Controller owns all session and benchmark state. Mutation happens only in
// its operation methods and in poll completion handlers; the presentation
// layer reads immutable snapshots via State.
type Controller struct {
	svc          Service
	steps        record.StepWriter
	benches      record.BenchmarkWriter
	log          *slog.Logger
	pollInterval time.Duration
	now          func() time.Time

	mu         sync.Mutex
	mapID      string
	session    traffic.Session
	snapshot   *traffic.TelemetrySnapshot
	baseline   *summarySlot
	withAI     *summarySlot
	comparison *traffic.ComparisonResult
	testing    bool
	lastErr    string
	gen        uint64
	cancelPoll context.CancelFunc
}

// New creates a Controller for the given backend. steps and benches may be
// nil to disable recording.
func New(svc Service, mapID string, pollInterval time.Duration, steps record.StepWriter, benches record.BenchmarkWriter, logger *slog.Logger) *Controller {
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		svc:          svc,
		steps:        steps,
		benches:      benches,
		log:          logger,
		pollInterval: pollInterval,
		now:          time.Now,
		mapID:        mapID,
	}
}

// SelectMap changes the map used by future sessions and benchmark runs. The
// selection is immutable while a session or a benchmark is active.
func (c *Controller) SelectMap(mapID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session.Running {
		return ErrSessionRunning
	}
	if c.testing {
		return ErrBenchmarkBusy
	}
	c.mapID = mapID
	return nil
}

// StartSession begins an interactive session on the selected map and starts
// the telemetry poller. A fresh session always begins with AI disabled.
func (c *Controller) StartSession(ctx context.Context) (string, error) {
	c.mu.Lock()
	if c.session.Running {
		c.mu.Unlock()
		return "", ErrSessionRunning
	}
	if c.testing {
		c.mu.Unlock()
		return "", ErrBenchmarkBusy
	}
	mapID := c.mapID
	c.mu.Unlock()

	msg, err := c.svc.StartSession(ctx, mapID)
	if err != nil {
		err = fmt.Errorf("map %s: %w", mapID, err)
		c.setLastErr(err)
		return "", err
	}

	c.mu.Lock()
	if c.session.Running {
		c.mu.Unlock()
		return "", ErrSessionRunning
	}
	// A benchmark may have begun while the start request was in flight.
	// Session and benchmark modes stay exclusive even across that window.
	if c.testing {
		c.mu.Unlock()
		return "", ErrBenchmarkBusy
	}
	c.session = traffic.Session{ID: uuid.New().String(), MapID: mapID, Running: true}
	c.snapshot = nil
	c.lastErr = ""
	c.gen++
	gen := c.gen
	pollCtx, cancel := context.WithCancel(context.Background())
	c.cancelPoll = cancel
	c.mu.Unlock()

	go c.pollLoop(pollCtx, gen)
	c.log.Info("session started", "map", mapID, "message", msg)
	return msg, nil
}

// Stop ends the interactive session and cancels the poller. The backend
// process is left to be replaced by the next start request.
func (c *Controller) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.session.Running {
		return ErrNoSession
	}
	c.stopLocked()
	c.log.Info("session stopped", "map", c.session.MapID)
	return nil
}

// stopLocked transitions Running -> Idle. Callers must hold c.mu. Bumping the
// generation makes any in-flight poll response inert.
func (c *Controller) stopLocked() {
	c.session.Running = false
	c.gen++
	if c.cancelPoll != nil {
		c.cancelPoll()
		c.cancelPoll = nil
	}
}

// ToggleAI flips the backend AI controller. The backend's reported state is
// authoritative; the local flag is never flipped optimistically.
func (c *Controller) ToggleAI(ctx context.Context) (string, error) {
	c.mu.Lock()
	if !c.session.Running {
		c.mu.Unlock()
		return "", ErrNoSession
	}
	sessionID := c.session.ID
	mapID := c.session.MapID
	c.mu.Unlock()

	res, err := c.svc.ToggleAI(ctx)
	if err != nil {
		err = fmt.Errorf("map %s: %w", mapID, err)
		c.setLastErr(err)
		return "", err
	}

	c.mu.Lock()
	if c.session.Running && c.session.ID == sessionID {
		c.session.AIEnabled = res.Enabled
	}
	c.mu.Unlock()
	return res.Message, nil
}

// DispatchEmergency injects an emergency vehicle into the running session.
func (c *Controller) DispatchEmergency(ctx context.Context) (string, error) {
	c.mu.Lock()
	if !c.session.Running {
		c.mu.Unlock()
		return "", ErrNoSession
	}
	mapID := c.session.MapID
	c.mu.Unlock()

	msg, err := c.svc.DispatchEmergency(ctx)
	if err != nil {
		err = fmt.Errorf("map %s: %w", mapID, err)
		c.setLastErr(err)
		return "", err
	}
	return msg, nil
}

// Compare pairs the two captured summaries. It fails unless both slots are
// populated from runs against the same map.
func (c *Controller) Compare() (traffic.ComparisonResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.baseline == nil || c.withAI == nil {
		return traffic.ComparisonResult{}, ErrMissingResults
	}
	if c.baseline.mapID != c.withAI.mapID {
		return traffic.ComparisonResult{}, fmt.Errorf("%s vs %s: %w", c.baseline.mapID, c.withAI.mapID, ErrMapMismatch)
	}
	r := traffic.ComparisonResult{
		MapID:  c.baseline.mapID,
		Before: c.baseline.summary,
		After:  c.withAI.summary,
	}
	c.comparison = &r
	return r, nil
}

// State is a read-only projection for the presentation layer.
type State struct {
	MapID      string
	Session    traffic.Session
	Snapshot   *traffic.TelemetrySnapshot
	Baseline   *traffic.BenchmarkSummary
	WithAI     *traffic.BenchmarkSummary
	Comparison *traffic.ComparisonResult
	Testing    bool
	LastError  string
}

// State returns a copy of the current controller state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	st := State{
		MapID:     c.mapID,
		Session:   c.session,
		Testing:   c.testing,
		LastError: c.lastErr,
	}
	if c.snapshot != nil {
		snap := *c.snapshot
		st.Snapshot = &snap
	}
	if c.baseline != nil {
		sum := c.baseline.summary
		st.Baseline = &sum
	}
	if c.withAI != nil {
		sum := c.withAI.summary
		st.WithAI = &sum
	}
	if c.comparison != nil {
		cmp := *c.comparison
		st.Comparison = &cmp
	}
	return st
}

func (c *Controller) setLastErr(err error) {
	c.mu.Lock()
	c.lastErr = err.Error()
	c.mu.Unlock()
}
