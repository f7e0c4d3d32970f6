// Step and benchmark record structs with greptime tags
package record

import (
	"os"
	"time"

	"trafficdash/internal/traffic"
)

// PhaseUnknown marks a step row whose map reports no signal phase.
const PhaseUnknown = -1

// StepRow represents one applied telemetry snapshot for recording.
type StepRow struct {
	SessionID  string    `json:"session_id"` // TAG
	MapID      string    `json:"map_id"`     // TAG
	AIEnabled  bool      `json:"ai_enabled"` // FIELD
	VehiclesWE int       `json:"vehicles_we"`
	VehiclesNS int       `json:"vehicles_ns"`
	Phase      int       `json:"phase"` // PhaseUnknown when absent
	Timestamp  time.Time `json:"ts"`    // TIME INDEX
}

// BenchmarkRow represents one captured benchmark summary for recording.
type BenchmarkRow struct {
	RunID             string    `json:"run_id"` // TAG
	MapID             string    `json:"map_id"` // TAG
	Kind              string    `json:"kind"`
	AIMode            bool      `json:"ai_mode"`
	AvgTravelTime     float64   `json:"avg_travel_time"`
	AvgWaitingTime    float64   `json:"avg_waiting_time"`
	VehiclesCompleted int       `json:"vehicles_completed"`
	AvgEVWaitTime     float64   `json:"avg_ev_wait_time"`
	Timestamp         time.Time `json:"ts"` // TIME INDEX
}

// NewStepRow builds a StepRow from a session and the snapshot it received.
func NewStepRow(s traffic.Session, snap traffic.TelemetrySnapshot, ts time.Time) StepRow {
	phase := PhaseUnknown
	if snap.CurrentPhase != nil {
		phase = *snap.CurrentPhase
	}
	return StepRow{
		SessionID:  s.ID,
		MapID:      s.MapID,
		AIEnabled:  s.AIEnabled,
		VehiclesWE: snap.VehiclesWestEast,
		VehiclesNS: snap.VehiclesNorthSouth,
		Phase:      phase,
		Timestamp:  ts,
	}
}

// NewBenchmarkRow builds a BenchmarkRow from a captured summary.
func NewBenchmarkRow(mapID string, kind traffic.RunKind, sum traffic.BenchmarkSummary, ts time.Time) BenchmarkRow {
	return BenchmarkRow{
		RunID:             kind.RunID(mapID),
		MapID:             mapID,
		Kind:              string(kind),
		AIMode:            kind.AIMode(),
		AvgTravelTime:     sum.AvgTravelTime,
		AvgWaitingTime:    sum.AvgWaitingTime,
		VehiclesCompleted: sum.VehiclesCompleted,
		AvgEVWaitTime:     sum.AvgEVWaitTime,
		Timestamp:         ts,
	}
}

// StepTableName holds the table name used when writing step rows to
// GreptimeDB. It defaults to "traffic_steps" but can be overridden via the
// GREPTIMEDB_TABLE environment variable.
var StepTableName = func() string {
	if env := os.Getenv("GREPTIMEDB_TABLE"); env != "" {
		return env
	}
	return "traffic_steps"
}()

// BenchmarkTableName holds the table name used when writing benchmark rows.
// Overridable via the BENCHMARK_TABLE environment variable.
var BenchmarkTableName = func() string {
	if env := os.Getenv("BENCHMARK_TABLE"); env != "" {
		return env
	}
	return "traffic_benchmarks"
}()

// StepWriter is an interface to support different step-record outputs.
type StepWriter interface {
	WriteStep(StepRow) error
}

// BenchmarkWriter handles captured benchmark summaries.
type BenchmarkWriter interface {
	WriteBenchmark(BenchmarkRow) error
}

// Optional: step writers may support batch mode
type batchStepWriter interface {
	WriteSteps([]StepRow) error
}
