// Core types shared by the session controller, backend client, and writers
package traffic

import "fmt"

// RunKind identifies one of the two benchmark variants.
type RunKind string

const (
	RunBaseline RunKind = "baseline"
	RunWithAI   RunKind = "with_ai"
)

// RunID derives the correlation id the backend expects for a benchmark run.
func (k RunKind) RunID(mapID string) string {
	if k == RunWithAI {
		return fmt.Sprintf("%s_after_ai", mapID)
	}
	return fmt.Sprintf("%s_before_ai", mapID)
}

// AIMode reports whether the adaptive controller runs during this variant.
func (k RunKind) AIMode() bool {
	return k == RunWithAI
}

// Session holds the interactive simulation session state.
type Session struct {
	ID        string `json:"id"`
	MapID     string `json:"map_id"`
	Running   bool   `json:"running"`
	AIEnabled bool   `json:"ai_enabled"`
}

// TelemetrySnapshot is one live step report from the backend. It is replaced
// wholesale on every successful poll, never merged field by field.
type TelemetrySnapshot struct {
	VehiclesWestEast   int  `json:"vehicles_we"`
	VehiclesNorthSouth int  `json:"vehicles_ns"`
	CurrentPhase       *int `json:"current_phase,omitempty"`
}

// BenchmarkSummary holds the aggregate metrics of one completed benchmark run.
type BenchmarkSummary struct {
	AvgTravelTime     float64 `json:"avg_travel_time"`
	AvgWaitingTime    float64 `json:"avg_waiting_time"`
	VehiclesCompleted int     `json:"vehicles_completed"`
	AvgEVWaitTime     float64 `json:"avg_ev_wait_time"`
}

// ToggleResult is the backend's authoritative answer to an AI toggle request.
type ToggleResult struct {
	Message string `json:"message"`
	Enabled bool   `json:"ai_enabled"`
}

// ComparisonResult pairs a baseline summary with a with-AI summary captured
// against the same map. Derived math lives in the Metrics method.
type ComparisonResult struct {
	MapID  string           `json:"map_id"`
	Before BenchmarkSummary `json:"before"`
	After  BenchmarkSummary `json:"after"`
}
