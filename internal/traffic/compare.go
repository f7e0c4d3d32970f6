package traffic

import "fmt"

// Direction states whether a smaller or a larger value is the better one.
type Direction int

const (
	LowerIsBetter Direction = iota
	HigherIsBetter
)

// Metric row names, in display order.
const (
	MetricAvgTravelTime     = "Avg Travel Time"
	MetricAvgWaitingTime    = "Avg Waiting Time"
	MetricVehiclesCompleted = "Vehicles Completed"
	MetricAvgEVWaitTime     = "Avg EV Wait Time"
)

// Percentage is a relative change that may be undefined when the baseline
// value is zero. An invalid Percentage renders as "n/a" rather than NaN or Inf.
type Percentage struct {
	Value float64
	Valid bool
}

func (p Percentage) String() string {
	if !p.Valid {
		return "n/a"
	}
	return fmt.Sprintf("%+.2f%%", p.Value)
}

// MetricDelta is one row of a benchmark comparison.
type MetricDelta struct {
	Name      string
	Before    float64
	After     float64
	Direction Direction
	Change    Percentage
}

// Improved reports whether the after-value beats the before-value for this
// metric's direction. Undefined changes never count as improvements.
func (m MetricDelta) Improved() bool {
	if !m.Change.Valid || m.Change.Value == 0 {
		return false
	}
	if m.Direction == HigherIsBetter {
		return m.Change.Value > 0
	}
	return m.Change.Value < 0
}

// percentChange computes (after-before)/before*100. The result is invalid
// when before is zero.
func percentChange(before, after float64) Percentage {
	if before == 0 {
		return Percentage{}
	}
	return Percentage{Value: (after - before) / before * 100, Valid: true}
}

// Metrics derives the per-metric deltas of the comparison. The computation is
// pure: the same inputs always produce identical output.
func (r ComparisonResult) Metrics() []MetricDelta {
	return []MetricDelta{
		{
			Name:      MetricAvgTravelTime,
			Before:    r.Before.AvgTravelTime,
			After:     r.After.AvgTravelTime,
			Direction: LowerIsBetter,
			Change:    percentChange(r.Before.AvgTravelTime, r.After.AvgTravelTime),
		},
		{
			Name:      MetricAvgWaitingTime,
			Before:    r.Before.AvgWaitingTime,
			After:     r.After.AvgWaitingTime,
			Direction: LowerIsBetter,
			Change:    percentChange(r.Before.AvgWaitingTime, r.After.AvgWaitingTime),
		},
		{
			Name:      MetricVehiclesCompleted,
			Before:    float64(r.Before.VehiclesCompleted),
			After:     float64(r.After.VehiclesCompleted),
			Direction: HigherIsBetter,
			Change:    percentChange(float64(r.Before.VehiclesCompleted), float64(r.After.VehiclesCompleted)),
		},
		{
			Name:      MetricAvgEVWaitTime,
			Before:    r.Before.AvgEVWaitTime,
			After:     r.After.AvgEVWaitTime,
			Direction: LowerIsBetter,
			Change:    percentChange(r.Before.AvgEVWaitTime, r.After.AvgEVWaitTime),
		},
	}
}
