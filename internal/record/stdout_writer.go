// Writer implementation printing records to STDOUT
package record

import (
	"encoding/json"
	"fmt"
)

// StdoutWriter prints step and benchmark rows to STDOUT as JSON lines.
type StdoutWriter struct{}

// WriteStep outputs a single step row.
func (w *StdoutWriter) WriteStep(row StepRow) error {
	data, _ := json.Marshal(row)
	fmt.Println(string(data))
	return nil
}

// WriteSteps outputs multiple step rows.
func (w *StdoutWriter) WriteSteps(rows []StepRow) error {
	for _, r := range rows {
		_ = w.WriteStep(r)
	}
	return nil
}

// WriteBenchmark outputs a single benchmark row.
func (w *StdoutWriter) WriteBenchmark(row BenchmarkRow) error {
	data, _ := json.Marshal(row)
	fmt.Println(string(data))
	return nil
}
