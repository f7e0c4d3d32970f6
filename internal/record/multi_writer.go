package record

// MultiWriter fan-outs step and benchmark rows to multiple writers.
type MultiWriter struct {
	stepWriters  []StepWriter
	benchWriters []BenchmarkWriter
}

// NewMultiWriter creates a new MultiWriter.
func NewMultiWriter(sws []StepWriter, bws []BenchmarkWriter) *MultiWriter {
	return &MultiWriter{stepWriters: sws, benchWriters: bws}
}

// WriteStep sends a step row to all step writers.
func (mw *MultiWriter) WriteStep(row StepRow) error {
	for _, w := range mw.stepWriters {
		if err := w.WriteStep(row); err != nil {
			return err
		}
	}
	return nil
}

// WriteSteps sends multiple step rows to all writers, using batch if supported.
func (mw *MultiWriter) WriteSteps(rows []StepRow) error {
	for _, w := range mw.stepWriters {
		if bw, ok := w.(batchStepWriter); ok {
			if err := bw.WriteSteps(rows); err != nil {
				return err
			}
			continue
		}
		for _, r := range rows {
			if err := w.WriteStep(r); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteBenchmark sends a benchmark row to all benchmark writers.
func (mw *MultiWriter) WriteBenchmark(row BenchmarkRow) error {
	for _, w := range mw.benchWriters {
		if err := w.WriteBenchmark(row); err != nil {
			return err
		}
	}
	return nil
}
