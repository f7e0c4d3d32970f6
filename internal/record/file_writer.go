package record

import (
	"encoding/json"
	"os"
)

// FileWriter writes step and benchmark rows to JSONL files.
type FileWriter struct {
	stepFile  *os.File
	benchFile *os.File
	stepEnc   *json.Encoder
	benchEnc  *json.Encoder
}

// NewFileWriter creates a FileWriter. benchmarkPath may be empty to skip the
// benchmark log.
func NewFileWriter(stepPath, benchmarkPath string) (*FileWriter, error) {
	sf, err := os.Create(stepPath)
	if err != nil {
		return nil, err
	}
	fw := &FileWriter{stepFile: sf, stepEnc: json.NewEncoder(sf)}
	if benchmarkPath != "" {
		bf, err := os.Create(benchmarkPath)
		if err != nil {
			sf.Close()
			return nil, err
		}
		fw.benchFile = bf
		fw.benchEnc = json.NewEncoder(bf)
	}
	return fw, nil
}

// WriteStep logs a single step row.
func (f *FileWriter) WriteStep(row StepRow) error {
	return f.stepEnc.Encode(row)
}

// WriteSteps logs multiple step rows.
func (f *FileWriter) WriteSteps(rows []StepRow) error {
	for _, r := range rows {
		if err := f.WriteStep(r); err != nil {
			return err
		}
	}
	return nil
}

// WriteBenchmark logs a single benchmark row, if enabled.
func (f *FileWriter) WriteBenchmark(row BenchmarkRow) error {
	if f.benchEnc == nil {
		return nil
	}
	return f.benchEnc.Encode(row)
}

// Close closes any underlying files.
func (f *FileWriter) Close() error {
	var err error
	if f.stepFile != nil {
		if e := f.stepFile.Close(); e != nil && err == nil {
			err = e
		}
	}
	if f.benchFile != nil {
		if e := f.benchFile.Close(); e != nil && err == nil {
			err = e
		}
	}
	return err
}
