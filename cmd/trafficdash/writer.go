package main

import (
	"os"

	"trafficdash/internal/record"
)

// newWriters sets up step and benchmark writers based on flags and env vars.
// It returns the writers and a cleanup function to close any resources.
func newWriters(printOnly, jsonOut bool, logFile string) (record.StepWriter, record.BenchmarkWriter, func(), error) {
	cleanup := func() {}

	var steps record.StepWriter
	var benches record.BenchmarkWriter
	if jsonOut {
		w := &record.StdoutWriter{}
		steps, benches = w, w
	} else if printOnly || os.Getenv("GREPTIMEDB_ENDPOINT") == "" {
		w := record.NewColorStdoutWriter()
		steps, benches = w, w
	} else {
		w, err := record.NewGreptimeDBWriter(os.Getenv("GREPTIMEDB_ENDPOINT"), greptimeDatabase())
		if err != nil {
			return nil, nil, nil, err
		}
		steps, benches = w, w
	}
	if logFile == "" {
		return steps, benches, cleanup, nil
	}

	fw, err := record.NewFileWriter(logFile, logFile+".benchmarks")
	if err != nil {
		return nil, nil, nil, err
	}
	mw := record.NewMultiWriter([]record.StepWriter{steps, fw}, []record.BenchmarkWriter{benches, fw})
	cleanup = func() { fw.Close() }
	return mw, mw, cleanup, nil
}

// newSinkWriters builds the recording sinks used behind the TUI. Unlike
// newWriters it never writes to STDOUT, which the TUI owns. Both writers
// are nil when no sink is configured.
func newSinkWriters(logFile string) (record.StepWriter, record.BenchmarkWriter, func(), error) {
	cleanup := func() {}

	var steps record.StepWriter
	var benches record.BenchmarkWriter
	if endpoint := os.Getenv("GREPTIMEDB_ENDPOINT"); endpoint != "" {
		w, err := record.NewGreptimeDBWriter(endpoint, greptimeDatabase())
		if err != nil {
			return nil, nil, nil, err
		}
		steps, benches = w, w
	}
	if logFile == "" {
		return steps, benches, cleanup, nil
	}

	fw, err := record.NewFileWriter(logFile, logFile+".benchmarks")
	if err != nil {
		return nil, nil, nil, err
	}
	cleanup = func() { fw.Close() }
	if steps == nil {
		return fw, fw, cleanup, nil
	}
	mw := record.NewMultiWriter([]record.StepWriter{steps, fw}, []record.BenchmarkWriter{benches, fw})
	return mw, mw, cleanup, nil
}

func greptimeDatabase() string {
	if db := os.Getenv("GREPTIMEDB_DATABASE"); db != "" {
		return db
	}
	return "public"
}
