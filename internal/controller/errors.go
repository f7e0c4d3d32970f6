package controller

import "errors"

// Precondition violations. These are rejected synchronously, before any
// request reaches the backend.
var (
	ErrSessionRunning = errors.New("interactive session already running")
	ErrNoSession      = errors.New("no interactive session running")
	ErrBenchmarkBusy  = errors.New("benchmark run already in progress")
	ErrMissingResults = errors.New("both benchmark runs are required for a comparison")
	ErrMapMismatch    = errors.New("benchmark runs were captured on different maps")
)
