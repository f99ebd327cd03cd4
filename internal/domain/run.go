package domain

import "time"

// RawRecord is an input element before candidate derivation.
type RawRecord struct {
	Index  int
	Fields map[string]any
}

// RunMode selects between candidate derivation only and live verification.
type RunMode string

const (
	RunModeDerive RunMode = "derive"
	RunModeVerify RunMode = "verify"
)

// VerifyOptions are the run parameters handed to the verification engine.
type VerifyOptions struct {
	Timeout     time.Duration
	Concurrency int
	Strict      bool
	// OnTaskDone, when set, is called once per finished probe task.
	OnTaskDone func()
}

// ResultDocument is the final output of a run.
type ResultDocument struct {
	RunID       string
	GeneratedAt time.Time
	Mode        RunMode
	Input       string
	Rows        []ResultRow
}
