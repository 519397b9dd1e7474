// Package state persists forecast run history to SQLite: the run
// record itself, the per-subzone success/failure manifest, and the
// resulting gap series. The engine stays pure; persistence is the
// caller's choice.
package state

import "time"

// RunStatus is the lifecycle state of a forecast run.
type RunStatus string

const (
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// Run is one recorded forecast run.
type Run struct {
	ID            string
	Status        RunStatus
	ReferenceYear int
	HorizonYear   int
	StartedAt     time.Time
	CompletedAt   *time.Time
	Error         string
}
