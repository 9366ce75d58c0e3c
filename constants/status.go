package constants

// RunStatus is the canonical status for a splitting run.
type RunStatus string

// Stable values (surfaced in logs and run results).
const (
	RunStatusRunning   RunStatus = "RUNNING"   // in progress
	RunStatusCompleted RunStatus = "COMPLETED" // page loop finished (possibly with page errors)
	RunStatusCancelled RunStatus = "CANCELLED" // stopped between pages by the caller
	RunStatusFailed    RunStatus = "FAILED"    // whole-document failure, no page loop ran
)
