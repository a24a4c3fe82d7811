package profiler

// ExecutionStatus tracks one cell execution through its lifecycle. A final
// status is terminal: the executor never leaves it.
type ExecutionStatus string

const (
	StatusPending    = ExecutionStatus("Pending")
	StatusInProgress = ExecutionStatus("In Progress")
	StatusCompleted  = ExecutionStatus("Completed")
	StatusFailed     = ExecutionStatus("Failed")
	StatusTimedOut   = ExecutionStatus("Timed Out")
)

func (s ExecutionStatus) IsFinal() bool {
	switch s {
	case StatusPending, StatusInProgress:
		return false
	default:
		return true
	}
}

func (s ExecutionStatus) String() string {
	return string(s)
}
