package attachment

// Status represents the lifecycle status of an attachment application
type Status string

const (
	StatusPending    Status = "Pending"
	StatusApproved   Status = "Approved"
	StatusInProgress Status = "In-Progress"
	StatusRejected   Status = "Rejected"
	StatusCompleted  Status = "Completed"
)

// AllStatuses lists every valid status in lifecycle order
func AllStatuses() []Status {
	return []Status{StatusPending, StatusApproved, StatusInProgress, StatusRejected, StatusCompleted}
}

// IsValid checks if the status is a valid Status
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusInProgress, StatusRejected, StatusCompleted:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status.
// The lifecycle is forward-only: Pending -> Approved/Rejected,
// Approved -> In-Progress/Rejected, In-Progress -> Completed.
func (s Status) CanTransitionTo(target Status) bool {
	switch s {
	case StatusPending:
		return target == StatusApproved || target == StatusRejected
	case StatusApproved:
		return target == StatusInProgress || target == StatusRejected
	case StatusInProgress:
		return target == StatusCompleted
	case StatusRejected, StatusCompleted:
		return false // Terminal states
	}
	return false
}

// IsTerminal returns true for states with no outgoing transitions
func (s Status) IsTerminal() bool {
	return s == StatusRejected || s == StatusCompleted
}
