package types

// ActionStatus represents the current phase of an action pipeline invocation
type ActionStatus string

const (
	ActionStatusIdle       ActionStatus = "idle"
	ActionStatusResolving  ActionStatus = "resolving"
	ActionStatusInvoking   ActionStatus = "invoking"
	ActionStatusCommitting ActionStatus = "committing"
	ActionStatusFailed     ActionStatus = "failed"
)

// IsValid checks if the action status is valid
func (s ActionStatus) IsValid() bool {
	switch s {
	case ActionStatusIdle,
		ActionStatusResolving,
		ActionStatusInvoking,
		ActionStatusCommitting,
		ActionStatusFailed:
		return true
	default:
		return false
	}
}

// String returns the string representation of the action status
func (s ActionStatus) String() string {
	return string(s)
}
