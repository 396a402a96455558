package models

import "fmt"

// ErrorType identifies the category of a trial-scoped failure.
type ErrorType string

const (
	// Environment adapter
	ErrActorSetupInvalid ErrorType = "actor_setup_invalid"
	ErrSimulationFailed  ErrorType = "simulation_failed"
	ErrActionFeedClosed  ErrorType = "action_feed_closed"

	// Catch-all
	ErrInternalError ErrorType = "internal_error"
)

// TrialError is a categorized failure raised by a trial's production logic.
type TrialError struct {
	Type    ErrorType
	Message string
}

func (e *TrialError) Error() string {
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// NewTrialError builds a categorized trial error.
func NewTrialError(t ErrorType, format string, args ...any) *TrialError {
	return &TrialError{Type: t, Message: fmt.Sprintf(format, args...)}
}
