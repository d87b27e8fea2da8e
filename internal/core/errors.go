package core

import (
	"errors"
	"fmt"
)

var (
	// ErrUnparseableResponse is returned when a generation answer holds
	// neither a structured record nor enough text to build a PRD from.
	ErrUnparseableResponse = errors.New("failed to parse PRD response")

	// ErrEmptyExport is returned when a PRD has nothing to export.
	ErrEmptyExport = errors.New("PRD content is empty")
)

// ValidationError represents a validation failure.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// AgentError carries the error an agent reported, verbatim.
type AgentError struct {
	Message string
}

func (e *AgentError) Error() string {
	return e.Message
}

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
