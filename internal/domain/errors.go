package domain

import (
	"errors"
	"fmt"
)

var (
	ErrConfiguration      = errors.New("configuration error")
	ErrCapacityExceeded   = errors.New("capacity exceeded")
	ErrUnknownParticipant = errors.New("unknown participant")
)

// ConfigurationError reports invalid calendar bounds, non-positive capacities
// or contradictory availability rules. It aborts a run before scheduling.
type ConfigurationError struct {
	Field  string
	Reason string
}

// NewConfigurationError builds a ConfigurationError with a formatted reason.
func NewConfigurationError(field, format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

func (e *ConfigurationError) Error() string {
	if e.Field == "" {
		return "configuration: " + e.Reason
	}
	return "configuration: " + e.Field + ": " + e.Reason
}

func (e *ConfigurationError) Is(target error) bool { return target == ErrConfiguration }

// CapacityExceededError is raised by the capacity tracker when a commit would
// take a provider past its cap. The scheduler checks capacity first, so this
// signals a defect.
type CapacityExceededError struct {
	ProviderID string
	Max        int
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("provider %q already has %d meetings (max %d)", e.ProviderID, e.Max, e.Max)
}

func (e *CapacityExceededError) Is(target error) bool { return target == ErrCapacityExceeded }

// UnknownParticipantError reports an identifier missing from the roster.
type UnknownParticipantError struct {
	ID   string
	Role Role
}

func (e *UnknownParticipantError) Error() string {
	return fmt.Sprintf("unknown %s %q", e.Role, e.ID)
}

func (e *UnknownParticipantError) Is(target error) bool { return target == ErrUnknownParticipant }
