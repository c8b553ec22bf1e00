package domain

import (
	"fmt"
	"strings"
)

type Role string

const (
	RoleRequester Role = "requester"
	RoleProvider  Role = "provider"
)

// ParseRole accepts the canonical role names plus the buyer/seller aliases
// used by event organisers.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "requester", "buyer", "comprador":
		return RoleRequester, nil
	case "provider", "seller", "vendedor":
		return RoleProvider, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// Phase records which scheduling pass created a meeting.
type Phase string

const (
	PhasePinned     Phase = "pinned"
	PhaseCoverage   Phase = "coverage"
	PhaseEmergency  Phase = "emergency"
	PhasePreference Phase = "preference"
	PhaseFill       Phase = "fill"
)

// PhaseOrder lists the phases in the order the passes run.
var PhaseOrder = []Phase{PhasePinned, PhaseCoverage, PhaseEmergency, PhasePreference, PhaseFill}

type ShortfallKind string

const (
	ShortfallUnscheduled        ShortfallKind = "UNSCHEDULED_PARTICIPANT"
	ShortfallUnfulfilled        ShortfallKind = "UNFULFILLED_PREFERENCE"
	ShortfallRejectedPin        ShortfallKind = "REJECTED_PIN"
	ShortfallUnknownParticipant ShortfallKind = "UNKNOWN_PARTICIPANT"
)
