package domain

import "fmt"

// Shortfall is a non-fatal gap in a scheduling run: an unplaced participant,
// a preference never realised, a pinned meeting that could not be honoured or
// an input row referencing an unknown participant.
type Shortfall struct {
	Kind          ShortfallKind
	Role          Role
	ParticipantID string
	RequesterID   string
	ProviderID    string
	Slot          int // -1 when not slot specific
	Reason        string
}

func (s Shortfall) String() string {
	switch s.Kind {
	case ShortfallUnscheduled:
		return fmt.Sprintf("%s: %s %q: %s", s.Kind, s.Role, s.ParticipantID, s.Reason)
	case ShortfallUnknownParticipant:
		return fmt.Sprintf("%s: %q (%s): %s", s.Kind, s.ParticipantID, s.Role, s.Reason)
	case ShortfallRejectedPin:
		return fmt.Sprintf("%s: %q <-> %q at slot %d: %s", s.Kind, s.RequesterID, s.ProviderID, s.Slot, s.Reason)
	default:
		return fmt.Sprintf("%s: %q -> %q: %s", s.Kind, s.ProviderID, s.RequesterID, s.Reason)
	}
}

// CountShortfalls tallies shortfalls per kind.
func CountShortfalls(list []Shortfall) map[ShortfallKind]int {
	out := make(map[ShortfallKind]int)
	for _, s := range list {
		out[s.Kind]++
	}
	return out
}
