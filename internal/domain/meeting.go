package domain

// Meeting groups one requester with 1..MaxGroupSize distinct providers in a
// single slot. ID is the 1-based commit sequence within a run.
type Meeting struct {
	ID        int
	Slot      int
	Requester string
	Providers []string
	Phase     Phase
}

// Size returns the number of providers in the meeting.
func (m *Meeting) Size() int { return len(m.Providers) }

// HasProvider reports whether provider already sits in the meeting.
func (m *Meeting) HasProvider(provider string) bool {
	for _, p := range m.Providers {
		if p == provider {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so callers cannot mutate the schedule.
func (m *Meeting) Clone() Meeting {
	c := *m
	c.Providers = make([]string, len(m.Providers))
	copy(c.Providers, m.Providers)
	return c
}
