package domain

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/zeebo/xxh3"
)

// Schedule maps slot index to the meetings committed in that slot. It only
// grows: meetings are appended or gain providers, never removed.
type Schedule struct {
	slots  [][]*Meeting
	nextID int
}

// NewSchedule returns an empty schedule with slotCount slots.
func NewSchedule(slotCount int) *Schedule {
	if slotCount < 0 {
		slotCount = 0
	}
	return &Schedule{slots: make([][]*Meeting, slotCount)}
}

func (s *Schedule) SlotCount() int { return len(s.slots) }

// Add appends a new meeting to slot and returns it. The provider slice is copied.
func (s *Schedule) Add(slot int, requester string, providers []string, phase Phase) *Meeting {
	s.nextID++
	m := &Meeting{
		ID:        s.nextID,
		Slot:      slot,
		Requester: requester,
		Providers: append([]string(nil), providers...),
		Phase:     phase,
	}
	s.slots[slot] = append(s.slots[slot], m)
	return m
}

// Restore re-inserts a previously committed meeting, keeping its ID. Used when
// loading stored runs.
func (s *Schedule) Restore(m Meeting) error {
	if m.Slot < 0 || m.Slot >= len(s.slots) {
		return fmt.Errorf("meeting %d: slot %d out of range [0,%d)", m.ID, m.Slot, len(s.slots))
	}
	c := m.Clone()
	s.slots[m.Slot] = append(s.slots[m.Slot], &c)
	if m.ID > s.nextID {
		s.nextID = m.ID
	}
	return nil
}

// Grow adds provider to an existing meeting.
func (s *Schedule) Grow(m *Meeting, provider string) {
	m.Providers = append(m.Providers, provider)
}

// Meetings returns the meetings of slot in commit order. The returned slice
// must be treated as read-only.
func (s *Schedule) Meetings(slot int) []*Meeting {
	if slot < 0 || slot >= len(s.slots) {
		return nil
	}
	return s.slots[slot]
}

// All returns every meeting ordered by slot, then commit order.
func (s *Schedule) All() []*Meeting {
	var out []*Meeting
	for _, ms := range s.slots {
		out = append(out, ms...)
	}
	return out
}

// Len returns the number of meetings.
func (s *Schedule) Len() int {
	n := 0
	for _, ms := range s.slots {
		n += len(ms)
	}
	return n
}

// Encounters returns the number of individual requester-provider pairings.
func (s *Schedule) Encounters() int {
	n := 0
	for _, ms := range s.slots {
		for _, m := range ms {
			n += len(m.Providers)
		}
	}
	return n
}

// RequesterMeeting returns requester's meeting in slot, or nil.
func (s *Schedule) RequesterMeeting(slot int, requester string) *Meeting {
	for _, m := range s.Meetings(slot) {
		if m.Requester == requester {
			return m
		}
	}
	return nil
}

// ProviderMeeting returns the meeting holding provider in slot, or nil.
func (s *Schedule) ProviderMeeting(slot int, provider string) *Meeting {
	for _, m := range s.Meetings(slot) {
		if m.HasProvider(provider) {
			return m
		}
	}
	return nil
}

// MeetingsFor returns every meeting involving id in the given role, in slot order.
func (s *Schedule) MeetingsFor(id string, role Role) []*Meeting {
	var out []*Meeting
	for _, m := range s.All() {
		if (role == RoleRequester && m.Requester == id) || (role == RoleProvider && m.HasProvider(id)) {
			out = append(out, m)
		}
	}
	return out
}

// Fingerprint is a deterministic digest of the schedule content. Meetings
// within a slot are hashed in requester order so that commit order does not
// affect the result; provider order inside a meeting does.
func (s *Schedule) Fingerprint() uint64 {
	var b strings.Builder
	for slot, ms := range s.slots {
		sorted := make([]*Meeting, len(ms))
		copy(sorted, ms)
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Requester < sorted[j].Requester
		})
		for _, m := range sorted {
			b.WriteString(strconv.Itoa(slot))
			b.WriteByte('|')
			b.WriteString(m.Requester)
			b.WriteByte('|')
			b.WriteString(strings.Join(m.Providers, "\x1f"))
			b.WriteByte('\n')
		}
	}
	return xxh3.HashString(b.String())
}

// FingerprintHex renders Fingerprint as 16 hex digits.
func (s *Schedule) FingerprintHex() string {
	return fmt.Sprintf("%016x", s.Fingerprint())
}
