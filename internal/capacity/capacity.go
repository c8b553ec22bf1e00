// Package capacity tracks how many meetings each provider has committed and
// which participants are already busy in a slot.
package capacity

import (
	"errors"
	"fmt"
	"sort"

	"github.com/alexanderramin/rueda/internal/domain"
)

// Option configures a Tracker.
type Option func(*Tracker)

// WithOverrides sets per-provider maximums that replace the default.
func WithOverrides(overrides map[string]int) Option {
	return func(t *Tracker) {
		for id, n := range overrides {
			t.overrides[id] = n
		}
	}
}

// WithMaxMeetingsPerSlot caps the number of meetings a single slot may hold.
// Zero means unlimited.
func WithMaxMeetingsPerSlot(n int) Option {
	return func(t *Tracker) { t.perSlot = n }
}

// Tracker owns the committed counts for one scheduling run. Slot occupancy is
// read from the schedule being built rather than duplicated.
type Tracker struct {
	schedule  *domain.Schedule
	max       int
	overrides map[string]int
	perSlot   int
	committed map[string]int
}

// New builds a tracker over schedule with a default per-provider maximum.
func New(schedule *domain.Schedule, maxPerProvider int, opts ...Option) (*Tracker, error) {
	t := &Tracker{
		schedule:  schedule,
		max:       maxPerProvider,
		overrides: make(map[string]int),
		committed: make(map[string]int),
	}
	for _, opt := range opts {
		opt(t)
	}

	var errs []error
	if maxPerProvider <= 0 {
		errs = append(errs, domain.NewConfigurationError("capacity.max_meetings_per_provider",
			"must be positive, got %d", maxPerProvider))
	}
	ids := make([]string, 0, len(t.overrides))
	for id := range t.overrides {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		if t.overrides[id] <= 0 {
			errs = append(errs, domain.NewConfigurationError(
				fmt.Sprintf("capacity.overrides.%s", id), "must be positive, got %d", t.overrides[id]))
		}
	}
	if t.perSlot < 0 {
		errs = append(errs, domain.NewConfigurationError("capacity.max_meetings_per_slot",
			"must not be negative, got %d", t.perSlot))
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return t, nil
}

// Max returns the cap that applies to provider.
func (t *Tracker) Max(provider string) int {
	if n, ok := t.overrides[provider]; ok {
		return n
	}
	return t.max
}

// Committed returns the number of meetings committed for provider.
func (t *Tracker) Committed(provider string) int {
	return t.committed[provider]
}

// RemainingCapacity is the provider's cap minus its committed meetings.
func (t *Tracker) RemainingCapacity(provider string) int {
	return t.Max(provider) - t.committed[provider]
}

// Commit books one more meeting for provider.
func (t *Tracker) Commit(provider string) error {
	max := t.Max(provider)
	if t.committed[provider] >= max {
		return &domain.CapacityExceededError{ProviderID: provider, Max: max}
	}
	t.committed[provider]++
	return nil
}

// IsBusyInSlot reports whether the participant already appears in a meeting of
// the slot, as requester or provider.
func (t *Tracker) IsBusyInSlot(id string, slot int) bool {
	for _, m := range t.schedule.Meetings(slot) {
		if m.Requester == id || m.HasProvider(id) {
			return true
		}
	}
	return false
}

// SlotFull reports whether the slot reached the per-slot meeting cap.
func (t *Tracker) SlotFull(slot int) bool {
	return t.perSlot > 0 && len(t.schedule.Meetings(slot)) >= t.perSlot
}

// Loads returns the committed count of every provider that has at least one
// meeting.
func (t *Tracker) Loads() map[string]int {
	out := make(map[string]int, len(t.committed))
	for id, n := range t.committed {
		out[id] = n
	}
	return out
}
