package scheduler

import "github.com/alexanderramin/rueda/internal/domain"

// Rejection names the first hard check a candidate failed. The empty value
// means the candidate is feasible.
type Rejection string

const (
	Feasible            Rejection = ""
	RejectUnknown       Rejection = "unknown participant"
	RejectEmptyGroup    Rejection = "empty group"
	RejectDuplicate     Rejection = "provider listed twice"
	RejectGroupSize     Rejection = "group exceeds maximum size"
	RejectSlotRange     Rejection = "slot outside the calendar"
	RejectSlotFull      Rejection = "slot is full"
	RejectRequesterBusy Rejection = "requester already booked in slot"
	RejectIneligible    Rejection = "not available in slot"
	RejectExcluded      Rejection = "excluded pair"
	RejectProviderBusy  Rejection = "provider already booked in slot"
	RejectAlreadyMet    Rejection = "pair already met"
	RejectCapacity      Rejection = "provider reached capacity"
)

// Check runs the hard-check predicate for a new meeting of requester with
// providers in slot.
func (s *Scheduler) Check(slot int, requester string, providers []string) Rejection {
	if slot < 0 || slot >= s.schedule.SlotCount() {
		return RejectSlotRange
	}
	if len(providers) == 0 {
		return RejectEmptyGroup
	}
	if len(providers) > s.opts.MaxGroupSize {
		return RejectGroupSize
	}
	if r := s.requesterRejection(slot, requester); r != Feasible {
		return r
	}
	if s.capacity.SlotFull(slot) {
		return RejectSlotFull
	}
	if s.capacity.IsBusyInSlot(requester, slot) {
		return RejectRequesterBusy
	}
	seen := make(map[string]bool, len(providers))
	for _, p := range providers {
		if seen[p] {
			return RejectDuplicate
		}
		seen[p] = true
		if r := s.providerRejection(slot, requester, p); r != Feasible {
			return r
		}
	}
	return Feasible
}

// CheckGrow runs the same predicate for adding provider to an existing
// meeting. The requester is already in the slot by construction.
func (s *Scheduler) CheckGrow(m *domain.Meeting, provider string) Rejection {
	if m.Size()+1 > s.opts.MaxGroupSize {
		return RejectGroupSize
	}
	if m.HasProvider(provider) {
		return RejectDuplicate
	}
	if r := s.requesterRejection(m.Slot, m.Requester); r != Feasible {
		return r
	}
	return s.providerRejection(m.Slot, m.Requester, provider)
}

func (s *Scheduler) requesterRejection(slot int, requester string) Rejection {
	if !s.roster.Has(requester, domain.RoleRequester) {
		return RejectUnknown
	}
	if !s.policy.IsEligible(requester, domain.RoleRequester, slot) {
		return RejectIneligible
	}
	return Feasible
}

// providerRejection covers the per-provider conditions. Coverage candidates
// are pre-filtered with it, so any prefix of a candidate list is feasible.
func (s *Scheduler) providerRejection(slot int, requester, provider string) Rejection {
	switch {
	case !s.roster.Has(provider, domain.RoleProvider):
		return RejectUnknown
	case !s.policy.IsEligible(provider, domain.RoleProvider, slot):
		return RejectIneligible
	case s.policy.IsExcludedPair(requester, provider):
		return RejectExcluded
	case s.capacity.IsBusyInSlot(provider, slot):
		return RejectProviderBusy
	case s.ledger.HasMet(requester, provider):
		return RejectAlreadyMet
	case s.capacity.RemainingCapacity(provider) <= 0:
		return RejectCapacity
	}
	return Feasible
}

// firstFit returns the first slot where the group is feasible, or -1.
func (s *Scheduler) firstFit(requester string, providers []string) int {
	for slot := 0; slot < s.schedule.SlotCount(); slot++ {
		if s.Check(slot, requester, providers) == Feasible {
			return slot
		}
	}
	return -1
}
