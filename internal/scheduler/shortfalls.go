package scheduler

import "github.com/alexanderramin/rueda/internal/domain"

// collectShortfalls lists everything the run could not deliver: unknown
// participants, rejected pins, unplaced participants and unfulfilled
// preferences, in that order.
func (s *Scheduler) collectShortfalls() []domain.Shortfall {
	out := append([]domain.Shortfall(nil), s.unknown...)
	out = append(out, s.rejected...)

	for _, r := range s.roster.Requesters() {
		if !s.hasMeeting(r, domain.RoleRequester) {
			out = append(out, s.unscheduled(r, domain.RoleRequester))
		}
	}
	for _, p := range s.roster.Providers() {
		if !s.hasMeeting(p, domain.RoleProvider) {
			out = append(out, s.unscheduled(p, domain.RoleProvider))
		}
	}

	for _, pair := range s.prefs.Outstanding() {
		out = append(out, domain.Shortfall{
			Kind:        domain.ShortfallUnfulfilled,
			RequesterID: pair.Requester,
			ProviderID:  pair.Provider,
			Slot:        -1,
			Reason:      s.explainUnfulfilled(pair.Requester, pair.Provider),
		})
	}
	return out
}

func (s *Scheduler) unscheduled(id string, role domain.Role) domain.Shortfall {
	reason := "no feasible placement"
	if len(s.policy.EligibleSlots(id, role, s.schedule.SlotCount())) == 0 {
		reason = string(RejectIneligible) + " in any slot"
	} else if role == domain.RoleRequester && !s.eligibleWithin(id, role, s.coverageSlots()) {
		reason = "not available in coverage slots"
	}
	return domain.Shortfall{
		Kind:          domain.ShortfallUnscheduled,
		Role:          role,
		ParticipantID: id,
		Slot:          -1,
		Reason:        reason,
	}
}

func (s *Scheduler) eligibleWithin(id string, role domain.Role, k int) bool {
	for slot := 0; slot < k; slot++ {
		if s.policy.IsEligible(id, role, slot) {
			return true
		}
	}
	return false
}

// explainUnfulfilled names the most specific reason a pair never met.
func (s *Scheduler) explainUnfulfilled(requester, provider string) string {
	if s.policy.IsExcludedPair(requester, provider) {
		return string(RejectExcluded)
	}
	if s.capacity.RemainingCapacity(provider) <= 0 {
		return string(RejectCapacity)
	}
	common := false
	for slot := 0; slot < s.schedule.SlotCount(); slot++ {
		if s.policy.IsEligible(requester, domain.RoleRequester, slot) &&
			s.policy.IsEligible(provider, domain.RoleProvider, slot) {
			common = true
			break
		}
	}
	if !common {
		return "no common available slot"
	}
	return "no feasible slot"
}
