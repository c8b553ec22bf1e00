package scheduler

import "github.com/alexanderramin/rueda/internal/domain"

// coverageSlots is K clamped to the calendar.
func (s *Scheduler) coverageSlots() int {
	return min(s.opts.CoverageSlots, s.schedule.SlotCount())
}

// coveragePass places every requester without a meeting into one of the first
// K slots. Group sizes follow the slot's target distribution and degrade to
// whatever the candidate list allows. A slot stops taking new meetings once
// its target quotas are all met.
func (s *Scheduler) coveragePass() error {
	k := s.coverageSlots()
	for slot := 0; slot < k; slot++ {
		pending := s.requesterOrder(s.uncoveredRequesters())
		if len(pending) == 0 {
			return nil
		}
		for _, r := range pending {
			if s.capacity.SlotFull(slot) || s.quotaMet(slot) {
				break
			}
			if !s.requesterFree(slot, r) {
				continue
			}
			cands := s.candidates(slot, r)
			if len(cands) == 0 {
				continue
			}
			size := min(s.nextSize(slot), len(cands))
			if err := s.place(slot, r, cands[:size], domain.PhaseCoverage); err != nil {
				return err
			}
		}
	}
	return nil
}

// emergencyPass rescans the first K slots for requesters the coverage pass
// could not place, ignoring quotas and taking the largest feasible group.
func (s *Scheduler) emergencyPass() error {
	k := s.coverageSlots()
	for _, r := range s.uncoveredRequesters() {
		for slot := 0; slot < k; slot++ {
			if !s.requesterFree(slot, r) {
				continue
			}
			cands := s.candidates(slot, r)
			if len(cands) == 0 {
				continue
			}
			size := min(s.opts.MaxGroupSize, len(cands))
			if err := s.place(slot, r, cands[:size], domain.PhaseEmergency); err != nil {
				return err
			}
			break
		}
	}
	for _, r := range s.uncoveredRequesters() {
		s.log.Warn().Str("requester", r).Msg("requester left without a meeting")
	}
	return nil
}

// place commits group after re-running the full predicate. A failing check
// here is logged and skipped.
func (s *Scheduler) place(slot int, requester string, group []string, phase domain.Phase) error {
	if rej := s.Check(slot, requester, group); rej != Feasible {
		s.log.Error().
			Int("slot", slot).
			Str("requester", requester).
			Strs("providers", group).
			Str("reason", string(rej)).
			Msg("candidate group failed hard check")
		return nil
	}
	return s.commit(slot, requester, group, phase)
}

// requesterFree reports whether requester could open a new meeting in slot.
func (s *Scheduler) requesterFree(slot int, requester string) bool {
	return s.requesterRejection(slot, requester) == Feasible &&
		!s.capacity.IsBusyInSlot(requester, slot) &&
		!s.capacity.SlotFull(slot)
}
