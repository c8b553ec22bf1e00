package scheduler

import (
	"github.com/alexanderramin/rueda/internal/domain"
)

// pinPass books pinned pairs before anything else. A pin joins the
// requester's existing meeting in that slot when there is room, otherwise it
// opens a new one. Pins that fail the predicate become shortfalls.
func (s *Scheduler) pinPass() error {
	for _, pin := range s.pins {
		var rej Rejection
		if m := s.schedule.RequesterMeeting(pin.Slot, pin.Requester); m != nil {
			if rej = s.CheckGrow(m, pin.Provider); rej == Feasible {
				if err := s.grow(m, pin.Provider, domain.PhasePinned); err != nil {
					return err
				}
				continue
			}
		} else if rej = s.Check(pin.Slot, pin.Requester, []string{pin.Provider}); rej == Feasible {
			if err := s.commit(pin.Slot, pin.Requester, []string{pin.Provider}, domain.PhasePinned); err != nil {
				return err
			}
			continue
		}

		s.log.Warn().
			Str("requester", pin.Requester).
			Str("provider", pin.Provider).
			Int("slot", pin.Slot).
			Str("reason", string(rej)).
			Msg("pinned meeting rejected")
		s.rejected = append(s.rejected, domain.Shortfall{
			Kind:        domain.ShortfallRejectedPin,
			RequesterID: pin.Requester,
			ProviderID:  pin.Provider,
			Slot:        pin.Slot,
			Reason:      string(rej),
		})
	}
	return nil
}
