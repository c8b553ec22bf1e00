package scheduler

import (
	"sort"

	"github.com/alexanderramin/rueda/internal/domain"
)

// fillPass walks every slot and books free requesters with the least-booked
// providers they have not met, sized by the slot's targets, until the slot's
// quota is met. Requesters with fewer meetings go first.
func (s *Scheduler) fillPass() error {
	for slot := 0; slot < s.schedule.SlotCount(); slot++ {
		for _, r := range s.fillOrder() {
			if s.capacity.SlotFull(slot) || s.quotaMet(slot) {
				break
			}
			if !s.requesterFree(slot, r) {
				continue
			}
			cands := s.leastBooked(slot, r)
			if len(cands) == 0 {
				continue
			}
			size := min(s.nextSize(slot), len(cands))
			if err := s.place(slot, r, cands[:size], domain.PhaseFill); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Scheduler) fillOrder() []string {
	reqs := s.requesterOrder(s.roster.Requesters())
	load := make(map[string]int, len(reqs))
	for _, r := range reqs {
		load[r] = len(s.schedule.MeetingsFor(r, domain.RoleRequester))
	}
	sort.SliceStable(reqs, func(i, j int) bool {
		return load[reqs[i]] < load[reqs[j]]
	})
	return reqs
}
