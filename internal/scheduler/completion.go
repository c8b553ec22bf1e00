package scheduler

import "github.com/alexanderramin/rueda/internal/domain"

// completionPass realizes outstanding preferences over every slot. Providers
// are grouped per requester, split into target-sized sub-groups and placed
// first-fit. Sub-groups that fit nowhere and leftovers go through the
// singleton path.
func (s *Scheduler) completionPass() error {
	var order []string
	byRequester := make(map[string][]string)
	for _, p := range s.prefs.Outstanding() {
		if _, ok := byRequester[p.Requester]; !ok {
			order = append(order, p.Requester)
		}
		byRequester[p.Requester] = append(byRequester[p.Requester], p.Provider)
	}

	sizes := s.splitSizes()
	for _, r := range order {
		providers := byRequester[r]
		if s.opts.Shuffle {
			s.rng.Shuffle(len(providers), func(i, j int) {
				providers[i], providers[j] = providers[j], providers[i]
			})
		}

		groups, leftovers := split(providers, sizes)
		for _, g := range groups {
			slot := s.firstFit(r, g)
			if slot < 0 {
				leftovers = append(leftovers, g...)
				continue
			}
			if err := s.commit(slot, r, g, domain.PhasePreference); err != nil {
				return err
			}
		}
		for _, p := range leftovers {
			if err := s.placeSingle(r, p); err != nil {
				return err
			}
		}
	}
	return nil
}

// placeSingle merges provider into one of requester's meetings when the
// predicate still holds after the merge, else opens a single-provider meeting
// at the first feasible slot.
func (s *Scheduler) placeSingle(requester, provider string) error {
	if !s.prefs.IsOutstanding(provider, requester) {
		return nil
	}
	for _, m := range s.schedule.MeetingsFor(requester, domain.RoleRequester) {
		if s.CheckGrow(m, provider) == Feasible {
			return s.grow(m, provider, domain.PhasePreference)
		}
	}
	if slot := s.firstFit(requester, []string{provider}); slot >= 0 {
		return s.commit(slot, requester, []string{provider}, domain.PhasePreference)
	}
	s.log.Debug().
		Str("requester", requester).
		Str("provider", provider).
		Msg("preference left unfulfilled")
	return nil
}
