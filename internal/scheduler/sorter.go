package scheduler

import (
	"sort"

	"github.com/alexanderramin/rueda/internal/domain"
)

// Candidate tiers, lower first.
const (
	tierPreferred   = 0
	tierUnscheduled = 1
	tierOther       = 2
)

// candidate is a provider that passed every per-provider check for one
// requester in one slot.
type candidate struct {
	ID    string
	Tier  int
	Load  int
	Order int
}

// CanonicalSort orders candidates deterministically:
// 1. Tier: outstanding preference, then never-scheduled, then the rest
// 2. Load: fewer committed meetings first (tiers 1 and 2 only)
// 3. Order: preference order in tier 0, roster or shuffled order otherwise
// 4. ID: lexical ascending
func CanonicalSort(cands []candidate) {
	sort.SliceStable(cands, func(i, j int) bool {
		a, b := cands[i], cands[j]
		if a.Tier != b.Tier {
			return a.Tier < b.Tier
		}
		if a.Tier != tierPreferred && a.Load != b.Load {
			return a.Load < b.Load
		}
		if a.Order != b.Order {
			return a.Order < b.Order
		}
		return a.ID < b.ID
	})
}

// candidates lists the providers that could join requester in slot, ranked
// for the coverage pass.
func (s *Scheduler) candidates(slot int, requester string) []string {
	providers := s.roster.Providers()
	order := s.providerOrder(len(providers))

	prefRank := make(map[string]int)
	for i, p := range s.prefs.OutstandingFor(requester) {
		prefRank[p] = i
	}

	var cands []candidate
	for i, p := range providers {
		if s.providerRejection(slot, requester, p) != Feasible {
			continue
		}
		c := candidate{ID: p, Load: s.capacity.Committed(p), Order: order[i]}
		switch rank, ok := prefRank[p]; {
		case ok:
			c.Tier, c.Order, c.Load = tierPreferred, rank, 0
		case c.Load == 0:
			c.Tier = tierUnscheduled
		default:
			c.Tier = tierOther
		}
		cands = append(cands, c)
	}
	CanonicalSort(cands)
	return ids(cands)
}

// leastBooked lists the feasible providers for requester in slot ordered by
// committed load only.
func (s *Scheduler) leastBooked(slot int, requester string) []string {
	providers := s.roster.Providers()
	order := s.providerOrder(len(providers))

	var cands []candidate
	for i, p := range providers {
		if s.providerRejection(slot, requester, p) != Feasible {
			continue
		}
		cands = append(cands, candidate{ID: p, Tier: tierOther, Load: s.capacity.Committed(p), Order: order[i]})
	}
	CanonicalSort(cands)
	return ids(cands)
}

// providerOrder maps roster positions to tie-break ranks.
func (s *Scheduler) providerOrder(n int) []int {
	if s.opts.Shuffle {
		return s.rng.Perm(n)
	}
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	return order
}

func ids(cands []candidate) []string {
	out := make([]string, len(cands))
	for i, c := range cands {
		out[i] = c.ID
	}
	return out
}

// uncoveredRequesters returns requesters without any meeting, roster order.
func (s *Scheduler) uncoveredRequesters() []string {
	var out []string
	for _, r := range s.roster.Requesters() {
		if !s.hasMeeting(r, domain.RoleRequester) {
			out = append(out, r)
		}
	}
	return out
}
