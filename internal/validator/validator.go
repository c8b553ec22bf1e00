// Package validator proves a schedule is conflict-free and audits it against
// the event constraints. Nothing here mutates the schedule.
package validator

import (
	"sort"

	"github.com/alexanderramin/rueda/internal/domain"
)

// Conflict is one pair of meetings in the same slot that share a provider or
// a requester.
type Conflict struct {
	Slot      int            `json:"slot"`
	Providers []string       `json:"providers,omitempty"`
	Requester string         `json:"requester,omitempty"`
	First     domain.Meeting `json:"first"`
	Second    domain.Meeting `json:"second"`
}

// ConflictReport is the outcome of Validate.
type ConflictReport struct {
	TotalConflicts      int        `json:"total_conflicts"`
	Conflicts           []Conflict `json:"conflicts"`
	OffendingProviders  []string   `json:"offending_providers"`
	OffendingRequesters []string   `json:"offending_requesters"`
}

// HasConflicts reports whether any conflict was found.
func (r ConflictReport) HasConflicts() bool { return r.TotalConflicts > 0 }

// Validate compares every unordered pair of meetings within each slot.
func Validate(s *domain.Schedule) ConflictReport {
	report := ConflictReport{
		Conflicts:           []Conflict{},
		OffendingProviders:  []string{},
		OffendingRequesters: []string{},
	}
	providers := make(map[string]bool)
	requesters := make(map[string]bool)

	for slot := 0; slot < s.SlotCount(); slot++ {
		ms := s.Meetings(slot)
		for i := 0; i < len(ms); i++ {
			for j := i + 1; j < len(ms); j++ {
				shared := intersect(ms[i].Providers, ms[j].Providers)
				sameRequester := ms[i].Requester == ms[j].Requester
				if len(shared) == 0 && !sameRequester {
					continue
				}
				c := Conflict{
					Slot:      slot,
					Providers: shared,
					First:     ms[i].Clone(),
					Second:    ms[j].Clone(),
				}
				if sameRequester {
					c.Requester = ms[i].Requester
					requesters[c.Requester] = true
				}
				for _, p := range shared {
					providers[p] = true
				}
				report.Conflicts = append(report.Conflicts, c)
			}
		}
	}

	report.TotalConflicts = len(report.Conflicts)
	report.OffendingProviders = sortedKeys(providers)
	report.OffendingRequesters = sortedKeys(requesters)
	return report
}

// intersect returns the providers present in both lists, in a's order.
func intersect(a, b []string) []string {
	inB := make(map[string]bool, len(b))
	for _, p := range b {
		inB[p] = true
	}
	var out []string
	for _, p := range a {
		if inB[p] {
			out = append(out, p)
		}
	}
	return out
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
