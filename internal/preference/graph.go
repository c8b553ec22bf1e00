// Package preference holds the provider -> requester wish list consumed by the
// scheduler. Pairs keep their first-appearance order and duplicates collapse.
package preference

import (
	"fmt"

	"github.com/alexanderramin/rueda/internal/domain"
)

// Pair is one provider wanting to meet one requester.
type Pair struct {
	Provider  string
	Requester string
}

// Graph is read-only to the scheduler apart from fulfilled marks.
type Graph struct {
	pairs     []Pair
	index     map[Pair]int
	fulfilled map[Pair]bool
	byReq     map[string][]string
	byProv    map[string][]string
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{
		index:     make(map[Pair]int),
		fulfilled: make(map[Pair]bool),
		byReq:     make(map[string][]string),
		byProv:    make(map[string][]string),
	}
}

// FromPairs builds a graph from pairs in order.
func FromPairs(pairs []Pair) *Graph {
	g := New()
	for _, p := range pairs {
		g.Add(p.Provider, p.Requester)
	}
	return g
}

// Add records that provider wants requester. It returns false for duplicates
// and empty identifiers.
func (g *Graph) Add(provider, requester string) bool {
	if provider == "" || requester == "" {
		return false
	}
	p := Pair{Provider: provider, Requester: requester}
	if _, ok := g.index[p]; ok {
		return false
	}
	g.index[p] = len(g.pairs)
	g.pairs = append(g.pairs, p)
	g.byReq[requester] = append(g.byReq[requester], provider)
	g.byProv[provider] = append(g.byProv[provider], requester)
	return true
}

// Wants reports whether provider asked for requester.
func (g *Graph) Wants(provider, requester string) bool {
	_, ok := g.index[Pair{provider, requester}]
	return ok
}

// MarkFulfilled flags the pair as realized. Unknown pairs are ignored and
// reported with false.
func (g *Graph) MarkFulfilled(provider, requester string) bool {
	p := Pair{provider, requester}
	if _, ok := g.index[p]; !ok {
		return false
	}
	g.fulfilled[p] = true
	return true
}

// IsFulfilled reports whether the pair has been realized.
func (g *Graph) IsFulfilled(provider, requester string) bool {
	return g.fulfilled[Pair{provider, requester}]
}

// IsOutstanding reports whether provider wants requester and the pair is not
// yet fulfilled.
func (g *Graph) IsOutstanding(provider, requester string) bool {
	return g.Wants(provider, requester) && !g.IsFulfilled(provider, requester)
}

// Pairs returns every pair in first-appearance order.
func (g *Graph) Pairs() []Pair {
	return append([]Pair(nil), g.pairs...)
}

// Outstanding returns the unfulfilled pairs in first-appearance order.
func (g *Graph) Outstanding() []Pair {
	var out []Pair
	for _, p := range g.pairs {
		if !g.fulfilled[p] {
			out = append(out, p)
		}
	}
	return out
}

// OutstandingFor returns the providers that still want requester.
func (g *Graph) OutstandingFor(requester string) []string {
	var out []string
	for _, prov := range g.byReq[requester] {
		if !g.fulfilled[Pair{prov, requester}] {
			out = append(out, prov)
		}
	}
	return out
}

// Requested returns the requesters a provider asked for, in order.
func (g *Graph) Requested(provider string) []string {
	return append([]string(nil), g.byProv[provider]...)
}

// WantedBy returns the providers that asked for requester, in order.
func (g *Graph) WantedBy(requester string) []string {
	return append([]string(nil), g.byReq[requester]...)
}

// Total is the number of distinct pairs.
func (g *Graph) Total() int { return len(g.pairs) }

// Fulfilled is the number of realized pairs.
func (g *Graph) Fulfilled() int { return len(g.fulfilled) }

// Participants lists requesters and providers in first-appearance order.
func (g *Graph) Participants() (requesters, providers []string) {
	seenReq := make(map[string]bool)
	seenProv := make(map[string]bool)
	for _, p := range g.pairs {
		if !seenProv[p.Provider] {
			seenProv[p.Provider] = true
			providers = append(providers, p.Provider)
		}
		if !seenReq[p.Requester] {
			seenReq[p.Requester] = true
			requesters = append(requesters, p.Requester)
		}
	}
	return requesters, providers
}

// Restrict returns a graph holding only pairs whose participants are both in
// the roster. Every unknown identifier is reported once.
func (g *Graph) Restrict(roster *domain.Roster) (*Graph, []domain.Shortfall) {
	out := New()
	var shortfalls []domain.Shortfall
	reported := make(map[domain.Participant]bool)
	report := func(id string, role domain.Role) {
		key := domain.Participant{ID: id, Role: role}
		if reported[key] {
			return
		}
		reported[key] = true
		shortfalls = append(shortfalls, domain.Shortfall{
			Kind:          domain.ShortfallUnknownParticipant,
			Role:          role,
			ParticipantID: id,
			Slot:          -1,
			Reason:        (&domain.UnknownParticipantError{ID: id, Role: role}).Error(),
		})
	}

	for _, p := range g.pairs {
		okProv := roster.Has(p.Provider, domain.RoleProvider)
		okReq := roster.Has(p.Requester, domain.RoleRequester)
		if !okProv {
			report(p.Provider, domain.RoleProvider)
		}
		if !okReq {
			report(p.Requester, domain.RoleRequester)
		}
		if okProv && okReq {
			out.Add(p.Provider, p.Requester)
			if g.fulfilled[p] {
				out.MarkFulfilled(p.Provider, p.Requester)
			}
		}
	}
	return out, shortfalls
}

func (p Pair) String() string {
	return fmt.Sprintf("%s -> %s", p.Provider, p.Requester)
}
