// Package ledger records which providers each requester has already met.
package ledger

import "sort"

// EncounterLedger is monotonic: pairs are recorded, never removed.
type EncounterLedger struct {
	met map[string]map[string]struct{}
	n   int
}

// New returns an empty ledger.
func New() *EncounterLedger {
	return &EncounterLedger{met: make(map[string]map[string]struct{})}
}

// HasMet reports whether the pair has already been recorded.
func (l *EncounterLedger) HasMet(requester, provider string) bool {
	_, ok := l.met[requester][provider]
	return ok
}

// Record adds the pair. Recording an existing pair is a no-op.
func (l *EncounterLedger) Record(requester, provider string) {
	set, ok := l.met[requester]
	if !ok {
		set = make(map[string]struct{})
		l.met[requester] = set
	}
	if _, dup := set[provider]; dup {
		return
	}
	set[provider] = struct{}{}
	l.n++
}

// Len is the number of distinct pairs recorded.
func (l *EncounterLedger) Len() int { return l.n }

// Met returns the providers a requester has met, sorted.
func (l *EncounterLedger) Met(requester string) []string {
	out := make([]string, 0, len(l.met[requester]))
	for p := range l.met[requester] {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Count is the number of providers a requester has met.
func (l *EncounterLedger) Count(requester string) int {
	return len(l.met[requester])
}
