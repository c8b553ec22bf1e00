package validator

import (
	"github.com/alexanderramin/rueda/internal/domain"
	"github.com/alexanderramin/rueda/internal/preference"
)

// Encounter is one requester/provider pairing inside a meeting.
type Encounter struct {
	Slot      int    `json:"slot"`
	Requester string `json:"requester"`
	Provider  string `json:"provider"`
}

// ProviderFulfillment counts how many of a provider's requests were met.
type ProviderFulfillment struct {
	Provider  string `json:"provider"`
	Requested int    `json:"requested"`
	Fulfilled int    `json:"fulfilled"`
}

// PreferenceAudit compares the encounters of a schedule with the preference
// list, independently of the fulfilled marks kept during scheduling.
type PreferenceAudit struct {
	Encounters  int                   `json:"encounters"`
	Requested   int                   `json:"requested"`
	Unrequested []Encounter           `json:"unrequested"`
	Missing     []preference.Pair     `json:"missing"`
	ByProvider  []ProviderFulfillment `json:"by_provider"`
}

// Rate is the share of preferences realized, 1 when there are none.
func (a PreferenceAudit) Rate() float64 {
	total := a.Requested + len(a.Missing)
	if total == 0 {
		return 1
	}
	return float64(a.Requested) / float64(total)
}

// AuditPreferences walks every encounter of the schedule.
func AuditPreferences(s *domain.Schedule, g *preference.Graph) PreferenceAudit {
	audit := PreferenceAudit{Unrequested: []Encounter{}, Missing: []preference.Pair{}}
	realized := make(map[preference.Pair]bool)

	for slot := 0; slot < s.SlotCount(); slot++ {
		for _, m := range s.Meetings(slot) {
			for _, p := range m.Providers {
				audit.Encounters++
				pair := preference.Pair{Provider: p, Requester: m.Requester}
				if g.Wants(p, m.Requester) {
					if !realized[pair] {
						audit.Requested++
					}
					realized[pair] = true
					continue
				}
				audit.Unrequested = append(audit.Unrequested, Encounter{Slot: slot, Requester: m.Requester, Provider: p})
			}
		}
	}

	index := make(map[string]int)
	for _, pair := range g.Pairs() {
		i, ok := index[pair.Provider]
		if !ok {
			i = len(audit.ByProvider)
			index[pair.Provider] = i
			audit.ByProvider = append(audit.ByProvider, ProviderFulfillment{Provider: pair.Provider})
		}
		audit.ByProvider[i].Requested++
		if realized[pair] {
			audit.ByProvider[i].Fulfilled++
		} else {
			audit.Missing = append(audit.Missing, pair)
		}
	}
	return audit
}
