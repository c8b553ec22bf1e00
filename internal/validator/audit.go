package validator

import (
	"fmt"

	"github.com/alexanderramin/rueda/internal/availability"
	"github.com/alexanderramin/rueda/internal/domain"
)

// Rule names used in violations.
const (
	RuleRepeatEncounter   = "repeat-encounter"
	RuleCapacity          = "capacity"
	RuleAvailability      = "availability"
	RuleExclusion         = "exclusion"
	RuleGroupSize         = "group-size"
	RuleDuplicateProvider = "duplicate-provider"
	RuleSlotCap           = "slot-cap"
)

// Violation is a constraint the schedule breaks.
type Violation struct {
	Rule      string `json:"rule"`
	Slot      int    `json:"slot"`
	Requester string `json:"requester,omitempty"`
	Provider  string `json:"provider,omitempty"`
	Detail    string `json:"detail"`
}

// Constraints are the limits a schedule is audited against. Zero limits are
// not checked.
type Constraints struct {
	Policy             *availability.Policy
	MaxGroupSize       int
	MaxMeetingsPerSlot int
	// Capacity returns the meeting cap of a provider.
	Capacity func(provider string) int
}

// Audit checks every invariant except double-booking, which Validate covers.
// Violations are listed in slot order.
func Audit(s *domain.Schedule, c Constraints) []Violation {
	var out []Violation
	met := make(map[[2]string]int)
	load := make(map[string]int)

	for slot := 0; slot < s.SlotCount(); slot++ {
		ms := s.Meetings(slot)
		if c.MaxMeetingsPerSlot > 0 && len(ms) > c.MaxMeetingsPerSlot {
			out = append(out, Violation{
				Rule:   RuleSlotCap,
				Slot:   slot,
				Detail: fmt.Sprintf("%d meetings, cap %d", len(ms), c.MaxMeetingsPerSlot),
			})
		}
		for _, m := range ms {
			if c.MaxGroupSize > 0 && m.Size() > c.MaxGroupSize {
				out = append(out, Violation{
					Rule:      RuleGroupSize,
					Slot:      slot,
					Requester: m.Requester,
					Detail:    fmt.Sprintf("%d providers, max %d", m.Size(), c.MaxGroupSize),
				})
			}
			if c.Policy != nil && !c.Policy.IsEligible(m.Requester, domain.RoleRequester, slot) {
				out = append(out, Violation{
					Rule: RuleAvailability, Slot: slot, Requester: m.Requester,
					Detail: "requester not available",
				})
			}

			seen := make(map[string]bool, m.Size())
			for _, p := range m.Providers {
				if seen[p] {
					out = append(out, Violation{
						Rule: RuleDuplicateProvider, Slot: slot, Requester: m.Requester, Provider: p,
						Detail: "provider listed twice in one meeting",
					})
					continue
				}
				seen[p] = true

				if c.Policy != nil {
					if !c.Policy.IsEligible(p, domain.RoleProvider, slot) {
						out = append(out, Violation{
							Rule: RuleAvailability, Slot: slot, Requester: m.Requester, Provider: p,
							Detail: "provider not available",
						})
					}
					if c.Policy.IsExcludedPair(m.Requester, p) {
						out = append(out, Violation{
							Rule: RuleExclusion, Slot: slot, Requester: m.Requester, Provider: p,
							Detail: "excluded pair",
						})
					}
				}

				key := [2]string{m.Requester, p}
				met[key]++
				if met[key] == 2 {
					out = append(out, Violation{
						Rule: RuleRepeatEncounter, Slot: slot, Requester: m.Requester, Provider: p,
						Detail: "pair already met earlier",
					})
				}

				load[p]++
				if c.Capacity != nil && load[p] == c.Capacity(p)+1 {
					out = append(out, Violation{
						Rule: RuleCapacity, Slot: slot, Provider: p,
						Detail: fmt.Sprintf("more than %d meetings", c.Capacity(p)),
					})
				}
			}
		}
	}
	return out
}
