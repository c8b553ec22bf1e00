// Package availability decides which participants may meet in which slot.
//
// A Policy starts fully permissive. Every Rule restricts the slots of the
// participants it applies to and is never a relaxation: a participant is
// eligible in a slot only when all applicable rules allow it. Exclusions are
// a separate table of requester/provider pairs that may never share a meeting.
package availability

import (
	"errors"
	"fmt"
	"sort"

	"github.com/alexanderramin/rueda/internal/domain"
)

// Predicate is a custom eligibility restriction. It returns false to forbid
// the participant in the slot.
type Predicate func(id string, role domain.Role, slot int) bool

// Rule restricts the slots of matching participants.
// An empty Participant matches everyone; an empty Role matches both roles.
// From and To bound an inclusive slot window; To < 0 leaves it open-ended.
type Rule struct {
	Name        string
	Participant string
	Role        domain.Role
	From        int
	To          int
	Blocked     []int
}

// Window allows id only within slots [from, to].
func Window(id string, role domain.Role, from, to int) Rule {
	return Rule{Participant: id, Role: role, From: from, To: to}
}

// FromSlot allows id only from slot k onwards.
func FromSlot(id string, role domain.Role, k int) Rule {
	return Rule{Participant: id, Role: role, From: k, To: -1}
}

// UntilSlot allows id only up to and including slot k.
func UntilSlot(id string, role domain.Role, k int) Rule {
	return Rule{Participant: id, Role: role, From: 0, To: k}
}

// Blocked forbids id in the listed slots.
func Blocked(id string, role domain.Role, slots ...int) Rule {
	return Rule{Participant: id, Role: role, From: 0, To: -1, Blocked: slots}
}

// Applies reports whether the rule restricts the participant.
func (r Rule) Applies(id string, role domain.Role) bool {
	if r.Participant != "" && r.Participant != id {
		return false
	}
	return r.Role == "" || r.Role == role
}

// Allows reports whether the rule permits the slot.
func (r Rule) Allows(slot int) bool {
	if slot < r.From {
		return false
	}
	if r.To >= 0 && slot > r.To {
		return false
	}
	for _, b := range r.Blocked {
		if b == slot {
			return false
		}
	}
	return true
}

func (r Rule) label() string {
	if r.Name != "" {
		return r.Name
	}
	who := r.Participant
	if who == "" {
		who = "*"
	}
	if r.Role != "" {
		who = fmt.Sprintf("%s/%s", who, r.Role)
	}
	return who
}

// Exclusion forbids a requester and a provider from ever sharing a meeting.
type Exclusion struct {
	Requester string
	Provider  string
}

type pairKey struct{ requester, provider string }

// Policy is the eligibility oracle consumed by the scheduler. It is read-only
// once built.
type Policy struct {
	rules      []Rule
	predicates []Predicate
	excluded   map[pairKey]struct{}
}

// Default returns a policy under which everyone is always eligible and no pair
// is excluded.
func Default() *Policy {
	return &Policy{excluded: make(map[pairKey]struct{})}
}

// NewPolicy validates rules against a calendar of slotCount slots and builds
// a Policy. All problems are reported together.
func NewPolicy(slotCount int, rules []Rule, exclusions []Exclusion) (*Policy, error) {
	var errs []error
	for i, r := range rules {
		field := fmt.Sprintf("availability.rules[%d]", i)
		if r.Role != "" && r.Role != domain.RoleRequester && r.Role != domain.RoleProvider {
			errs = append(errs, domain.NewConfigurationError(field, "unknown role %q", r.Role))
		}
		if r.From < 0 {
			errs = append(errs, domain.NewConfigurationError(field, "from slot %d is negative", r.From))
		}
		if r.To >= 0 && r.From > r.To {
			errs = append(errs, domain.NewConfigurationError(field, "from slot %d is after to slot %d", r.From, r.To))
		}
		if slotCount > 0 {
			if r.From >= slotCount {
				errs = append(errs, domain.NewConfigurationError(field,
					"from slot %d is outside the calendar (%d slots)", r.From, slotCount))
			}
			if r.To >= slotCount {
				errs = append(errs, domain.NewConfigurationError(field,
					"to slot %d is outside the calendar (%d slots)", r.To, slotCount))
			}
		}
	}

	p := Default()
	p.rules = append(p.rules, rules...)

	for i, ex := range exclusions {
		if ex.Requester == "" || ex.Provider == "" {
			errs = append(errs, domain.NewConfigurationError(
				fmt.Sprintf("availability.exclusions[%d]", i), "requester and provider are required"))
			continue
		}
		p.excluded[pairKey{ex.Requester, ex.Provider}] = struct{}{}
	}

	if len(errs) == 0 && slotCount > 0 {
		errs = append(errs, p.contradictions(slotCount)...)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return p, nil
}

// contradictions finds participants whose combined rules leave no slot at all.
func (p *Policy) contradictions(slotCount int) []error {
	type subject struct {
		id   string
		role domain.Role
	}
	seen := make(map[subject]bool)
	var subjects []subject
	for _, r := range p.rules {
		roles := []domain.Role{r.Role}
		if r.Role == "" {
			roles = []domain.Role{domain.RoleRequester, domain.RoleProvider}
		}
		for _, role := range roles {
			s := subject{r.Participant, role}
			if !seen[s] {
				seen[s] = true
				subjects = append(subjects, s)
			}
		}
	}

	var errs []error
	for _, s := range subjects {
		if len(p.EligibleSlots(s.id, s.role, slotCount)) > 0 {
			continue
		}
		var names []string
		for _, r := range p.rules {
			if r.Applies(s.id, s.role) {
				names = append(names, r.label())
			}
		}
		sort.Strings(names)
		who := s.id
		if who == "" {
			who = "*"
		}
		errs = append(errs, domain.NewConfigurationError("availability.rules",
			"rules %v leave %s %q without any eligible slot", names, s.role, who))
	}
	return errs
}

// AddPredicate registers a custom restriction.
func (p *Policy) AddPredicate(fn Predicate) {
	p.predicates = append(p.predicates, fn)
}

// IsEligible reports whether id, acting as role, may meet in slot.
func (p *Policy) IsEligible(id string, role domain.Role, slot int) bool {
	for _, r := range p.rules {
		if r.Applies(id, role) && !r.Allows(slot) {
			return false
		}
	}
	for _, fn := range p.predicates {
		if !fn(id, role, slot) {
			return false
		}
	}
	return true
}

// IsExcludedPair reports whether the requester refuses the provider.
func (p *Policy) IsExcludedPair(requester, provider string) bool {
	_, ok := p.excluded[pairKey{requester, provider}]
	return ok
}

// EligibleSlots lists the slots in [0, slotCount) where id is eligible.
func (p *Policy) EligibleSlots(id string, role domain.Role, slotCount int) []int {
	var out []int
	for s := 0; s < slotCount; s++ {
		if p.IsEligible(id, role, s) {
			out = append(out, s)
		}
	}
	return out
}

// Rules returns a copy of the configured rules.
func (p *Policy) Rules() []Rule {
	return append([]Rule(nil), p.rules...)
}

// Exclusions returns the exclusion table sorted by requester then provider.
func (p *Policy) Exclusions() []Exclusion {
	out := make([]Exclusion, 0, len(p.excluded))
	for k := range p.excluded {
		out = append(out, Exclusion{Requester: k.requester, Provider: k.provider})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Requester != out[j].Requester {
			return out[i].Requester < out[j].Requester
		}
		return out[i].Provider < out[j].Provider
	})
	return out
}
