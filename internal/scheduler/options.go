package scheduler

import (
	"errors"
	"fmt"
	"sort"

	"github.com/alexanderramin/rueda/internal/domain"
	"github.com/rs/zerolog"
)

// Target asks for Count meetings of Size providers in a slot.
type Target struct {
	Size  int `json:"size" yaml:"size"`
	Count int `json:"count" yaml:"count"`
}

// RangeTargets overrides the default targets for slots [From, To].
type RangeTargets struct {
	From    int      `json:"from_slot" yaml:"from_slot"`
	To      int      `json:"to_slot" yaml:"to_slot"`
	Targets []Target `json:"targets" yaml:"targets"`
}

// GroupPolicy is the per-slot target distribution of meeting sizes.
type GroupPolicy struct {
	Targets []Target
	Ranges  []RangeTargets
}

// TargetsFor returns the targets that apply to slot. The first matching range
// wins.
func (g GroupPolicy) TargetsFor(slot int) []Target {
	for _, r := range g.Ranges {
		if slot >= r.From && slot <= r.To {
			return r.Targets
		}
	}
	return g.Targets
}

// Options tune one scheduling run.
type Options struct {
	// CoverageSlots is K, the number of leading slots Phase A uses.
	CoverageSlots int
	MaxGroupSize  int
	Groups        GroupPolicy
	// Seed drives every randomized ordering.
	Seed int64
	// Shuffle randomizes requester and provider tie-breaks with the seeded
	// generator. Without it ties follow roster order.
	Shuffle bool
	// FillRemaining adds a final pass that books free requesters with their
	// least-booked unmet providers.
	FillRemaining bool
	Logger        *zerolog.Logger
}

// DefaultOptions mirrors the configuration defaults.
func DefaultOptions() Options {
	return Options{
		CoverageSlots: 2,
		MaxGroupSize:  3,
		Groups: GroupPolicy{Targets: []Target{
			{Size: 2, Count: 4},
			{Size: 3, Count: 6},
		}},
		Seed: 1,
	}
}

func (o Options) validate(slotCount int) []error {
	var errs []error
	if o.CoverageSlots < 0 {
		errs = append(errs, domain.NewConfigurationError("scheduler.coverage_slots",
			"must not be negative, got %d", o.CoverageSlots))
	}
	if o.MaxGroupSize <= 0 {
		errs = append(errs, domain.NewConfigurationError("groups.max_size",
			"must be positive, got %d", o.MaxGroupSize))
	}
	errs = append(errs, validateTargets("groups.targets", o.Groups.Targets)...)
	for i, r := range o.Groups.Ranges {
		field := fmt.Sprintf("groups.ranges[%d]", i)
		if r.From < 0 || r.To < r.From {
			errs = append(errs, domain.NewConfigurationError(field,
				"invalid slot range [%d,%d]", r.From, r.To))
		}
		if r.To >= slotCount {
			errs = append(errs, domain.NewConfigurationError(field,
				"to slot %d is outside the calendar (%d slots)", r.To, slotCount))
		}
		if len(r.Targets) == 0 {
			errs = append(errs, domain.NewConfigurationError(field, "targets are required"))
		}
		errs = append(errs, validateTargets(field+".targets", r.Targets)...)
	}
	return errs
}

func validateTargets(field string, targets []Target) []error {
	var errs []error
	for i, t := range targets {
		if t.Size <= 0 {
			errs = append(errs, domain.NewConfigurationError(fmt.Sprintf("%s[%d].size", field, i),
				"must be positive, got %d", t.Size))
		}
		if t.Count < 0 {
			errs = append(errs, domain.NewConfigurationError(fmt.Sprintf("%s[%d].count", field, i),
				"must not be negative, got %d", t.Count))
		}
	}
	return errs
}

// nextSize picks the first target size whose quota is not yet met in slot.
// Once every quota is met the first target's size is used again. Sizes never
// exceed the maximum group size.
func (s *Scheduler) nextSize(slot int) int {
	targets := s.opts.Groups.TargetsFor(slot)
	if len(targets) == 0 {
		return s.opts.MaxGroupSize
	}
	placed := make(map[int]int)
	for _, m := range s.schedule.Meetings(slot) {
		placed[min(m.Size(), s.opts.MaxGroupSize)]++
	}
	for _, t := range targets {
		size := min(t.Size, s.opts.MaxGroupSize)
		if placed[size] < t.Count {
			return size
		}
	}
	return min(targets[0].Size, s.opts.MaxGroupSize)
}

// quotaMet reports whether slot already holds as many meetings as its targets
// ask for in total. Slots without counted targets never fill up.
func (s *Scheduler) quotaMet(slot int) bool {
	total := 0
	for _, t := range s.opts.Groups.TargetsFor(slot) {
		total += t.Count
	}
	return total > 0 && len(s.schedule.Meetings(slot)) >= total
}

// splitSizes returns the distinct sizes Phase B may use, ascending.
func (s *Scheduler) splitSizes() []int {
	seen := make(map[int]bool)
	var sizes []int
	for _, t := range s.opts.Groups.Targets {
		size := min(t.Size, s.opts.MaxGroupSize)
		if !seen[size] {
			seen[size] = true
			sizes = append(sizes, size)
		}
	}
	if len(sizes) == 0 {
		sizes = append(sizes, s.opts.MaxGroupSize)
	}
	sort.Ints(sizes)
	return sizes
}

// split cuts providers into sub-groups. Each cut uses the smallest size that
// does not strand a remainder smaller than the smallest size; what cannot form
// a group is returned as leftovers.
func split(providers []string, sizes []int) (groups [][]string, leftovers []string) {
	smallest := sizes[0]
	rest := providers
	for len(rest) >= smallest {
		n := len(rest)
		size := smallest
		for _, candidate := range sizes {
			if candidate > n {
				break
			}
			if left := n - candidate; left == 0 || left >= smallest {
				size = candidate
				break
			}
		}
		groups = append(groups, rest[:size:size])
		rest = rest[size:]
	}
	return groups, rest
}

func joinConfigErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	return errors.Join(errs...)
}
