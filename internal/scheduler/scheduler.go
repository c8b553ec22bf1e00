// Package scheduler builds a conflict-free meeting plan from a preference
// graph and the event constraints.
//
// A run is a fixed sequence of additive passes: pinned meetings, the coverage
// pass over the first K slots, an emergency pass for requesters coverage could
// not place, preference completion over every slot and an optional fill pass.
// Every commit goes through the same feasibility check, so a committed meeting
// is never removed or shrunk.
package scheduler

import (
	"fmt"
	"math/rand"

	"github.com/alexanderramin/rueda/internal/availability"
	"github.com/alexanderramin/rueda/internal/capacity"
	"github.com/alexanderramin/rueda/internal/domain"
	"github.com/alexanderramin/rueda/internal/ledger"
	"github.com/alexanderramin/rueda/internal/preference"
	"github.com/rs/zerolog"
)

// Pin forces a requester/provider pair into a given slot.
type Pin struct {
	Requester string `json:"requester" yaml:"requester"`
	Provider  string `json:"provider" yaml:"provider"`
	Slot      int    `json:"slot" yaml:"slot"`
}

// Input is everything a run consumes. Roster may be nil, in which case the
// participants are derived from the preferences.
type Input struct {
	Slots                  []domain.Slot
	Roster                 *domain.Roster
	Policy                 *availability.Policy
	Preferences            *preference.Graph
	MaxMeetingsPerProvider int
	CapacityOverrides      map[string]int
	MaxMeetingsPerSlot     int
	Pins                   []Pin
}

// Result is the outcome of a run. Its state must be treated as read-only.
type Result struct {
	Slots       []domain.Slot
	Roster      *domain.Roster
	Schedule    *domain.Schedule
	Ledger      *ledger.EncounterLedger
	Capacity    *capacity.Tracker
	Preferences *preference.Graph
	Shortfalls  []domain.Shortfall
	Stats       Stats
	Seed        int64
}

// Scheduler owns the mutable state of exactly one run.
type Scheduler struct {
	opts     Options
	log      zerolog.Logger
	slots    []domain.Slot
	roster   *domain.Roster
	policy   *availability.Policy
	prefs    *preference.Graph
	pins     []Pin
	schedule *domain.Schedule
	ledger   *ledger.EncounterLedger
	capacity *capacity.Tracker
	rng      *rand.Rand

	unknown   []domain.Shortfall
	rejected  []domain.Shortfall
	committed map[domain.Phase]int
	result    *Result
}

// New validates the configuration and prepares a run. Configuration problems
// are returned together and nothing is scheduled.
func New(in Input, opts Options) (*Scheduler, error) {
	var errs []error
	if len(in.Slots) == 0 {
		errs = append(errs, domain.NewConfigurationError("calendar", "no slots to schedule"))
	}
	errs = append(errs, opts.validate(len(in.Slots))...)
	for i, p := range in.Pins {
		if p.Slot < 0 || p.Slot >= len(in.Slots) {
			errs = append(errs, domain.NewConfigurationError(fmt.Sprintf("pinned[%d].slot", i),
				"slot %d is outside the calendar (%d slots)", p.Slot, len(in.Slots)))
		}
	}

	prefs := in.Preferences
	if prefs == nil {
		prefs = preference.New()
	}
	roster := in.Roster
	if roster == nil {
		requesters, providers := prefs.Participants()
		roster = domain.NewRoster(requesters, providers)
	}
	policy := in.Policy
	if policy == nil {
		policy = availability.Default()
	}

	schedule := domain.NewSchedule(len(in.Slots))
	tracker, err := capacity.New(schedule, in.MaxMeetingsPerProvider,
		capacity.WithOverrides(in.CapacityOverrides),
		capacity.WithMaxMeetingsPerSlot(in.MaxMeetingsPerSlot))
	if err != nil {
		errs = append(errs, err)
	}
	if err := joinConfigErrors(errs); err != nil {
		return nil, err
	}

	known, unknown := prefs.Restrict(roster)

	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = opts.Logger.With().Str("component", "scheduler").Logger()
	}

	return &Scheduler{
		opts:      opts,
		log:       logger,
		slots:     in.Slots,
		roster:    roster,
		policy:    policy,
		prefs:     known,
		pins:      in.Pins,
		schedule:  schedule,
		ledger:    ledger.New(),
		capacity:  tracker,
		rng:       rand.New(rand.NewSource(opts.Seed)),
		unknown:   unknown,
		committed: make(map[domain.Phase]int),
	}, nil
}

// Run executes every pass and returns the result. Calling Run again returns
// the same result. An error means an internal guard fired, which is a defect.
func (s *Scheduler) Run() (*Result, error) {
	if s.result != nil {
		return s.result, nil
	}

	passes := []struct {
		phase domain.Phase
		run   func() error
	}{
		{domain.PhasePinned, s.pinPass},
		{domain.PhaseCoverage, s.coveragePass},
		{domain.PhaseEmergency, s.emergencyPass},
		{domain.PhasePreference, s.completionPass},
	}
	if s.opts.FillRemaining {
		passes = append(passes, struct {
			phase domain.Phase
			run   func() error
		}{domain.PhaseFill, s.fillPass})
	}

	for _, p := range passes {
		if err := p.run(); err != nil {
			return nil, fmt.Errorf("%s pass: %w", p.phase, err)
		}
		s.log.Info().
			Str("phase", string(p.phase)).
			Int("meetings", s.committed[p.phase]).
			Int("fulfilled", s.prefs.Fulfilled()).
			Int("outstanding", s.prefs.Total()-s.prefs.Fulfilled()).
			Msg("pass complete")
	}

	s.result = &Result{
		Slots:       s.slots,
		Roster:      s.roster,
		Schedule:    s.schedule,
		Ledger:      s.ledger,
		Capacity:    s.capacity,
		Preferences: s.prefs,
		Shortfalls:  s.collectShortfalls(),
		Seed:        s.opts.Seed,
	}
	s.result.Stats = ComputeStats(s.schedule, s.roster, s.prefs)
	return s.result, nil
}

// Committed returns how many meetings each pass created.
func (s *Scheduler) Committed() map[domain.Phase]int {
	out := make(map[domain.Phase]int, len(s.committed))
	for k, v := range s.committed {
		out[k] = v
	}
	return out
}

// commit books a new meeting and updates the ledger, capacity and preference
// marks.
func (s *Scheduler) commit(slot int, requester string, providers []string, phase domain.Phase) error {
	for _, p := range providers {
		if err := s.capacity.Commit(p); err != nil {
			return err
		}
	}
	m := s.schedule.Add(slot, requester, providers, phase)
	for _, p := range providers {
		s.ledger.Record(requester, p)
		s.prefs.MarkFulfilled(p, requester)
	}
	s.committed[phase]++
	s.log.Debug().
		Int("slot", slot).
		Int("meeting", m.ID).
		Str("requester", requester).
		Strs("providers", providers).
		Str("phase", string(phase)).
		Msg("meeting committed")
	return nil
}

// grow adds one provider to an existing meeting.
func (s *Scheduler) grow(m *domain.Meeting, provider string, phase domain.Phase) error {
	if err := s.capacity.Commit(provider); err != nil {
		return err
	}
	s.schedule.Grow(m, provider)
	s.ledger.Record(m.Requester, provider)
	s.prefs.MarkFulfilled(provider, m.Requester)
	s.log.Debug().
		Int("slot", m.Slot).
		Int("meeting", m.ID).
		Str("requester", m.Requester).
		Str("provider", provider).
		Str("phase", string(phase)).
		Msg("meeting grown")
	return nil
}

// requesterOrder returns ids in roster order, shuffled when enabled.
func (s *Scheduler) requesterOrder(ids []string) []string {
	out := append([]string(nil), ids...)
	if s.opts.Shuffle {
		s.rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	}
	return out
}

func (s *Scheduler) hasMeeting(id string, role domain.Role) bool {
	return len(s.schedule.MeetingsFor(id, role)) > 0
}
