package testutil

import (
	"fmt"
	"time"

	"github.com/alexanderramin/rueda/internal/domain"
	"github.com/google/uuid"
)

// EventStart is the fixed start of fixture calendars.
var EventStart = time.Date(2025, 6, 12, 8, 30, 0, 0, time.UTC)

// NewTestSlots returns n contiguous 15 minute slots from EventStart.
func NewTestSlots(n int) []domain.Slot {
	slots := make([]domain.Slot, n)
	for i := range slots {
		start := EventStart.Add(time.Duration(i*15) * time.Minute)
		slots[i] = domain.Slot{Index: i, Start: start, End: start.Add(15 * time.Minute)}
	}
	return slots
}

// IDs returns prefix1..prefixN.
func IDs(prefix string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%s%d", prefix, i+1)
	}
	return out
}

type RunOption func(*domain.Run)

func WithCreatedAt(t time.Time) RunOption {
	return func(r *domain.Run) { r.CreatedAt = t }
}

func WithSeed(seed int64) RunOption {
	return func(r *domain.Run) { r.Seed = seed }
}

func WithShortfalls(list ...domain.Shortfall) RunOption {
	return func(r *domain.Run) { r.Shortfalls = list }
}

// WithMeeting appends a meeting to the run's schedule.
func WithMeeting(slot int, requester string, providers ...string) RunOption {
	return func(r *domain.Run) {
		r.Schedule.Add(slot, requester, providers, domain.PhaseCoverage)
	}
}

// NewTestRun builds a run over four slots with two meetings. Options are
// applied after the defaults; WithMeeting adds to the default meetings.
func NewTestRun(eventName string, opts ...RunOption) *domain.Run {
	slots := NewTestSlots(4)
	schedule := domain.NewSchedule(len(slots))
	schedule.Add(0, "B1", []string{"S1", "S2"}, domain.PhaseCoverage)
	schedule.Add(1, "B1", []string{"S3"}, domain.PhasePreference)

	r := &domain.Run{
		ID:                   uuid.New().String(),
		EventName:            eventName,
		Seed:                 1,
		Slots:                slots,
		Schedule:             schedule,
		PreferencesTotal:     4,
		PreferencesFulfilled: 3,
		CreatedAt:            time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.Fingerprint = r.Schedule.FingerprintHex()
	return r
}
