package domain

import "time"

// Run is one completed scheduling run as stored and reported. Stored runs are
// immutable.
type Run struct {
	ID                   string
	EventName            string
	Seed                 int64
	Fingerprint          string
	Slots                []Slot
	Schedule             *Schedule
	Shortfalls           []Shortfall
	PreferencesTotal     int
	PreferencesFulfilled int
	// ConfigYAML is the effective configuration the run was produced with.
	ConfigYAML string
	// MeetingCount is filled by listings, which do not load the schedule.
	MeetingCount int
	CreatedAt    time.Time
}

// DisplayID returns the first 8 characters of the run ID.
func (r *Run) DisplayID() string {
	if len(r.ID) >= 8 {
		return r.ID[:8]
	}
	return r.ID
}

// Meetings returns the meeting count, from the schedule when it is loaded.
func (r *Run) Meetings() int {
	if r.Schedule != nil {
		return r.Schedule.Len()
	}
	return r.MeetingCount
}
