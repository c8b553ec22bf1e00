package domain

import "time"

// Slot is one fixed-length scheduling unit. Index is zero-based.
type Slot struct {
	Index int
	Start time.Time
	End   time.Time
}

// Label renders the slot as "HH:MM - HH:MM".
func (s Slot) Label() string {
	return s.Start.Format("15:04") + " - " + s.End.Format("15:04")
}

// Duration returns the slot length.
func (s Slot) Duration() time.Duration {
	return s.End.Sub(s.Start)
}
