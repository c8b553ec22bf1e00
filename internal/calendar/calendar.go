// Package calendar turns event bounds into an ordered sequence of equal-length
// slots. A trailing remainder shorter than one slot is dropped.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/rueda/internal/domain"
)

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"
)

// Generate returns the slots between start and end, each slotMinutes long.
func Generate(start, end time.Time, slotMinutes int) ([]domain.Slot, error) {
	if slotMinutes <= 0 {
		return nil, domain.NewConfigurationError("calendar.slot_minutes", "must be positive, got %d", slotMinutes)
	}
	if !end.After(start) {
		return nil, domain.NewConfigurationError("calendar.end", "%s must be after start %s",
			end.Format(clockLayout), start.Format(clockLayout))
	}

	dur := time.Duration(slotMinutes) * time.Minute
	count := int(end.Sub(start) / dur)
	if count == 0 {
		return nil, domain.NewConfigurationError("calendar.slot_minutes",
			"%d minute slots do not fit between %s and %s", slotMinutes,
			start.Format(clockLayout), end.Format(clockLayout))
	}

	slots := make([]domain.Slot, count)
	cur := start
	for i := range slots {
		next := cur.Add(dur)
		slots[i] = domain.Slot{Index: i, Start: cur, End: next}
		cur = next
	}
	return slots, nil
}

// ParseBounds combines an optional YYYY-MM-DD date with HH:MM start and end
// clocks. Full RFC3339 timestamps are accepted for start and end as well.
func ParseBounds(date, start, end string, loc *time.Location) (time.Time, time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	var day time.Time
	if strings.TrimSpace(date) != "" {
		d, err := time.ParseInLocation(dateLayout, strings.TrimSpace(date), loc)
		if err != nil {
			return time.Time{}, time.Time{}, domain.NewConfigurationError("calendar.date",
				"invalid date %q (expected YYYY-MM-DD)", date)
		}
		day = d
	}

	s, err := parseClock(day, start, loc)
	if err != nil {
		return time.Time{}, time.Time{}, domain.NewConfigurationError("calendar.start", "%v", err)
	}
	e, err := parseClock(day, end, loc)
	if err != nil {
		return time.Time{}, time.Time{}, domain.NewConfigurationError("calendar.end", "%v", err)
	}
	return s, e, nil
}

func parseClock(day time.Time, value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("is required")
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	c, err := time.ParseInLocation(clockLayout, value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q (expected HH:MM or RFC3339)", value)
	}
	if day.IsZero() {
		return c, nil
	}
	return time.Date(day.Year(), day.Month(), day.Day(), c.Hour(), c.Minute(), 0, 0, loc), nil
}

// Labels returns the "HH:MM - HH:MM" label of every slot.
func Labels(slots []domain.Slot) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.Label()
	}
	return out
}

// Window maps an HH:MM clock range onto slot indices: the first slot starting
// at or after from and the last slot ending at or before to. An empty from
// starts at slot 0 and an empty to returns -1 (open-ended).
func Window(slots []domain.Slot, from, to string) (int, int, error) {
	first, last := 0, -1
	if strings.TrimSpace(from) != "" {
		m, err := clockMinutes(from)
		if err != nil {
			return 0, 0, err
		}
		first = -1
		for _, s := range slots {
			if minuteOfDay(s.Start) >= m {
				first = s.Index
				break
			}
		}
		if first < 0 {
			return 0, 0, fmt.Errorf("no slot starts at or after %s", from)
		}
	}
	if strings.TrimSpace(to) != "" {
		m, err := clockMinutes(to)
		if err != nil {
			return 0, 0, err
		}
		for _, s := range slots {
			if minuteOfDay(s.End) <= m && minuteOfDay(s.End) > minuteOfDay(s.Start) {
				last = s.Index
			}
		}
		if last < 0 {
			return 0, 0, fmt.Errorf("no slot ends at or before %s", to)
		}
	}
	return first, last, nil
}

func clockMinutes(value string) (int, error) {
	c, err := time.Parse(clockLayout, strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("invalid time %q (expected HH:MM)", value)
	}
	return c.Hour()*60 + c.Minute(), nil
}

func minuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}
