package scheduler

import (
	"testing"
	"time"

	"github.com/alexanderramin/rueda/internal/calendar"
	"github.com/alexanderramin/rueda/internal/domain"
	"github.com/alexanderramin/rueda/internal/preference"
	"github.com/stretchr/testify/require"
)

var eventStart = time.Date(2025, 6, 12, 8, 30, 0, 0, time.UTC)

func testSlots(t testing.TB, n int) []domain.Slot {
	t.Helper()
	slots, err := calendar.Generate(eventStart, eventStart.Add(time.Duration(n)*15*time.Minute), 15)
	require.NoError(t, err)
	return slots
}

func names(prefix string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = prefix + string(rune('1'+i))
	}
	return out
}

func mustRun(t testing.TB, in Input, opts Options) *Result {
	t.Helper()
	s, err := New(in, opts)
	require.NoError(t, err)
	res, err := s.Run()
	require.NoError(t, err)
	return res
}

func prefs(pairs ...string) *preference.Graph {
	g := preference.New()
	for i := 0; i+1 < len(pairs); i += 2 {
		g.Add(pairs[i], pairs[i+1])
	}
	return g
}

func shortfallsOf(res *Result, kind domain.ShortfallKind) []domain.Shortfall {
	var out []domain.Shortfall
	for _, s := range res.Shortfalls {
		if s.Kind == kind {
			out = append(out, s)
		}
	}
	return out
}
