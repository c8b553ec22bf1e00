package scheduler

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/alexanderramin/rueda/internal/availability"
	"github.com/alexanderramin/rueda/internal/domain"
	"github.com/alexanderramin/rueda/internal/preference"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type trial struct {
	in   Input
	opts Options
}

func randomTrial(t *testing.T, rng *rand.Rand) trial {
	slotCount := rng.Intn(8) + 1
	requesters := make([]string, rng.Intn(8)+1)
	for i := range requesters {
		requesters[i] = fmt.Sprintf("r%02d", i)
	}
	providers := make([]string, rng.Intn(15)+1)
	for i := range providers {
		providers[i] = fmt.Sprintf("p%02d", i)
	}

	var rules []availability.Rule
	for _, p := range providers {
		if rng.Intn(4) == 0 {
			from := rng.Intn(slotCount)
			to := from + rng.Intn(slotCount-from)
			rules = append(rules, availability.Window(p, domain.RoleProvider, from, to))
		}
	}
	for _, r := range requesters {
		if rng.Intn(5) == 0 {
			rules = append(rules, availability.FromSlot(r, domain.RoleRequester, rng.Intn(slotCount)))
		}
	}
	var exclusions []availability.Exclusion
	for i := 0; i < rng.Intn(4); i++ {
		exclusions = append(exclusions, availability.Exclusion{
			Requester: requesters[rng.Intn(len(requesters))],
			Provider:  providers[rng.Intn(len(providers))],
		})
	}
	policy, err := availability.NewPolicy(slotCount, rules, exclusions)
	require.NoError(t, err)

	g := preference.New()
	for i := 0; i < rng.Intn(30); i++ {
		g.Add(providers[rng.Intn(len(providers))], requesters[rng.Intn(len(requesters))])
	}

	opts := DefaultOptions()
	opts.CoverageSlots = rng.Intn(3)
	opts.MaxGroupSize = rng.Intn(3) + 1
	opts.Seed = rng.Int63()
	opts.Shuffle = rng.Intn(2) == 1
	opts.FillRemaining = rng.Intn(2) == 1

	var pins []Pin
	if rng.Intn(3) == 0 {
		pins = append(pins, Pin{
			Requester: requesters[rng.Intn(len(requesters))],
			Provider:  providers[rng.Intn(len(providers))],
			Slot:      rng.Intn(slotCount),
		})
	}

	return trial{
		in: Input{
			Slots:                  testSlots(t, slotCount),
			Roster:                 domain.NewRoster(requesters, providers),
			Policy:                 policy,
			Preferences:            g,
			MaxMeetingsPerProvider: rng.Intn(4) + 1,
			MaxMeetingsPerSlot:     rng.Intn(3),
			Pins:                   pins,
		},
		opts: opts,
	}
}

// TestRun_Invariants property-tests the hard constraints over seeded random
// events.
func TestRun_Invariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for n := 0; n < 300; n++ {
		tr := randomTrial(t, rng)
		res := mustRun(t, tr.in, tr.opts)
		sched := res.Schedule

		met := make(map[[2]string]int)
		perProvider := make(map[string]int)
		for slot := 0; slot < sched.SlotCount(); slot++ {
			ms := sched.Meetings(slot)
			if tr.in.MaxMeetingsPerSlot > 0 {
				assert.LessOrEqual(t, len(ms), tr.in.MaxMeetingsPerSlot, "trial %d slot %d: per-slot cap", n, slot)
			}
			requesters := make(map[string]bool)
			providers := make(map[string]bool)
			for _, m := range ms {
				assert.False(t, requesters[m.Requester], "trial %d slot %d: requester %s double-booked", n, slot, m.Requester)
				requesters[m.Requester] = true
				assert.True(t, tr.in.Policy.IsEligible(m.Requester, domain.RoleRequester, slot),
					"trial %d slot %d: requester %s not available", n, slot, m.Requester)

				assert.GreaterOrEqual(t, m.Size(), 1, "trial %d: empty meeting", n)
				assert.LessOrEqual(t, m.Size(), tr.opts.MaxGroupSize, "trial %d: oversized meeting", n)
				for _, p := range m.Providers {
					assert.False(t, providers[p], "trial %d slot %d: provider %s double-booked", n, slot, p)
					providers[p] = true
					assert.True(t, tr.in.Policy.IsEligible(p, domain.RoleProvider, slot),
						"trial %d slot %d: provider %s not available", n, slot, p)
					assert.False(t, tr.in.Policy.IsExcludedPair(m.Requester, p),
						"trial %d: excluded pair %s/%s", n, m.Requester, p)
					met[[2]string{m.Requester, p}]++
					perProvider[p]++
				}
			}
		}

		for pair, count := range met {
			assert.Equal(t, 1, count, "trial %d: pair %v met %d times", n, pair, count)
			assert.True(t, res.Ledger.HasMet(pair[0], pair[1]))
		}
		assert.Equal(t, len(met), res.Ledger.Len(), "trial %d: ledger matches schedule", n)
		for p, count := range perProvider {
			assert.LessOrEqual(t, count, tr.in.MaxMeetingsPerProvider, "trial %d: provider %s over capacity", n, p)
			assert.Equal(t, count, res.Capacity.Committed(p), "trial %d: capacity tracker drifted for %s", n, p)
		}

		for _, pair := range res.Preferences.Pairs() {
			_, together := met[[2]string{pair.Requester, pair.Provider}]
			assert.Equal(t, together, res.Preferences.IsFulfilled(pair.Provider, pair.Requester),
				"trial %d: fulfilled mark for %s", n, pair)
		}
		assert.Len(t, shortfallsOf(res, domain.ShortfallUnfulfilled),
			res.Preferences.Total()-res.Preferences.Fulfilled(), "trial %d", n)
	}
}

// TestRun_SameSeedSameSchedule verifies reproducibility with shuffling on.
func TestRun_SameSeedSameSchedule(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for n := 0; n < 50; n++ {
		tr := randomTrial(t, rng)
		tr.opts.Shuffle = true

		// Fresh graphs so fulfilled marks from the first run do not leak.
		first := mustRun(t, withFreshPrefs(tr.in), tr.opts)
		second := mustRun(t, withFreshPrefs(tr.in), tr.opts)
		assert.Equal(t, first.Schedule.Fingerprint(), second.Schedule.Fingerprint(), "trial %d", n)
		assert.Equal(t, first.Shortfalls, second.Shortfalls, "trial %d", n)
	}
}

func withFreshPrefs(in Input) Input {
	in.Preferences = preference.FromPairs(in.Preferences.Pairs())
	return in
}
