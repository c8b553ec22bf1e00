package scheduler

import (
	"testing"

	"github.com/alexanderramin/rueda/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name     string
		n        int
		sizes    []int
		want     []int
		leftover int
	}{
		{"single provider", 1, []int{2, 3}, nil, 1},
		{"exact pair", 2, []int{2, 3}, []int{2}, 0},
		{"three grows to triple", 3, []int{2, 3}, []int{3}, 0},
		{"four", 4, []int{2, 3}, []int{2, 2}, 0},
		{"five", 5, []int{2, 3}, []int{2, 3}, 0},
		{"seven", 7, []int{2, 3}, []int{2, 2, 3}, 0},
		{"only triples", 4, []int{3}, []int{3}, 1},
		{"singletons allowed", 2, []int{1, 3}, []int{1, 1}, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			groups, leftovers := split(names("P", tc.n), tc.sizes)
			var got []int
			total := 0
			for _, g := range groups {
				got = append(got, len(g))
				total += len(g)
			}
			assert.Equal(t, tc.want, got)
			assert.Len(t, leftovers, tc.leftover)
			assert.Equal(t, tc.n, total+len(leftovers), "every provider ends up somewhere")
		})
	}
}

func TestSplit_GroupsDoNotAlias(t *testing.T) {
	providers := names("P", 4)
	groups, _ := split(providers, []int{2})
	require.Len(t, groups, 2)
	groups[0] = append(groups[0], "EXTRA")
	assert.Equal(t, names("P", 4)[2], groups[1][0])
}

func TestNextSize(t *testing.T) {
	opts := DefaultOptions()
	opts.Groups = GroupPolicy{Targets: []Target{{Size: 2, Count: 1}, {Size: 3, Count: 1}}}
	s, err := New(Input{Slots: testSlots(t, 1), MaxMeetingsPerProvider: 5}, opts)
	require.NoError(t, err)

	assert.Equal(t, 2, s.nextSize(0))
	s.schedule.Add(0, "R1", []string{"P1", "P2"}, domain.PhaseCoverage)
	assert.Equal(t, 3, s.nextSize(0))
	s.schedule.Add(0, "R2", []string{"P3", "P4", "P5"}, domain.PhaseCoverage)
	assert.Equal(t, 2, s.nextSize(0), "falls back to the first target once quotas are met")
	assert.True(t, s.quotaMet(0))
}

func TestNextSize_CappedByMaxGroupSize(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxGroupSize = 2
	opts.Groups = GroupPolicy{Targets: []Target{{Size: 4, Count: 2}}}
	s, err := New(Input{Slots: testSlots(t, 1), MaxMeetingsPerProvider: 5}, opts)
	require.NoError(t, err)

	assert.Equal(t, 2, s.nextSize(0))
	assert.Equal(t, []int{2}, s.splitSizes())
}

func TestGroupPolicy_TargetsFor(t *testing.T) {
	g := GroupPolicy{
		Targets: []Target{{Size: 2, Count: 4}},
		Ranges: []RangeTargets{
			{From: 4, To: 7, Targets: []Target{{Size: 3, Count: 5}}},
			{From: 6, To: 9, Targets: []Target{{Size: 1, Count: 1}}},
		},
	}
	assert.Equal(t, 2, g.TargetsFor(0)[0].Size)
	assert.Equal(t, 3, g.TargetsFor(4)[0].Size)
	assert.Equal(t, 3, g.TargetsFor(6)[0].Size, "first matching range wins")
	assert.Equal(t, 1, g.TargetsFor(9)[0].Size)
}
