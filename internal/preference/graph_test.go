package preference

import (
	"testing"

	"github.com/alexanderramin/rueda/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraph_DuplicatesCollapse(t *testing.T) {
	g := New()
	assert.True(t, g.Add("P1", "R1"))
	assert.False(t, g.Add("P1", "R1"))
	assert.False(t, g.Add("", "R1"))
	assert.True(t, g.Add("P2", "R1"))

	assert.Equal(t, 2, g.Total())
	assert.Equal(t, []string{"P1", "P2"}, g.WantedBy("R1"))
	assert.Equal(t, []string{"R1"}, g.Requested("P1"))
}

func TestGraph_FulfilledMarks(t *testing.T) {
	g := FromPairs([]Pair{{"P1", "R1"}, {"P2", "R1"}, {"P1", "R2"}})

	assert.True(t, g.IsOutstanding("P1", "R1"))
	assert.True(t, g.MarkFulfilled("P1", "R1"))
	assert.False(t, g.MarkFulfilled("P9", "R1"), "unknown pair is not marked")

	assert.True(t, g.IsFulfilled("P1", "R1"))
	assert.False(t, g.IsOutstanding("P1", "R1"))
	assert.Equal(t, 1, g.Fulfilled())
	assert.Equal(t, []string{"P2"}, g.OutstandingFor("R1"))
	assert.Equal(t, []Pair{{"P2", "R1"}, {"P1", "R2"}}, g.Outstanding())
}

func TestGraph_Participants(t *testing.T) {
	g := FromPairs([]Pair{{"P2", "R3"}, {"P1", "R3"}, {"P2", "R1"}})
	req, prov := g.Participants()
	assert.Equal(t, []string{"R3", "R1"}, req)
	assert.Equal(t, []string{"P2", "P1"}, prov)
}

func TestGraph_RestrictReportsUnknownOnce(t *testing.T) {
	g := FromPairs([]Pair{{"P1", "R1"}, {"PX", "R1"}, {"PX", "R2"}, {"P1", "RX"}})
	roster := domain.NewRoster([]string{"R1", "R2"}, []string{"P1"})

	known, shortfalls := g.Restrict(roster)

	assert.Equal(t, []Pair{{"P1", "R1"}}, known.Pairs())
	require.Len(t, shortfalls, 2)
	assert.Equal(t, domain.ShortfallUnknownParticipant, shortfalls[0].Kind)
	assert.Equal(t, "PX", shortfalls[0].ParticipantID)
	assert.Equal(t, domain.RoleProvider, shortfalls[0].Role)
	assert.Equal(t, "RX", shortfalls[1].ParticipantID)
	assert.Equal(t, domain.RoleRequester, shortfalls[1].Role)
}
