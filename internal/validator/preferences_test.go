package validator

import (
	"testing"

	"github.com/alexanderramin/rueda/internal/domain"
	"github.com/alexanderramin/rueda/internal/preference"
	"github.com/stretchr/testify/assert"
)

func TestAuditPreferences(t *testing.T) {
	g := preference.FromPairs([]preference.Pair{
		{Provider: "P1", Requester: "R1"},
		{Provider: "P2", Requester: "R1"},
		{Provider: "P1", Requester: "R2"},
	})
	s := domain.NewSchedule(2)
	s.Add(0, "R1", []string{"P1", "P3"}, domain.PhaseCoverage)
	s.Add(1, "R2", []string{"P1"}, domain.PhasePreference)

	a := AuditPreferences(s, g)

	assert.Equal(t, 3, a.Encounters)
	assert.Equal(t, 2, a.Requested)
	assert.Equal(t, []Encounter{{Slot: 0, Requester: "R1", Provider: "P3"}}, a.Unrequested)
	assert.Equal(t, []preference.Pair{{Provider: "P2", Requester: "R1"}}, a.Missing)
	assert.Equal(t, []ProviderFulfillment{
		{Provider: "P1", Requested: 2, Fulfilled: 2},
		{Provider: "P2", Requested: 1, Fulfilled: 0},
	}, a.ByProvider)
	assert.InDelta(t, 2.0/3.0, a.Rate(), 1e-9)
}

func TestAuditPreferences_NoPreferences(t *testing.T) {
	s := domain.NewSchedule(1)
	s.Add(0, "R1", []string{"P1"}, domain.PhaseCoverage)

	a := AuditPreferences(s, preference.New())
	assert.Equal(t, 1.0, a.Rate())
	assert.Len(t, a.Unrequested, 1)
	assert.Empty(t, a.ByProvider)
}
