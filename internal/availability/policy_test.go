package availability

import (
	"errors"
	"testing"

	"github.com/alexanderramin/rueda/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_EveryoneEligible(t *testing.T) {
	p := Default()
	for slot := 0; slot < 5; slot++ {
		assert.True(t, p.IsEligible("R1", domain.RoleRequester, slot))
		assert.True(t, p.IsEligible("P1", domain.RoleProvider, slot))
	}
	assert.False(t, p.IsExcludedPair("R1", "P1"))
}

func TestPolicy_WindowRestrictsOnlyMatchingParticipant(t *testing.T) {
	p, err := NewPolicy(10, []Rule{Window("P1", domain.RoleProvider, 2, 4)}, nil)
	require.NoError(t, err)

	assert.False(t, p.IsEligible("P1", domain.RoleProvider, 1))
	assert.True(t, p.IsEligible("P1", domain.RoleProvider, 2))
	assert.True(t, p.IsEligible("P1", domain.RoleProvider, 4))
	assert.False(t, p.IsEligible("P1", domain.RoleProvider, 5))

	// Same id in the other role and other participants are unaffected.
	assert.True(t, p.IsEligible("P1", domain.RoleRequester, 0))
	assert.True(t, p.IsEligible("P2", domain.RoleProvider, 0))
}

func TestPolicy_RulesAreAdditive(t *testing.T) {
	p, err := NewPolicy(10, []Rule{
		FromSlot("R1", "", 3),
		UntilSlot("R1", domain.RoleRequester, 6),
		Blocked("R1", domain.RoleRequester, 5),
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, []int{3, 4, 6}, p.EligibleSlots("R1", domain.RoleRequester, 10))
	assert.Equal(t, []int{3, 4, 5, 6, 7, 8, 9}, p.EligibleSlots("R1", domain.RoleProvider, 10))
}

func TestPolicy_WildcardRule(t *testing.T) {
	p, err := NewPolicy(6, []Rule{{Role: domain.RoleProvider, From: 1, To: -1}}, nil)
	require.NoError(t, err)

	assert.False(t, p.IsEligible("anyone", domain.RoleProvider, 0))
	assert.True(t, p.IsEligible("anyone", domain.RoleProvider, 1))
	assert.True(t, p.IsEligible("anyone", domain.RoleRequester, 0))
}

func TestPolicy_Predicate(t *testing.T) {
	p := Default()
	p.AddPredicate(func(id string, role domain.Role, slot int) bool {
		return !(id == "P9" && slot%2 == 1)
	})
	assert.True(t, p.IsEligible("P9", domain.RoleProvider, 0))
	assert.False(t, p.IsEligible("P9", domain.RoleProvider, 1))
	assert.True(t, p.IsEligible("P8", domain.RoleProvider, 1))
}

func TestPolicy_Exclusions(t *testing.T) {
	p, err := NewPolicy(4, nil, []Exclusion{
		{Requester: "R2", Provider: "P1"},
		{Requester: "R1", Provider: "P2"},
	})
	require.NoError(t, err)

	assert.True(t, p.IsExcludedPair("R1", "P2"))
	assert.False(t, p.IsExcludedPair("R2", "P2"))
	assert.Equal(t, []Exclusion{{"R1", "P2"}, {"R2", "P1"}}, p.Exclusions())
}

func TestNewPolicy_ConfigurationErrors(t *testing.T) {
	tests := []struct {
		name  string
		rules []Rule
		excl  []Exclusion
		want  string
	}{
		{"inverted window", []Rule{Window("P1", domain.RoleProvider, 5, 2)}, nil, "is after to slot"},
		{"negative from", []Rule{{Participant: "P1", From: -1, To: 3}}, nil, "negative"},
		{"beyond calendar", []Rule{Window("P1", domain.RoleProvider, 1, 12)}, nil, "outside the calendar"},
		{"unknown role", []Rule{{Participant: "P1", Role: "judge", To: -1}}, nil, "unknown role"},
		{"disjoint windows", []Rule{
			Window("P1", domain.RoleProvider, 0, 2),
			Window("P1", domain.RoleProvider, 5, 7),
		}, nil, "without any eligible slot"},
		{"everything blocked", []Rule{Blocked("R1", domain.RoleRequester, 0, 1, 2, 3, 4, 5, 6, 7, 8, 9)}, nil, "without any eligible slot"},
		{"empty exclusion", nil, []Exclusion{{Requester: "R1"}}, "requester and provider are required"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewPolicy(10, tc.rules, tc.excl)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrConfiguration))
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestNewPolicy_CollectsAllProblems(t *testing.T) {
	_, err := NewPolicy(4, []Rule{
		Window("P1", domain.RoleProvider, 3, 1),
		Window("P2", domain.RoleProvider, 0, 9),
	}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rules[0]")
	assert.Contains(t, err.Error(), "rules[1]")
}
