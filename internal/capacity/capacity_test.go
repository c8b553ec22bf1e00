package capacity

import (
	"errors"
	"testing"

	"github.com/alexanderramin/rueda/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTracker_CommitUntilMax(t *testing.T) {
	tr, err := New(domain.NewSchedule(3), 2)
	require.NoError(t, err)

	assert.Equal(t, 2, tr.RemainingCapacity("P1"))
	require.NoError(t, tr.Commit("P1"))
	require.NoError(t, tr.Commit("P1"))
	assert.Equal(t, 0, tr.RemainingCapacity("P1"))

	err = tr.Commit("P1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrCapacityExceeded))
	var capErr *domain.CapacityExceededError
	require.ErrorAs(t, err, &capErr)
	assert.Equal(t, "P1", capErr.ProviderID)
	assert.Equal(t, 2, tr.Committed("P1"))
}

func TestTracker_Overrides(t *testing.T) {
	tr, err := New(domain.NewSchedule(3), 5, WithOverrides(map[string]int{"VIP": 1}))
	require.NoError(t, err)

	assert.Equal(t, 1, tr.Max("VIP"))
	assert.Equal(t, 5, tr.Max("P1"))
	require.NoError(t, tr.Commit("VIP"))
	assert.Error(t, tr.Commit("VIP"))
	assert.Equal(t, map[string]int{"VIP": 1}, tr.Loads())
}

func TestTracker_IsBusyInSlotScansSchedule(t *testing.T) {
	s := domain.NewSchedule(2)
	tr, err := New(s, 3)
	require.NoError(t, err)

	s.Add(0, "R1", []string{"P1", "P2"}, domain.PhaseCoverage)

	assert.True(t, tr.IsBusyInSlot("R1", 0))
	assert.True(t, tr.IsBusyInSlot("P2", 0))
	assert.False(t, tr.IsBusyInSlot("P3", 0))
	assert.False(t, tr.IsBusyInSlot("P1", 1))
	assert.False(t, tr.IsBusyInSlot("P1", 7))
}

func TestTracker_SlotFull(t *testing.T) {
	s := domain.NewSchedule(2)
	tr, err := New(s, 3, WithMaxMeetingsPerSlot(1))
	require.NoError(t, err)

	assert.False(t, tr.SlotFull(0))
	s.Add(0, "R1", []string{"P1"}, domain.PhaseCoverage)
	assert.True(t, tr.SlotFull(0))
	assert.False(t, tr.SlotFull(1))

	unlimited, err := New(s, 3)
	require.NoError(t, err)
	assert.False(t, unlimited.SlotFull(0))
}

func TestNew_RejectsNonPositiveCapacity(t *testing.T) {
	_, err := New(domain.NewSchedule(1), 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConfiguration))

	_, err = New(domain.NewSchedule(1), 3, WithOverrides(map[string]int{"P1": 0}), WithMaxMeetingsPerSlot(-1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "capacity.overrides.P1")
	assert.Contains(t, err.Error(), "max_meetings_per_slot")
}
