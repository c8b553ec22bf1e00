package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLedger_RecordIsIdempotent(t *testing.T) {
	l := New()
	assert.False(t, l.HasMet("R1", "P1"))

	l.Record("R1", "P1")
	l.Record("R1", "P1")
	l.Record("R1", "P2")

	assert.True(t, l.HasMet("R1", "P1"))
	assert.True(t, l.HasMet("R1", "P2"))
	assert.False(t, l.HasMet("R2", "P1"))
	assert.Equal(t, 2, l.Len())
	assert.Equal(t, 2, l.Count("R1"))
	assert.Equal(t, []string{"P1", "P2"}, l.Met("R1"))
}

func TestLedger_PairsAreDirectional(t *testing.T) {
	l := New()
	l.Record("A", "B")
	assert.False(t, l.HasMet("B", "A"))
	assert.Empty(t, l.Met("B"))
}
