package incident

import (
	"testing"

	"github.com/hexclash/engine/internal/content"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounterTriggersEveryThirdAdvance(t *testing.T) {
	c := NewCounter()
	assert.False(t, c.AdvanceResearched())
	assert.False(t, c.AdvanceResearched())
	assert.True(t, c.AdvanceResearched(), "the third advance researched triggers the incident")
	assert.Equal(t, AdvancesPerIncident, c.Remaining, "counter resets after triggering")
}

func TestDeckDrawsInOrderAndDiscards(t *testing.T) {
	d := NewDeck([]string{"a", "b"})
	id, ok := d.Draw()
	require.True(t, ok)
	assert.Equal(t, "a", id)
	assert.Equal(t, []string{"a"}, d.Discard)

	d.Draw()
	_, ok = d.Draw()
	assert.False(t, ok, "deck is empty after both ids are drawn")
}

func TestProtectionAdvanceExemptsOnlyItsHolder(t *testing.T) {
	inc := content.Incident{ID: "i1", BaseEffect: content.IncidentEffectPiratesRaid, ProtectionAdvance: "city-walls"}

	hasAdvance := func(player int, name string) bool { return player == 1 && name == "city-walls" }
	assert.True(t, PlayerProtected(inc, 1, hasAdvance), "the holder is exempt from per-player effects")
	assert.False(t, PlayerProtected(inc, 0, hasAdvance), "other players are not exempt")

	noProtection := content.Incident{ID: "i2", BaseEffect: content.IncidentEffectBarbariansSpawn}
	assert.False(t, PlayerProtected(noProtection, 1, hasAdvance))
}
