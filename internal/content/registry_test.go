package content

import (
	"testing"

	"github.com/hexclash/engine/internal/events"
	"github.com/hexclash/engine/internal/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMutator struct {
	gained []resource.Pile
	lost   []resource.Pile
}

func (f *fakeMutator) GainResources(playerIndex int, pile resource.Pile) {
	f.gained = append(f.gained, pile)
}

func (f *fakeMutator) LoseResources(playerIndex int, pile resource.Pile) {
	f.lost = append(f.lost, pile)
}

func TestRegistryBuildAndLookup(t *testing.T) {
	reg := NewRegistryBuilder().
		AddAdvance(Advance{
			ID:   "storage",
			Name: "Storage",
			Cost: resource.NewPaymentOptions(resource.Pile{Food: 2}),
			OnResearch: FuncEffect(func(m Mutator, player int) {
				m.GainResources(player, resource.Pile{Food: 1})
			}),
		}).
		AddWonder(Wonder{ID: "pyramids", Name: "Pyramids"}).
		AddIncident(Incident{
			ID:                "barbarians-1",
			Name:              "Barbarian Raid",
			BaseEffect:        IncidentEffectBarbariansSpawn,
			ProtectionAdvance: "city-walls",
		}).
		Build()

	adv, ok := reg.Advance("storage")
	require.True(t, ok)
	assert.Equal(t, "Storage", adv.Name)
	assert.False(t, adv.Disabled)

	mut := &fakeMutator{}
	adv.OnResearch.Apply(mut, 0)
	assert.Equal(t, []resource.Pile{{Food: 1}}, mut.gained)

	_, ok = reg.Advance("missing")
	assert.False(t, ok)

	inc, ok := reg.Incident("barbarians-1")
	require.True(t, ok)
	assert.Equal(t, "city-walls", inc.ProtectionAdvance)

	assert.Equal(t, "Storage", reg.DisplayName(events.NewOrigin(events.OriginAdvance, "storage")))
	assert.Equal(t, "unknown", reg.DisplayName(events.NewOrigin(events.OriginAdvance, "unknown")))
}

func TestRegistryDisabledEntryStillLookup(t *testing.T) {
	reg := NewRegistryBuilder().
		AddAdvance(Advance{ID: "broken", Name: "Broken Thing", Disabled: true}).
		Build()

	adv, ok := reg.Advance("broken")
	require.True(t, ok)
	assert.True(t, adv.Disabled)
}
