package resource

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPileAddSubtract(t *testing.T) {
	a := Pile{Food: 2, Gold: 3}
	b := Pile{Food: 1, Wood: 1}

	assert.Equal(t, Pile{Food: 3, Wood: 1, Gold: 3}, a.Add(b))
	assert.Equal(t, Pile{Food: 1, Gold: 3}, a.Subtract(b))
	// Subtract clamps at zero, never goes negative.
	assert.Equal(t, Pile{Wood: 1}, b.Subtract(a))
}

func TestPileCanAffordGoldSubstitution(t *testing.T) {
	payer := Pile{Gold: 2}
	cost := Pile{Food: 2}

	assert.True(t, payer.CanAfford(cost))
	assert.False(t, Pile{Gold: 1}.CanAfford(cost))
}

func TestPileCanAffordNeverSubstitutesTokens(t *testing.T) {
	payer := Pile{Gold: 5}
	cost := Pile{MoodTokens: 1}

	assert.False(t, payer.CanAfford(cost))
}

func TestPaymentOptionsFirstValidPayment(t *testing.T) {
	opts := NewPaymentOptions(Pile{Food: 1}).WithConversion(Conversion{
		From: Food, To: MoodTokens, Rate: 1, Limit: 1,
	})

	payment, ok := opts.FirstValidPayment(Pile{MoodTokens: 1})
	assert.True(t, ok)
	assert.Equal(t, Pile{MoodTokens: 1}, payment)

	_, ok = opts.FirstValidPayment(Pile{})
	assert.False(t, ok)
}

func TestPaymentOptionsIsFree(t *testing.T) {
	assert.True(t, NewPaymentOptions(Pile{}).IsFree())
	assert.False(t, NewPaymentOptions(Pile{Food: 1}).IsFree())
}
