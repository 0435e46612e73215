package turnphase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEndTurnRotatesAndIncrementsRound(t *testing.T) {
	c := NewController(3, 0)
	c.EndTurn()
	assert.Equal(t, 1, c.CurrentPlayerIndex)
	assert.Equal(t, 1, c.Round)

	c.EndTurn()
	assert.Equal(t, 2, c.CurrentPlayerIndex)
	assert.Equal(t, 1, c.Round)

	c.EndTurn()
	assert.Equal(t, 0, c.CurrentPlayerIndex)
	assert.Equal(t, 2, c.Round, "rotation wrapped back to player 0")
}

func TestEndTurnSkipsDroppedPlayers(t *testing.T) {
	c := NewController(3, 0)
	c.Drop(1)
	c.EndTurn()
	assert.Equal(t, 2, c.CurrentPlayerIndex, "player 1 is dropped and skipped")
}

func TestRoundOverflowEntersStatusPhase(t *testing.T) {
	c := NewController(2, 0)
	for i := 0; i < MaxRound*2; i++ {
		c.EndTurn()
	}
	assert.True(t, c.InStatusPhase)
}

func TestStatusPhaseSkipsDetermineFirstPlayerExceptLastAge(t *testing.T) {
	c := NewController(1, 0)
	c.InStatusPhase = true
	c.Age = 1

	for c.InStatusPhase {
		done := c.AdvanceStatusPhase()
		if done {
			break
		}
	}
	require.Equal(t, 2, c.Age, "status phase completed and age advanced without ever landing on DetermineFirstPlayer")
}

func TestIsGameOverAfterFinalAge(t *testing.T) {
	c := NewController(2, 0)
	c.Age = MaxAge + 1
	assert.True(t, c.IsGameOver())
}
