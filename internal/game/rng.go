package game

import "math/rand"

// newRand builds the per-game deterministic source: the RNG advances
// deterministically from a seed, preserving replayability. Grounded on
// the teacher's use of math/rand for deck shuffling
// (internal/session/deck/deck_repository.go); generalized to a seeded
// *rand.Rand per game instead of the package-level generator so two
// games never share draw state.
func newRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// replayRand reconstructs the *rand.Rand a game held after drawCount
// draws from seed, by re-drawing and discarding that many values. This
// is how FromData restores exact RNG state from a Snapshot without
// serializing the generator's internal state directly. It only works
// because rollDie consumes exactly one Int63 per draw no matter what
// range the caller asked for.
func replayRand(seed int64, drawCount int) *rand.Rand {
	r := newRand(seed)
	for i := 0; i < drawCount; i++ {
		r.Int63()
	}
	return r
}

// rollDie draws a uniform value in [0, n) from the game's RNG, matching
// the combat.Roller shape so Battle can be driven directly off Game.
// Each call consumes exactly one Int63 regardless of n, which is what
// lets replayRand reconstruct the stream by draw count alone.
func (g *Game) rollDie(n int) int {
	if g.rng == nil {
		g.rng = newRand(g.Seed)
	}
	v := int(g.rng.Int63() % int64(n))
	g.diceDrawCount++
	return v
}

// NextDiceRoll draws and logs one 1..6 die roll outside of combat, used
// by the cultural-influence roll. It shares the same draw stream as
// combat dice, so replaying diceDrawCount draws from the seed reproduces
// both.
func (g *Game) NextDiceRoll() int {
	v := g.rollDie(6) + 1
	g.diceLog = append(g.diceLog, v)
	return v
}
