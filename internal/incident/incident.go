// Package incident implements the incident deck and the game-event
// counter that triggers it. Grounded on the teacher's milestone/award
// tracking (internal/domain/awards.go) for the "counter reaches a
// threshold, draw from a fixed deck" shape, generalized to a shuffled
// deck with base effects and a protection advance.
package incident

import "github.com/hexclash/engine/internal/content"

// AdvancesPerIncident is how many advances researched by any player
// trigger the next incident.
const AdvancesPerIncident = 3

// Counter tracks progress toward the next incident draw. It counts down
// from AdvancesPerIncident and wraps on reaching zero.
type Counter struct {
	Remaining int
}

// NewCounter starts a fresh counter.
func NewCounter() *Counter {
	return &Counter{Remaining: AdvancesPerIncident}
}

// AdvanceResearched ticks the counter down by one and reports whether an
// incident should now be drawn (resetting the counter if so).
func (c *Counter) AdvanceResearched() (triggered bool) {
	c.Remaining--
	if c.Remaining <= 0 {
		c.Remaining = AdvancesPerIncident
		return true
	}
	return false
}

// Clone deep-copies c, used by the game package's undo/redo snapshotting.
func (c *Counter) Clone() *Counter {
	cp := *c
	return &cp
}

// Deck is the shuffled draw pile of incidents, by id, plus a discard
// pile for ones already resolved.
type Deck struct {
	DrawPile []string
	Discard  []string
}

// NewDeck builds a deck from ids in the given (already shuffled) order.
func NewDeck(shuffledIDs []string) *Deck {
	return &Deck{DrawPile: append([]string{}, shuffledIDs...)}
}

// Draw removes and returns the top incident id, or false if the deck is
// empty.
func (d *Deck) Draw() (string, bool) {
	if len(d.DrawPile) == 0 {
		return "", false
	}
	id := d.DrawPile[0]
	d.DrawPile = d.DrawPile[1:]
	d.Discard = append(d.Discard, id)
	return id, true
}

// Clone deep-copies d, used by the game package's undo/redo snapshotting.
func (d *Deck) Clone() *Deck {
	return &Deck{
		DrawPile: append([]string{}, d.DrawPile...),
		Discard:  append([]string{}, d.Discard...),
	}
}

// HasAdvance reports whether playerIndex has researched advanceName —
// used to check whether a protection advance exempts a player from an
// incident's non-base effects.
type HasAdvance func(playerIndex int, advanceName string) bool

// PlayerProtected reports whether playerIndex holds inc's protection
// advance, exempting that player (and only that player) from the
// incident's per-player non-base effects. The base effect itself is
// never suppressed: a protection advance does not protect against base
// effects.
func PlayerProtected(inc content.Incident, playerIndex int, hasAdvance HasAdvance) bool {
	return inc.ProtectionAdvance != "" && hasAdvance(playerIndex, inc.ProtectionAdvance)
}
