package game

import (
	"github.com/hexclash/engine/internal/action"
	"github.com/hexclash/engine/internal/events"
)

// AvailabilityCheck is the mutable payload of the playing-action
// availability transient event. The dispatcher's built-in preconditions
// run first; listeners then walk in descending-priority order and may
// veto the action by setting Reason. The first non-empty Reason wins
// (later listeners see it and leave it alone by convention).
type AvailabilityCheck struct {
	Kind        action.PlayingKind
	PlayerIndex int
	Reason      string
}

// OnPlayingActionAvailable registers a legality listener under origin at
// priority, symmetric with RemovePlayingActionAvailable. Content that
// restricts an action while active (a wonder, an incident's permanent
// effect) registers here when it activates for a player.
func (g *Game) OnPlayingActionAvailable(origin events.Origin, priority int, cb events.TransientCallback[AvailabilityCheck]) {
	g.availability.AddListener(origin, priority, cb)
}

// RemovePlayingActionAvailable tears down every legality listener
// registered under origin.
func (g *Game) RemovePlayingActionAvailable(origin events.Origin) {
	g.availability.RemoveListener(origin)
}

// checkPlayingActionAvailable runs the transient legality pass for one
// proposed playing action against a read-only view of the game,
// returning the veto reason or "".
func (g *Game) checkPlayingActionAvailable(kind action.PlayingKind, playerIndex int) string {
	check := AvailabilityCheck{Kind: kind, PlayerIndex: playerIndex}
	events.Trigger(g.availability, &check, g, events.TriggerPlain, nil)
	return check.Reason
}
