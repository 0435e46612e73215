package content

import "github.com/hexclash/engine/internal/resource"

// Mutator is the narrow surface a content effect is allowed to touch.
// The concrete catalog of advances/wonders a shipped game defines is
// left to collaborators; Mutator is the contract they implement so
// their content can still plug into NewGame via a Registry.
type Mutator interface {
	GainResources(playerIndex int, pile resource.Pile)
	LoseResources(playerIndex int, pile resource.Pile)
}

// Effect is applied once when its owning content item activates (an
// advance is researched, a wonder is built, a card is played).
type Effect interface {
	Apply(m Mutator, playerIndex int)
}

// FuncEffect adapts a plain function to Effect.
type FuncEffect func(m Mutator, playerIndex int)

func (f FuncEffect) Apply(m Mutator, playerIndex int) { f(m, playerIndex) }
