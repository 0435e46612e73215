// Package turnphase implements round/age progression, player rotation
// and the status phase. Grounded on the teacher's generation/phase
// advance loop in internal/domain/game.go, generalized from Terraforming
// Mars' generation counter to a round/age pair and an explicit
// status-phase sub-phase sequence.
package turnphase

// ActionsPerTurn is the actions_left budget refreshed at the start of
// every player's turn.
const ActionsPerTurn = 3

// MaxRound is the last round of an age before the status phase runs.
const MaxRound = 3

// MaxAge is the last age of the game.
const MaxAge = 6

// SubPhase names one step of the status phase, run in order for each
// player.
type SubPhase string

const (
	SubPhaseCompleteObjectives    SubPhase = "complete_objectives"
	SubPhaseFreeAdvance           SubPhase = "free_advance"
	SubPhaseDrawCards             SubPhase = "draw_cards"
	SubPhaseRazeSize1City         SubPhase = "raze_size1_city"
	SubPhaseChangeGovernmentType  SubPhase = "change_government_type"
	SubPhaseDetermineFirstPlayer  SubPhase = "determine_first_player"
)

// SubPhases is the fixed order status phase sub-phases run in.
var SubPhases = []SubPhase{
	SubPhaseCompleteObjectives,
	SubPhaseFreeAdvance,
	SubPhaseDrawCards,
	SubPhaseRazeSize1City,
	SubPhaseChangeGovernmentType,
	SubPhaseDetermineFirstPlayer,
}

// Controller tracks round/age/turn/status-phase progression for the
// active game.
type Controller struct {
	Round               int
	Age                 int
	StartingPlayerIndex int
	CurrentPlayerIndex  int
	PlayerCount         int
	Dropped             map[int]bool
	InStatusPhase       bool
	StatusSubPhaseIdx   int
	StatusPlayerIndex   int
}

// NewController starts a game at round 1, age 1, the starting player.
func NewController(playerCount, startingPlayer int) *Controller {
	return &Controller{
		Round:               1,
		Age:                 1,
		StartingPlayerIndex: startingPlayer,
		CurrentPlayerIndex:  startingPlayer,
		PlayerCount:         playerCount,
		Dropped:             map[int]bool{},
	}
}

// EndTurn advances to the next non-dropped player, rolling Round and
// entering the status phase as needed. Callers are responsible for
// clearing once-per-turn flags and refreshing actions_left.
func (c *Controller) EndTurn() {
	start := c.CurrentPlayerIndex
	for {
		c.CurrentPlayerIndex = (c.CurrentPlayerIndex + 1) % c.PlayerCount
		if !c.Dropped[c.CurrentPlayerIndex] {
			break
		}
		if c.CurrentPlayerIndex == start {
			break // every other player is dropped
		}
	}
	if c.CurrentPlayerIndex <= start {
		c.Round++
	}
	if c.Round > MaxRound {
		c.InStatusPhase = true
		c.StatusSubPhaseIdx = 0
		c.StatusPlayerIndex = 0
	}
}

// CurrentSubPhase returns the status phase sub-phase now running, only
// valid while InStatusPhase is true.
func (c *Controller) CurrentSubPhase() SubPhase {
	return SubPhases[c.StatusSubPhaseIdx]
}

// AdvanceStatusPhase moves to the next player within the current
// sub-phase, or the next sub-phase once every player has completed it.
// DetermineFirstPlayer only runs in the status phase following the
// final round of the game's final age. Returns true once the status
// phase is fully complete and a new age should begin.
func (c *Controller) AdvanceStatusPhase() (ageComplete bool) {
	if !c.InStatusPhase {
		return false
	}
	c.StatusPlayerIndex++
	for c.StatusPlayerIndex < c.PlayerCount && c.Dropped[c.StatusPlayerIndex] {
		c.StatusPlayerIndex++
	}
	if c.StatusPlayerIndex < c.PlayerCount {
		return false
	}
	c.StatusPlayerIndex = 0
	c.StatusSubPhaseIdx++
	if c.StatusSubPhaseIdx < len(SubPhases) &&
		SubPhases[c.StatusSubPhaseIdx] == SubPhaseDetermineFirstPlayer && c.Age != MaxAge {
		c.StatusSubPhaseIdx++ // only runs in the last age
	}
	if c.StatusSubPhaseIdx >= len(SubPhases) {
		c.InStatusPhase = false
		c.Round = 1
		c.Age++
		c.CurrentPlayerIndex = c.StartingPlayerIndex
		return true
	}
	return false
}

// IsGameOver reports whether the age counter has exceeded MaxAge.
func (c *Controller) IsGameOver() bool {
	return c.Age > MaxAge
}

// Clone deep-copies c, used by the game package's undo/redo snapshotting.
func (c *Controller) Clone() *Controller {
	cp := *c
	cp.Dropped = make(map[int]bool, len(c.Dropped))
	for k, v := range c.Dropped {
		cp.Dropped[k] = v
	}
	return &cp
}

// Drop marks playerIndex as dropped; EndTurn skips dropped players in
// rotation.
func (c *Controller) Drop(playerIndex int) {
	c.Dropped[playerIndex] = true
}
