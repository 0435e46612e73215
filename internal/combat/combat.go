package combat

import (
	"github.com/hexclash/engine/internal/events"
	"github.com/hexclash/engine/internal/gametypes"
	"github.com/hexclash/engine/internal/playerstate"
	"github.com/hexclash/engine/internal/resource"
)

// Phase names the current step of the round, in fixed resolution order.
// Exposed so callers/tests can assert where a suspended combat is
// waiting.
type Phase string

const (
	PhaseRoundStart      Phase = "round_start"
	PhaseRoll            Phase = "roll"
	PhaseCasualties      Phase = "casualties"
	PhaseOutcome         Phase = "outcome"
	PhaseRetreat         Phase = "retreat"
	PhaseEnd             Phase = "end"
)

// Battle is one multi-round combat in progress, nested inside a
// movement action. It is driven by Advance, which either completes a
// phase synchronously or returns an
// events.Request the caller must resolve via Resume before calling
// Advance again — the same suspend/resume shape as
// events.PersistentEvent, kept as a hand-written driver here because a
// round alternates between two distinct Sides rather than a single
// per-player queue.
type Battle struct {
	Attacker  *Side
	Defender  *Side
	CityTile  bool // true if this combat is fought on a city tile
	Round     int
	Phase     Phase
	Outcome   Outcome
	pendingSideIsAttacker bool
	pendingDefenderHits   int // defender's hits against the attacker, applied after the defender's own casualty selection resumes

	// tacticsAsked counts the sides already offered a tactics card this
	// round (0 none, 1 attacker done, 2 both); pendingTacticsAttacker
	// names the side the outstanding round-start request belongs to.
	tacticsAsked           int
	pendingTacticsAttacker bool

	// AttackerCasualties/DefenderCasualties accumulate the unit ids
	// removed from each side over the whole battle, so the caller can
	// kill the matching Unit once the battle concludes. Side.Fighters
	// only tracks who is still standing, not who has fallen.
	AttackerCasualties []uint32
	DefenderCasualties []uint32
}

// AttackerIsPendingSelector reports whether the attacker (rather than
// the defender) is the side the current PhaseCasualties request is
// waiting on, used by callers to address the SelectUnits request to the
// correct player.
func (b *Battle) AttackerIsPendingSelector() bool {
	return b.pendingSideIsAttacker
}

// TacticsPendingAttacker reports which side the outstanding round-start
// tactics-card request belongs to.
func (b *Battle) TacticsPendingAttacker() bool {
	return b.pendingTacticsAttacker
}

// NewBattle starts a battle between attacker and defender.
func NewBattle(attacker, defender *Side, cityTile bool) *Battle {
	return &Battle{Attacker: attacker, Defender: defender, CityTile: cityTile, Round: 1, Phase: PhaseRoundStart}
}

// Advance drives the battle forward from its current phase, rolling
// with roll whenever dice are needed. It returns a non-nil Request when
// the battle must suspend for player input; the caller answers it and
// calls Resume.
func (b *Battle) Advance(roll Roller) events.Request {
	switch b.Phase {
	case PhaseRoundStart:
		if req := b.nextTacticsRequest(); req != nil {
			return req
		}
		b.Phase = PhaseRoll
		return b.Advance(roll)

	case PhaseRoll:
		aHits, dHits := ResolveRoll(b.Attacker, b.Defender, roll)
		b.pendingDefenderHits = dHits
		removed, needsSelection := AssignCasualties(b.Defender, aHits)
		if needsSelection {
			b.pendingSideIsAttacker = false
			b.Phase = PhaseCasualties
			return selectUnitsRequest(b.Defender, aHits)
		}
		b.DefenderCasualties = append(b.DefenderCasualties, removed...)
		return b.applyDefenderHits()

	case PhaseCasualties:
		return b.checkOutcome()

	case PhaseRetreat:
		b.Phase = PhaseEnd
		return events.BoolRequest{Prompt: "retreat?"}

	default:
		return nil
	}
}

// nextTacticsRequest offers each side, attacker first, the chance to
// play a tactics card at round start. A side denied tactics (Trojan
// Horse in round 1) is skipped outright.
func (b *Battle) nextTacticsRequest() events.Request {
	for b.tacticsAsked < 2 {
		isAttacker := b.tacticsAsked == 0
		side := b.Attacker
		if !isAttacker {
			side = b.Defender
		}
		if side.DeniedTactics && b.Round == 1 {
			b.tacticsAsked++
			continue
		}
		b.pendingTacticsAttacker = isAttacker
		return events.HandCardsRequest{Multi: events.MultiRequest[gametypes.HandCard]{MinCount: 0, MaxCount: 1}}
	}
	return nil
}

func selectUnitsRequest(s *Side, count int) events.Request {
	choices := make([]uint32, len(s.Fighters))
	for i, f := range s.Fighters {
		choices[i] = f.UnitID
	}
	return events.SelectUnitsRequest{Multi: events.MultiRequest[uint32]{Choices: choices, MinCount: count, MaxCount: count}}
}

// Resume supplies the response to the Request Advance last returned. It
// returns the next Request, or nil if the battle has concluded.
func (b *Battle) Resume(resp events.Response, roll Roller) events.Request {
	switch r := resp.(type) {
	case events.SelectHandCardsResponse:
		side := b.Attacker
		if !b.pendingTacticsAttacker {
			side = b.Defender
		}
		if len(r.Cards) > 0 {
			card := r.Cards[0]
			side.TacticsCard = &card
		}
		b.tacticsAsked++
		return b.Advance(roll)

	case events.SelectUnitsResponse:
		if b.pendingSideIsAttacker {
			b.Attacker.RemoveFighters(r.UnitIDs)
			b.AttackerCasualties = append(b.AttackerCasualties, r.UnitIDs...)
			return b.checkOutcome()
		}
		b.Defender.RemoveFighters(r.UnitIDs)
		b.DefenderCasualties = append(b.DefenderCasualties, r.UnitIDs...)
		return b.applyDefenderHits()

	case events.BoolResponse:
		if r.Value {
			b.Attacker.Retreated = true
			b.Outcome = OutcomeDraw
			b.Phase = PhaseEnd
			return nil
		}
		b.startNextRound()
		return b.Advance(roll)

	default:
		return nil
	}
}

// applyDefenderHits assigns the defender's roll against the attacker,
// run once the defender's own casualties (from the attacker's roll) are
// settled.
func (b *Battle) applyDefenderHits() events.Request {
	removed, needsSelection := AssignCasualties(b.Attacker, b.pendingDefenderHits)
	if needsSelection {
		b.pendingSideIsAttacker = true
		b.Phase = PhaseCasualties
		return selectUnitsRequest(b.Attacker, b.pendingDefenderHits)
	}
	b.AttackerCasualties = append(b.AttackerCasualties, removed...)
	return b.checkOutcome()
}

func (b *Battle) checkOutcome() events.Request {
	outcome := DetermineOutcome(b.Attacker, b.Defender)
	if outcome != OutcomeNone {
		b.Outcome = outcome
		b.Phase = PhaseEnd
		return nil
	}
	if len(b.Attacker.Fighters) > 0 && !b.Attacker.Retreated {
		b.Phase = PhaseRetreat
		return events.BoolRequest{Prompt: "retreat?"}
	}
	b.startNextRound()
	return b.Advance(nil)
}

// startNextRound resets the per-round state: a tactics card affects a
// single round, so both sides' cards and extra hits clear before the
// next round-start selection.
func (b *Battle) startNextRound() {
	b.Round++
	b.Phase = PhaseRoundStart
	b.tacticsAsked = 0
	b.Attacker.TacticsCard = nil
	b.Attacker.ExtraHits = 0
	b.Defender.TacticsCard = nil
	b.Defender.ExtraHits = 0
}

// CaptureCity transfers city to attacker on an AttackerWins outcome on a
// city tile. Buildings the new owner cannot accept are razed in
// exchange for gold.
func CaptureCity(city *playerstate.City, attacker, defender *playerstate.Player) {
	city.Owner = attacker.Index
	city.Mood = playerstate.MoodAngry
	gold := moodModifiedGold(city)
	attacker.Gain(resource.Pile{Gold: gold})

	for kind, owner := range city.Pieces.Buildings {
		if owner == attacker.Index {
			continue
		}
		if attacker.BuildBuilding(kind, city) {
			continue
		}
		defender.RazeBuilding(kind)
		city.Pieces = city.Pieces.WithoutBuilding(kind)
		attacker.Gain(resource.Pile{Gold: 1})
	}
}

func moodModifiedGold(city *playerstate.City) int {
	size := city.Size()
	switch city.Mood {
	case playerstate.MoodAngry:
		return size - 1
	default:
		return size
	}
}
