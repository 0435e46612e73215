package events

import (
	"github.com/hexclash/engine/internal/gametypes"
	"github.com/hexclash/engine/internal/hexmap"
	"github.com/hexclash/engine/internal/resource"
)

// --- Payment -----------------------------------------------------------

// PaymentRequest asks for one pile per entry in Options, in order; the
// matching response must carry the same number of piles.
type PaymentRequest struct {
	Options  []resource.PaymentOptions
	Optional []bool // per-entry: true if that pile may be left empty
}

func (PaymentRequest) Kind() RequestKind { return RequestPayment }

func (r PaymentRequest) Validate(resp Response) error {
	pr, ok := resp.(PaymentResponse)
	if !ok {
		return errPaymentShape
	}
	if len(pr.Piles) != len(r.Options) {
		return errPaymentShape
	}
	for i, opt := range r.Options {
		pile := pr.Piles[i]
		optional := i < len(r.Optional) && r.Optional[i]
		if optional && pile.IsEmpty() {
			continue
		}
		if !opt.Satisfies(pile) {
			return errPaymentInvalid
		}
	}
	return nil
}

// PaymentResponse replies to a PaymentRequest.
type PaymentResponse struct {
	Piles []resource.Pile
}

func (PaymentResponse) Kind() RequestKind { return RequestPayment }

// --- ResourceReward ------------------------------------------------------

// ResourceRewardRequest offers the player a reward drawn from Options.
type ResourceRewardRequest struct {
	Options resource.PaymentOptions
}

func (ResourceRewardRequest) Kind() RequestKind { return RequestResourceReward }

func (r ResourceRewardRequest) Validate(resp Response) error {
	rr, ok := resp.(ResourceRewardResponse)
	if !ok {
		return errPaymentShape
	}
	if !r.Options.Satisfies(rr.Pile) {
		return errPaymentInvalid
	}
	return nil
}

// ResourceRewardResponse replies to a ResourceRewardRequest.
type ResourceRewardResponse struct {
	Pile resource.Pile
}

func (ResourceRewardResponse) Kind() RequestKind { return RequestResourceReward }

// --- SelectAdvance -------------------------------------------------------

type SelectAdvanceRequest struct {
	Choices []string
}

func (SelectAdvanceRequest) Kind() RequestKind { return RequestSelectAdvance }

func (r SelectAdvanceRequest) Validate(resp Response) error {
	sa, ok := resp.(SelectAdvanceResponse)
	if !ok {
		return errNotAllowed
	}
	for _, c := range r.Choices {
		if c == sa.Name {
			return nil
		}
	}
	return errNotAllowed
}

type SelectAdvanceResponse struct{ Name string }

func (SelectAdvanceResponse) Kind() RequestKind { return RequestSelectAdvance }

// --- SelectPlayer --------------------------------------------------------

type SelectPlayerRequest struct {
	Choices []int
}

func (SelectPlayerRequest) Kind() RequestKind { return RequestSelectPlayer }

func (r SelectPlayerRequest) Validate(resp Response) error {
	sp, ok := resp.(SelectPlayerResponse)
	if !ok {
		return errNotAllowed
	}
	for _, c := range r.Choices {
		if c == sp.Index {
			return nil
		}
	}
	return errNotAllowed
}

type SelectPlayerResponse struct{ Index int }

func (SelectPlayerResponse) Kind() RequestKind { return RequestSelectPlayer }

// --- SelectPositions -------------------------------------------------------

type SelectPositionsRequest struct {
	Multi MultiRequest[hexmap.Position]
}

func (SelectPositionsRequest) Kind() RequestKind { return RequestSelectPositions }

func (r SelectPositionsRequest) Validate(resp Response) error {
	sp, ok := resp.(SelectPositionsResponse)
	if !ok {
		return errNotInChoices
	}
	if err := r.Multi.validateLen(len(sp.Positions)); err != nil {
		return err
	}
	return r.Multi.validateSubset(sp.Positions)
}

type SelectPositionsResponse struct{ Positions []hexmap.Position }

func (SelectPositionsResponse) Kind() RequestKind { return RequestSelectPositions }

// --- SelectUnitType --------------------------------------------------------

type SelectUnitTypeRequest struct {
	Choices []gametypes.UnitType
}

func (SelectUnitTypeRequest) Kind() RequestKind { return RequestSelectUnitType }

func (r SelectUnitTypeRequest) Validate(resp Response) error {
	su, ok := resp.(SelectUnitTypeResponse)
	if !ok {
		return errNotAllowed
	}
	for _, c := range r.Choices {
		if c == su.UnitType {
			return nil
		}
	}
	return errNotAllowed
}

type SelectUnitTypeResponse struct{ UnitType gametypes.UnitType }

func (SelectUnitTypeResponse) Kind() RequestKind { return RequestSelectUnitType }

// --- SelectUnits -------------------------------------------------------

type SelectUnitsRequest struct {
	Multi MultiRequest[uint32]
}

func (SelectUnitsRequest) Kind() RequestKind { return RequestSelectUnits }

func (r SelectUnitsRequest) Validate(resp Response) error {
	su, ok := resp.(SelectUnitsResponse)
	if !ok {
		return errNotInChoices
	}
	if err := r.Multi.validateLen(len(su.UnitIDs)); err != nil {
		return err
	}
	return r.Multi.validateSubset(su.UnitIDs)
}

type SelectUnitsResponse struct{ UnitIDs []uint32 }

func (SelectUnitsResponse) Kind() RequestKind { return RequestSelectUnits }

// --- SelectStructures -------------------------------------------------------

// StructuresRequest additionally requires that a CityCenter may only be
// selected if every other structure at that position is also selected.
type StructuresRequest struct {
	Multi              MultiRequest[gametypes.SelectedStructure]
	StructuresAtTile   map[hexmap.Position]int // total non-center structures present, per tile
}

func (StructuresRequest) Kind() RequestKind { return RequestSelectStructures }

func (r StructuresRequest) Validate(resp Response) error {
	ss, ok := resp.(SelectStructuresResponse)
	if !ok {
		return errNotInChoices
	}
	if err := r.Multi.validateLen(len(ss.Structures)); err != nil {
		return err
	}
	if err := r.Multi.validateSubset(ss.Structures); err != nil {
		return err
	}

	selectedAtTile := make(map[hexmap.Position]int)
	centerSelectedAtTile := make(map[hexmap.Position]bool)
	for _, s := range ss.Structures {
		if s.IsCityCenter {
			centerSelectedAtTile[s.Position] = true
			continue
		}
		selectedAtTile[s.Position]++
	}
	for pos, selectedCenter := range centerSelectedAtTile {
		if !selectedCenter {
			continue
		}
		if selectedAtTile[pos] != r.StructuresAtTile[pos] {
			return errNotAllowed
		}
	}
	return nil
}

type SelectStructuresResponse struct{ Structures []gametypes.SelectedStructure }

func (SelectStructuresResponse) Kind() RequestKind { return RequestSelectStructures }

// --- SelectHandCards -------------------------------------------------------

// HandCardsRequest asks for hand cards from Multi.Choices; any
// content-specific filtering is applied by the caller when building
// Choices, and the request carries no predicate of its own.
type HandCardsRequest struct {
	Multi MultiRequest[gametypes.HandCard]
}

func (HandCardsRequest) Kind() RequestKind { return RequestSelectHandCards }

func (r HandCardsRequest) Validate(resp Response) error {
	hc, ok := resp.(SelectHandCardsResponse)
	if !ok {
		return errNotInChoices
	}
	if err := r.Multi.validateLen(len(hc.Cards)); err != nil {
		return err
	}
	return r.Multi.validateSubset(hc.Cards)
}

type SelectHandCardsResponse struct{ Cards []gametypes.HandCard }

func (SelectHandCardsResponse) Kind() RequestKind { return RequestSelectHandCards }

// --- BoolRequest -------------------------------------------------------

type BoolRequest struct{ Prompt string }

func (BoolRequest) Kind() RequestKind { return RequestBool }

func (BoolRequest) Validate(resp Response) error {
	if _, ok := resp.(BoolResponse); !ok {
		return errNotAllowed
	}
	return nil
}

type BoolResponse struct{ Value bool }

func (BoolResponse) Kind() RequestKind { return RequestBool }

// --- ChangeGovernment -------------------------------------------------------

type ChangeGovernmentRequest struct {
	Optional bool
	Choices  []string // candidate government advance names
}

func (ChangeGovernmentRequest) Kind() RequestKind { return RequestChangeGovernment }

func (r ChangeGovernmentRequest) Validate(resp Response) error {
	cg, ok := resp.(ChangeGovernmentResponse)
	if !ok {
		return errNotAllowed
	}
	if cg.NewGovernment == "" {
		if r.Optional {
			return nil
		}
		return errNotAllowed
	}
	for _, c := range r.Choices {
		if c == cg.NewGovernment {
			return nil
		}
	}
	return errNotAllowed
}

type ChangeGovernmentResponse struct{ NewGovernment string }

func (ChangeGovernmentResponse) Kind() RequestKind { return RequestChangeGovernment }

// --- ExploreResolution -------------------------------------------------------

type ExploreResolutionRequest struct{}

func (ExploreResolutionRequest) Kind() RequestKind { return RequestExploreResolution }

func (ExploreResolutionRequest) Validate(resp Response) error {
	er, ok := resp.(ExploreResolutionResponse)
	if !ok {
		return errNotAllowed
	}
	if er.Rotation != 0 && er.Rotation != 3 {
		return errNotAllowed
	}
	return nil
}

type ExploreResolutionResponse struct{ Rotation int }

func (ExploreResolutionResponse) Kind() RequestKind { return RequestExploreResolution }
