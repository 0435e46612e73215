package events

import (
	"encoding/json"
	"fmt"
)

// TaggedRequest is the wire form of a Request: the concrete type is
// named by Kind so a Snapshot can carry a live suspension through JSON
// without the interface losing its dynamic type.
type TaggedRequest struct {
	Kind RequestKind     `json:"kind"`
	Data json.RawMessage `json:"data"`
}

// TaggedResponse is the wire form of a Response, mirroring TaggedRequest.
type TaggedResponse struct {
	Kind RequestKind     `json:"kind"`
	Data json.RawMessage `json:"data"`
}

// EncodeRequest tags r by its Kind. A nil Request encodes to the zero
// TaggedRequest.
func EncodeRequest(r Request) (TaggedRequest, error) {
	if r == nil {
		return TaggedRequest{}, nil
	}
	data, err := json.Marshal(r)
	if err != nil {
		return TaggedRequest{}, err
	}
	return TaggedRequest{Kind: r.Kind(), Data: data}, nil
}

// EncodeResponse tags resp by its Kind. A nil Response encodes to the
// zero TaggedResponse.
func EncodeResponse(resp Response) (TaggedResponse, error) {
	if resp == nil {
		return TaggedResponse{}, nil
	}
	data, err := json.Marshal(resp)
	if err != nil {
		return TaggedResponse{}, err
	}
	return TaggedResponse{Kind: resp.Kind(), Data: data}, nil
}

// DecodeRequest rebuilds the concrete Request named by t.Kind. It
// returns a nil Request for the zero TaggedRequest.
func DecodeRequest(t TaggedRequest) (Request, error) {
	if t.Kind == "" {
		return nil, nil
	}
	switch t.Kind {
	case RequestPayment:
		return decodeInto(t.Data, &PaymentRequest{})
	case RequestResourceReward:
		return decodeInto(t.Data, &ResourceRewardRequest{})
	case RequestSelectAdvance:
		return decodeInto(t.Data, &SelectAdvanceRequest{})
	case RequestSelectPlayer:
		return decodeInto(t.Data, &SelectPlayerRequest{})
	case RequestSelectPositions:
		return decodeInto(t.Data, &SelectPositionsRequest{})
	case RequestSelectUnitType:
		return decodeInto(t.Data, &SelectUnitTypeRequest{})
	case RequestSelectUnits:
		return decodeInto(t.Data, &SelectUnitsRequest{})
	case RequestSelectStructures:
		return decodeInto(t.Data, &StructuresRequest{})
	case RequestSelectHandCards:
		return decodeInto(t.Data, &HandCardsRequest{})
	case RequestBool:
		return decodeInto(t.Data, &BoolRequest{})
	case RequestChangeGovernment:
		return decodeInto(t.Data, &ChangeGovernmentRequest{})
	case RequestExploreResolution:
		return decodeInto(t.Data, &ExploreResolutionRequest{})
	default:
		return nil, fmt.Errorf("events: unknown request kind %q", t.Kind)
	}
}

// DecodeResponse rebuilds the concrete Response named by t.Kind. It
// returns a nil Response for the zero TaggedResponse.
func DecodeResponse(t TaggedResponse) (Response, error) {
	if t.Kind == "" {
		return nil, nil
	}
	switch t.Kind {
	case RequestPayment:
		return decodeInto(t.Data, &PaymentResponse{})
	case RequestResourceReward:
		return decodeInto(t.Data, &ResourceRewardResponse{})
	case RequestSelectAdvance:
		return decodeInto(t.Data, &SelectAdvanceResponse{})
	case RequestSelectPlayer:
		return decodeInto(t.Data, &SelectPlayerResponse{})
	case RequestSelectPositions:
		return decodeInto(t.Data, &SelectPositionsResponse{})
	case RequestSelectUnitType:
		return decodeInto(t.Data, &SelectUnitTypeResponse{})
	case RequestSelectUnits:
		return decodeInto(t.Data, &SelectUnitsResponse{})
	case RequestSelectStructures:
		return decodeInto(t.Data, &SelectStructuresResponse{})
	case RequestSelectHandCards:
		return decodeInto(t.Data, &SelectHandCardsResponse{})
	case RequestBool:
		return decodeInto(t.Data, &BoolResponse{})
	case RequestChangeGovernment:
		return decodeInto(t.Data, &ChangeGovernmentResponse{})
	case RequestExploreResolution:
		return decodeInto(t.Data, &ExploreResolutionResponse{})
	default:
		return nil, fmt.Errorf("events: unknown response kind %q", t.Kind)
	}
}

// decodeInto unmarshals data into v and returns the dereferenced value,
// so callers get a plain value implementing Request/Response rather than
// a pointer — matching how the Kind() methods in persistent_types.go are
// declared on value receivers.
func decodeInto[T any](data json.RawMessage, v *T) (T, error) {
	if len(data) > 0 {
		if err := json.Unmarshal(data, v); err != nil {
			return *v, err
		}
	}
	return *v, nil
}
