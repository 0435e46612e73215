package events

import "fmt"

// OriginKind tags which content catalog an Origin names an entry in:
// Advance, Wonder, Incident, Card or Ability.
type OriginKind string

const (
	OriginAdvance  OriginKind = "advance"
	OriginWonder   OriginKind = "wonder"
	OriginIncident OriginKind = "incident"
	OriginCard     OriginKind = "card"
	OriginAbility  OriginKind = "ability"
)

// Origin identifies the content item a listener belongs to — the Go
// equivalent of original_source/server/src/events.rs's EventOrigin enum.
// It is the registration key within one event's priority space: two
// listeners on the same event may not share a priority unless they share
// an Origin.
type Origin struct {
	Kind OriginKind `json:"kind"`
	ID   string     `json:"id"`
}

// NewOrigin builds an Origin.
func NewOrigin(kind OriginKind, id string) Origin {
	return Origin{Kind: kind, ID: id}
}

func (o Origin) String() string {
	return fmt.Sprintf("%s(%s)", o.Kind, o.ID)
}
