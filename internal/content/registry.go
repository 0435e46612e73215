// Package content implements the immutable catalog of advances, wonders,
// cards and incidents. Game state never stores a pointer into content,
// only an events.Origin; lookups always go back through a *Registry.
//
// The concrete set of advances/wonders/card content a shipped game
// defines is left to collaborators. What belongs here is the contract:
// an id-keyed, build-once-then-immutable store, plus the Effect/Mutator
// hook that lets a collaborator's content apply its own game-state
// change without this package importing playerstate, combat, movement
// or any other downstream package. The four incident base effects are
// the one piece of content this engine owns outright, since they are
// built-in engine mechanics rather than collaborator-supplied.
package content

import (
	"github.com/hexclash/engine/internal/events"
	"github.com/hexclash/engine/internal/gametypes"
	"github.com/hexclash/engine/internal/resource"
)

// Advance is one researchable technology.
type Advance struct {
	ID       string
	Name     string
	Cost     Cost
	Disabled bool
	OnResearch Effect
}

// Wonder is a unique, city-built structure.
type Wonder struct {
	ID       string
	Name     string
	Cost     Cost
	Disabled bool
	OnBuilt  Effect
}

// Card is one entry in the action/objective/wonder card catalog. Kind
// reuses gametypes.HandCardKind so a HandCard reference in a player's
// hand resolves through the same tag the registry is keyed by.
type Card struct {
	ID       string
	Name     string
	Kind     gametypes.HandCardKind
	Disabled bool
	OnPlay   Effect
}

// IncidentBaseEffect enumerates the handful of built-in consequences the
// incident system itself knows how to apply whenever an incident is
// drawn, whoever holds its protection advance. Grounded on
// original_source/server/src/content/incidents/*.rs and
// original_source/server/src/pirates.rs.
type IncidentBaseEffect string

const (
	IncidentEffectNone             IncidentBaseEffect = "none"
	IncidentEffectBarbariansSpawn  IncidentBaseEffect = "barbarians_spawn"
	IncidentEffectBarbariansMove   IncidentBaseEffect = "barbarians_move"
	IncidentEffectPiratesRaid      IncidentBaseEffect = "pirates_raid"
)

// CustomAction is a civilization- or content-specific playing action
// outside the fixed PlayingAction set, unlocked by an advance or
// civilization ability. Free actions do not consume the actions_left
// budget.
type CustomAction struct {
	ID       string
	Name     string
	Cost     Cost
	Free     bool
	Disabled bool
	OnPlay   Effect
}

// Incident is one entry in the incident deck. ProtectionAdvance, if
// non-empty, names an Advance id whose holders are exempt from the
// incident's per-player effects; BaseEffect applies regardless.
type Incident struct {
	ID                string
	Name              string
	BaseEffect        IncidentBaseEffect
	ProtectionAdvance string
	Disabled          bool
}

// Cost is the payment shape a catalog entry requires to activate.
type Cost = resource.PaymentOptions

// Registry is the immutable, id-keyed catalog consumed once at game
// setup. Build it with a RegistryBuilder.
type Registry struct {
	advances      map[string]Advance
	wonders       map[string]Wonder
	cards         map[string]Card
	customActions map[string]CustomAction
	incidents     map[string]Incident
}

// Advance looks up an advance by id.
func (r *Registry) Advance(id string) (Advance, bool) {
	a, ok := r.advances[id]
	return a, ok
}

// Wonder looks up a wonder by id.
func (r *Registry) Wonder(id string) (Wonder, bool) {
	w, ok := r.wonders[id]
	return w, ok
}

// Card looks up a card by id.
func (r *Registry) Card(id string) (Card, bool) {
	c, ok := r.cards[id]
	return c, ok
}

// CustomAction looks up a custom playing action by id.
func (r *Registry) CustomAction(id string) (CustomAction, bool) {
	c, ok := r.customActions[id]
	return c, ok
}

// Incident looks up an incident by id.
func (r *Registry) Incident(id string) (Incident, bool) {
	i, ok := r.incidents[id]
	return i, ok
}

// Advances returns every registered advance, enabled or not, for
// catalog-browsing UIs.
func (r *Registry) Advances() []Advance {
	out := make([]Advance, 0, len(r.advances))
	for _, a := range r.advances {
		out = append(out, a)
	}
	return out
}

// DisplayName resolves an events.Origin to its catalog entry's human
// name, falling back to the id if the entry is missing or the wrong
// kind. Grounded on original_source/server/src/events.rs's
// EventOrigin::name, which likewise requires a cache lookup rather than
// storing the name inline on the Origin.
func (r *Registry) DisplayName(o events.Origin) string {
	switch o.Kind {
	case events.OriginAdvance:
		if a, ok := r.Advance(o.ID); ok {
			return a.Name
		}
	case events.OriginWonder:
		if w, ok := r.Wonder(o.ID); ok {
			return w.Name
		}
	case events.OriginCard:
		if c, ok := r.Card(o.ID); ok {
			return c.Name
		}
	case events.OriginIncident:
		if i, ok := r.Incident(o.ID); ok {
			return i.Name
		}
	}
	return o.ID
}

// RegistryBuilder accumulates catalog entries before Build freezes them
// into a Registry. Collaborators register their concrete advances,
// wonders, cards and incidents here; the engine seeds no entries of its
// own.
type RegistryBuilder struct {
	reg Registry
}

// NewRegistryBuilder returns an empty builder.
func NewRegistryBuilder() *RegistryBuilder {
	return &RegistryBuilder{reg: Registry{
		advances:      map[string]Advance{},
		wonders:       map[string]Wonder{},
		cards:         map[string]Card{},
		customActions: map[string]CustomAction{},
		incidents:     map[string]Incident{},
	}}
}

// AddAdvance registers a, keyed by a.ID. Re-registering an id overwrites
// the previous entry.
func (b *RegistryBuilder) AddAdvance(a Advance) *RegistryBuilder {
	b.reg.advances[a.ID] = a
	return b
}

// AddWonder registers w, keyed by w.ID.
func (b *RegistryBuilder) AddWonder(w Wonder) *RegistryBuilder {
	b.reg.wonders[w.ID] = w
	return b
}

// AddCard registers c, keyed by c.ID.
func (b *RegistryBuilder) AddCard(c Card) *RegistryBuilder {
	b.reg.cards[c.ID] = c
	return b
}

// AddCustomAction registers ca, keyed by ca.ID.
func (b *RegistryBuilder) AddCustomAction(ca CustomAction) *RegistryBuilder {
	b.reg.customActions[ca.ID] = ca
	return b
}

// AddIncident registers i, keyed by i.ID.
func (b *RegistryBuilder) AddIncident(i Incident) *RegistryBuilder {
	b.reg.incidents[i.ID] = i
	return b
}

// Build freezes the accumulated entries into a Registry. The builder
// must not be reused afterwards.
func (b *RegistryBuilder) Build() *Registry {
	return &b.reg
}
