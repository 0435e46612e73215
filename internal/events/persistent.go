package events

import "sort"

// PersistentEventHandler is the suspension record for the priority
// currently awaiting a response.
type PersistentEventHandler struct {
	Priority int     `json:"priority"`
	Request  Request `json:"-"`
	Response Response `json:"-"`
	Origin   Origin  `json:"origin"`
}

// PersistentEventState is the top-of-stack suspension record a game
// holds while a persistent event is mid-resolution. Field names follow
// original_source/server/src/content/persistent_events.rs's
// PersistentEventPlayer/PersistentEventState: LastPriorityUsed and
// SkipFirstPriority let resumption continue exactly one priority below
// the last answered one even across player changes.
type PersistentEventState struct {
	EventType         string          `json:"event_type"`
	PlayersUsed       []int           `json:"players_used"`
	CurrentPlayer     int             `json:"current_player"`
	LastPriorityUsed  *int            `json:"last_priority_used,omitempty"`
	SkipFirstPriority bool            `json:"skip_first_priority,omitempty"`
	Handler           *PersistentEventHandler `json:"handler,omitempty"`
}

// NewPersistentEventState builds a state whose player queue starts with
// the triggering player and proceeds clockwise (ascending index modulo
// playerCount).
func NewPersistentEventState(eventType string, triggeringPlayer, playerCount int) *PersistentEventState {
	queue := make([]int, 0, playerCount)
	for i := 0; i < playerCount; i++ {
		queue = append(queue, (triggeringPlayer+i)%playerCount)
	}
	return &PersistentEventState{
		EventType:     eventType,
		PlayersUsed:   queue,
		CurrentPlayer: triggeringPlayer,
	}
}

// IsSuspended reports whether the event is waiting on a Response.
func (s *PersistentEventState) IsSuspended() bool {
	return s.Handler != nil
}

// IsComplete reports whether every participating player has been
// processed.
func (s *PersistentEventState) IsComplete() bool {
	return len(s.PlayersUsed) == 0 && s.Handler == nil
}

// PersistentListener is one registered callback for a persistent event:
// persistent events drive multi-step resolutions rather than a single
// pass. Invoke runs for the current player at this listener's priority; it may
// mutate value and may return a non-nil Request to suspend. Resume is
// only called for the listener whose Request actually suspended, once a
// matching Response is validated.
type PersistentListener[T any] struct {
	Origin   Origin
	Priority int
	Invoke   func(value *T, player int) Request
	Resume   func(value *T, player int, resp Response)
}

// PersistentEvent is a named, typed collection of persistent listeners,
// analogous to TransientEvent but driving suspendable multi-step
// resolutions instead of a single pass.
type PersistentEvent[T any] struct {
	name      string
	listeners []PersistentListener[T]
}

// NewPersistentEvent creates a named, empty persistent event slot.
func NewPersistentEvent[T any](name string) *PersistentEvent[T] {
	return &PersistentEvent[T]{name: name}
}

// AddListener registers l, keeping listeners sorted by descending
// priority (ties broken by registration order, like TransientEvent).
func (e *PersistentEvent[T]) AddListener(l PersistentListener[T]) {
	e.listeners = append(e.listeners, l)
	sort.SliceStable(e.listeners, func(i, j int) bool {
		return e.listeners[i].Priority > e.listeners[j].Priority
	})
}

// RemoveListener tears down every listener registered under origin.
func (e *PersistentEvent[T]) RemoveListener(origin Origin) {
	out := e.listeners[:0]
	for _, l := range e.listeners {
		if l.Origin != origin {
			out = append(out, l)
		}
	}
	e.listeners = out
}

// HasListeners reports whether any listener is registered — callers use
// this to skip starting an event frame entirely when nothing would fire.
func (e *PersistentEvent[T]) HasListeners() bool {
	return len(e.listeners) > 0
}

// Start begins draining state from the top: the triggering player, then
// each subsequent player in state.PlayersUsed, walking listeners in
// descending-priority order. It returns true if a listener suspended
// the event (state now holds a pending Handler), false if the event ran
// to completion.
func (e *PersistentEvent[T]) Start(state *PersistentEventState, value *T) bool {
	return e.advance(state, value, nil)
}

// Resume validates resp against the pending Request, invokes the
// suspended listener's Resume callback, then continues draining strictly
// below that priority for the same player before moving on. It returns
// an error without mutating state if resp does not match the pending
// request's shape or constraints; the request remains pending.
func (e *PersistentEvent[T]) Resume(state *PersistentEventState, value *T, resp Response) (bool, error) {
	if state.Handler == nil {
		return false, errNoPendingHandler
	}
	h := state.Handler
	if err := h.Request.Validate(resp); err != nil {
		return false, err
	}

	var resumed bool
	for _, l := range e.listeners {
		if l.Origin == h.Origin && l.Priority == h.Priority {
			l.Resume(value, state.CurrentPlayer, resp)
			resumed = true
			break
		}
	}
	if !resumed {
		return false, errNoMatchingListener
	}

	ceiling := h.Priority
	state.LastPriorityUsed = &ceiling
	state.Handler = nil

	return e.advance(state, value, &ceiling), nil
}

// Resync regenerates a dropped Handler for a frame that survived a
// snapshot round trip without one: it re-invokes listeners from
// state.LastPriorityUsed's ceiling for the current front of
// PlayersUsed, reproducing the same Request a deterministic listener
// raised before the round trip. It is a no-op if state is already
// complete or already holds a Handler.
func (e *PersistentEvent[T]) Resync(state *PersistentEventState, value *T) bool {
	if state.Handler != nil || state.IsComplete() {
		return state.IsSuspended()
	}
	return e.advance(state, value, state.LastPriorityUsed)
}

// advance walks PlayersUsed from the front, for the first player only
// skipping any listener whose priority is >= ceiling (the priority just
// answered), then proceeding through the rest of the queue from the top.
// It mutates state.PlayersUsed, state.CurrentPlayer and state.Handler in
// place, and returns true iff it left the event suspended.
func (e *PersistentEvent[T]) advance(state *PersistentEventState, value *T, ceiling *int) bool {
	for len(state.PlayersUsed) > 0 {
		player := state.PlayersUsed[0]
		state.CurrentPlayer = player

		for _, l := range e.listeners {
			if ceiling != nil && l.Priority >= *ceiling {
				continue
			}
			if req := l.Invoke(value, player); req != nil {
				state.Handler = &PersistentEventHandler{
					Priority: l.Priority,
					Request:  req,
					Origin:   l.Origin,
				}
				return true
			}
		}

		// player exhausted: advance to the next, resetting the ceiling
		// and per-player bookkeeping.
		state.PlayersUsed = state.PlayersUsed[1:]
		state.LastPriorityUsed = nil
		ceiling = nil
	}
	return false
}
