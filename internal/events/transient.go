package events

import (
	"fmt"
	"sort"
)

// TransientCallback mutates a value in place, given read-only context.
type TransientCallback[T any] func(value *T, ctx any)

type transientListener[T any] struct {
	origin   Origin
	priority int
	callback TransientCallback[T]
}

// TransientEvent is a typed collection of listeners computed fresh on
// every query, applying every callback to the mutable value in one pass.
// T is the mutable payload; ctx carries whatever read-only info/details
// the listener needs, collapsed to one value since Go listeners close
// over their own typed accessors.
type TransientEvent[T any] struct {
	name      string
	listeners []transientListener[T]
}

// NewTransientEvent creates a named, empty transient event slot.
func NewTransientEvent[T any](name string) *TransientEvent[T] {
	return &TransientEvent[T]{name: name}
}

// AddListener registers a callback at a priority for an origin.
// Priorities are unique per origin within one event; registering a
// second, different origin at an already-used priority panics, mirroring
// original_source/server/src/events.rs's add_listener_mut.
func (e *TransientEvent[T]) AddListener(origin Origin, priority int, cb TransientCallback[T]) {
	for _, l := range e.listeners {
		if l.priority == priority && l.origin != origin {
			panic(fmt.Sprintf("event %s: priority %d already used by %s when adding %s", e.name, priority, l.origin, origin))
		}
	}
	e.listeners = append(e.listeners, transientListener[T]{origin: origin, priority: priority, callback: cb})
	sort.SliceStable(e.listeners, func(i, j int) bool {
		return e.listeners[i].priority > e.listeners[j].priority
	})
}

// RemoveListener tears down every listener registered under origin,
// symmetric teardown for when content becomes inactive (e.g. an advance
// is un-researched via undo).
func (e *TransientEvent[T]) RemoveListener(origin Origin) {
	out := e.listeners[:0]
	for _, l := range e.listeners {
		if l.origin != origin {
			out = append(out, l)
		}
	}
	e.listeners = out
}

// TriggerMode selects whether Trigger should track which origins changed
// the value. Grounded on original_source's CostTrigger
// (server/src/player.rs): WithModifiers vs. a plain pass.
type TriggerMode int

const (
	TriggerPlain TriggerMode = iota
	TriggerWithModifiers
)

// Trigger walks listeners in descending-priority order, applying each to
// value. When mode is TriggerWithModifiers, it returns the origins whose
// callback actually changed the value (by equality) — used to display
// cost modifiers. The equal func is used only for that bookkeeping; with
// a nil equal no origins are reported.
func Trigger[T any](e *TransientEvent[T], value *T, ctx any, mode TriggerMode, equal func(a, b T) bool) []Origin {
	var changed []Origin
	for _, l := range e.listeners {
		var before T
		if mode == TriggerWithModifiers {
			before = *value
		}
		l.callback(value, ctx)
		if mode == TriggerWithModifiers && equal != nil && !equal(before, *value) {
			changed = append(changed, l.origin)
		}
	}
	return changed
}
