// Package enginerr implements the engine's error taxonomy: typed error
// kinds, not strings the caller needs to switch on.
package enginerr

import "fmt"

// IllegalActionError reports that an action failed a legality
// precondition (insufficient resources, wrong phase, wrong player). The
// caller's state is left untouched.
type IllegalActionError struct {
	Reason string
}

func (e *IllegalActionError) Error() string {
	return fmt.Sprintf("illegal action: %s", e.Reason)
}

// NewIllegalAction builds an IllegalActionError with a formatted reason.
func NewIllegalAction(format string, args ...any) error {
	return &IllegalActionError{Reason: fmt.Sprintf(format, args...)}
}

// ShapeMismatchError reports that a submitted EventResponse does not
// match the shape of the pending Request. The request remains pending.
type ShapeMismatchError struct {
	Expected string
	Got      string
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("response shape mismatch: expected %s, got %s", e.Expected, e.Got)
}

// NewShapeMismatch builds a ShapeMismatchError.
func NewShapeMismatch(expected, got string) error {
	return &ShapeMismatchError{Expected: expected, Got: got}
}

// InvariantViolationError reports an internal inconsistency (e.g. killing
// a unit that does not exist). These are fatal bugs: callers should log
// and reject the action rather than let it corrupt state.
type InvariantViolationError struct {
	Invariant string
}

func (e *InvariantViolationError) Error() string {
	return fmt.Sprintf("invariant violated: %s", e.Invariant)
}

// NewInvariantViolation builds an InvariantViolationError.
func NewInvariantViolation(format string, args ...any) error {
	return &InvariantViolationError{Invariant: fmt.Sprintf(format, args...)}
}

// ProtocolMisuseError reports a malformed call into the dispatcher
// protocol itself: Undo with nothing undoable, Redo with no future, a
// Response submitted with no pending event.
type ProtocolMisuseError struct {
	Reason string
}

func (e *ProtocolMisuseError) Error() string {
	return fmt.Sprintf("protocol misuse: %s", e.Reason)
}

// NewProtocolMisuse builds a ProtocolMisuseError.
func NewProtocolMisuse(format string, args ...any) error {
	return &ProtocolMisuseError{Reason: fmt.Sprintf(format, args...)}
}
