package events

import "errors"

var (
	errWrongCount     = errors.New("events: selection count outside requested range")
	errNotInChoices   = errors.New("events: selection is not among the offered choices")
	errNotAllowed     = errors.New("events: value is not among the allowed choices")
	errPaymentShape   = errors.New("events: payment piles must match the requested shape")
	errPaymentInvalid = errors.New("events: a payment pile does not satisfy its options")

	errNoPendingHandler   = errors.New("events: no pending handler to resume")
	errNoMatchingListener = errors.New("events: no listener registered for the pending handler")
)
