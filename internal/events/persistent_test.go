package events

import (
	"testing"

	"github.com/hexclash/engine/internal/hexmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// a tiny mutable payload used purely to exercise the runner's ordering.
type counter struct {
	Log []string
}

func TestPersistentEventRunnerOrderingAndSuspend(t *testing.T) {
	evt := NewPersistentEvent[counter]("test-event")

	evt.AddListener(PersistentListener[counter]{
		Origin:   NewOrigin(OriginAdvance, "high"),
		Priority: 10,
		Invoke: func(value *counter, player int) Request {
			value.Log = append(value.Log, "high")
			return nil
		},
	})
	evt.AddListener(PersistentListener[counter]{
		Origin:   NewOrigin(OriginAdvance, "mid"),
		Priority: 5,
		Invoke: func(value *counter, player int) Request {
			value.Log = append(value.Log, "mid-ask")
			return BoolRequest{Prompt: "pay?"}
		},
		Resume: func(value *counter, player int, resp Response) {
			value.Log = append(value.Log, "mid-resumed")
		},
	})
	evt.AddListener(PersistentListener[counter]{
		Origin:   NewOrigin(OriginAdvance, "low"),
		Priority: 1,
		Invoke: func(value *counter, player int) Request {
			value.Log = append(value.Log, "low")
			return nil
		},
	})

	state := NewPersistentEventState("test-event", 0, 1)
	value := &counter{}

	suspended := evt.Start(state, value)
	assert.True(t, suspended)
	assert.Equal(t, []string{"high", "mid-ask"}, value.Log)
	require.NotNil(t, state.Handler)
	assert.Equal(t, 5, state.Handler.Priority)

	suspended, err := evt.Resume(state, value, BoolResponse{Value: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"high", "mid-ask", "mid-resumed", "low"}, value.Log)

	// The single participating player is now exhausted: the event drains
	// to completion without ever firing "high"/"mid" a second time.
	assert.False(t, suspended)
	assert.True(t, state.IsComplete())
}

func TestPersistentEventRunnerShapeMismatchLeavesPending(t *testing.T) {
	evt := NewPersistentEvent[counter]("test-event")
	evt.AddListener(PersistentListener[counter]{
		Origin:   NewOrigin(OriginIncident, "1"),
		Priority: 1,
		Invoke: func(value *counter, player int) Request {
			return BoolRequest{Prompt: "pay?"}
		},
	})

	state := NewPersistentEventState("test-event", 0, 1)
	value := &counter{}

	suspended := evt.Start(state, value)
	assert.True(t, suspended)

	_, err := evt.Resume(state, value, SelectAdvanceResponse{Name: "nope"})
	assert.Error(t, err)
	assert.NotNil(t, state.Handler, "request must remain pending on shape mismatch")
}

func TestSelectPositionsRequestValidation(t *testing.T) {
	req := SelectPositionsRequest{Multi: MultiRequest[hexmap.Position]{
		Choices:  []hexmap.Position{{Q: 1, R: 1}, {Q: 2, R: 2}, {Q: 3, R: 3}},
		MinCount: 1,
		MaxCount: 2,
	}}

	assert.NoError(t, req.Validate(SelectPositionsResponse{Positions: []hexmap.Position{{Q: 1, R: 1}}}))
	assert.Error(t, req.Validate(SelectPositionsResponse{Positions: []hexmap.Position{{Q: 9, R: 9}}}))
	assert.Error(t, req.Validate(SelectPositionsResponse{Positions: []hexmap.Position{{Q: 1, R: 1}, {Q: 2, R: 2}, {Q: 3, R: 3}}}))
}
