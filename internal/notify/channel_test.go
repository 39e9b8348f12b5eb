package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/atlas/pkg/uid"
)

func TestChannel_SubscriptionOrder(t *testing.T) {
	ch := NewChannel[Event]("slides")
	var calls []string

	require.Equal(t, 1, ch.Subscribe(func(Event) { calls = append(calls, "first") }))
	require.Equal(t, 2, ch.Subscribe(func(Event) { calls = append(calls, "second") }))

	ch.Emit(Event{Type: CreatedEvent, UID: uid.New()})

	assert.Equal(t, []string{"first", "second"}, calls, "each handler runs exactly once, in order")
}

func TestChannel_DeliversPayload(t *testing.T) {
	ch := NewChannel[Event]("images")
	id := uid.New()
	var got []Event
	ch.Subscribe(func(e Event) { got = append(got, e) })

	ch.Emit(Event{Type: UpdatedEvent, UID: id})
	ch.Emit(Event{Type: UpdatedEvent, UID: id})

	require.Len(t, got, 2, "no de-duplication")
	assert.Equal(t, Event{Type: UpdatedEvent, UID: id}, got[0])
}

func TestChannel_SameHandlerTwice(t *testing.T) {
	ch := NewChannel[int]("n")
	count := 0
	h := func(int) { count++ }
	ch.Subscribe(h)
	ch.Subscribe(h)

	ch.Emit(1)
	assert.Equal(t, 2, count)
}

func TestChannel_NilHandlerIgnored(t *testing.T) {
	ch := NewChannel[int]("n")
	assert.Equal(t, 0, ch.Subscribe(nil))
	assert.NotPanics(t, func() { ch.Emit(1) })
	assert.Equal(t, "n", ch.Name())
}

func TestChannel_SubscribeDuringEmit(t *testing.T) {
	ch := NewChannel[int]("n")
	late := 0
	ch.Subscribe(func(int) {
		ch.Subscribe(func(int) { late++ })
	})

	ch.Emit(1)
	assert.Equal(t, 0, late, "handler added during emit waits for the next emit")
	ch.Emit(2)
	assert.Equal(t, 1, late)
	assert.Equal(t, 3, ch.Len())
}
