package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventBusBranchScoping(t *testing.T) {
	bus := NewEventBus()
	global, cancelGlobal := bus.Subscribe("", 4)
	defer cancelGlobal()
	branchA, cancelA := bus.Subscribe("a", 4)
	defer cancelA()
	branchB, cancelB := bus.Subscribe("b", 4)
	defer cancelB()

	bus.Emit(EventNewOrder, "a", "payload")

	select {
	case ev := <-global:
		assert.Equal(t, EventNewOrder, ev.Name)
		assert.Equal(t, "a", ev.Branch)
	default:
		t.Fatal("global subscriber should receive every event")
	}
	select {
	case ev := <-branchA:
		assert.Equal(t, "payload", ev.Payload)
	default:
		t.Fatal("branch subscriber should receive its branch's events")
	}
	select {
	case ev := <-branchB:
		t.Fatalf("branch b should see nothing, got %v", ev)
	default:
	}
}

func TestEventBusEmitNeverBlocks(t *testing.T) {
	bus := NewEventBus()
	ch, cancel := bus.Subscribe("", 1)
	defer cancel()

	// The second emit overflows the buffer and must be dropped, not
	// block the emitter.
	bus.Emit(EventNewOrder, "", 1)
	bus.Emit(EventOrderUpdated, "", 2)

	ev := <-ch
	assert.Equal(t, EventNewOrder, ev.Name)
	select {
	case ev := <-ch:
		t.Fatalf("overflowed event should have been dropped, got %v", ev)
	default:
	}
}

func TestEventBusCancelClosesChannel(t *testing.T) {
	bus := NewEventBus()
	ch, cancel := bus.Subscribe("a", 1)
	cancel()

	_, open := <-ch
	require.False(t, open)

	// Emitting after cancel must not panic on the closed channel.
	bus.Emit(EventNewOrder, "a", nil)
}

func TestEventBusCancelIsIdempotent(t *testing.T) {
	bus := NewEventBus()
	_, cancel := bus.Subscribe("", 1)
	cancel()
	cancel()
}
