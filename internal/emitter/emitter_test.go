// ABOUTME: Tests for the generic synchronous emitter
// ABOUTME: Covers delivery order, unsubscription, and reentrancy during delivery

package emitter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmitter_DeliversInRegistrationOrder(t *testing.T) {
	e := New[int]()

	var order []string
	e.On(func(v int) { order = append(order, "first") })
	e.On(func(v int) { order = append(order, "second") })
	e.On(func(v int) { order = append(order, "third") })

	e.Emit(1)

	assert.Equal(t, []string{"first", "second", "third"}, order)
}

func TestEmitter_DeliveryIsSynchronous(t *testing.T) {
	e := New[string]()

	var got string
	e.On(func(v string) { got = v })

	e.Emit("hello")
	assert.Equal(t, "hello", got, "listener ran before Emit returned")
}

func TestEmitter_Unsubscribe(t *testing.T) {
	e := New[int]()

	count := 0
	unsubscribe := e.On(func(int) { count++ })

	e.Emit(1)
	unsubscribe()
	unsubscribe() // harmless twice
	e.Emit(2)

	assert.Equal(t, 1, count)
}

func TestEmitter_UnsubscribeLeavesOthersRegistered(t *testing.T) {
	e := New[int]()

	var seen []string
	first := e.On(func(int) { seen = append(seen, "a") })
	e.On(func(int) { seen = append(seen, "b") })

	first()
	e.Emit(1)

	assert.Equal(t, []string{"b"}, seen)
}

func TestEmitter_ListenerRegisteredDuringDeliverySkipsInFlightEvent(t *testing.T) {
	e := New[int]()

	lateCalls := 0
	e.On(func(int) {
		e.On(func(int) { lateCalls++ })
	})

	e.Emit(1)
	assert.Zero(t, lateCalls)
	e.Emit(2)
	assert.Equal(t, 1, lateCalls)
}

func TestEmitter_EmitWithNoListeners(t *testing.T) {
	e := New[struct{}]()
	e.Emit(struct{}{}) // must not panic
}
