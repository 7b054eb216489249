// ABOUTME: Generic synchronous publish/subscribe for a single event type
// ABOUTME: Delivers to listeners in registration order; On returns an unsubscribe func

package emitter

import "sync"

type listener[T any] struct {
	id int
	fn func(T)
}

// Emitter delivers values of one type to registered listeners,
// synchronously and in registration order. The zero value is not
// usable; call New.
type Emitter[T any] struct {
	mu        sync.Mutex
	nextID    int
	listeners []listener[T]
}

// New creates an empty emitter.
func New[T any]() *Emitter[T] {
	return &Emitter[T]{}
}

// On registers a listener and returns its unsubscribe function.
// Unsubscribing twice is harmless.
func (e *Emitter[T]) On(fn func(T)) func() {
	e.mu.Lock()
	id := e.nextID
	e.nextID++
	e.listeners = append(e.listeners, listener[T]{id: id, fn: fn})
	e.mu.Unlock()

	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		for i, l := range e.listeners {
			if l.id == id {
				e.listeners = append(e.listeners[:i:i], e.listeners[i+1:]...)
				return
			}
		}
	}
}

// Emit delivers the value to every currently registered listener, in
// registration order, before returning. Listeners registered during
// delivery are not called for the in-flight value.
func (e *Emitter[T]) Emit(value T) {
	e.mu.Lock()
	current := append([]listener[T](nil), e.listeners...)
	e.mu.Unlock()

	for _, l := range current {
		l.fn(value)
	}
}
