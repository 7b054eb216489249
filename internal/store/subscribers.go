// ABOUTME: Shared subscriber bookkeeping for both Engine implementations
// ABOUTME: Handlers fire synchronously, once per mutating call, in registration order

package store

import (
	"sync"

	"github.com/glassa-work/paperlike/internal/drawing"
)

type subscriber struct {
	id       int
	handlers Handlers
}

// subscriberSet tracks registered change handlers. Both engines embed
// one; delivery happens outside the engine's own lock so a handler may
// call back into the engine.
type subscriberSet struct {
	mu     sync.Mutex
	nextID int
	subs   []subscriber
}

func (s *subscriberSet) add(h Handlers) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs = append(s.subs, subscriber{id: id, handlers: h})
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

func (s *subscriberSet) snapshot() []subscriber {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]subscriber(nil), s.subs...)
}

func (s *subscriberSet) notifyElements(elements []drawing.Element) {
	for _, sub := range s.snapshot() {
		if sub.handlers.OnElementsChange != nil {
			sub.handlers.OnElementsChange(elements)
		}
	}
}

func (s *subscriberSet) notifySelection(selection []drawing.ElementID) {
	for _, sub := range s.snapshot() {
		if sub.handlers.OnSelectionChange != nil {
			sub.handlers.OnSelectionChange(selection)
		}
	}
}
