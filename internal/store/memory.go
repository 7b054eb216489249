// ABOUTME: In-memory reference implementation of the Engine interface
// ABOUTME: Slice/map-backed with defensive copies on every boundary crossing

package store

import (
	"context"
	"log/slog"
	"sync"

	"github.com/glassa-work/paperlike/internal/drawing"
)

// MemoryEngine is the reference Engine implementation. Everything it
// hands out is a structural copy; nothing shares storage with its
// internal state.
type MemoryEngine struct {
	mu        sync.Mutex
	elements  []drawing.Element
	appState  drawing.AppState
	files     drawing.FileMap
	selection []drawing.ElementID

	subscribers subscriberSet
	logger      *slog.Logger
}

// NewMemoryEngine creates an empty in-memory engine.
func NewMemoryEngine() *MemoryEngine {
	return &MemoryEngine{
		appState: drawing.AppState{},
		files:    drawing.FileMap{},
		logger:   slog.Default().With("component", "store"),
	}
}

// Snapshot returns a deep copy of the current containers.
func (m *MemoryEngine) Snapshot(ctx context.Context) (Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Snapshot{
		Elements: drawing.CloneElements(m.elements),
		AppState: m.appState.Clone(),
		Files:    m.files.Clone(),
	}, nil
}

// LoadSnapshot replaces all three containers wholesale and notifies
// element-change subscribers.
func (m *MemoryEngine) LoadSnapshot(ctx context.Context, snap Snapshot) error {
	m.mu.Lock()
	m.elements = drawing.CloneElements(snap.Elements)
	m.appState = snap.AppState.Clone()
	if m.appState == nil {
		m.appState = drawing.AppState{}
	}
	m.files = snap.Files.Clone()
	if m.files == nil {
		m.files = drawing.FileMap{}
	}
	elements := drawing.CloneElements(m.elements)
	m.mu.Unlock()

	m.subscribers.notifyElements(elements)
	return nil
}

// AddElement stores a defensive copy and returns the stored copy.
func (m *MemoryEngine) AddElement(ctx context.Context, element drawing.Element) (drawing.Element, error) {
	m.mu.Lock()
	stored := element.Clone()
	m.elements = append(m.elements, stored)
	elements := drawing.CloneElements(m.elements)
	m.mu.Unlock()

	m.subscribers.notifyElements(elements)
	return stored.Clone(), nil
}

// UpdateElement merges fields onto the stored element, force-restoring
// the original id, and returns the pre-mutation copy.
func (m *MemoryEngine) UpdateElement(ctx context.Context, id drawing.ElementID, fields drawing.FieldPatch) (drawing.Element, error) {
	m.mu.Lock()
	idx := m.indexOfLocked(id)
	if idx < 0 {
		m.mu.Unlock()
		return nil, ErrElementNotFound
	}
	previous := m.elements[idx].Clone()
	m.elements[idx] = m.elements[idx].Apply(fields)
	elements := drawing.CloneElements(m.elements)
	m.mu.Unlock()

	m.subscribers.notifyElements(elements)
	return previous, nil
}

// DeleteElement removes the element and drops it from the current
// selection, returning the removed copy.
func (m *MemoryEngine) DeleteElement(ctx context.Context, id drawing.ElementID) (drawing.Element, error) {
	m.mu.Lock()
	idx := m.indexOfLocked(id)
	if idx < 0 {
		m.mu.Unlock()
		return nil, ErrElementNotFound
	}
	removed := m.elements[idx]
	m.elements = append(m.elements[:idx:idx], m.elements[idx+1:]...)

	selectionChanged := false
	kept := m.selection[:0:0]
	for _, sel := range m.selection {
		if sel == id {
			selectionChanged = true
			continue
		}
		kept = append(kept, sel)
	}
	m.selection = kept

	elements := drawing.CloneElements(m.elements)
	selection := append([]drawing.ElementID(nil), m.selection...)
	m.mu.Unlock()

	m.subscribers.notifyElements(elements)
	if selectionChanged {
		m.subscribers.notifySelection(selection)
	}
	return removed, nil
}

// SetAppState shallow-merges onto the view state and returns the
// pre-merge copy.
func (m *MemoryEngine) SetAppState(ctx context.Context, fields drawing.FieldPatch) (drawing.AppState, error) {
	m.mu.Lock()
	previous := m.appState.Clone()
	m.appState = m.appState.Merge(fields)
	m.mu.Unlock()
	return previous, nil
}

// UpsertFiles shallow-merges by key, last write wins per key.
func (m *MemoryEngine) UpsertFiles(ctx context.Context, files drawing.FileMap) error {
	m.mu.Lock()
	m.files = m.files.Merge(files)
	m.mu.Unlock()
	return nil
}

// SetSelection replaces the selected-id set and notifies selection
// subscribers.
func (m *MemoryEngine) SetSelection(ctx context.Context, ids []drawing.ElementID) error {
	m.mu.Lock()
	m.selection = append([]drawing.ElementID(nil), ids...)
	selection := append([]drawing.ElementID(nil), m.selection...)
	m.mu.Unlock()

	m.subscribers.notifySelection(selection)
	return nil
}

// Selection returns a copy of the current selected-id set.
func (m *MemoryEngine) Selection(ctx context.Context) ([]drawing.ElementID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]drawing.ElementID(nil), m.selection...), nil
}

// Subscribe registers change handlers and returns an unsubscribe
// function. Handlers fire in registration order.
func (m *MemoryEngine) Subscribe(h Handlers) func() {
	return m.subscribers.add(h)
}

func (m *MemoryEngine) indexOfLocked(id drawing.ElementID) int {
	for i, e := range m.elements {
		if e.ID() == id {
			return i
		}
	}
	return -1
}

var _ Engine = (*MemoryEngine)(nil)
