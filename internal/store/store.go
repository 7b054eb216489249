// ABOUTME: Engine interface and shared types for drawing storage backends
// ABOUTME: Every mutating call returns the pre-mutation value for inverse-patch construction

package store

import (
	"context"
	"errors"

	"github.com/glassa-work/paperlike/internal/drawing"
)

// ErrElementNotFound is returned when an update or delete names an
// element id that is not in the store. Nothing is mutated and no
// notification fires.
var ErrElementNotFound = errors.New("element not found")

// Snapshot is a point-in-time copy of a drawing's three containers. It
// never aliases live storage.
type Snapshot struct {
	Elements []drawing.Element
	AppState drawing.AppState
	Files    drawing.FileMap
}

// Clone returns a deep copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	return Snapshot{
		Elements: drawing.CloneElements(s.Elements),
		AppState: s.AppState.Clone(),
		Files:    s.Files.Clone(),
	}
}

// Handlers carries the optional callbacks a subscriber registers.
// Either field may be nil.
type Handlers struct {
	OnElementsChange  func([]drawing.Element)
	OnSelectionChange func([]drawing.ElementID)
}

// Engine is the storage backend for one drawing. Implementations are
// selected at construction time; the controller, recorder, and applier
// are written purely against this contract.
//
// Mutating calls return the pre-image of what they changed, so callers
// build inverse patches without a second lookup.
type Engine interface {
	// Snapshot returns a deep copy of the current containers.
	Snapshot(ctx context.Context) (Snapshot, error)

	// LoadSnapshot replaces all three containers wholesale and
	// notifies element-change subscribers. It does not touch history.
	LoadSnapshot(ctx context.Context, snap Snapshot) error

	// AddElement stores a defensive copy and returns the stored copy.
	AddElement(ctx context.Context, element drawing.Element) (drawing.Element, error)

	// UpdateElement merges the patch onto the stored element, force-
	// restoring the original id, and returns the pre-mutation copy.
	// Absent id: ErrElementNotFound.
	UpdateElement(ctx context.Context, id drawing.ElementID, fields drawing.FieldPatch) (drawing.Element, error)

	// DeleteElement removes the element, also dropping it from the
	// current selection, and returns the removed copy. Absent id:
	// ErrElementNotFound.
	DeleteElement(ctx context.Context, id drawing.ElementID) (drawing.Element, error)

	// SetAppState shallow-merges onto the view state and returns the
	// pre-merge copy.
	SetAppState(ctx context.Context, fields drawing.FieldPatch) (drawing.AppState, error)

	// UpsertFiles shallow-merges by key, last write wins per key.
	UpsertFiles(ctx context.Context, files drawing.FileMap) error

	// SetSelection replaces the selected-id set and notifies selection
	// subscribers.
	SetSelection(ctx context.Context, ids []drawing.ElementID) error

	// Selection returns a copy of the current selected-id set.
	Selection(ctx context.Context) ([]drawing.ElementID, error)

	// Subscribe registers change handlers and returns an unsubscribe
	// function.
	Subscribe(h Handlers) (unsubscribe func())
}
