// ABOUTME: Nominal identifier types for drawings, elements, files, and history groups
// ABOUTME: Distinct string wrappers so IDs of different kinds cannot be mixed

package drawing

import "github.com/google/uuid"

// DrawingID identifies one drawing. Immutable for the scene's lifetime.
type DrawingID string

// ElementID identifies one element within a scene. Immutable once the
// element is created; unique within a scene.
type ElementID string

// HistoryGroupID groups the patches of one recorded action into a
// single undoable unit.
type HistoryGroupID string

// FileID identifies one embedded file reference.
type FileID string

// NewDrawingID returns a fresh random DrawingID.
func NewDrawingID() DrawingID {
	return DrawingID(uuid.New().String())
}

// NewElementID returns a fresh random ElementID.
func NewElementID() ElementID {
	return ElementID(uuid.New().String())
}

// NewHistoryGroupID returns a fresh random HistoryGroupID.
func NewHistoryGroupID() HistoryGroupID {
	return HistoryGroupID(uuid.New().String())
}

func (id DrawingID) String() string      { return string(id) }
func (id ElementID) String() string      { return string(id) }
func (id HistoryGroupID) String() string { return string(id) }
func (id FileID) String() string         { return string(id) }
