// ABOUTME: Tests for the undo/redo action log and cursor arithmetic
// ABOUTME: Covers record, undo/redo sentinels, branch truncation, and load

package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glassa-work/paperlike/internal/drawing"
)

func forwardFor(id string) []drawing.Patch {
	return []drawing.Patch{drawing.AddElement(drawing.Element{"id": id})}
}

func inverseFor(id string) []drawing.Patch {
	return []drawing.Patch{drawing.DeleteElement(drawing.ElementID(id))}
}

func TestRecorder_EmptyLog(t *testing.T) {
	r := NewRecorder("d1")

	state := r.State()
	assert.Equal(t, -1, state.UndoCursor)
	assert.Equal(t, 0, state.ActionCount)
	assert.False(t, state.CanUndo())
	assert.False(t, state.CanRedo())

	_, ok := r.Undo()
	assert.False(t, ok)
	_, ok = r.Redo()
	assert.False(t, ok)
	assert.Equal(t, state, r.State(), "failed undo/redo leave no trace")
}

func TestRecorder_RecordAdvancesCursor(t *testing.T) {
	r := NewRecorder("d1")

	action := r.Record(forwardFor("e1"), inverseFor("e1"))

	assert.Equal(t, drawing.DrawingID("d1"), action.DrawingID)
	assert.NotEmpty(t, action.HistoryGroupID)
	assert.False(t, action.Timestamp.IsZero())

	state := r.State()
	assert.Equal(t, 0, state.UndoCursor)
	assert.Equal(t, 1, state.ActionCount)
	assert.True(t, state.CanUndo())
	assert.False(t, state.CanRedo())
}

func TestRecorder_EachRecordGetsFreshGroupID(t *testing.T) {
	r := NewRecorder("d1")

	a := r.Record(forwardFor("e1"), inverseFor("e1"))
	b := r.Record(forwardFor("e2"), inverseFor("e2"))

	assert.NotEqual(t, a.HistoryGroupID, b.HistoryGroupID)
}

func TestRecorder_UndoReturnsInverseAndStepsBack(t *testing.T) {
	r := NewRecorder("d1")
	r.Record(forwardFor("e1"), inverseFor("e1"))
	r.Record(forwardFor("e2"), inverseFor("e2"))

	patches, ok := r.Undo()
	require.True(t, ok)
	require.Len(t, patches, 1)
	assert.Equal(t, drawing.PatchOpDeleteElement, patches[0].Op)
	assert.Equal(t, drawing.ElementID("e2"), patches[0].ElementID)
	assert.Equal(t, 0, r.State().UndoCursor)
}

func TestRecorder_RedoReturnsForwardAndStepsForward(t *testing.T) {
	r := NewRecorder("d1")
	r.Record(forwardFor("e1"), inverseFor("e1"))
	_, ok := r.Undo()
	require.True(t, ok)

	patches, ok := r.Redo()
	require.True(t, ok)
	require.Len(t, patches, 1)
	assert.Equal(t, drawing.PatchOpAddElement, patches[0].Op)
	assert.Equal(t, 0, r.State().UndoCursor)

	_, ok = r.Redo()
	assert.False(t, ok, "cursor at end of log")
}

func TestRecorder_RecordAfterUndoTruncatesRedoBranch(t *testing.T) {
	r := NewRecorder("d1")
	r.Record(forwardFor("e1"), inverseFor("e1"))
	r.Record(forwardFor("e2"), inverseFor("e2"))
	r.Record(forwardFor("e3"), inverseFor("e3"))

	_, ok := r.Undo()
	require.True(t, ok)
	_, ok = r.Undo()
	require.True(t, ok)
	cursorBefore := r.State().UndoCursor
	require.Equal(t, 0, cursorBefore)

	r.Record(forwardFor("e4"), inverseFor("e4"))

	state := r.State()
	assert.Equal(t, cursorBefore+2, state.ActionCount, "log shrinks to cursor+2")
	assert.Equal(t, state.ActionCount-1, state.UndoCursor)
	assert.False(t, state.CanRedo())

	// The discarded branch is gone for good, not hidden.
	actions := r.Actions()
	require.Len(t, actions, 2)
	assert.Equal(t, drawing.ElementID("e1"), actions[0].Forward[0].Element.ID())
	assert.Equal(t, drawing.ElementID("e4"), actions[1].Forward[0].Element.ID())
}

func TestRecorder_LoadReplacesLogAndCursorVerbatim(t *testing.T) {
	r := NewRecorder("d1")
	r.Record(forwardFor("old"), inverseFor("old"))

	restored := []drawing.Action{
		{DrawingID: "d1", HistoryGroupID: "g1", Forward: forwardFor("e1"), Inverse: inverseFor("e1")},
		{DrawingID: "d1", HistoryGroupID: "g2", Forward: forwardFor("e2"), Inverse: inverseFor("e2")},
	}
	r.Load(restored, drawing.HistoryState{UndoCursor: 0, ActionCount: 2})

	state := r.State()
	assert.Equal(t, 0, state.UndoCursor)
	assert.Equal(t, 2, state.ActionCount)
	assert.True(t, state.CanRedo(), "cursor behind end after load")

	patches, ok := r.Redo()
	require.True(t, ok)
	assert.Equal(t, drawing.ElementID("e2"), patches[0].Element.ID())
}

func TestRecorder_ActionsReturnsCopies(t *testing.T) {
	r := NewRecorder("d1")
	r.Record(forwardFor("e1"), inverseFor("e1"))

	actions := r.Actions()
	actions[0].Forward[0].Element["id"] = "tampered"

	fresh := r.Actions()
	assert.Equal(t, drawing.ElementID("e1"), fresh[0].Forward[0].Element.ID())
}

func TestRecorder_RecordCopiesCallerPatches(t *testing.T) {
	r := NewRecorder("d1")
	forward := forwardFor("e1")
	r.Record(forward, inverseFor("e1"))

	forward[0].Element["id"] = "tampered"

	actions := r.Actions()
	assert.Equal(t, drawing.ElementID("e1"), actions[0].Forward[0].Element.ID())
}
