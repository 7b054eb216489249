// ABOUTME: Recorded undo/redo actions and the history cursor state
// ABOUTME: Each action pairs a forward patch sequence with its exact inverse

package drawing

import "time"

// Action is one recorded undoable edit: a forward patch sequence and
// the inverse sequence that undoes it. Applying Forward then Inverse to
// any scene restores that scene's element/appState/files content.
// Actions are immutable after record and serialize one-per-line.
type Action struct {
	DrawingID      DrawingID      `json:"drawingId"`
	HistoryGroupID HistoryGroupID `json:"historyGroupId"`
	Forward        []Patch        `json:"forward"`
	Inverse        []Patch        `json:"inverse"`
	Timestamp      time.Time      `json:"timestamp"`
}

// Clone returns a deep copy of the action.
func (a Action) Clone() Action {
	return Action{
		DrawingID:      a.DrawingID,
		HistoryGroupID: a.HistoryGroupID,
		Forward:        ClonePatches(a.Forward),
		Inverse:        ClonePatches(a.Inverse),
		Timestamp:      a.Timestamp,
	}
}

// HistoryState is the persisted cursor position of the undo log.
// Invariant: -1 <= UndoCursor <= ActionCount-1, and the action log
// length always equals ActionCount. A plain value, safe to serialize
// and restore verbatim.
type HistoryState struct {
	UndoCursor  int `json:"undoCursor"`
	ActionCount int `json:"actionCount"`
}

// CanUndo reports whether an undo step is available.
func (s HistoryState) CanUndo() bool {
	return s.UndoCursor >= 0
}

// CanRedo reports whether a redo step is available.
func (s HistoryState) CanRedo() bool {
	return s.UndoCursor < s.ActionCount-1
}
