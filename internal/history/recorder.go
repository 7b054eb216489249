// ABOUTME: Branch-aware undo/redo action log with a single undo cursor
// ABOUTME: Records forward/inverse patch pairs; new edits truncate abandoned redo branches

package history

import (
	"log/slog"
	"time"

	"github.com/glassa-work/paperlike/internal/drawing"
)

// Recorder is the action log for one drawing. Invariants:
// -1 <= cursor <= len(actions)-1, and State().ActionCount always equals
// the log length. Not safe for concurrent use; the single-writer lease
// upstream serializes access.
type Recorder struct {
	drawingID drawing.DrawingID
	actions   []drawing.Action
	cursor    int

	// now and newGroupID are swappable for tests.
	now        func() time.Time
	newGroupID func() drawing.HistoryGroupID

	logger *slog.Logger
}

// NewRecorder creates an empty recorder for the given drawing.
func NewRecorder(drawingID drawing.DrawingID) *Recorder {
	return &Recorder{
		drawingID:  drawingID,
		cursor:     -1,
		now:        time.Now,
		newGroupID: drawing.NewHistoryGroupID,
		logger:     slog.Default().With("component", "history", "drawing_id", drawingID.String()),
	}
}

// Record appends a new action for the given forward/inverse pair and
// moves the cursor to the end of the log. Any actions beyond the
// current cursor — an abandoned redo branch — are discarded first;
// that discard is irreversible.
func (r *Recorder) Record(forward, inverse []drawing.Patch) drawing.Action {
	if discarded := len(r.actions) - (r.cursor + 1); discarded > 0 {
		r.actions = r.actions[:r.cursor+1]
		r.logger.Debug("discarded redo branch", "actions", discarded)
	}

	action := drawing.Action{
		DrawingID:      r.drawingID,
		HistoryGroupID: r.newGroupID(),
		Forward:        drawing.ClonePatches(forward),
		Inverse:        drawing.ClonePatches(inverse),
		Timestamp:      r.now(),
	}
	r.actions = append(r.actions, action)
	r.cursor = len(r.actions) - 1
	return action.Clone()
}

// Undo returns the inverse patches of the action at the cursor and
// steps the cursor back. ok is false, with zero side effects, when
// there is nothing to undo.
func (r *Recorder) Undo() (patches []drawing.Patch, ok bool) {
	if r.cursor < 0 {
		return nil, false
	}
	patches = drawing.ClonePatches(r.actions[r.cursor].Inverse)
	r.cursor--
	return patches, true
}

// Redo returns the forward patches of the action after the cursor and
// steps the cursor forward. ok is false, with zero side effects, when
// there is nothing to redo.
func (r *Recorder) Redo() (patches []drawing.Patch, ok bool) {
	if r.cursor >= len(r.actions)-1 {
		return nil, false
	}
	r.cursor++
	return drawing.ClonePatches(r.actions[r.cursor].Forward), true
}

// Load replaces the log and cursor wholesale, trusting the caller. Used
// only by the import/restore path; no consistency validation happens.
func (r *Recorder) Load(actions []drawing.Action, state drawing.HistoryState) {
	r.actions = make([]drawing.Action, len(actions))
	for i, a := range actions {
		r.actions[i] = a.Clone()
	}
	r.cursor = state.UndoCursor
}

// State returns the current cursor position and log length.
func (r *Recorder) State() drawing.HistoryState {
	return drawing.HistoryState{
		UndoCursor:  r.cursor,
		ActionCount: len(r.actions),
	}
}

// Actions returns a copy of the action log.
func (r *Recorder) Actions() []drawing.Action {
	out := make([]drawing.Action, len(r.actions))
	for i, a := range r.actions {
		out[i] = a.Clone()
	}
	return out
}
