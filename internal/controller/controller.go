// ABOUTME: Orchestrator tying engine mutations to undo recording and change emission
// ABOUTME: Builds minimal inverse patches from engine pre-images; replays undo/redo patch sets

package controller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/glassa-work/paperlike/internal/drawing"
	"github.com/glassa-work/paperlike/internal/emitter"
	"github.com/glassa-work/paperlike/internal/history"
	"github.com/glassa-work/paperlike/internal/store"
)

// ChangeState is the post-mutation snapshot delivered to OnChange
// subscribers.
type ChangeState struct {
	DrawingID    drawing.DrawingID
	HistoryState drawing.HistoryState
	Actions      []drawing.Action
	CanUndo      bool
	CanRedo      bool
}

// Controller exposes the editing surface for one drawing. Instantiate
// one engine/recorder/controller triple per drawing; there are no
// package-level singletons.
type Controller struct {
	drawingID drawing.DrawingID
	engine    store.Engine
	recorder  *history.Recorder
	changes   *emitter.Emitter[ChangeState]
	logger    *slog.Logger
}

// New creates a controller for the given drawing on the given engine.
func New(drawingID drawing.DrawingID, engine store.Engine) *Controller {
	return &Controller{
		drawingID: drawingID,
		engine:    engine,
		recorder:  history.NewRecorder(drawingID),
		changes:   emitter.New[ChangeState](),
		logger:    slog.Default().With("component", "controller", "drawing_id", drawingID.String()),
	}
}

// DrawingID returns the drawing this controller edits.
func (c *Controller) DrawingID() drawing.DrawingID {
	return c.drawingID
}

// AddElement stores the element and records the edit. The inverse is a
// delete of the element's id.
func (c *Controller) AddElement(ctx context.Context, element drawing.Element) (drawing.Element, error) {
	stored, err := c.engine.AddElement(ctx, element)
	if err != nil {
		return nil, fmt.Errorf("adding element: %w", err)
	}
	c.recorder.Record(
		[]drawing.Patch{drawing.AddElement(stored)},
		[]drawing.Patch{drawing.DeleteElement(stored.ID())},
	)
	c.emit()
	return stored, nil
}

// UpdateElement merges fields onto the element and records the edit.
// The inverse restores, from the pre-image, exactly the fields the
// forward patch touches. An unknown id is a silent no-op: nothing is
// recorded and nothing is emitted.
func (c *Controller) UpdateElement(ctx context.Context, id drawing.ElementID, fields drawing.FieldPatch) error {
	previous, err := c.engine.UpdateElement(ctx, id, fields)
	if errors.Is(err, store.ErrElementNotFound) {
		c.logger.Debug("update of unknown element ignored", "element_id", id.String())
		return nil
	}
	if err != nil {
		return fmt.Errorf("updating element: %w", err)
	}
	c.recorder.Record(
		[]drawing.Patch{drawing.UpdateElement(id, fields)},
		[]drawing.Patch{drawing.UpdateElement(id, projectFields(previous, fields))},
	)
	c.emit()
	return nil
}

// DeleteElement removes the element and records the edit. The inverse
// re-adds the pre-image. An unknown id is a silent no-op.
func (c *Controller) DeleteElement(ctx context.Context, id drawing.ElementID) error {
	removed, err := c.engine.DeleteElement(ctx, id)
	if errors.Is(err, store.ErrElementNotFound) {
		c.logger.Debug("delete of unknown element ignored", "element_id", id.String())
		return nil
	}
	if err != nil {
		return fmt.Errorf("deleting element: %w", err)
	}
	c.recorder.Record(
		[]drawing.Patch{drawing.DeleteElement(id)},
		[]drawing.Patch{drawing.AddElement(removed)},
	)
	c.emit()
	return nil
}

// SetAppState shallow-merges fields onto the view state and records
// the edit with the same minimal-inverse projection as element updates.
func (c *Controller) SetAppState(ctx context.Context, fields drawing.FieldPatch) error {
	previous, err := c.engine.SetAppState(ctx, fields)
	if err != nil {
		return fmt.Errorf("setting app state: %w", err)
	}
	c.recorder.Record(
		[]drawing.Patch{drawing.SetAppState(fields)},
		[]drawing.Patch{drawing.SetAppState(projectFields(previous, fields))},
	)
	c.emit()
	return nil
}

// UpsertFiles merges file references and records the edit with an
// empty inverse: files are additive-only in this design, and undo does
// not remove them.
func (c *Controller) UpsertFiles(ctx context.Context, files drawing.FileMap) error {
	if err := c.engine.UpsertFiles(ctx, files); err != nil {
		return fmt.Errorf("upserting files: %w", err)
	}
	c.recorder.Record(
		[]drawing.Patch{drawing.UpsertFiles(files)},
		nil,
	)
	c.emit()
	return nil
}

// Undo replays the inverse patches of the most recent action against
// the engine's current snapshot. Returns false, with zero side
// effects, when there is nothing to undo.
func (c *Controller) Undo(ctx context.Context) (bool, error) {
	return c.replay(ctx, c.recorder.Undo)
}

// Redo replays the forward patches of the next action. Returns false,
// with zero side effects, when there is nothing to redo.
func (c *Controller) Redo(ctx context.Context) (bool, error) {
	return c.replay(ctx, c.recorder.Redo)
}

func (c *Controller) replay(ctx context.Context, step func() ([]drawing.Patch, bool)) (bool, error) {
	patches, ok := step()
	if !ok {
		return false, nil
	}
	snap, err := c.engine.Snapshot(ctx)
	if err != nil {
		return false, fmt.Errorf("reading snapshot: %w", err)
	}
	scene := drawing.ApplyPatches(drawing.Scene{
		ID:       c.drawingID,
		Elements: snap.Elements,
		AppState: snap.AppState,
		Files:    snap.Files,
	}, patches)
	if err := c.engine.LoadSnapshot(ctx, store.Snapshot{
		Elements: scene.Elements,
		AppState: scene.AppState,
		Files:    scene.Files,
	}); err != nil {
		return false, fmt.Errorf("loading replayed snapshot: %w", err)
	}
	c.emit()
	return true, nil
}

// LoadScene replaces the scene, the action log, and the cursor
// wholesale, bypassing normal recording. Used by the import/restore
// path.
func (c *Controller) LoadScene(ctx context.Context, scene drawing.Scene, actions []drawing.Action, state drawing.HistoryState) error {
	if err := c.engine.LoadSnapshot(ctx, store.Snapshot{
		Elements: scene.Elements,
		AppState: scene.AppState,
		Files:    scene.Files,
	}); err != nil {
		return fmt.Errorf("loading scene: %w", err)
	}
	c.recorder.Load(actions, state)
	c.emit()
	return nil
}

// SetSelection passes through to the engine. Selection is never
// logged and never undoable.
func (c *Controller) SetSelection(ctx context.Context, ids []drawing.ElementID) error {
	return c.engine.SetSelection(ctx, ids)
}

// Scene returns the engine's current content as a scene.
func (c *Controller) Scene(ctx context.Context) (drawing.Scene, error) {
	snap, err := c.engine.Snapshot(ctx)
	if err != nil {
		return drawing.Scene{}, fmt.Errorf("reading snapshot: %w", err)
	}
	return drawing.Scene{
		ID:       c.drawingID,
		Elements: snap.Elements,
		AppState: snap.AppState,
		Files:    snap.Files,
	}, nil
}

// HistoryState returns the recorder's current cursor state.
func (c *Controller) HistoryState() drawing.HistoryState {
	return c.recorder.State()
}

// Actions returns a copy of the recorded action log.
func (c *Controller) Actions() []drawing.Action {
	return c.recorder.Actions()
}

// OnChange subscribes to post-mutation change states and returns an
// unsubscribe function.
func (c *Controller) OnChange(fn func(ChangeState)) func() {
	return c.changes.On(fn)
}

func (c *Controller) emit() {
	state := c.recorder.State()
	c.changes.Emit(ChangeState{
		DrawingID:    c.drawingID,
		HistoryState: state,
		Actions:      c.recorder.Actions(),
		CanUndo:      state.CanUndo(),
		CanRedo:      state.CanRedo(),
	})
}

// projectFields builds the minimal inverse of a field patch: for every
// key the forward patch touches, the pre-image's value — or nil when
// the pre-image lacked the key, so replay removes it again.
func projectFields[M ~map[string]any](previous M, fields drawing.FieldPatch) drawing.FieldPatch {
	out := make(drawing.FieldPatch, len(fields))
	for k := range fields {
		if v, ok := previous[k]; ok {
			out[k] = v
		} else {
			out[k] = nil
		}
	}
	return out
}
