// Package history owns the per-drawing action log and undo cursor. It
// knows nothing about how the scene is stored: record takes a
// forward/inverse patch pair, undo and redo hand back the next patch
// set to apply.
//
// Recording while the cursor sits behind the end of the log discards
// the abandoned redo branch permanently, not merely hides it.
package history
