// Package drawing defines the data model for one editable drawing: the
// scene (elements, view state, embedded file references), the patch
// variant that describes a single mutation, the recorded action pairing
// a forward patch sequence with its inverse, and the undo-cursor state.
//
// # Data Model
//
// Core types:
//
//   - Scene: the full content of one drawing
//   - Element: one graphic object, an open key→value map with an
//     immutable "id" key
//   - Patch: one declarative mutation (add/update/delete element,
//     set app state, upsert files)
//   - Action: a forward/inverse patch pair representing one undoable
//     edit
//   - HistoryState: the undo cursor and action count
//
// Identifiers (DrawingID, ElementID, HistoryGroupID, FileID) are
// distinct named string types so they cannot be mixed across kinds.
//
// # Patch Application
//
// ApplyPatch and ApplyPatches are pure: they return new containers and
// never mutate their inputs. Replaying the same patches against the
// same scene always produces the same result. An unrecognized patch op
// leaves the scene unchanged rather than failing, so logs written by a
// newer format version replay without aborting mid-sequence.
//
// # Merge Semantics
//
// Field patches merge key-by-key; a nil value removes the key. This is
// what lets a minimal inverse undo a patch that introduced a previously
// absent key.
package drawing
