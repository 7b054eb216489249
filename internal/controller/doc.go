// Package controller orchestrates one drawing's storage engine, action
// recorder, and change emitter.
//
// Every mutating operation is a single synchronous call: the engine
// mutates and returns the pre-image, the controller derives a minimal
// inverse patch from it, the recorder logs the forward/inverse pair,
// and subscribers receive the new change state — all before the call
// returns.
//
// Undo and redo ask the recorder for a patch set, replay it against the
// engine's current snapshot through the pure applier, and reload the
// engine with the result.
//
// The controller assumes exactly one active writer per drawing; the
// surrounding system enforces that with a lease. Concurrent calls on
// one Controller must be serialized by the caller.
package controller
