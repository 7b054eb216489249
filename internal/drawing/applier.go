// ABOUTME: Pure patch application over scenes
// ABOUTME: Folds patches left-to-right, returning new containers every step

package drawing

// ApplyPatch applies one patch to a scene, returning a new scene. The
// input is never mutated and the result never aliases it. The scene ID
// is fixed. An unrecognized op returns the containers unchanged.
func ApplyPatch(scene Scene, p Patch) Scene {
	out := scene.Clone()
	switch p.Op {
	case PatchOpAddElement:
		out.Elements = append(out.Elements, p.Element.Clone())
	case PatchOpUpdateElement:
		for i, e := range out.Elements {
			if e.ID() == p.ElementID {
				out.Elements[i] = e.Apply(p.Fields)
				break
			}
		}
	case PatchOpDeleteElement:
		kept := make([]Element, 0, len(out.Elements))
		for _, e := range out.Elements {
			if e.ID() != p.ElementID {
				kept = append(kept, e)
			}
		}
		out.Elements = kept
	case PatchOpSetAppState:
		out.AppState = out.AppState.Merge(p.Fields)
	case PatchOpUpsertFiles:
		out.Files = out.Files.Merge(p.Files)
	default:
		// Unknown op: pass the scene through unchanged. Logs written
		// by a newer format version replay without aborting.
	}
	return out
}

// ApplyPatches folds a patch list left-to-right through ApplyPatch.
// Deterministic given input order; no hidden state.
func ApplyPatches(scene Scene, patches []Patch) Scene {
	out := scene
	for _, p := range patches {
		out = ApplyPatch(out, p)
	}
	return out
}
