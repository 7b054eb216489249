// ABOUTME: Scene, Element, AppState, and file-reference types for one drawing
// ABOUTME: All containers copy on transformation; nothing aliases shared storage

package drawing

// Element is one graphic object in a scene: an open key→value map with
// a required "id" key. Known keys include "type", "x", "y", "width",
// and "height"; any extension keys round-trip untouched.
type Element map[string]any

// FieldPatch is a partial update to an Element or to AppState. Keys
// overwrite; a nil value removes the key.
type FieldPatch map[string]any

// AppState is the open view-state map of a drawing (zoom, scroll,
// selected tool, and whatever else the host editor keeps).
type AppState map[string]any

// FileEntry is one embedded file reference.
type FileEntry struct {
	MimeType string `json:"mimeType"`
	DataURL  string `json:"dataURL"`
}

// FileMap maps file IDs to their embedded file references.
type FileMap map[FileID]FileEntry

// Scene is the full content of one drawing. ID never changes for the
// scene's lifetime; the three containers are only ever replaced, never
// mutated in place.
type Scene struct {
	ID       DrawingID `json:"drawingId"`
	Elements []Element `json:"elements"`
	AppState AppState  `json:"appState"`
	Files    FileMap   `json:"files"`
}

// NewElement builds an element of the given type with a fresh ID and
// the supplied fields. A conflicting "id" field is ignored.
func NewElement(elementType string, fields FieldPatch) Element {
	e := Element{
		"id":   NewElementID().String(),
		"type": elementType,
	}
	for k, v := range fields {
		if k == "id" || v == nil {
			continue
		}
		e[k] = cloneValue(v)
	}
	return e
}

// ID returns the element's identifier, or "" if the element has none.
func (e Element) ID() ElementID {
	s, _ := e["id"].(string)
	return ElementID(s)
}

// Clone returns a deep copy of the element.
func (e Element) Clone() Element {
	if e == nil {
		return nil
	}
	out := make(Element, len(e))
	for k, v := range e {
		out[k] = cloneValue(v)
	}
	return out
}

// Apply merges a field patch onto a copy of the element, forcing the
// original "id" back even if the patch supplies a conflicting one.
func (e Element) Apply(patch FieldPatch) Element {
	out := e.Clone()
	id := e["id"]
	for k, v := range patch {
		if v == nil {
			delete(out, k)
			continue
		}
		out[k] = cloneValue(v)
	}
	if id != nil {
		out["id"] = id
	} else {
		delete(out, "id")
	}
	return out
}

// Clone returns a deep copy of the app state.
func (s AppState) Clone() AppState {
	if s == nil {
		return nil
	}
	out := make(AppState, len(s))
	for k, v := range s {
		out[k] = cloneValue(v)
	}
	return out
}

// Merge shallow-merges a field patch onto a copy of the app state.
func (s AppState) Merge(patch FieldPatch) AppState {
	out := s.Clone()
	if out == nil {
		out = AppState{}
	}
	for k, v := range patch {
		if v == nil {
			delete(out, k)
			continue
		}
		out[k] = cloneValue(v)
	}
	return out
}

// Clone returns a copy of the file map. FileEntry is a plain value, so
// a shallow copy of the map is a full copy.
func (m FileMap) Clone() FileMap {
	if m == nil {
		return nil
	}
	out := make(FileMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Merge upserts the given entries onto a copy of the file map, last
// write wins per key.
func (m FileMap) Merge(files FileMap) FileMap {
	out := m.Clone()
	if out == nil {
		out = FileMap{}
	}
	for k, v := range files {
		out[k] = v
	}
	return out
}

// CloneElements returns a deep copy of an element list.
func CloneElements(elements []Element) []Element {
	if elements == nil {
		return nil
	}
	out := make([]Element, len(elements))
	for i, e := range elements {
		out[i] = e.Clone()
	}
	return out
}

// Clone returns a deep copy of the scene.
func (s Scene) Clone() Scene {
	return Scene{
		ID:       s.ID,
		Elements: CloneElements(s.Elements),
		AppState: s.AppState.Clone(),
		Files:    s.Files.Clone(),
	}
}

// cloneValue deep-copies the JSON-shaped values that appear inside
// elements and app state. Scalars are returned as-is.
func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = cloneValue(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}
