// ABOUTME: Tagged patch variant describing one declarative scene mutation
// ABOUTME: JSON-serializable with an "op" tag; unknown ops survive decode

package drawing

// PatchOp tags which mutation a Patch describes.
type PatchOp string

const (
	PatchOpAddElement    PatchOp = "add_element"
	PatchOpUpdateElement PatchOp = "update_element"
	PatchOpDeleteElement PatchOp = "delete_element"
	PatchOpSetAppState   PatchOp = "set_app_state"
	PatchOpUpsertFiles   PatchOp = "upsert_files"
)

// Patch is one declarative mutation instruction. Exactly the fields
// relevant to its Op are set; the rest stay zero. Ops outside the known
// set decode without error and apply as no-ops.
type Patch struct {
	Op        PatchOp    `json:"op"`
	Element   Element    `json:"element,omitempty"`   // add_element
	ElementID ElementID  `json:"elementId,omitempty"` // update_element, delete_element
	Fields    FieldPatch `json:"fields,omitempty"`    // update_element, set_app_state
	Files     FileMap    `json:"files,omitempty"`     // upsert_files
}

// AddElement builds a patch appending the given element.
func AddElement(element Element) Patch {
	return Patch{Op: PatchOpAddElement, Element: element.Clone()}
}

// UpdateElement builds a patch merging fields onto the element with the
// given id.
func UpdateElement(id ElementID, fields FieldPatch) Patch {
	return Patch{Op: PatchOpUpdateElement, ElementID: id, Fields: FieldPatch(AppState(fields).Clone())}
}

// DeleteElement builds a patch removing the element with the given id.
func DeleteElement(id ElementID) Patch {
	return Patch{Op: PatchOpDeleteElement, ElementID: id}
}

// SetAppState builds a patch shallow-merging fields onto the view
// state.
func SetAppState(fields FieldPatch) Patch {
	return Patch{Op: PatchOpSetAppState, Fields: FieldPatch(AppState(fields).Clone())}
}

// UpsertFiles builds a patch upserting the given file references.
func UpsertFiles(files FileMap) Patch {
	return Patch{Op: PatchOpUpsertFiles, Files: files.Clone()}
}

// Clone returns a deep copy of the patch.
func (p Patch) Clone() Patch {
	return Patch{
		Op:        p.Op,
		Element:   p.Element.Clone(),
		ElementID: p.ElementID,
		Fields:    FieldPatch(AppState(p.Fields).Clone()),
		Files:     p.Files.Clone(),
	}
}

// ClonePatches returns a deep copy of a patch list.
func ClonePatches(patches []Patch) []Patch {
	if patches == nil {
		return nil
	}
	out := make([]Patch, len(patches))
	for i, p := range patches {
		out[i] = p.Clone()
	}
	return out
}
