// ABOUTME: Tests for element/app-state merge semantics and history cursor predicates
// ABOUTME: Covers deep-copy independence, nil-removal, and id force-restore

package drawing

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestElement_Apply_ForcesOriginalID(t *testing.T) {
	el := Element{"id": "e1", "x": 1.0}

	out := el.Apply(FieldPatch{"id": "other", "x": 2.0})

	assert.Equal(t, ElementID("e1"), out.ID())
	assert.Equal(t, 2.0, out["x"])
	assert.Equal(t, 1.0, el["x"], "receiver must not change")
}

func TestElement_Clone_DeepCopiesNestedValues(t *testing.T) {
	el := Element{
		"id":     "e1",
		"points": []any{[]any{0.0, 0.0}, []any{10.0, 10.0}},
		"meta":   map[string]any{"locked": false},
	}

	out := el.Clone()
	out["points"].([]any)[0].([]any)[0] = 99.0
	out["meta"].(map[string]any)["locked"] = true

	assert.Equal(t, 0.0, el["points"].([]any)[0].([]any)[0])
	assert.Equal(t, false, el["meta"].(map[string]any)["locked"])
}

func TestNewElement_GeneratesIDAndIgnoresConflicting(t *testing.T) {
	el := NewElement("rectangle", FieldPatch{"id": "sneaky", "x": 4.0})

	assert.NotEqual(t, ElementID("sneaky"), el.ID())
	assert.NotEmpty(t, el.ID())
	assert.Equal(t, "rectangle", el["type"])
}

func TestAppState_Merge_NilRemovesKey(t *testing.T) {
	state := AppState{"zoom": 1.0, "grid": true}

	out := state.Merge(FieldPatch{"grid": nil, "theme": "light"})

	_, present := out["grid"]
	assert.False(t, present)
	assert.Equal(t, "light", out["theme"])
	assert.Equal(t, true, state["grid"], "receiver must not change")
}

func TestHistoryState_CursorPredicates(t *testing.T) {
	tests := []struct {
		name    string
		state   HistoryState
		canUndo bool
		canRedo bool
	}{
		{"empty log", HistoryState{UndoCursor: -1, ActionCount: 0}, false, false},
		{"one action at end", HistoryState{UndoCursor: 0, ActionCount: 1}, true, false},
		{"fully undone", HistoryState{UndoCursor: -1, ActionCount: 3}, false, true},
		{"mid log", HistoryState{UndoCursor: 1, ActionCount: 3}, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.canUndo, tt.state.CanUndo())
			assert.Equal(t, tt.canRedo, tt.state.CanRedo())
		})
	}
}

func TestAction_JSONRoundTripKeepsUnknownOps(t *testing.T) {
	raw := `{"drawingId":"d1","historyGroupId":"g1","forward":[{"op":"teleport_element","elementId":"e1"}],"inverse":[],"timestamp":"2026-01-02T03:04:05Z"}`

	var action Action
	require.NoError(t, json.Unmarshal([]byte(raw), &action))
	require.Len(t, action.Forward, 1)
	assert.Equal(t, PatchOp("teleport_element"), action.Forward[0].Op)

	// Replaying the unknown op leaves a scene untouched.
	scene := Scene{ID: "d1", Elements: []Element{{"id": "e1"}}}
	out := ApplyPatches(scene, action.Forward)
	assert.Equal(t, scene.Elements, out.Elements)
}
