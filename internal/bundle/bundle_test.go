// ABOUTME: Tests for JSON-lines bundle round trips and malformed input handling
// ABOUTME: Covers write/read symmetry, controller restore, and decode failures

package bundle

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glassa-work/paperlike/internal/controller"
	"github.com/glassa-work/paperlike/internal/drawing"
	"github.com/glassa-work/paperlike/internal/store"
)

func testBundle(t *testing.T) Bundle {
	t.Helper()
	ctrl := controller.New("d1", store.NewMemoryEngine())
	ctx := context.Background()

	_, err := ctrl.AddElement(ctx, drawing.Element{"id": "e1", "type": "rectangle", "x": 10.0})
	require.NoError(t, err)
	require.NoError(t, ctrl.UpdateElement(ctx, "e1", drawing.FieldPatch{"x": 50.0}))
	require.NoError(t, ctrl.UpsertFiles(ctx, drawing.FileMap{
		"f1": {MimeType: "image/png", DataURL: "data:image/png;base64,AAAA"},
	}))
	ok, err := ctrl.Undo(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	scene, err := ctrl.Scene(ctx)
	require.NoError(t, err)
	return Bundle{
		Scene:        scene,
		Actions:      ctrl.Actions(),
		HistoryState: ctrl.HistoryState(),
	}
}

func TestBundle_WriteReadRoundTrip(t *testing.T) {
	original := testBundle(t)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, original))

	// One record per line: manifest + scene + one line per action.
	lines := strings.Count(buf.String(), "\n")
	assert.Equal(t, 2+len(original.Actions), lines)

	restored, err := Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, original.Scene.ID, restored.Scene.ID)
	assert.Equal(t, original.Scene.Elements, restored.Scene.Elements)
	assert.Equal(t, original.Scene.AppState, restored.Scene.AppState)
	assert.Equal(t, original.Scene.Files, restored.Scene.Files)
	assert.Equal(t, original.HistoryState, restored.HistoryState)
	require.Len(t, restored.Actions, len(original.Actions))
	for i := range original.Actions {
		assert.Equal(t, original.Actions[i].HistoryGroupID, restored.Actions[i].HistoryGroupID)
		assert.Equal(t, original.Actions[i].Forward, restored.Actions[i].Forward)
		assert.Equal(t, original.Actions[i].Inverse, restored.Actions[i].Inverse)
	}
}

func TestBundle_RestoredBundleKeepsRedoWorking(t *testing.T) {
	original := testBundle(t)
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, original))
	restored, err := Read(&buf)
	require.NoError(t, err)

	ctrl := controller.New(restored.Scene.ID, store.NewMemoryEngine())
	ctx := context.Background()
	require.NoError(t, ctrl.LoadScene(ctx, restored.Scene, restored.Actions, restored.HistoryState))

	ok, err := ctrl.Redo(ctx)
	require.NoError(t, err)
	require.True(t, ok, "the undone action in the bundle redoes after restore")

	scene, err := ctrl.Scene(ctx)
	require.NoError(t, err)
	assert.Contains(t, scene.Files, drawing.FileID("f1"))
}

func TestBundle_EmptyInput(t *testing.T) {
	_, err := Read(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrMalformedBundle)
}

func TestBundle_MissingSceneRecord(t *testing.T) {
	_, err := Read(strings.NewReader(`{"version":1,"drawingId":"d1","historyState":{"undoCursor":-1,"actionCount":0}}` + "\n"))
	assert.ErrorIs(t, err, ErrMalformedBundle)
}

func TestBundle_MalformedActionLine(t *testing.T) {
	input := `{"version":1,"drawingId":"d1","historyState":{"undoCursor":-1,"actionCount":0}}
{"drawingId":"d1","elements":[],"appState":{},"files":{}}
this is not json
`
	_, err := Read(strings.NewReader(input))
	assert.ErrorIs(t, err, ErrMalformedBundle)
}

func TestBundle_UnknownPatchOpSurvivesRoundTrip(t *testing.T) {
	input := `{"version":2,"drawingId":"d1","historyState":{"undoCursor":0,"actionCount":1}}
{"drawingId":"d1","elements":[],"appState":{},"files":{}}
{"drawingId":"d1","historyGroupId":"g1","forward":[{"op":"future_op"}],"inverse":[],"timestamp":"2026-01-02T03:04:05Z"}
`
	b, err := Read(strings.NewReader(input))
	require.NoError(t, err, "newer format versions still read")
	require.Len(t, b.Actions, 1)
	assert.Equal(t, drawing.PatchOp("future_op"), b.Actions[0].Forward[0].Op)
}
