// ABOUTME: JSON-lines export/import of a drawing's scene, action log, and history state
// ABOUTME: Manifest line, scene line, then one action per line

package bundle

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/glassa-work/paperlike/internal/drawing"
)

// ErrMalformedBundle is returned when the input is not a valid bundle.
var ErrMalformedBundle = errors.New("malformed bundle")

// formatVersion is written into every manifest. Readers accept any
// version: unknown patch ops inside newer bundles replay as no-ops.
const formatVersion = 1

// maxLineBytes bounds a single record. Data URLs for embedded files
// dominate line size.
const maxLineBytes = 64 * 1024 * 1024

// Bundle is the full persisted form of one drawing.
type Bundle struct {
	Scene        drawing.Scene
	Actions      []drawing.Action
	HistoryState drawing.HistoryState
}

type manifest struct {
	Version      int                  `json:"version"`
	DrawingID    drawing.DrawingID    `json:"drawingId"`
	HistoryState drawing.HistoryState `json:"historyState"`
}

// Write streams the bundle to w: manifest, scene, then one action per
// line.
func Write(w io.Writer, b Bundle) error {
	enc := json.NewEncoder(w)
	if err := enc.Encode(manifest{
		Version:      formatVersion,
		DrawingID:    b.Scene.ID,
		HistoryState: b.HistoryState,
	}); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	if err := enc.Encode(b.Scene); err != nil {
		return fmt.Errorf("writing scene: %w", err)
	}
	for i, action := range b.Actions {
		if err := enc.Encode(action); err != nil {
			return fmt.Errorf("writing action %d: %w", i, err)
		}
	}
	return nil
}

// Read parses a bundle from r. Records that are not valid JSON fail
// with ErrMalformedBundle; unknown patch ops inside actions do not.
func Read(r io.Reader) (Bundle, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var m manifest
	if err := scanLine(scanner, "manifest", &m); err != nil {
		return Bundle{}, err
	}

	var scene drawing.Scene
	if err := scanLine(scanner, "scene", &scene); err != nil {
		return Bundle{}, err
	}

	var actions []drawing.Action
	line := 2
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		var action drawing.Action
		if err := json.Unmarshal(raw, &action); err != nil {
			return Bundle{}, fmt.Errorf("%w: action at line %d: %v", ErrMalformedBundle, line, err)
		}
		actions = append(actions, action)
	}
	if err := scanner.Err(); err != nil {
		return Bundle{}, fmt.Errorf("reading bundle: %w", err)
	}

	return Bundle{
		Scene:        scene,
		Actions:      actions,
		HistoryState: m.HistoryState,
	}, nil
}

func scanLine(scanner *bufio.Scanner, what string, into any) error {
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("reading %s: %w", what, err)
		}
		return fmt.Errorf("%w: missing %s record", ErrMalformedBundle, what)
	}
	if err := json.Unmarshal(scanner.Bytes(), into); err != nil {
		return fmt.Errorf("%w: %s record: %v", ErrMalformedBundle, what, err)
	}
	return nil
}
