// ABOUTME: SQLite implementation of the Engine interface using modernc.org/sqlite
// ABOUTME: Elements persist as JSON rows with explicit ordering; schema auto-created

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/glassa-work/paperlike/internal/drawing"
)

// SQLiteEngine is a persistent Engine implementation. Element order is
// kept in an explicit position column; element bodies, app state, and
// file entries are stored as JSON. Selection and subscribers are
// per-process: selection is session view state, not document content.
type SQLiteEngine struct {
	db     *sql.DB
	logger *slog.Logger

	mu        sync.Mutex
	selection []drawing.ElementID

	subscribers subscriberSet
}

// NewSQLiteEngine opens (or creates) a SQLite-backed engine at the
// given path. Use ":memory:" for tests. Parent directories are created
// if needed.
func NewSQLiteEngine(path string) (*SQLiteEngine, error) {
	logger := slog.Default().With("component", "store")

	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// WAL mode for concurrent reads
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	e := &SQLiteEngine{db: db, logger: logger}
	if err := e.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	logger.Debug("SQLite engine initialized", "path", path)
	return e, nil
}

func (e *SQLiteEngine) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS elements (
			id TEXT PRIMARY KEY,
			position INTEGER NOT NULL,
			data TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_elements_position
			ON elements(position);

		CREATE TABLE IF NOT EXISTS app_state (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			data TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS files (
			id TEXT PRIMARY KEY,
			mime_type TEXT NOT NULL,
			data_url TEXT NOT NULL
		);
	`
	if _, err := e.db.Exec(schema); err != nil {
		return err
	}
	_, err := e.db.Exec(`INSERT OR IGNORE INTO app_state (id, data) VALUES (1, '{}')`)
	return err
}

// Close closes the underlying database.
func (e *SQLiteEngine) Close() error {
	return e.db.Close()
}

// Snapshot returns a deep copy of the current containers.
func (e *SQLiteEngine) Snapshot(ctx context.Context) (Snapshot, error) {
	elements, err := e.readElements(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	appState, err := e.readAppState(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	files, err := e.readFiles(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{Elements: elements, AppState: appState, Files: files}, nil
}

// LoadSnapshot replaces all three containers wholesale and notifies
// element-change subscribers.
func (e *SQLiteEngine) LoadSnapshot(ctx context.Context, snap Snapshot) error {
	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning load transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"elements", "files"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}
	for i, el := range snap.Elements {
		data, err := json.Marshal(el)
		if err != nil {
			return fmt.Errorf("encoding element %s: %w", el.ID(), err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO elements (id, position, data) VALUES (?, ?, ?)`,
			el.ID().String(), i, string(data)); err != nil {
			return fmt.Errorf("inserting element %s: %w", el.ID(), err)
		}
	}

	appState := snap.AppState
	if appState == nil {
		appState = drawing.AppState{}
	}
	stateData, err := json.Marshal(appState)
	if err != nil {
		return fmt.Errorf("encoding app state: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `UPDATE app_state SET data = ? WHERE id = 1`, string(stateData)); err != nil {
		return fmt.Errorf("writing app state: %w", err)
	}

	for id, entry := range snap.Files {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO files (id, mime_type, data_url) VALUES (?, ?, ?)`,
			id.String(), entry.MimeType, entry.DataURL); err != nil {
			return fmt.Errorf("inserting file %s: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing load: %w", err)
	}

	e.subscribers.notifyElements(drawing.CloneElements(snap.Elements))
	return nil
}

// AddElement stores the element at the end of the order and returns
// the stored copy.
func (e *SQLiteEngine) AddElement(ctx context.Context, element drawing.Element) (drawing.Element, error) {
	stored := element.Clone()
	data, err := json.Marshal(stored)
	if err != nil {
		return nil, fmt.Errorf("encoding element: %w", err)
	}
	if _, err := e.db.ExecContext(ctx,
		`INSERT INTO elements (id, position, data)
		 VALUES (?, (SELECT COALESCE(MAX(position), -1) + 1 FROM elements), ?)`,
		stored.ID().String(), string(data)); err != nil {
		return nil, fmt.Errorf("inserting element: %w", err)
	}
	e.notifyElementsChanged(ctx)
	return stored, nil
}

// UpdateElement merges fields onto the stored element, force-restoring
// the original id, and returns the pre-mutation copy.
func (e *SQLiteEngine) UpdateElement(ctx context.Context, id drawing.ElementID, fields drawing.FieldPatch) (drawing.Element, error) {
	previous, err := e.readElement(ctx, id)
	if err != nil {
		return nil, err
	}
	updated := previous.Apply(fields)
	data, err := json.Marshal(updated)
	if err != nil {
		return nil, fmt.Errorf("encoding element: %w", err)
	}
	if _, err := e.db.ExecContext(ctx,
		`UPDATE elements SET data = ? WHERE id = ?`, string(data), id.String()); err != nil {
		return nil, fmt.Errorf("updating element: %w", err)
	}
	e.notifyElementsChanged(ctx)
	return previous, nil
}

// DeleteElement removes the element, drops it from the current
// selection, and returns the removed copy.
func (e *SQLiteEngine) DeleteElement(ctx context.Context, id drawing.ElementID) (drawing.Element, error) {
	removed, err := e.readElement(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := e.db.ExecContext(ctx, `DELETE FROM elements WHERE id = ?`, id.String()); err != nil {
		return nil, fmt.Errorf("deleting element: %w", err)
	}

	e.mu.Lock()
	selectionChanged := false
	kept := e.selection[:0:0]
	for _, sel := range e.selection {
		if sel == id {
			selectionChanged = true
			continue
		}
		kept = append(kept, sel)
	}
	e.selection = kept
	selection := append([]drawing.ElementID(nil), e.selection...)
	e.mu.Unlock()

	e.notifyElementsChanged(ctx)
	if selectionChanged {
		e.subscribers.notifySelection(selection)
	}
	return removed, nil
}

// SetAppState shallow-merges onto the view state and returns the
// pre-merge copy.
func (e *SQLiteEngine) SetAppState(ctx context.Context, fields drawing.FieldPatch) (drawing.AppState, error) {
	previous, err := e.readAppState(ctx)
	if err != nil {
		return nil, err
	}
	merged := previous.Merge(fields)
	data, err := json.Marshal(merged)
	if err != nil {
		return nil, fmt.Errorf("encoding app state: %w", err)
	}
	if _, err := e.db.ExecContext(ctx, `UPDATE app_state SET data = ? WHERE id = 1`, string(data)); err != nil {
		return nil, fmt.Errorf("writing app state: %w", err)
	}
	return previous, nil
}

// UpsertFiles shallow-merges by key, last write wins per key.
func (e *SQLiteEngine) UpsertFiles(ctx context.Context, files drawing.FileMap) error {
	for id, entry := range files {
		if _, err := e.db.ExecContext(ctx,
			`INSERT INTO files (id, mime_type, data_url) VALUES (?, ?, ?)
			 ON CONFLICT(id) DO UPDATE SET mime_type = excluded.mime_type, data_url = excluded.data_url`,
			id.String(), entry.MimeType, entry.DataURL); err != nil {
			return fmt.Errorf("upserting file %s: %w", id, err)
		}
	}
	return nil
}

// SetSelection replaces the selected-id set and notifies selection
// subscribers.
func (e *SQLiteEngine) SetSelection(ctx context.Context, ids []drawing.ElementID) error {
	e.mu.Lock()
	e.selection = append([]drawing.ElementID(nil), ids...)
	selection := append([]drawing.ElementID(nil), e.selection...)
	e.mu.Unlock()

	e.subscribers.notifySelection(selection)
	return nil
}

// Selection returns a copy of the current selected-id set.
func (e *SQLiteEngine) Selection(ctx context.Context) ([]drawing.ElementID, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]drawing.ElementID(nil), e.selection...), nil
}

// Subscribe registers change handlers and returns an unsubscribe
// function.
func (e *SQLiteEngine) Subscribe(h Handlers) func() {
	return e.subscribers.add(h)
}

func (e *SQLiteEngine) readElement(ctx context.Context, id drawing.ElementID) (drawing.Element, error) {
	var data string
	err := e.db.QueryRowContext(ctx,
		`SELECT data FROM elements WHERE id = ?`, id.String()).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrElementNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading element: %w", err)
	}
	var el drawing.Element
	if err := json.Unmarshal([]byte(data), &el); err != nil {
		return nil, fmt.Errorf("decoding element %s: %w", id, err)
	}
	return el, nil
}

func (e *SQLiteEngine) readElements(ctx context.Context) ([]drawing.Element, error) {
	rows, err := e.db.QueryContext(ctx, `SELECT data FROM elements ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("listing elements: %w", err)
	}
	defer rows.Close()

	var elements []drawing.Element
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scanning element: %w", err)
		}
		var el drawing.Element
		if err := json.Unmarshal([]byte(data), &el); err != nil {
			return nil, fmt.Errorf("decoding element: %w", err)
		}
		elements = append(elements, el)
	}
	return elements, rows.Err()
}

func (e *SQLiteEngine) readAppState(ctx context.Context) (drawing.AppState, error) {
	var data string
	if err := e.db.QueryRowContext(ctx,
		`SELECT data FROM app_state WHERE id = 1`).Scan(&data); err != nil {
		return nil, fmt.Errorf("reading app state: %w", err)
	}
	var state drawing.AppState
	if err := json.Unmarshal([]byte(data), &state); err != nil {
		return nil, fmt.Errorf("decoding app state: %w", err)
	}
	return state, nil
}

func (e *SQLiteEngine) readFiles(ctx context.Context) (drawing.FileMap, error) {
	rows, err := e.db.QueryContext(ctx, `SELECT id, mime_type, data_url FROM files`)
	if err != nil {
		return nil, fmt.Errorf("listing files: %w", err)
	}
	defer rows.Close()

	files := drawing.FileMap{}
	for rows.Next() {
		var id, mimeType, dataURL string
		if err := rows.Scan(&id, &mimeType, &dataURL); err != nil {
			return nil, fmt.Errorf("scanning file: %w", err)
		}
		files[drawing.FileID(id)] = drawing.FileEntry{MimeType: mimeType, DataURL: dataURL}
	}
	return files, rows.Err()
}

// notifyElementsChanged re-reads the element list and fans it out to
// subscribers. Read failures are logged, not raised: the mutation that
// triggered the notification has already committed.
func (e *SQLiteEngine) notifyElementsChanged(ctx context.Context) {
	elements, err := e.readElements(ctx)
	if err != nil {
		e.logger.Warn("reading elements for notification", "error", err)
		return
	}
	e.subscribers.notifyElements(elements)
}

var _ Engine = (*SQLiteEngine)(nil)
