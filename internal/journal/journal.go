// Package journal records placement history in a SQLite database. Each
// successful add or remove becomes one row keyed by a UUID v7, so rows sort
// by creation time. The journal is history only; nothing replays it into an
// engine.
package journal

import (
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/stockroom/pkg/types"
)

//go:embed schema.sql
var schemaSQL string

// FileName is the database file created inside the data directory.
const FileName = "journal.db"

// ErrClosed is returned by operations on a closed journal.
var ErrClosed = errors.New("journal closed")

// Entry is one recorded event.
type Entry struct {
	EventID   string             `json:"event_id"`
	Kind      types.EventKind    `json:"kind"`
	ItemID    uint32             `json:"item_id"`
	Name      string             `json:"name"`
	Quality   string             `json:"quality"`
	Positions []types.Coordinate `json:"positions"`
	At        time.Time          `json:"at"`
}

// Journal is a SQLite-backed event store. It satisfies placement.EventSink.
type Journal struct {
	mu   sync.Mutex
	db   *sql.DB
	path string
}

// Open creates dir if needed and opens (or creates) the journal database in
// it. Existing history is kept.
func Open(dir string) (*Journal, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating journal dir %s: %w", dir, err)
	}
	path := filepath.Join(dir, FileName)
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	// One writer; the engine already serializes mutations.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying journal schema: %w", err)
	}
	return &Journal{db: db, path: path}, nil
}

// Path returns the database file path.
func (j *Journal) Path() string { return j.path }

// Record appends ev to the journal under a fresh UUID v7.
func (j *Journal) Record(ev types.Event) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.db == nil {
		return ErrClosed
	}

	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("generating event id: %w", err)
	}
	positions, err := json.Marshal(ev.Positions)
	if err != nil {
		return fmt.Errorf("encoding positions: %w", err)
	}
	at := ev.At
	if at.IsZero() {
		at = time.Now()
	}
	_, err = j.db.Exec(
		`INSERT INTO events (event_id, kind, item_id, name, quality, positions, at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id.String(), string(ev.Kind), ev.Item.ID, ev.Item.Name,
		ev.Item.Constraint().String(), string(positions), at.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("inserting event for item %d: %w", ev.Item.ID, err)
	}
	return nil
}

// Events returns every recorded entry in insertion order.
func (j *Journal) Events() ([]Entry, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.db == nil {
		return nil, ErrClosed
	}

	rows, err := j.db.Query(
		`SELECT event_id, kind, item_id, name, quality, positions, at FROM events ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("querying events: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var (
			e         Entry
			kind      string
			positions string
			at        string
		)
		if err := rows.Scan(&e.EventID, &kind, &e.ItemID, &e.Name, &e.Quality, &positions, &at); err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		e.Kind = types.EventKind(kind)
		if err := json.Unmarshal([]byte(positions), &e.Positions); err != nil {
			return nil, fmt.Errorf("decoding positions of %s: %w", e.EventID, err)
		}
		if e.At, err = time.Parse(time.RFC3339Nano, at); err != nil {
			return nil, fmt.Errorf("parsing time of %s: %w", e.EventID, err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating events: %w", err)
	}
	return out, nil
}

// ExportJSONL writes every entry to path, one JSON object per line. The file
// is replaced atomically.
func (j *Journal) ExportJSONL(path string) error {
	entries, err := j.Events()
	if err != nil {
		return err
	}
	records := make([]json.RawMessage, 0, len(entries))
	for _, e := range entries {
		b, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("encoding event %s: %w", e.EventID, err)
		}
		records = append(records, b)
	}
	return writeJSONL(path, records)
}

// Close releases the database. Closing twice is a no-op.
func (j *Journal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.db == nil {
		return nil
	}
	err := j.db.Close()
	j.db = nil
	return err
}
