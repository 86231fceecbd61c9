package memory

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // registers the "sqlite" database/sql driver
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS memory (
	agent_id TEXT NOT NULL,
	tag      TEXT NOT NULL,
	value    TEXT NOT NULL,
	PRIMARY KEY (agent_id, tag)
);
CREATE TABLE IF NOT EXISTS historic (
	agent_id  TEXT NOT NULL,
	tag       TEXT NOT NULL,
	marked_at INTEGER NOT NULL,
	PRIMARY KEY (agent_id, tag)
);`

// SQLiteStore persists an agent's tag→value memory and tag→timestamp history
// in a single SQLite database, keyed by agent ID so many agents can share one
// file. Values are stored JSON-encoded; retrieved values therefore follow
// encoding/json conventions (numbers come back as float64).
//
// It implements both core.MemoryStore and core.HistoricStore. database/sql
// provides the connection-level synchronization.
type SQLiteStore struct {
	db      *sql.DB
	agentID string
	ownsDB  bool
}

// OpenSQLite opens (creating if needed) the database at path and scopes the
// returned store to agentID.
func OpenSQLite(path, agentID string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite store: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init sqlite store: %w", err)
	}
	return &SQLiteStore{db: db, agentID: agentID, ownsDB: true}, nil
}

// ForAgent returns a store sharing this store's database but scoped to a
// different agent ID. Closing either store closes the shared database only if
// it was the one opened by OpenSQLite.
func (s *SQLiteStore) ForAgent(agentID string) *SQLiteStore {
	return &SQLiteStore{db: s.db, agentID: agentID}
}

// Close releases the underlying database if this store owns it.
func (s *SQLiteStore) Close() error {
	if !s.ownsDB {
		return nil
	}
	return s.db.Close()
}

// Get returns the value stored under tag and whether it exists.
func (s *SQLiteStore) Get(tag string) (any, bool, error) {
	var raw string
	err := s.db.QueryRow(
		`SELECT value FROM memory WHERE agent_id = ? AND tag = ?`, s.agentID, tag,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get %q: %w", tag, err)
	}

	var value any
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return nil, false, fmt.Errorf("decode %q: %w", tag, err)
	}
	return value, true, nil
}

// Set stores value under tag, replacing any previous value.
func (s *SQLiteStore) Set(tag string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %q: %w", tag, err)
	}
	_, err = s.db.Exec(
		`INSERT INTO memory (agent_id, tag, value) VALUES (?, ?, ?)
		 ON CONFLICT (agent_id, tag) DO UPDATE SET value = excluded.value`,
		s.agentID, tag, string(raw),
	)
	if err != nil {
		return fmt.Errorf("set %q: %w", tag, err)
	}
	return nil
}

// Delete removes the tag; deleting an absent tag is a no-op.
func (s *SQLiteStore) Delete(tag string) error {
	if _, err := s.db.Exec(
		`DELETE FROM memory WHERE agent_id = ? AND tag = ?`, s.agentID, tag,
	); err != nil {
		return fmt.Errorf("delete %q: %w", tag, err)
	}
	return nil
}

// Tags returns all stored tags in ascending order.
func (s *SQLiteStore) Tags() ([]string, error) {
	rows, err := s.db.Query(
		`SELECT tag FROM memory WHERE agent_id = ? ORDER BY tag`, s.agentID,
	)
	if err != nil {
		return nil, fmt.Errorf("tags: %w", err)
	}
	defer rows.Close()

	var tags []string
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, fmt.Errorf("tags: %w", err)
		}
		tags = append(tags, tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("tags: %w", err)
	}
	return tags, nil
}

// Mark records at as the tag's most recent occurrence. Sub-nanosecond
// precision is not preserved; timestamps round-trip through UnixNano.
func (s *SQLiteStore) Mark(tag string, at time.Time) error {
	_, err := s.db.Exec(
		`INSERT INTO historic (agent_id, tag, marked_at) VALUES (?, ?, ?)
		 ON CONFLICT (agent_id, tag) DO UPDATE SET marked_at = excluded.marked_at`,
		s.agentID, tag, at.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("mark %q: %w", tag, err)
	}
	return nil
}

// Since reports the elapsed time between the tag's last mark and now.
func (s *SQLiteStore) Since(tag string, now time.Time) (time.Duration, bool, error) {
	t, ok, err := s.Timestamp(tag)
	if err != nil || !ok {
		return 0, ok, err
	}
	return now.Sub(t), true, nil
}

// Clear removes every tag belonging to this store's agent. The store backs
// both side-stores with one type, so a clear wipes the agent's memory tags
// and historic marks together; other agents sharing the database are
// unaffected.
func (s *SQLiteStore) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM memory WHERE agent_id = ?`, s.agentID); err != nil {
		return fmt.Errorf("clear: %w", err)
	}
	if _, err := s.db.Exec(`DELETE FROM historic WHERE agent_id = ?`, s.agentID); err != nil {
		return fmt.Errorf("clear: %w", err)
	}
	return nil
}

// Timestamp returns when the tag was last marked and whether it ever was.
func (s *SQLiteStore) Timestamp(tag string) (time.Time, bool, error) {
	var ns int64
	err := s.db.QueryRow(
		`SELECT marked_at FROM historic WHERE agent_id = ? AND tag = ?`, s.agentID, tag,
	).Scan(&ns)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("timestamp %q: %w", tag, err)
	}
	return time.Unix(0, ns), true, nil
}
