package catalog

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/mesh-intelligence/freeform/pkg/freeform"
)

const selectEntry = `SELECT definition_id, source, line, kind, rational, surface, definition, created_at FROM definitions`

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// Add stores e and returns its ID. An empty ID is replaced by a new UUID v7;
// an existing ID is overwritten. A zero CreatedAt is set to now.
// Returns ErrInvalidDefinition, wrapping the validation failure, if the
// definition does not validate.
func (s *Store) Add(e Entry) (string, error) {
	if err := e.Definition.Validate(); err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidDefinition, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.attached {
		return "", ErrDetached
	}

	if e.ID == "" {
		e.ID = newUUID()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	if err := insertEntry(s.db, dehydrateEntry(e), true); err != nil {
		return "", err
	}
	if err := s.persistLocked(); err != nil {
		return "", err
	}
	return e.ID, nil
}

// Get returns the entry with the given ID.
// Returns ErrInvalidID if id is empty, ErrNotFound if there is no such entry.
func (s *Store) Get(id string) (Entry, error) {
	if id == "" {
		return Entry{}, ErrInvalidID
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.attached {
		return Entry{}, ErrDetached
	}

	row := s.db.QueryRow(selectEntry+" WHERE definition_id = ?", id)
	rec, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, ErrNotFound
	}
	if err != nil {
		return Entry{}, err
	}
	return hydrateEntry(rec)
}

// List returns the entries matching f, oldest first.
// Returns ErrInvalidFilter for an unknown kind or a negative limit.
func (s *Store) List(f Filter) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.attached {
		return nil, ErrDetached
	}

	recs, err := s.query(f)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(recs))
	for _, rec := range recs {
		e, err := hydrateEntry(rec)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Delete removes the entry with the given ID.
// Returns ErrInvalidID if id is empty, ErrNotFound if there is no such entry.
func (s *Store) Delete(id string) error {
	if id == "" {
		return ErrInvalidID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.attached {
		return ErrDetached
	}

	res, err := s.db.Exec("DELETE FROM definitions WHERE definition_id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting definition: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return s.persistLocked()
}

// Export writes every entry to path in the definitions.jsonl format. The
// file is replaced atomically.
func (s *Store) Export(path string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.attached {
		return ErrDetached
	}

	recs, err := s.query(Filter{})
	if err != nil {
		return err
	}
	return writeJSONL(path, recs)
}

// persistLocked rewrites definitions.jsonl from the database. The caller
// must hold the write lock.
func (s *Store) persistLocked() error {
	recs, err := s.query(Filter{})
	if err != nil {
		return err
	}
	return writeJSONL(filepath.Join(s.dataDir, definitionsJSONL), recs)
}

func (s *Store) query(f Filter) ([]entryJSON, error) {
	query := selectEntry
	var conditions []string
	var args []any

	if f.Kind != "" {
		if _, err := freeform.ParseKind(f.Kind); err != nil {
			return nil, fmt.Errorf("%w: kind %q", ErrInvalidFilter, f.Kind)
		}
		conditions = append(conditions, "kind = ?")
		args = append(args, f.Kind)
	}
	if f.Source != "" {
		conditions = append(conditions, "source = ?")
		args = append(args, f.Source)
	}
	if f.Limit < 0 {
		return nil, fmt.Errorf("%w: limit %d", ErrInvalidFilter, f.Limit)
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at, definition_id"
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", f.Limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching definitions: %w", err)
	}
	defer rows.Close()

	var recs []entryJSON
	for rows.Next() {
		rec, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// insertEntry writes one record. With upsert false an existing ID is an
// error.
func insertEntry(db execer, rec entryJSON, upsert bool) error {
	body, err := json.Marshal(rec.Definition)
	if err != nil {
		return fmt.Errorf("encoding definition: %w", err)
	}
	query := `INSERT INTO definitions (definition_id, source, line, kind, rational, surface, definition, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	if upsert {
		query += `
		ON CONFLICT(definition_id) DO UPDATE SET
			source = excluded.source,
			line = excluded.line,
			kind = excluded.kind,
			rational = excluded.rational,
			surface = excluded.surface,
			definition = excluded.definition`
	}
	_, err = db.Exec(query,
		rec.DefinitionID, rec.Source, rec.Line, rec.Kind,
		rec.Rational, rec.Surface, string(body), rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting definition: %w", err)
	}
	return nil
}

func scanEntry(row rowScanner) (entryJSON, error) {
	var rec entryJSON
	var body string
	if err := row.Scan(&rec.DefinitionID, &rec.Source, &rec.Line, &rec.Kind,
		&rec.Rational, &rec.Surface, &body, &rec.CreatedAt); err != nil {
		return entryJSON{}, err
	}
	if err := json.Unmarshal([]byte(body), &rec.Definition); err != nil {
		return entryJSON{}, fmt.Errorf("decoding definition %s: %w", rec.DefinitionID, err)
	}
	return rec, nil
}
