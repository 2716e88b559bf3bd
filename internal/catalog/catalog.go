// Package catalog stores validated free-form definitions. A JSONL file in the
// data directory is the source of truth; SQLite is the query engine, rebuilt
// from the JSONL file on every Attach.
package catalog

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/freeform/pkg/freeform"
)

// File names inside the data directory.
const (
	definitionsJSONL = "definitions.jsonl"
	catalogDB        = "catalog.db"
)

var (
	ErrAlreadyAttached   = errors.New("catalog already attached")
	ErrDetached          = errors.New("catalog is detached")
	ErrInvalidID         = errors.New("invalid definition id")
	ErrNotFound          = errors.New("definition not found")
	ErrInvalidDefinition = errors.New("invalid definition")
	ErrInvalidFilter     = errors.New("invalid filter")
)

// Config holds the parameters for Attach.
type Config struct {
	// DataDir holds definitions.jsonl and catalog.db. Empty means the
	// current directory.
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// Entry is a stored definition and where it came from.
type Entry struct {
	ID         string
	Source     string // file the definition was read from
	Line       int    // line of its first statement
	Definition freeform.Definition
	CreatedAt  time.Time
}

// Filter narrows List. Zero fields match everything.
type Filter struct {
	Kind   string // cstype token, e.g. "bmatrix"
	Source string
	Limit  int
}

// Store is the definition catalog. It is safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	attached bool
	dataDir  string
	db       *sql.DB
}

// NewStore returns a detached store; call Attach before use.
func NewStore() *Store {
	return &Store{}
}

// Attach opens the catalog in config.DataDir, creating the directory and an
// empty JSONL file if needed. The SQLite database is recreated and loaded
// from the JSONL file; malformed lines are skipped.
// Returns ErrAlreadyAttached if already attached.
func (s *Store) Attach(config Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.attached {
		return ErrAlreadyAttached
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	dbPath := filepath.Join(dataDir, catalogDB)
	// The database is derived state; start from a fresh schema.
	_ = os.Remove(dbPath)

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", dbPath, err)
	}
	if err := createSchema(db); err != nil {
		db.Close()
		return err
	}

	jsonlPath := filepath.Join(dataDir, definitionsJSONL)
	if err := initJSONL(jsonlPath); err != nil {
		db.Close()
		return err
	}
	if err := loadJSONL(db, jsonlPath); err != nil {
		db.Close()
		return fmt.Errorf("load JSONL: %w", err)
	}

	s.db = db
	s.dataDir = dataDir
	s.attached = true
	return nil
}

// Detach closes the database. After Detach, all operations return
// ErrDetached. Detach is idempotent.
func (s *Store) Detach() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.attached {
		return nil
	}
	if err := s.db.Close(); err != nil {
		return err
	}
	s.db = nil
	s.attached = false
	return nil
}

// DataDir returns the directory the store is attached to.
func (s *Store) DataDir() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dataDir
}

// newUUID generates a UUID v7 string.
func newUUID() string {
	return uuid.Must(uuid.NewV7()).String()
}
