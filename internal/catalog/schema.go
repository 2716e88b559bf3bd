package catalog

import (
	"database/sql"
	"fmt"
)

const createDefinitions = `CREATE TABLE definitions (
    definition_id TEXT PRIMARY KEY,
    source TEXT NOT NULL,
    line INTEGER NOT NULL,
    kind TEXT NOT NULL,
    rational INTEGER NOT NULL,
    surface INTEGER NOT NULL,
    definition TEXT NOT NULL,
    created_at TEXT NOT NULL
);`

const (
	idxDefinitionsKind   = `CREATE INDEX idx_definitions_kind ON definitions(kind);`
	idxDefinitionsSource = `CREATE INDEX idx_definitions_source ON definitions(source);`
)

var schemaDDL = []string{
	createDefinitions,
	idxDefinitionsKind,
	idxDefinitionsSource,
}

func createSchema(db *sql.DB) error {
	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			return fmt.Errorf("creating schema: %w", err)
		}
	}
	return nil
}
