package catalog

import (
	"database/sql"
	"fmt"
)

// loadJSONL inserts every usable record of the JSONL file into the database
// in one transaction: either all usable records load or the table stays
// empty. Records that are malformed, carry an invalid definition shape or
// repeat an ID are skipped. Unknown JSON fields are ignored.
func loadJSONL(db *sql.DB, path string) error {
	records, err := readJSONL(path)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning load transaction: %w", err)
	}
	defer tx.Rollback()

	for _, raw := range records {
		rec, err := decodeEntry(raw)
		if err != nil {
			continue
		}
		if err := insertEntry(tx, rec, false); err != nil {
			continue
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing load transaction: %w", err)
	}
	return nil
}
