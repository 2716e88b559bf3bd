package catalog

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/mesh-intelligence/freeform/pkg/freeform"
)

// entryJSON is one line of definitions.jsonl. Kind, rational and surface
// duplicate parts of the definition so the file can be grepped.
type entryJSON struct {
	DefinitionID string          `json:"definition_id"`
	Source       string          `json:"source"`
	Line         int             `json:"line"`
	Kind         string          `json:"kind"`
	Rational     bool            `json:"rational"`
	Surface      bool            `json:"surface"`
	Definition   freeform.Record `json:"definition"`
	CreatedAt    string          `json:"created_at"`
}

func dehydrateEntry(e Entry) entryJSON {
	return entryJSON{
		DefinitionID: e.ID,
		Source:       e.Source,
		Line:         e.Line,
		Kind:         e.Definition.Type.String(),
		Rational:     e.Definition.Rational,
		Surface:      e.Definition.IsSurface(),
		Definition:   e.Definition.Record(),
		CreatedAt:    e.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func hydrateEntry(j entryJSON) (Entry, error) {
	def, err := j.Definition.Definition()
	if err != nil {
		return Entry{}, fmt.Errorf("definition %s: %w", j.DefinitionID, err)
	}
	created, err := time.Parse(time.RFC3339, j.CreatedAt)
	if err != nil {
		return Entry{}, fmt.Errorf("definition %s: created_at: %w", j.DefinitionID, err)
	}
	return Entry{
		ID:         j.DefinitionID,
		Source:     j.Source,
		Line:       j.Line,
		Definition: def,
		CreatedAt:  created,
	}, nil
}

// decodeEntry parses and checks one JSONL record. The derived columns are
// recomputed from the definition rather than trusted. Records that fail are
// skipped by the loader.
func decodeEntry(raw json.RawMessage) (entryJSON, error) {
	var j entryJSON
	if err := json.Unmarshal(raw, &j); err != nil {
		return entryJSON{}, err
	}
	if j.DefinitionID == "" {
		return entryJSON{}, ErrInvalidID
	}
	e, err := hydrateEntry(j)
	if err != nil {
		return entryJSON{}, err
	}
	return dehydrateEntry(e), nil
}
