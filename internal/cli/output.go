package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// printYAML writes v as YAML with two-space indentation.
func printYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	return enc.Close()
}

// structured writes v as JSON or YAML when either output flag is set and
// reports whether it did.
func (a *app) structured(w io.Writer, v any) (bool, error) {
	switch {
	case a.flags.jsonMode:
		return true, printJSON(w, v)
	case a.flags.yamlMode:
		return true, printYAML(w, v)
	}
	return false, nil
}
