package dictionary

import (
	"bytes"
	_ "embed"
	"fmt"
)

//go:embed data/stratagems.yaml
var defaultData []byte

// DefaultEntries returns the built-in stratagem table.
func DefaultEntries() ([]Entry, error) {
	entries, err := Parse(bytes.NewReader(defaultData), FormatYAML, SourceBuiltin)
	if err != nil {
		return nil, fmt.Errorf("built-in stratagem table: %w", err)
	}
	return entries, nil
}

// Default returns a dictionary of the built-in stratagems.
func Default() (*Dictionary, error) {
	entries, err := DefaultEntries()
	if err != nil {
		return nil, err
	}
	return New(entries)
}
