package dictionary

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dshills/stratagem/internal/input/key"
)

// Format is a data source encoding.
type Format int

const (
	// FormatJSON is the original stratagems.json encoding.
	FormatJSON Format = iota

	// FormatYAML is a YAML mapping with the same shape.
	FormatYAML
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// FormatFromPath picks a format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return FormatJSON, fmt.Errorf("unsupported data file extension %q", filepath.Ext(path))
	}
}

var errNotDirectionList = errors.New("expected list of directions")

// rawEntry is a single decoded data-source value before validation.
type rawEntry struct {
	Key    string
	Name   string
	Tokens []string
	Line   int

	// Err is set when the value is not a list of direction tokens.
	Err error
}

// entryObject is the object form of a data-source value.
type entryObject struct {
	Name     string   `json:"name" yaml:"name"`
	Sequence []string `json:"sequence" yaml:"sequence"`
}

// LoadFile loads a dictionary from a JSON or YAML file.
func LoadFile(path string) (*Dictionary, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening stratagem data: %w", err)
	}
	defer f.Close()

	return Load(f, format, SourceData)
}

// Load decodes a data source and builds a dictionary from it.
//
// A decode failure of the document itself is returned alone with a nil
// dictionary. Per-entry problems (malformed value, unknown token, empty
// list, duplicate key)
// are collected into a *LoadError and the valid entries are still loaded.
func Load(r io.Reader, format Format, source string) (*Dictionary, error) {
	entries, parseErr := Parse(r, format, source)
	if entries == nil && parseErr != nil {
		return nil, parseErr
	}

	dict, buildErr := New(entries)

	var errs LoadError
	errs.add(parseErr)
	errs.add(buildErr)
	return dict, errs.err()
}

// Parse decodes a data source into entries, in document order.
// Entries with malformed values, invalid tokens or empty lists are reported
// in a *LoadError and omitted from the result; they are never matchable.
func Parse(r io.Reader, format Format, source string) ([]Entry, error) {
	var (
		raws []rawEntry
		err  error
	)
	switch format {
	case FormatJSON:
		raws, err = decodeJSON(r)
	case FormatYAML:
		raws, err = decodeYAML(r)
	default:
		return nil, fmt.Errorf("unsupported format %v", format)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding stratagem data: %w", err)
	}

	var errs LoadError
	entries := make([]Entry, 0, len(raws))
	for _, raw := range raws {
		if raw.Err != nil {
			errs.add(&MalformedEntryError{Key: raw.Key, Line: raw.Line, Err: raw.Err})
			continue
		}
		seq, err := key.ParseTokens(raw.Tokens)
		if err != nil {
			if errors.Is(err, key.ErrEmptySequence) {
				errs.add(&EmptySequenceError{Key: raw.Key})
			} else {
				errs.add(&InvalidSequenceError{Key: raw.Key, Err: err})
			}
			continue
		}
		entries = append(entries, Entry{
			Key:      raw.Key,
			Name:     raw.Name,
			Sequence: seq,
			Source:   source,
		})
	}
	return entries, errs.err()
}

// decodeJSON streams the top-level object so document order and duplicate
// keys survive decoding.
func decodeJSON(r io.Reader) ([]rawEntry, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected object at top level")
	}

	var raws []rawEntry
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		name, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected string key, got %v", tok)
		}

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("key %q: %w", name, err)
		}

		raws = append(raws, jsonValue(name, value))
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return raws, nil
}

func jsonValue(name string, value json.RawMessage) rawEntry {
	raw := rawEntry{Key: name}
	trimmed := bytes.TrimSpace(value)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var obj entryObject
		if err := json.Unmarshal(trimmed, &obj); err != nil {
			raw.Err = err
			return raw
		}
		raw.Name = obj.Name
		raw.Tokens = obj.Sequence
		return raw
	}
	if err := json.Unmarshal(trimmed, &raw.Tokens); err != nil {
		raw.Err = err
	}
	return raw
}

// decodeYAML walks the document node so duplicate keys are reported by
// New instead of failing the whole decode.
func decodeYAML(r io.Reader) ([]rawEntry, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: expected mapping at top level", root.Line)
	}

	raws := make([]rawEntry, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		keyNode, valNode := root.Content[i], root.Content[i+1]
		raw := rawEntry{Key: keyNode.Value, Line: valNode.Line}

		switch valNode.Kind {
		case yaml.MappingNode:
			var obj entryObject
			if err := valNode.Decode(&obj); err != nil {
				raw.Err = err
				break
			}
			raw.Name = obj.Name
			raw.Tokens = obj.Sequence
		case yaml.SequenceNode:
			if err := valNode.Decode(&raw.Tokens); err != nil {
				raw.Err = err
			}
		case yaml.ScalarNode:
			// null or "" decodes to an empty list and is reported as empty.
			if valNode.Tag != "!!null" && valNode.Value != "" {
				raw.Err = errNotDirectionList
			}
		default:
			raw.Err = errNotDirectionList
		}

		raws = append(raws, raw)
	}
	return raws, nil
}

// Encode writes entries in the original JSON shape, key to token list.
func Encode(w io.Writer, d *Dictionary) error {
	out := make(map[string][]string, d.Len())
	for _, e := range d.Entries() {
		out[e.Key] = e.Sequence.Tokens()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
