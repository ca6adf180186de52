package dictionary

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dshills/stratagem/internal/input/key"
)

func TestLoadJSON(t *testing.T) {
	data := `{
  "Reinforce": ["UP", "DOWN", "RIGHT", "LEFT", "UP"],
  "OrbitalLaser": {"name": "Orbital Laser", "sequence": ["RIGHT", "DOWN", "UP", "RIGHT", "DOWN"]}
}`
	d, err := Load(strings.NewReader(data), FormatJSON, SourceData)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if d.Len() != 2 {
		t.Fatalf("Len = %d, want 2", d.Len())
	}

	e, ok := d.Get("OrbitalLaser")
	if !ok || e.Name != "Orbital Laser" {
		t.Errorf("OrbitalLaser = %+v, %v", e, ok)
	}
	if e.Source != SourceData {
		t.Errorf("Source = %q", e.Source)
	}
}

func TestLoadJSONMalformedEntriesEnumerated(t *testing.T) {
	data := `{
  "Good": ["UP", "DOWN"],
  "Bad": ["UP", "SIDEWAYS"],
  "Empty": [],
  "AlsoGood": ["LEFT"],
  "Good": ["RIGHT"]
}`
	d, err := Load(strings.NewReader(data), FormatJSON, SourceData)
	if d == nil {
		t.Fatal("Load returned nil dictionary for per-entry errors")
	}

	var le *LoadError
	if !errors.As(err, &le) {
		t.Fatalf("error = %v, want *LoadError", err)
	}
	if len(le.Errs) != 3 {
		t.Errorf("len(Errs) = %d, want 3: %v", len(le.Errs), err)
	}

	var tokErr *key.InvalidDirectionTokenError
	if !errors.As(err, &tokErr) || tokErr.Token != "SIDEWAYS" {
		t.Errorf("missing InvalidDirectionTokenError for SIDEWAYS: %v", err)
	}
	var empty *EmptySequenceError
	if !errors.As(err, &empty) || empty.Key != "Empty" {
		t.Errorf("missing EmptySequenceError: %v", err)
	}
	var dup *DuplicateKeyError
	if !errors.As(err, &dup) || dup.Key != "Good" {
		t.Errorf("missing DuplicateKeyError: %v", err)
	}

	if d.Len() != 2 {
		t.Errorf("Len = %d, want 2 (Good, AlsoGood)", d.Len())
	}
	if _, ok := d.Get("Bad"); ok {
		t.Error("entry with invalid token must not be loaded")
	}
}

func TestLoadMalformedValuesKeepValidEntries(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		data   string
		bad    []string
	}{
		{"json string value", FormatJSON, `{"A": ["UP"], "B": "UP", "C": ["DOWN"]}`, []string{"B"}},
		{"json number token", FormatJSON, `{"A": ["UP"], "B": ["UP", 3], "C": ["DOWN"]}`, []string{"B"}},
		{"json nested list", FormatJSON, `{"A": ["UP"], "B": [["UP"]], "C": ["DOWN"]}`, []string{"B"}},
		{"json bad object", FormatJSON, `{"A": ["UP"], "B": {"sequence": "UP"}, "C": ["DOWN"]}`, []string{"B"}},
		{"yaml scalar value", FormatYAML, "A: [UP]\nB: UP\nC: [DOWN]\n", []string{"B"}},
		{"yaml nested list", FormatYAML, "A: [UP]\nB: [[UP]]\nC: [DOWN]\n", []string{"B"}},
		{"yaml both", FormatYAML, "A: [UP]\nB: UP\nC: [DOWN]\nD: [[LEFT]]\n", []string{"B", "D"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Load(strings.NewReader(tt.data), tt.format, SourceData)
			if d == nil {
				t.Fatalf("Load returned nil dictionary: %v", err)
			}
			if d.Len() != 2 {
				t.Errorf("Len = %d, want 2", d.Len())
			}
			for _, k := range []string{"A", "C"} {
				if _, ok := d.Get(k); !ok {
					t.Errorf("valid entry %s missing", k)
				}
			}

			var le *LoadError
			if !errors.As(err, &le) || len(le.Errs) != len(tt.bad) {
				t.Fatalf("error = %v, want %d collected errors", err, len(tt.bad))
			}
			for i, k := range tt.bad {
				var me *MalformedEntryError
				if !errors.As(le.Errs[i], &me) || me.Key != k {
					t.Errorf("Errs[%d] = %v, want MalformedEntryError for %s", i, le.Errs[i], k)
				}
				if _, ok := d.Get(k); ok {
					t.Errorf("malformed entry %s loaded", k)
				}
			}
		})
	}
}

func TestLoadJSONSyntaxError(t *testing.T) {
	d, err := Load(strings.NewReader(`{"A": [`), FormatJSON, SourceData)
	if err == nil {
		t.Fatal("expected decode error")
	}
	if d != nil {
		t.Error("dictionary should be nil on document decode failure")
	}

	if _, err := Load(strings.NewReader(`["UP"]`), FormatJSON, SourceData); err == nil {
		t.Error("expected error for non-object document")
	}
}

func TestLoadYAML(t *testing.T) {
	data := `
Reinforce: [UP, DOWN, RIGHT, LEFT, UP]
Resupply:
  name: Resupply
  sequence: [DOWN, DOWN, UP, RIGHT]
Broken: [UP, NORTH]
Nothing:
`
	d, err := Load(strings.NewReader(data), FormatYAML, SourceData)
	if d == nil {
		t.Fatalf("Load: %v", err)
	}
	if d.Len() != 2 {
		t.Errorf("Len = %d, want 2", d.Len())
	}

	var le *LoadError
	if !errors.As(err, &le) || len(le.Errs) != 2 {
		t.Errorf("error = %v, want 2 collected errors", err)
	}
}

func TestLoadYAMLDuplicateKey(t *testing.T) {
	data := "A: [UP]\nA: [DOWN]\n"
	d, err := Load(strings.NewReader(data), FormatYAML, SourceData)

	var dup *DuplicateKeyError
	if !errors.As(err, &dup) {
		t.Fatalf("error = %v, want DuplicateKeyError", err)
	}
	if k, _ := d.LookupExact(key.Sequence{key.Up}); k != "A" {
		t.Error("first definition should win")
	}
}

func TestLoadYAMLNotMapping(t *testing.T) {
	if _, err := Load(strings.NewReader("- UP\n- DOWN\n"), FormatYAML, SourceData); err == nil {
		t.Error("expected error for sequence document")
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "stratagems.json")
	if err := os.WriteFile(jsonPath, []byte(`{"A": ["UP", "UP", "DOWN"]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	d, err := LoadFile(jsonPath)
	if err != nil {
		t.Fatalf("LoadFile(json): %v", err)
	}
	if k, _ := d.LookupExact(key.Sequence{key.Up, key.Up, key.Down}); k != "A" {
		t.Errorf("LookupExact = %q", k)
	}

	yamlPath := filepath.Join(dir, "stratagems.yml")
	if err := os.WriteFile(yamlPath, []byte("B: [LEFT]\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(yamlPath); err != nil {
		t.Errorf("LoadFile(yml): %v", err)
	}

	if _, err := LoadFile(filepath.Join(dir, "stratagems.txt")); err == nil {
		t.Error("expected error for unsupported extension")
	}
	if _, err := LoadFile(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	d, _ := New(testEntries())

	var buf bytes.Buffer
	if err := Encode(&buf, d); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	loaded, err := Load(&buf, FormatJSON, SourceData)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Len() != d.Len() {
		t.Errorf("Len = %d, want %d", loaded.Len(), d.Len())
	}
}
