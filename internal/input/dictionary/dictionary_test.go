package dictionary

import (
	"errors"
	"reflect"
	"testing"

	"github.com/dshills/stratagem/internal/input/key"
)

func testEntries() []Entry {
	return []Entry{
		{Key: "A", Sequence: key.Sequence{key.Up, key.Up, key.Down}},
		{Key: "B", Sequence: key.Sequence{key.Up, key.Up, key.Down, key.Left}},
		{Key: "C", Sequence: key.Sequence{key.Down, key.Left}},
	}
}

func TestNewAndLookupExact(t *testing.T) {
	d, err := New(testEntries())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	tests := []struct {
		seq    key.Sequence
		want   string
		wantOK bool
	}{
		{key.Sequence{key.Up, key.Up, key.Down}, "A", true},
		{key.Sequence{key.Up, key.Up, key.Down, key.Left}, "B", true},
		{key.Sequence{key.Down, key.Left}, "C", true},
		{key.Sequence{key.Left, key.Down}, "", false},
		{key.Sequence{key.Up}, "", false},
		{nil, "", false},
	}

	for _, tt := range tests {
		got, ok := d.LookupExact(tt.seq)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("LookupExact(%v) = %q, %v; want %q, %v", tt.seq, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestPrefixMatches(t *testing.T) {
	d, _ := New(testEntries())

	tests := []struct {
		name   string
		prefix key.Sequence
		want   []string
	}{
		{"empty prefix", nil, []string{"A", "B", "C"}},
		{"shared prefix", key.Sequence{key.Up}, []string{"A", "B"}},
		{"exact length included", key.Sequence{key.Up, key.Up, key.Down}, []string{"A", "B"}},
		{"longest", key.Sequence{key.Up, key.Up, key.Down, key.Left}, []string{"B"}},
		{"no match", key.Sequence{key.Right}, nil},
		{"too long", key.Sequence{key.Down, key.Left, key.Left}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := d.PrefixMatches(tt.prefix)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("PrefixMatches(%v) = %v, want %v", tt.prefix, got, tt.want)
			}
		})
	}
}

func TestHasPrefix(t *testing.T) {
	d, _ := New(testEntries())
	if !d.HasPrefix(key.Sequence{key.Down}) {
		t.Error("HasPrefix(DOWN) = false")
	}
	if d.HasPrefix(key.Sequence{key.Right}) {
		t.Error("HasPrefix(RIGHT) = true")
	}
}

func TestGet(t *testing.T) {
	d, _ := New(testEntries())

	e, ok := d.Get("A")
	if !ok {
		t.Fatal("Get(A) not found")
	}
	if e.DisplayName() != "A" {
		t.Errorf("DisplayName = %q", e.DisplayName())
	}

	// Mutating the returned entry must not affect the dictionary.
	e.Sequence[0] = key.Right
	if k, _ := d.LookupExact(key.Sequence{key.Up, key.Up, key.Down}); k != "A" {
		t.Error("dictionary was mutated through Get")
	}

	if _, ok := d.Get("missing"); ok {
		t.Error("Get(missing) found")
	}
}

func TestNewDuplicateKey(t *testing.T) {
	entries := append(testEntries(), Entry{Key: "A", Sequence: key.Sequence{key.Right}})
	d, err := New(entries)

	var dup *DuplicateKeyError
	if !errors.As(err, &dup) {
		t.Fatalf("New error = %v, want DuplicateKeyError", err)
	}
	if dup.Key != "A" {
		t.Errorf("DuplicateKeyError.Key = %q", dup.Key)
	}
	if d.Len() != 3 {
		t.Errorf("Len = %d, want 3 (valid entries kept)", d.Len())
	}
	// First definition wins.
	if _, ok := d.LookupExact(key.Sequence{key.Right}); ok {
		t.Error("duplicate entry's sequence should not be indexed")
	}
}

func TestNewEmptySequence(t *testing.T) {
	entries := []Entry{
		{Key: "Empty"},
		{Key: "Fine", Sequence: key.Sequence{key.Left}},
	}
	d, err := New(entries)

	var empty *EmptySequenceError
	if !errors.As(err, &empty) {
		t.Fatalf("New error = %v, want EmptySequenceError", err)
	}
	if !errors.Is(err, key.ErrEmptySequence) {
		t.Error("EmptySequenceError should wrap key.ErrEmptySequence")
	}
	if d.Len() != 1 {
		t.Errorf("Len = %d, want 1", d.Len())
	}
}

func TestNewInvalidDirection(t *testing.T) {
	entries := []Entry{
		{Key: "Bad", Sequence: key.Sequence{key.Up, key.Direction(42)}},
	}
	d, err := New(entries)

	var tokErr *key.InvalidDirectionTokenError
	if !errors.As(err, &tokErr) {
		t.Fatalf("New error = %v, want InvalidDirectionTokenError", err)
	}
	if d.Len() != 0 {
		t.Error("invalid entry must not be matchable")
	}
	if len(d.PrefixMatches(key.Sequence{key.Up})) != 0 {
		t.Error("invalid entry leaked into prefix tree")
	}
}

func TestNewDuplicateSequence(t *testing.T) {
	entries := []Entry{
		{Key: "First", Sequence: key.Sequence{key.Up, key.Down}},
		{Key: "Second", Sequence: key.Sequence{key.Up, key.Down}},
	}
	d, err := New(entries)

	var dup *DuplicateSequenceError
	if !errors.As(err, &dup) {
		t.Fatalf("New error = %v, want DuplicateSequenceError", err)
	}
	if dup.Existing != "First" || dup.Key != "Second" {
		t.Errorf("DuplicateSequenceError = %+v", dup)
	}
	if k, _ := d.LookupExact(key.Sequence{key.Up, key.Down}); k != "First" {
		t.Errorf("LookupExact = %q, want First", k)
	}
}

func TestNewCollectsAllErrors(t *testing.T) {
	entries := []Entry{
		{Key: "", Sequence: key.Sequence{key.Up}},
		{Key: "Empty"},
		{Key: "Good", Sequence: key.Sequence{key.Left}},
		{Key: "Good", Sequence: key.Sequence{key.Right}},
	}
	d, err := New(entries)

	var le *LoadError
	if !errors.As(err, &le) {
		t.Fatalf("error = %T, want *LoadError", err)
	}
	if len(le.Errs) != 3 {
		t.Errorf("len(Errs) = %d, want 3: %v", len(le.Errs), le)
	}
	if !errors.Is(err, ErrEmptyKey) {
		t.Error("expected ErrEmptyKey in collected errors")
	}
	if d.Len() != 1 {
		t.Errorf("Len = %d, want 1", d.Len())
	}
}

func TestKeysAndEntriesSorted(t *testing.T) {
	d, _ := New([]Entry{
		{Key: "Zulu", Sequence: key.Sequence{key.Up}},
		{Key: "Alpha", Sequence: key.Sequence{key.Down}},
	})

	if got := d.Keys(); !reflect.DeepEqual(got, []string{"Alpha", "Zulu"}) {
		t.Errorf("Keys() = %v", got)
	}
	entries := d.Entries()
	if len(entries) != 2 || entries[0].Key != "Alpha" {
		t.Errorf("Entries() = %v", entries)
	}
}

func TestMerge(t *testing.T) {
	base, _ := New(testEntries())
	merged, err := base.Merge([]Entry{
		{Key: "D", Sequence: key.Sequence{key.Right, key.Right}, Source: SourceConfig},
		{Key: "A", Sequence: key.Sequence{key.Left}, Source: SourceConfig},
	})

	var dup *DuplicateKeyError
	if !errors.As(err, &dup) || dup.Source != SourceConfig {
		t.Errorf("Merge error = %v, want DuplicateKeyError from config", err)
	}
	if merged.Len() != 4 {
		t.Errorf("merged Len = %d, want 4", merged.Len())
	}
	if base.Len() != 3 {
		t.Error("Merge modified the base dictionary")
	}
}

func TestNameFromKey(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"OrbitalLaser", "Orbital Laser"},
		{"SOSBeacon", "SOS Beacon"},
		{"Eagle500kgBomb", "Eagle 500kg Bomb"},
		{"Reinforce", "Reinforce"},
	}

	for _, tt := range tests {
		if got := NameFromKey(tt.key); got != tt.want {
			t.Errorf("NameFromKey(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestDefault(t *testing.T) {
	d, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if d.Len() == 0 {
		t.Fatal("Default dictionary is empty")
	}

	k, ok := d.LookupExact(key.MustParseSequence("UP DOWN RIGHT LEFT UP"))
	if !ok || k != "Reinforce" {
		t.Errorf("Reinforce lookup = %q, %v", k, ok)
	}

	e, _ := d.Get("SOSBeacon")
	if e.Name != "SOS Beacon" || e.Source != SourceBuiltin {
		t.Errorf("SOSBeacon entry = %+v", e)
	}
}
