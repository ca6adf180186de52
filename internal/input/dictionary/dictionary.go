package dictionary

import (
	"sort"

	"github.com/dshills/stratagem/internal/input/key"
)

// Dictionary maps stratagem keys to their sequences.
// It is immutable after New; share it freely between goroutines.
type Dictionary struct {
	// entries holds every valid entry by key.
	entries map[string]Entry

	// keys holds the keys in sorted order.
	keys []string

	// reverse maps Sequence.String() to the owning key.
	reverse map[string]string

	// tree provides prefix lookup.
	tree *prefixTree
}

// New builds a dictionary from entries.
//
// Invalid entries are skipped and reported; the returned dictionary is
// always usable. The error, if any, is a *LoadError enumerating
// *DuplicateKeyError, *EmptySequenceError, *InvalidSequenceError and
// *DuplicateSequenceError values in input order.
func New(entries []Entry) (*Dictionary, error) {
	d := &Dictionary{
		entries: make(map[string]Entry, len(entries)),
		reverse: make(map[string]string, len(entries)),
		tree:    newPrefixTree(),
	}

	var errs LoadError
	for _, e := range entries {
		errs.add(d.insert(e))
	}

	d.keys = make([]string, 0, len(d.entries))
	for k := range d.entries {
		d.keys = append(d.keys, k)
	}
	sort.Strings(d.keys)

	return d, errs.err()
}

// Empty returns a dictionary with no entries.
func Empty() *Dictionary {
	d, _ := New(nil)
	return d
}

// insert validates and indexes a single entry.
func (d *Dictionary) insert(e Entry) error {
	if e.Key == "" {
		return ErrEmptyKey
	}
	if _, exists := d.entries[e.Key]; exists {
		return &DuplicateKeyError{Key: e.Key, Source: e.Source}
	}
	if err := e.Sequence.Validate(); err != nil {
		if e.Sequence.IsEmpty() {
			return &EmptySequenceError{Key: e.Key}
		}
		return &InvalidSequenceError{Key: e.Key, Err: err}
	}

	sig := e.Sequence.String()
	if existing, taken := d.reverse[sig]; taken {
		return &DuplicateSequenceError{Key: e.Key, Existing: existing, Sequence: e.Sequence.Clone()}
	}

	e = e.Clone()
	d.entries[e.Key] = e
	d.reverse[sig] = e.Key
	d.tree.insert(e.Sequence, e.Key)
	return nil
}

// LookupExact returns the key whose sequence equals seq.
func (d *Dictionary) LookupExact(seq key.Sequence) (string, bool) {
	if len(seq) == 0 {
		return "", false
	}
	k, ok := d.reverse[seq.String()]
	return k, ok
}

// PrefixMatches returns, in sorted order, every key whose sequence starts
// with prefix. A sequence equal to prefix is included.
// An empty prefix returns every key.
func (d *Dictionary) PrefixMatches(prefix key.Sequence) []string {
	node := d.tree.find(prefix)
	if node == nil {
		return nil
	}
	keys := node.collect(nil)
	sort.Strings(keys)
	return keys
}

// HasPrefix returns true if any sequence starts with prefix.
func (d *Dictionary) HasPrefix(prefix key.Sequence) bool {
	node := d.tree.find(prefix)
	return node != nil && (node.key != "" || node.hasChildren())
}

// Get returns the entry for a key.
func (d *Dictionary) Get(k string) (Entry, bool) {
	e, ok := d.entries[k]
	if !ok {
		return Entry{}, false
	}
	return e.Clone(), true
}

// Keys returns all keys in sorted order.
func (d *Dictionary) Keys() []string {
	out := make([]string, len(d.keys))
	copy(out, d.keys)
	return out
}

// Entries returns all entries sorted by key.
func (d *Dictionary) Entries() []Entry {
	out := make([]Entry, 0, len(d.keys))
	for _, k := range d.keys {
		out = append(out, d.entries[k].Clone())
	}
	return out
}

// Len returns the number of entries.
func (d *Dictionary) Len() int {
	return len(d.entries)
}

// Merge builds a new dictionary from d's entries followed by extra.
// Entries already in d win over extra on key or sequence conflicts.
func (d *Dictionary) Merge(extra []Entry) (*Dictionary, error) {
	all := make([]Entry, 0, d.Len()+len(extra))
	all = append(all, d.Entries()...)
	all = append(all, extra...)
	return New(all)
}
