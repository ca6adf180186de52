package key

import (
	"strings"
)

// Sequence is an ordered list of directions forming a stratagem code.
// Example: UP DOWN RIGHT LEFT UP (Reinforce).
type Sequence []Direction

// Len returns the number of directions in the sequence.
func (s Sequence) Len() int {
	return len(s)
}

// IsEmpty returns true if the sequence has no directions.
func (s Sequence) IsEmpty() bool {
	return len(s) == 0
}

// Validate checks that the sequence is non-empty and every element is a
// valid direction.
func (s Sequence) Validate() error {
	if len(s) == 0 {
		return ErrEmptySequence
	}
	for i, d := range s {
		if !d.Valid() {
			return &InvalidDirectionTokenError{Index: i, Token: d.String()}
		}
	}
	return nil
}

// String returns the space-separated token form, e.g. "UP UP DOWN".
// It is also the reverse-index key used by the dictionary.
func (s Sequence) String() string {
	if len(s) == 0 {
		return ""
	}
	parts := make([]string, len(s))
	for i, d := range s {
		parts[i] = d.String()
	}
	return strings.Join(parts, " ")
}

// Arrows returns the display form, e.g. "↑ ↑ ↓".
func (s Sequence) Arrows() string {
	parts := make([]string, len(s))
	for i, d := range s {
		parts[i] = d.Arrow()
	}
	return strings.Join(parts, " ")
}

// Tokens returns the data-source tokens for the sequence.
func (s Sequence) Tokens() []string {
	tokens := make([]string, len(s))
	for i, d := range s {
		tokens[i] = d.String()
	}
	return tokens
}

// Equals returns true if two sequences are identical, order included.
func (s Sequence) Equals(other Sequence) bool {
	if len(s) != len(other) {
		return false
	}
	for i, d := range s {
		if d != other[i] {
			return false
		}
	}
	return true
}

// HasPrefix returns true if this sequence starts with the given prefix.
// An empty prefix matches every sequence.
func (s Sequence) HasPrefix(prefix Sequence) bool {
	if len(prefix) > len(s) {
		return false
	}
	for i, d := range prefix {
		if s[i] != d {
			return false
		}
	}
	return true
}

// Clone returns a copy of the sequence.
func (s Sequence) Clone() Sequence {
	if s == nil {
		return nil
	}
	out := make(Sequence, len(s))
	copy(out, s)
	return out
}
