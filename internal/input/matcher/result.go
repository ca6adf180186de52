package matcher

import (
	"fmt"
	"strings"

	"github.com/dshills/stratagem/internal/input/key"
)

// Kind is the outcome of feeding a direction.
type Kind uint8

const (
	// NoMatch means no entry starts with the buffer.
	NoMatch Kind = iota

	// Partial means the buffer is a prefix of one or more entries.
	Partial

	// Exact means the buffer equals an entry's sequence.
	Exact
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case NoMatch:
		return "nomatch"
	case Partial:
		return "partial"
	case Exact:
		return "exact"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Result describes the matcher state after a direction.
type Result struct {
	Kind Kind

	// Key is the matched key when Kind is Exact.
	Key string

	// Candidates lists the keys still reachable when Kind is Partial,
	// in sorted order.
	Candidates []string

	// Sequence is the buffer that produced this result. For Exact and
	// NoMatch it is the buffer as it was before the reset.
	Sequence key.Sequence

	// Mode is the modifier usage for the cycle so far.
	Mode ModifierMode

	// Modifier is the first modifier seen in the cycle, if any.
	Modifier key.Modifier
}

// String formats the result the way the host protocol reports it.
func (r Result) String() string {
	switch r.Kind {
	case Exact:
		return "exact " + r.Key
	case Partial:
		return "partial " + strings.Join(r.Candidates, ",")
	default:
		return "nomatch"
	}
}
