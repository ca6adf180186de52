package dictionary

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dshills/stratagem/internal/input/key"
)

// ErrEmptyKey is returned for an entry without a key.
var ErrEmptyKey = errors.New("empty stratagem key")

// DuplicateKeyError reports a key defined more than once.
// The first definition wins.
type DuplicateKeyError struct {
	Key    string
	Source string
}

func (e *DuplicateKeyError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("duplicate stratagem key %q (from %s)", e.Key, e.Source)
	}
	return fmt.Sprintf("duplicate stratagem key %q", e.Key)
}

// EmptySequenceError reports an entry with no directions.
type EmptySequenceError struct {
	Key string
}

func (e *EmptySequenceError) Error() string {
	return fmt.Sprintf("stratagem %q: %v", e.Key, key.ErrEmptySequence)
}

func (e *EmptySequenceError) Unwrap() error {
	return key.ErrEmptySequence
}

// InvalidSequenceError reports an entry whose sequence contains an invalid
// direction token. Err is a *key.InvalidDirectionTokenError.
type InvalidSequenceError struct {
	Key string
	Err error
}

func (e *InvalidSequenceError) Error() string {
	return fmt.Sprintf("stratagem %q: %v", e.Key, e.Err)
}

func (e *InvalidSequenceError) Unwrap() error {
	return e.Err
}

// MalformedEntryError reports a value that is not a list of direction
// tokens, such as a bare string or a nested list. Line is zero for JSON.
type MalformedEntryError struct {
	Key  string
	Line int
	Err  error
}

func (e *MalformedEntryError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: stratagem %q: %v", e.Line, e.Key, e.Err)
	}
	return fmt.Sprintf("stratagem %q: %v", e.Key, e.Err)
}

func (e *MalformedEntryError) Unwrap() error {
	return e.Err
}

// DuplicateSequenceError reports two keys sharing one sequence. Exact lookup
// must be unambiguous, so the later key is dropped.
type DuplicateSequenceError struct {
	Key      string
	Existing string
	Sequence key.Sequence
}

func (e *DuplicateSequenceError) Error() string {
	return fmt.Sprintf("stratagem %q: sequence %s already used by %q", e.Key, e.Sequence, e.Existing)
}

// LoadError collects every problem found while building a dictionary.
type LoadError struct {
	Errs []error
}

func (e *LoadError) Error() string {
	if len(e.Errs) == 1 {
		return e.Errs[0].Error()
	}
	msgs := make([]string, len(e.Errs))
	for i, err := range e.Errs {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("%d dictionary errors: %s", len(e.Errs), strings.Join(msgs, "; "))
}

// Unwrap exposes the collected errors to errors.Is and errors.As.
func (e *LoadError) Unwrap() []error {
	return e.Errs
}

// add appends err, flattening nested LoadErrors.
func (e *LoadError) add(err error) {
	if err == nil {
		return
	}
	if le, ok := err.(*LoadError); ok {
		e.Errs = append(e.Errs, le.Errs...)
		return
	}
	e.Errs = append(e.Errs, err)
}

// err returns e or nil if nothing was collected.
func (e *LoadError) err() error {
	if len(e.Errs) == 0 {
		return nil
	}
	return e
}
