package key

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptySequence is returned for a sequence with no directions.
var ErrEmptySequence = errors.New("empty sequence")

// InvalidDirectionTokenError reports a token that is not one of
// UP, DOWN, LEFT or RIGHT.
type InvalidDirectionTokenError struct {
	Index int
	Token string
}

func (e *InvalidDirectionTokenError) Error() string {
	return fmt.Sprintf("invalid direction %q at index %d", e.Token, e.Index)
}

// ParseDirection parses a single direction token.
// Tokens are case-sensitive: only "UP", "DOWN", "LEFT" and "RIGHT" are valid.
func ParseDirection(token string) (Direction, bool) {
	switch token {
	case "UP":
		return Up, true
	case "DOWN":
		return Down, true
	case "LEFT":
		return Left, true
	case "RIGHT":
		return Right, true
	default:
		return DirectionNone, false
	}
}

// ParseTokens parses a list of direction tokens into a Sequence.
// Returns ErrEmptySequence for an empty list and an
// *InvalidDirectionTokenError for the first unknown token.
func ParseTokens(tokens []string) (Sequence, error) {
	if len(tokens) == 0 {
		return nil, ErrEmptySequence
	}
	seq := make(Sequence, 0, len(tokens))
	for i, tok := range tokens {
		d, ok := ParseDirection(tok)
		if !ok {
			return nil, &InvalidDirectionTokenError{Index: i, Token: tok}
		}
		seq = append(seq, d)
	}
	return seq, nil
}

// ParseSequence parses a space- or comma-separated token string such as
// "UP UP DOWN" or "UP,UP,DOWN".
func ParseSequence(s string) (Sequence, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t'
	})
	return ParseTokens(fields)
}

// MustParseSequence parses a sequence string and panics on error.
// Use only for known-valid sequences in initialization code and tests.
func MustParseSequence(s string) Sequence {
	seq, err := ParseSequence(s)
	if err != nil {
		panic("invalid sequence: " + s + ": " + err.Error())
	}
	return seq
}
