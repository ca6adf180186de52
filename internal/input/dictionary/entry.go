package dictionary

import (
	"strings"
	"unicode"

	"github.com/dshills/stratagem/internal/input/key"
)

// Entry sources.
const (
	SourceBuiltin = "builtin"
	SourceData    = "data"
	SourceConfig  = "config"
	SourceScript  = "script"
)

// Entry is a single stratagem.
type Entry struct {
	// Key is the unique symbolic identifier, e.g. "OrbitalLaser".
	Key string

	// Name is the human-readable name. Defaults to the key split on
	// word boundaries.
	Name string

	// Sequence is the direction code that triggers the stratagem.
	Sequence key.Sequence

	// Source indicates where this entry was defined.
	// Examples: "builtin", "data", "config", "script:extra.lua"
	Source string
}

// DisplayName returns Name, or a name derived from Key if Name is empty.
func (e Entry) DisplayName() string {
	if e.Name != "" {
		return e.Name
	}
	return NameFromKey(e.Key)
}

// NameFromKey splits a CamelCase key into words.
// "OrbitalLaser" becomes "Orbital Laser", "Eagle500kgBomb" becomes
// "Eagle 500kg Bomb".
func NameFromKey(k string) string {
	runes := []rune(k)
	var sb strings.Builder
	for i, r := range runes {
		if i > 0 {
			prev := runes[i-1]
			switch {
			case unicode.IsUpper(r) && (unicode.IsLower(prev) || unicode.IsDigit(prev)):
				sb.WriteByte(' ')
			case unicode.IsUpper(r) && unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1]):
				sb.WriteByte(' ')
			case unicode.IsDigit(r) && unicode.IsLetter(prev):
				sb.WriteByte(' ')
			}
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// Clone returns a copy of the entry with its own sequence storage.
func (e Entry) Clone() Entry {
	e.Sequence = e.Sequence.Clone()
	return e
}
