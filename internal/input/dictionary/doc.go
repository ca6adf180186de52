// Package dictionary provides the stratagem dictionary: an immutable mapping
// from symbolic keys to direction sequences.
//
// # Key Concepts
//
// Entry: a stratagem with a unique key, a display name and its sequence.
//
// Dictionary: built once from a list of entries and read-only afterwards.
// It keeps a reverse index from sequence to key for O(1) exact lookup and a
// prefix tree for partial-match feedback.
//
// # Construction Errors
//
// New never aborts on a bad entry. Every problem is collected into a
// *LoadError and the remaining valid entries are still indexed:
//
//	dict, err := dictionary.New(entries)
//	var loadErr *dictionary.LoadError
//	if errors.As(err, &loadErr) {
//	    for _, e := range loadErr.Errs {
//	        log.Warn("skipped stratagem: %v", e)
//	    }
//	}
//	// dict is usable either way
//
// # Data Sources
//
// Load reads the original stratagems.json shape, a mapping from key to a
// list of direction tokens, from JSON or YAML. YAML and JSON values may also
// be objects with "name" and "sequence" fields:
//
//	Reinforce: [UP, DOWN, RIGHT, LEFT, UP]
//	OrbitalLaser:
//	  name: Orbital Laser
//	  sequence: [RIGHT, DOWN, UP, RIGHT, DOWN]
//
// # Usage
//
//	dict, _ := dictionary.Default()
//
//	if k, ok := dict.LookupExact(key.Sequence{key.Up, key.Down}); ok {
//	    // exact match
//	}
//
//	candidates := dict.PrefixMatches(key.Sequence{key.Down, key.Down})
package dictionary
