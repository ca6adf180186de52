// Package matcher accumulates directional input and classifies it against a
// stratagem dictionary.
//
// A Matcher holds one active buffer. Each direction is appended and the
// buffer is then resolved:
//
//   - Exact: the buffer equals an entry's sequence. The key is reported and
//     the buffer is cleared, even if longer entries share the prefix.
//   - NoMatch: no entry starts with the buffer. The buffer is cleared.
//   - Partial: one or more entries start with the buffer. The buffer is kept.
//
// Modifier key activity is tracked alongside the buffer so callers can tell
// whether the user held the menu key, tapped it, or did something in
// between. That classification is informational and never affects matching.
//
// Basic usage:
//
//	m := matcher.New(matcher.Static{Dict: dict})
//	res := m.OnDirection(key.Up, true)
//	if res.Kind == matcher.Exact {
//	    fire(res.Key)
//	}
package matcher
