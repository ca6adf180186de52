// Package validator is an interactive terminal tool for checking stratagem
// sequences by hand.
//
// Arrow keys feed the matcher. Holding Ctrl, Alt, Shift or Meta with an
// arrow counts as a modifier-active direction. Escape clears the sequence
// and q or Ctrl-C quits. Nothing is ever typed into other programs.
package validator

import (
	"fmt"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/stratagem/internal/input/key"
	"github.com/dshills/stratagem/internal/input/matcher"
)

// MaxCandidates is the most partial candidates listed by name.
const MaxCandidates = 5

// Validator tracks input and renders the match status.
type Validator struct {
	mu      sync.Mutex
	src     matcher.Source
	matcher *matcher.Matcher

	// last is the result of the most recent direction.
	last    matcher.Result
	hasLast bool

	// mod is the modifier currently reported down by key events.
	mod key.Modifier
}

// New creates a validator over src.
func New(src matcher.Source) *Validator {
	return &Validator{src: src, matcher: matcher.New(src)}
}

// HandleEvent processes one terminal event. It returns true when the user
// asked to quit.
func (v *Validator) HandleEvent(ev tcell.Event) bool {
	kev, ok := ev.(*tcell.EventKey)
	if !ok {
		return false
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	switch kev.Key() {
	case tcell.KeyCtrlC:
		return true
	case tcell.KeyEscape:
		v.clear()
		return false
	case tcell.KeyRune:
		if kev.Rune() == 'q' || kev.Rune() == 'Q' {
			return true
		}
		return false
	}

	d, ok := arrowDirection(kev.Key())
	if !ok {
		return false
	}

	// Terminals report modifier state on each key rather than as separate
	// edges, so edges are derived from the change between arrows.
	mod := modifierFromMask(kev.Modifiers())
	switch {
	case mod != key.ModNone && v.mod == key.ModNone:
		v.matcher.OnModifierDown(mod)
	case mod == key.ModNone && v.mod != key.ModNone:
		v.matcher.OnModifierUp(v.mod)
	}
	v.mod = mod

	v.last = v.matcher.OnDirection(d, mod != key.ModNone)
	v.hasLast = true
	return false
}

// Clear resets the sequence and the last result.
func (v *Validator) Clear() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.clear()
}

func (v *Validator) clear() {
	v.matcher.Reset()
	v.last = matcher.Result{}
	v.hasLast = false
	v.mod = key.ModNone
}

// Lines renders the current status, one string per screen row.
func (v *Validator) Lines() []string {
	v.mu.Lock()
	defer v.mu.Unlock()

	lines := []string{
		fmt.Sprintf("Stratagem validator: %d stratagems loaded", v.src.Dictionary().Len()),
		"Arrows enter directions; hold Ctrl/Alt/Shift for the modifier. Esc clears, q quits.",
		"",
	}

	if !v.hasLast {
		return append(lines, "Sequence: (empty)", "Modifier: "+v.matcher.Mode().String())
	}

	res := v.last
	lines = append(lines,
		"Sequence: "+res.Sequence.Arrows()+"  ("+res.Sequence.String()+")",
		"Modifier: "+modeLine(res),
	)

	switch res.Kind {
	case matcher.Exact:
		name := res.Key
		if e, ok := v.src.Dictionary().Get(res.Key); ok {
			name = e.DisplayName()
		}
		lines = append(lines, fmt.Sprintf("MATCH: %s [%s]", name, res.Key))
	case matcher.Partial:
		if len(res.Candidates) <= MaxCandidates {
			lines = append(lines, "Possible: "+strings.Join(res.Candidates, ", "))
		} else {
			lines = append(lines, fmt.Sprintf("%d possible matches", len(res.Candidates)))
		}
	default:
		lines = append(lines, "No match")
	}
	return lines
}

func modeLine(res matcher.Result) string {
	if res.Modifier == key.ModNone {
		return res.Mode.String()
	}
	return fmt.Sprintf("%s (%s)", res.Mode, res.Modifier)
}

func arrowDirection(k tcell.Key) (key.Direction, bool) {
	switch k {
	case tcell.KeyUp:
		return key.Up, true
	case tcell.KeyDown:
		return key.Down, true
	case tcell.KeyLeft:
		return key.Left, true
	case tcell.KeyRight:
		return key.Right, true
	default:
		return 0, false
	}
}

// modifierFromMask picks one modifier identity from a tcell mask. Terminals
// do not report the side, so the left-hand key is assumed.
func modifierFromMask(m tcell.ModMask) key.Modifier {
	switch {
	case m&tcell.ModCtrl != 0:
		return key.ModLeftCtrl
	case m&tcell.ModAlt != 0:
		return key.ModLeftAlt
	case m&tcell.ModShift != 0:
		return key.ModLeftShift
	case m&tcell.ModMeta != 0:
		return key.ModLeftSuper
	default:
		return key.ModNone
	}
}
