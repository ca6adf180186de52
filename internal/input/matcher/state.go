package matcher

import "github.com/dshills/stratagem/internal/input/key"

// ModifierMode describes how the modifier key was used while a sequence was
// typed.
type ModifierMode uint8

const (
	// ModeNone means no direction has been typed and no modifier is down.
	ModeNone ModifierMode = iota

	// ModeWaiting means a modifier is down but no direction has been typed.
	ModeWaiting

	// ModeHeld means every direction was typed with the modifier down and
	// the modifier was not released mid-sequence.
	ModeHeld

	// ModePressedThenReleased means no direction was typed with the
	// modifier down.
	ModePressedThenReleased

	// ModeMixed covers everything else.
	ModeMixed
)

// String returns a human-readable mode name.
func (m ModifierMode) String() string {
	switch m {
	case ModeNone:
		return "none"
	case ModeWaiting:
		return "waiting"
	case ModeHeld:
		return "held"
	case ModePressedThenReleased:
		return "pressed then released"
	case ModeMixed:
		return "mixed"
	default:
		return "unknown"
	}
}

// State is the matcher's view of the sequence in progress.
type State struct {
	// Buffer holds the directions typed so far in this cycle.
	Buffer key.Sequence

	// ModifierSeen is the first modifier observed during the cycle.
	ModifierSeen key.Modifier

	// ModifierDown reports whether a modifier is currently down.
	ModifierDown bool

	// ModifierPressedAtStart is set when the first modifier-active
	// direction was also the first direction of the cycle.
	ModifierPressedAtStart bool

	// ModifierReleasedDuringSequence is set when a modifier went up while
	// the buffer was non-empty.
	ModifierReleasedDuringSequence bool

	// KeysWithModifier counts directions typed with the modifier active.
	KeysWithModifier int

	// KeysWithoutModifier counts directions typed without it.
	KeysWithoutModifier int
}

// Mode classifies modifier usage for the current state.
func (s State) Mode() ModifierMode {
	if len(s.Buffer) == 0 {
		if s.ModifierDown {
			return ModeWaiting
		}
		return ModeNone
	}
	switch {
	case s.KeysWithModifier == len(s.Buffer) && !s.ModifierReleasedDuringSequence:
		return ModeHeld
	case s.KeysWithModifier == 0:
		return ModePressedThenReleased
	default:
		return ModeMixed
	}
}

// IsEmpty returns true if the state holds nothing from a cycle.
func (s State) IsEmpty() bool {
	return len(s.Buffer) == 0 &&
		s.ModifierSeen == key.ModNone &&
		!s.ModifierPressedAtStart &&
		!s.ModifierReleasedDuringSequence &&
		s.KeysWithModifier == 0 &&
		s.KeysWithoutModifier == 0
}

// clone returns a copy with its own buffer storage.
func (s State) clone() State {
	s.Buffer = s.Buffer.Clone()
	return s
}

// clearCycle drops every per-cycle field. Whether a modifier is physically
// down survives, since that is the device's state, not the cycle's.
func (s *State) clearCycle() {
	down := s.ModifierDown
	*s = State{ModifierDown: down}
}
