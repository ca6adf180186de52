package matcher

import (
	"sync"

	"github.com/dshills/stratagem/internal/input/dictionary"
	"github.com/dshills/stratagem/internal/input/key"
)

// Source supplies the dictionary to match against.
// Dictionary may return a different value after a reload.
type Source interface {
	Dictionary() *dictionary.Dictionary
}

// Static is a Source that always returns the same dictionary.
type Static struct {
	Dict *dictionary.Dictionary
}

// Dictionary implements Source.
func (s Static) Dictionary() *dictionary.Dictionary {
	if s.Dict == nil {
		return dictionary.Empty()
	}
	return s.Dict
}

// Matcher tracks one sequence in progress.
// It is safe for concurrent use.
type Matcher struct {
	mu  sync.Mutex
	src Source

	state State

	// held is the identity of the modifier currently down.
	held key.Modifier

	// dict is pinned for the duration of a cycle so a reload cannot
	// change the candidate set under a partial match.
	dict *dictionary.Dictionary
}

// New creates a matcher reading from src.
func New(src Source) *Matcher {
	return &Matcher{src: src}
}

// OnDirection appends d to the buffer and resolves it.
// modifierActive reports whether a modifier was down when d was pressed.
func (m *Matcher) OnDirection(d key.Direction, modifierActive bool) Result {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !d.Valid() {
		// Not a direction; the cycle cannot continue.
		res := m.result(NoMatch)
		res.Sequence = append(res.Sequence, d)
		m.resetLocked()
		return res
	}

	startOfCycle := len(m.state.Buffer) == 0
	if startOfCycle {
		m.dict = m.src.Dictionary()
		if m.dict == nil {
			m.dict = dictionary.Empty()
		}
	}

	m.state.Buffer = append(m.state.Buffer, d)
	if modifierActive {
		m.state.KeysWithModifier++
		if m.state.ModifierSeen == key.ModNone {
			m.state.ModifierSeen = m.held
			if m.state.ModifierSeen == key.ModNone {
				m.state.ModifierSeen = key.ModUnknown
			}
			m.state.ModifierPressedAtStart = startOfCycle
		}
	} else {
		m.state.KeysWithoutModifier++
	}

	if k, ok := m.dict.LookupExact(m.state.Buffer); ok {
		res := m.result(Exact)
		res.Key = k
		m.resetLocked()
		return res
	}

	candidates := m.dict.PrefixMatches(m.state.Buffer)
	if len(candidates) == 0 {
		res := m.result(NoMatch)
		m.resetLocked()
		return res
	}

	res := m.result(Partial)
	res.Candidates = candidates
	return res
}

// OnModifierDown records a modifier press.
func (m *Matcher) OnModifierDown(mod key.Modifier) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if mod == key.ModNone {
		mod = key.ModUnknown
	}
	m.held = mod
	m.state.ModifierDown = true
}

// OnModifierUp records a modifier release.
func (m *Matcher) OnModifierUp(mod key.Modifier) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if mod != key.ModNone && m.state.ModifierSeen == key.ModUnknown && len(m.state.Buffer) > 0 {
		m.state.ModifierSeen = mod
	}
	m.held = key.ModNone
	m.state.ModifierDown = false
	if len(m.state.Buffer) > 0 {
		m.state.ModifierReleasedDuringSequence = true
	}
}

// Reset clears the sequence in progress. Resetting an empty matcher does
// nothing.
func (m *Matcher) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resetLocked()
}

// State returns a copy of the current state.
func (m *Matcher) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.clone()
}

// Mode returns the modifier usage classification for the current cycle.
func (m *Matcher) Mode() ModifierMode {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Mode()
}

// Candidates returns the keys reachable from the current buffer. With an
// empty buffer it returns every key of the current dictionary.
func (m *Matcher) Candidates() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	dict := m.dict
	if len(m.state.Buffer) == 0 || dict == nil {
		dict = m.src.Dictionary()
	}
	if dict == nil {
		return nil
	}
	return dict.PrefixMatches(m.state.Buffer)
}

func (m *Matcher) result(kind Kind) Result {
	return Result{
		Kind:     kind,
		Sequence: m.state.Buffer.Clone(),
		Mode:     m.state.Mode(),
		Modifier: m.state.ModifierSeen,
	}
}

func (m *Matcher) resetLocked() {
	m.state.clearCycle()
	m.dict = nil
}
