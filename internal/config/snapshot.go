package config

import (
	"maps"
	"time"

	"github.com/dshills/stratagem/internal/input/key"
)

// Defaults.
const (
	DefaultKeyDelay     = 30 * time.Millisecond
	DefaultModifierKey  = key.CodeLeftCtrl
	DefaultHoldModifier = true
	DefaultLayout       = key.LayoutArrows

	// MaxKeyDelay is the longest accepted key delay.
	MaxKeyDelay = time.Second
)

// Snapshot is a complete, valid configuration.
type Snapshot struct {
	// KeyDelay is the pause after every sync.
	KeyDelay time.Duration

	// ModifierKey opens the stratagem menu.
	ModifierKey key.Code

	// HoldModifier keeps the modifier down for the whole sequence instead
	// of tapping it first.
	HoldModifier bool

	// Layout selects arrow keys or WASD.
	Layout key.Layout

	// CustomSequences are user-defined stratagems by key.
	CustomSequences map[string]key.Sequence

	// Extra holds settings this package does not recognize.
	Extra map[string]any
}

// DefaultSnapshot returns the default configuration.
func DefaultSnapshot() Snapshot {
	return Snapshot{
		KeyDelay:     DefaultKeyDelay,
		ModifierKey:  DefaultModifierKey,
		HoldModifier: DefaultHoldModifier,
		Layout:       DefaultLayout,
	}
}

// Clone returns a deep copy.
func (s Snapshot) Clone() Snapshot {
	if s.CustomSequences != nil {
		seqs := make(map[string]key.Sequence, len(s.CustomSequences))
		for k, v := range s.CustomSequences {
			seqs[k] = v.Clone()
		}
		s.CustomSequences = seqs
	}
	if s.Extra != nil {
		s.Extra = cloneExtra(s.Extra)
	}
	return s
}

func cloneExtra(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		if nested, ok := v.(map[string]any); ok {
			v = cloneExtra(nested)
		}
		out[k] = v
	}
	return out
}

// Partial is an update. Nil fields are left unchanged.
type Partial struct {
	KeyDelay     *time.Duration
	ModifierKey  *key.Code
	HoldModifier *bool
	Layout       *key.Layout

	// CustomSequences replaces the whole set when non-nil.
	CustomSequences map[string]key.Sequence

	// Extra is merged key by key into the passthrough settings.
	Extra map[string]any
}

// IsEmpty returns true if the partial changes nothing.
func (p Partial) IsEmpty() bool {
	return p.KeyDelay == nil && p.ModifierKey == nil && p.HoldModifier == nil &&
		p.Layout == nil && p.CustomSequences == nil && len(p.Extra) == 0
}

// validate checks every field of p.
func (p Partial) validate() error {
	if p.KeyDelay != nil {
		if err := ValidateKeyDelay(*p.KeyDelay); err != nil {
			return err
		}
	}
	if p.ModifierKey != nil {
		c := *p.ModifierKey
		if _, ok := key.CodeFromName(c.Name()); !ok || c == key.CodeNone {
			return &InvalidConfigError{Field: KeyModifierKey, Value: c, Reason: "unknown key code"}
		}
	}
	if p.Layout != nil {
		if _, ok := key.ParseLayout(p.Layout.String()); !ok {
			return &InvalidConfigError{Field: KeyDirectionKeys, Value: *p.Layout, Reason: "unknown layout"}
		}
	}
	for k, seq := range p.CustomSequences {
		if k == "" {
			return &InvalidConfigError{Field: KeyCustomSequences, Value: k, Reason: "empty stratagem key"}
		}
		if err := seq.Validate(); err != nil {
			return &InvalidConfigError{
				Field:  KeyCustomSequences + "." + k,
				Value:  seq,
				Reason: err.Error(),
				Err:    err,
			}
		}
	}
	return nil
}

// apply returns s updated by p. p must be valid.
func (s Snapshot) apply(p Partial) Snapshot {
	next := s.Clone()
	if p.KeyDelay != nil {
		next.KeyDelay = *p.KeyDelay
	}
	if p.ModifierKey != nil {
		next.ModifierKey = *p.ModifierKey
	}
	if p.HoldModifier != nil {
		next.HoldModifier = *p.HoldModifier
	}
	if p.Layout != nil {
		next.Layout = *p.Layout
	}
	if p.CustomSequences != nil {
		next.CustomSequences = make(map[string]key.Sequence, len(p.CustomSequences))
		for k, v := range p.CustomSequences {
			next.CustomSequences[k] = v.Clone()
		}
	}
	if len(p.Extra) > 0 {
		if next.Extra == nil {
			next.Extra = make(map[string]any, len(p.Extra))
		}
		maps.Copy(next.Extra, cloneExtra(p.Extra))
	}
	return next
}

// ValidateKeyDelay checks that d is in (0, MaxKeyDelay].
func ValidateKeyDelay(d time.Duration) error {
	if d <= 0 || d > MaxKeyDelay {
		return &InvalidConfigError{
			Field:  KeyKeyDelay,
			Value:  d.Seconds(),
			Reason: "must be greater than 0 and at most 1 second",
		}
	}
	return nil
}
