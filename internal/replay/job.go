package replay

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/stratagem/internal/input/key"
)

// DefaultKeyDelay is the pause after every sync.
const DefaultKeyDelay = 30 * time.Millisecond

// Job is a single replay request.
type Job struct {
	// ID identifies the job in logs. Execute assigns one if unset.
	ID uuid.UUID

	// Key is the stratagem being typed, for logging only.
	Key string

	// Sequence is the direction code to type.
	Sequence key.Sequence

	// Modifier opens the stratagem menu. CodeNone skips it.
	Modifier key.Code

	// HoldModifier keeps the modifier down for the whole sequence.
	// When false it is tapped once before the first direction.
	HoldModifier bool

	// HeroMode means the menu is already open; the modifier is skipped.
	HeroMode bool

	// KeyDelay is the pause after every sync. Zero means DefaultKeyDelay.
	KeyDelay time.Duration

	// Layout maps directions to key codes.
	Layout key.Layout
}

// delay returns the effective key delay.
func (j Job) delay() time.Duration {
	if j.KeyDelay <= 0 {
		return DefaultKeyDelay
	}
	return j.KeyDelay
}

// usesModifier reports whether the job touches the modifier at all.
func (j Job) usesModifier() bool {
	return !j.HeroMode && j.Modifier != key.CodeNone
}

// codes resolves every direction to its key code.
func (j Job) codes() ([]key.Code, error) {
	if err := j.Sequence.Validate(); err != nil {
		return nil, err
	}
	out := make([]key.Code, len(j.Sequence))
	for i, d := range j.Sequence {
		c := j.Layout.Code(d)
		if c == key.CodeNone {
			return nil, fmt.Errorf("layout %s has no key for %s", j.Layout, d)
		}
		out[i] = c
	}
	return out, nil
}

// String describes the job for logs.
func (j Job) String() string {
	name := j.Key
	if name == "" {
		name = "<anonymous>"
	}
	return fmt.Sprintf("%s [%s]", name, j.Sequence)
}
