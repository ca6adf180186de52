package key

import (
	"fmt"
	"strings"
)

// Direction is a single directional input.
type Direction uint8

const (
	// DirectionNone is the zero value and is never valid in a sequence.
	DirectionNone Direction = iota

	Up
	Down
	Left
	Right
)

// Directions lists the valid directions in canonical order.
var Directions = []Direction{Up, Down, Left, Right}

// String returns the data-source token for the direction.
func (d Direction) String() string {
	switch d {
	case Up:
		return "UP"
	case Down:
		return "DOWN"
	case Left:
		return "LEFT"
	case Right:
		return "RIGHT"
	default:
		return fmt.Sprintf("Direction(%d)", d)
	}
}

// Arrow returns the arrow glyph used when displaying the direction.
func (d Direction) Arrow() string {
	switch d {
	case Up:
		return "↑"
	case Down:
		return "↓"
	case Left:
		return "←"
	case Right:
		return "→"
	default:
		return "?"
	}
}

// Valid returns true if d is one of the four directions.
func (d Direction) Valid() bool {
	return d >= Up && d <= Right
}

// Code is a Linux evdev key code (see linux/input-event-codes.h).
type Code uint16

// Key codes used by the replay engine and the settings file.
const (
	CodeNone       Code = 0
	CodeEsc        Code = 1
	CodeTab        Code = 15
	CodeW          Code = 17
	CodeLeftCtrl   Code = 29
	CodeA          Code = 30
	CodeS          Code = 31
	CodeD          Code = 32
	CodeLeftShift  Code = 42
	CodeRightShift Code = 54
	CodeLeftAlt    Code = 56
	CodeSpace      Code = 57
	CodeCapsLock   Code = 58
	CodeRightCtrl  Code = 97
	CodeRightAlt   Code = 100
	CodeUp         Code = 103
	CodeLeft       Code = 105
	CodeRight      Code = 106
	CodeDown       Code = 108
	CodeLeftMeta   Code = 125
	CodeRightMeta  Code = 126
)

// codeNames maps evdev names (without the KEY_ prefix) to codes.
var codeNames = map[string]Code{
	"ESC":        CodeEsc,
	"TAB":        CodeTab,
	"W":          CodeW,
	"A":          CodeA,
	"S":          CodeS,
	"D":          CodeD,
	"LEFTCTRL":   CodeLeftCtrl,
	"RIGHTCTRL":  CodeRightCtrl,
	"LEFTSHIFT":  CodeLeftShift,
	"RIGHTSHIFT": CodeRightShift,
	"LEFTALT":    CodeLeftAlt,
	"RIGHTALT":   CodeRightAlt,
	"LEFTMETA":   CodeLeftMeta,
	"RIGHTMETA":  CodeRightMeta,
	"SPACE":      CodeSpace,
	"CAPSLOCK":   CodeCapsLock,
	"UP":         CodeUp,
	"DOWN":       CodeDown,
	"LEFT":       CodeLeft,
	"RIGHT":      CodeRight,
}

// CodeFromName returns the code for an evdev key name.
// The lookup is case-insensitive and accepts an optional "KEY_" prefix.
func CodeFromName(name string) (Code, bool) {
	name = strings.ToUpper(strings.TrimSpace(name))
	name = strings.TrimPrefix(name, "KEY_")
	c, ok := codeNames[name]
	return c, ok
}

// Name returns the evdev name of the code without the KEY_ prefix.
func (c Code) Name() string {
	for name, code := range codeNames {
		if code == c {
			return name
		}
	}
	return fmt.Sprintf("CODE_%d", uint16(c))
}

// String returns the evdev constant name, e.g. "KEY_LEFTCTRL".
func (c Code) String() string {
	return "KEY_" + c.Name()
}

// Codes returns every code with a known name.
// The uinput sink registers these as the device's key capabilities.
func Codes() []Code {
	codes := make([]Code, 0, len(codeNames))
	for _, c := range codeNames {
		codes = append(codes, c)
	}
	return codes
}

// Layout selects the physical keys the four directions are typed on.
type Layout uint8

const (
	// LayoutArrows uses the arrow keys.
	LayoutArrows Layout = iota

	// LayoutWASD uses W, A, S and D.
	LayoutWASD
)

// String returns the settings name of the layout.
func (l Layout) String() string {
	switch l {
	case LayoutArrows:
		return "arrows"
	case LayoutWASD:
		return "wasd"
	default:
		return fmt.Sprintf("Layout(%d)", l)
	}
}

// ParseLayout parses a settings layout name.
func ParseLayout(s string) (Layout, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "arrows", "arrow", "":
		return LayoutArrows, true
	case "wasd":
		return LayoutWASD, true
	default:
		return LayoutArrows, false
	}
}

// Code returns the key code that types d under this layout.
func (l Layout) Code(d Direction) Code {
	if l == LayoutWASD {
		switch d {
		case Up:
			return CodeW
		case Down:
			return CodeS
		case Left:
			return CodeA
		case Right:
			return CodeD
		}
		return CodeNone
	}
	switch d {
	case Up:
		return CodeUp
	case Down:
		return CodeDown
	case Left:
		return CodeLeft
	case Right:
		return CodeRight
	}
	return CodeNone
}
