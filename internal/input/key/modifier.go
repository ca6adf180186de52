package key

import "strings"

// Modifier identifies an auxiliary key held or tapped around a sequence.
type Modifier uint8

const (
	// ModNone indicates no modifier has been seen.
	ModNone Modifier = iota

	// ModUnknown is a modifier whose identity the input source did not report.
	ModUnknown

	ModLeftCtrl
	ModRightCtrl
	ModLeftAlt
	ModRightAlt
	ModLeftShift
	ModRightShift
	ModLeftSuper
	ModRightSuper
)

// String returns a human-readable name like "Left Ctrl".
func (m Modifier) String() string {
	switch m {
	case ModNone:
		return "None"
	case ModLeftCtrl:
		return "Left Ctrl"
	case ModRightCtrl:
		return "Right Ctrl"
	case ModLeftAlt:
		return "Left Alt"
	case ModRightAlt:
		return "Right Alt"
	case ModLeftShift:
		return "Left Shift"
	case ModRightShift:
		return "Right Shift"
	case ModLeftSuper:
		return "Left Super"
	case ModRightSuper:
		return "Right Super"
	default:
		return "Unknown"
	}
}

// Code returns the evdev key code for the modifier, or CodeNone.
func (m Modifier) Code() Code {
	switch m {
	case ModLeftCtrl:
		return CodeLeftCtrl
	case ModRightCtrl:
		return CodeRightCtrl
	case ModLeftAlt:
		return CodeLeftAlt
	case ModRightAlt:
		return CodeRightAlt
	case ModLeftShift:
		return CodeLeftShift
	case ModRightShift:
		return CodeRightShift
	case ModLeftSuper:
		return CodeLeftMeta
	case ModRightSuper:
		return CodeRightMeta
	default:
		return CodeNone
	}
}

// IsEmpty returns true if no modifier is set.
func (m Modifier) IsEmpty() bool {
	return m == ModNone
}

// ModifierFromCode returns the modifier for an evdev code.
// Non-modifier codes return ModNone.
func ModifierFromCode(c Code) Modifier {
	switch c {
	case CodeLeftCtrl:
		return ModLeftCtrl
	case CodeRightCtrl:
		return ModRightCtrl
	case CodeLeftAlt:
		return ModLeftAlt
	case CodeRightAlt:
		return ModRightAlt
	case CodeLeftShift:
		return ModLeftShift
	case CodeRightShift:
		return ModRightShift
	case CodeLeftMeta:
		return ModLeftSuper
	case CodeRightMeta:
		return ModRightSuper
	default:
		return ModNone
	}
}

// ParseModifier parses a modifier name.
// Accepts evdev names ("LEFTCTRL"), short names ("ctrl", "alt", "shift",
// "super") which resolve to the left-hand key, and display names ("Left Ctrl").
func ParseModifier(s string) (Modifier, bool) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.ReplaceAll(norm, " ", "")
	norm = strings.ReplaceAll(norm, "_", "")
	norm = strings.TrimPrefix(norm, "key")

	switch norm {
	case "ctrl", "control", "leftctrl", "lctrl", "controll":
		return ModLeftCtrl, true
	case "rightctrl", "rctrl", "controlr":
		return ModRightCtrl, true
	case "alt", "leftalt", "lalt", "altl":
		return ModLeftAlt, true
	case "rightalt", "ralt", "altr":
		return ModRightAlt, true
	case "shift", "leftshift", "lshift", "shiftl":
		return ModLeftShift, true
	case "rightshift", "rshift", "shiftr":
		return ModRightShift, true
	case "super", "meta", "leftsuper", "leftmeta", "superl":
		return ModLeftSuper, true
	case "rightsuper", "rightmeta", "superr":
		return ModRightSuper, true
	case "unknown":
		return ModUnknown, true
	}
	return ModNone, false
}
