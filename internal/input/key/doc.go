// Package key provides the input primitives stratagems are built from.
//
// This package defines the fundamental types shared by the dictionary,
// matcher and replay engine:
//
//   - Direction: one of UP, DOWN, LEFT, RIGHT
//   - Sequence: an ordered list of directions forming a stratagem code
//   - Code: a Linux evdev key code written to the injection sink
//   - Modifier: the identity of an auxiliary key such as Left Ctrl
//   - Layout: which physical keys the four directions are typed on
//
// # Direction Tokens
//
// Data sources spell directions as upper-case tokens:
//
//	["UP", "DOWN", "RIGHT", "LEFT", "UP"]
//
// Any other token is rejected with an *InvalidDirectionTokenError.
//
// # Key Codes
//
// Code names follow the evdev KEY_* constants with or without the prefix
// and are case-insensitive: "LEFTCTRL", "KEY_LEFTCTRL" and "leftctrl" all
// resolve to CodeLeftCtrl.
package key
