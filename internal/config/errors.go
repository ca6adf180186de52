package config

import (
	"fmt"
)

// InvalidConfigError reports a rejected setting. The store is unchanged.
type InvalidConfigError struct {
	// Field is the settings key, e.g. "key_delay".
	Field string

	// Value is the rejected value.
	Value any

	// Reason describes the constraint that failed.
	Reason string

	// Err is the underlying error, if any.
	Err error
}

func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Field, e.Value, e.Reason)
}

func (e *InvalidConfigError) Unwrap() error {
	return e.Err
}

// PartialReloadError reports problems in a reload that still took effect,
// such as a data file with some invalid entries.
type PartialReloadError struct {
	Err error
}

func (e *PartialReloadError) Error() string {
	return e.Err.Error()
}

func (e *PartialReloadError) Unwrap() error {
	return e.Err
}

// ParseError reports a settings file that is not valid TOML.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
