// Package app wires the stratagem components together.
package app

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownStratagem is returned when firing a key that is not in the
	// dictionary.
	ErrUnknownStratagem = errors.New("unknown stratagem")

	// ErrClosed is returned after Close.
	ErrClosed = errors.New("application closed")
)

// OperationError reports a failed operation on a target.
type OperationError struct {
	Op     string
	Target string
	Err    error
}

func (e *OperationError) Error() string {
	if e.Target != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Target, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

// InitError reports a component that failed to start.
type InitError struct {
	Component string
	Err       error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("initializing %s: %v", e.Component, e.Err)
}

func (e *InitError) Unwrap() error {
	return e.Err
}
