//go:build !linux

package sink

import (
	"errors"
	"runtime"

	"github.com/dshills/stratagem/internal/input/key"
)

// Uinput is only implemented on Linux.
type Uinput struct{}

// OpenUinput always fails outside Linux.
func OpenUinput(string) (*Uinput, error) {
	return nil, errors.New("uinput is not supported on " + runtime.GOOS)
}

// Name implements the Linux API.
func (*Uinput) Name() string { return "" }

// Press implements Sink.
func (*Uinput) Press(key.Code) error { return ErrUnavailable }

// Release implements Sink.
func (*Uinput) Release(key.Code) error { return ErrUnavailable }

// Sync implements Sink.
func (*Uinput) Sync() error { return ErrUnavailable }

// Available implements Sink.
func (*Uinput) Available() bool { return false }

// Close implements Sink.
func (*Uinput) Close() error { return nil }
