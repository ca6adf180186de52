package sink

import (
	"errors"
	"fmt"

	"github.com/dshills/stratagem/internal/input/key"
)

// ErrUnavailable is returned by every operation on a sink whose device
// could not be created.
var ErrUnavailable = errors.New("injection device unavailable")

// Sink is a virtual keyboard.
type Sink interface {
	// Press sends a key-down event for code.
	Press(code key.Code) error

	// Release sends a key-up event for code.
	Release(code key.Code) error

	// Sync flushes the pending events as one report.
	Sync() error

	// Available reports whether the underlying device exists.
	Available() bool

	// Close destroys the device.
	Close() error
}

// Unavailable is a sink whose device could not be created.
// Every write fails with an error wrapping ErrUnavailable and Cause.
type Unavailable struct {
	Cause error
}

// NewUnavailable returns an Unavailable sink for cause.
func NewUnavailable(cause error) *Unavailable {
	return &Unavailable{Cause: cause}
}

func (u *Unavailable) err() error {
	if u.Cause == nil {
		return ErrUnavailable
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, u.Cause)
}

// Press implements Sink.
func (u *Unavailable) Press(key.Code) error { return u.err() }

// Release implements Sink.
func (u *Unavailable) Release(key.Code) error { return u.err() }

// Sync implements Sink.
func (u *Unavailable) Sync() error { return u.err() }

// Available implements Sink.
func (u *Unavailable) Available() bool { return false }

// Close implements Sink.
func (u *Unavailable) Close() error { return nil }

// Reason returns the cause as a string, or "" if none was given.
func (u *Unavailable) Reason() string {
	if u.Cause == nil {
		return ""
	}
	return u.Cause.Error()
}

// NewDevice creates the platform virtual keyboard named name.
// It never fails: when the device cannot be opened the returned sink is
// an *Unavailable carrying the cause.
func NewDevice(name string) Sink {
	dev, err := OpenUinput(name)
	if err != nil {
		return NewUnavailable(err)
	}
	return dev
}
