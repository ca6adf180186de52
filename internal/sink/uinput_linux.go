//go:build linux

package sink

import (
	"fmt"
	"sync"

	"golang.org/x/sys/unix"

	"github.com/dshills/stratagem/internal/input/key"
)

// UinputPath is the uinput control node.
var UinputPath = "/dev/uinput"

// Uinput is a virtual keyboard backed by /dev/uinput.
type Uinput struct {
	mu     sync.Mutex
	fd     int
	name   string
	closed bool
}

// OpenUinput creates a virtual keyboard able to type every key.Codes()
// value. It fails if /dev/uinput cannot be opened for writing, which
// usually means the user is not in the input group.
func OpenUinput(name string) (*Uinput, error) {
	if name == "" {
		name = DefaultDeviceName
	}

	fd, err := unix.Open(UinputPath, unix.O_WRONLY|unix.O_NONBLOCK|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", UinputPath, err)
	}

	if err := setup(fd, name); err != nil {
		unix.Close(fd)
		return nil, err
	}

	return &Uinput{fd: fd, name: name}, nil
}

func setup(fd int, name string) error {
	if err := unix.IoctlSetInt(fd, uiSetEvBit, evKey); err != nil {
		return fmt.Errorf("UI_SET_EVBIT: %w", err)
	}
	for _, c := range key.Codes() {
		if err := unix.IoctlSetInt(fd, uiSetKeyBit, int(c)); err != nil {
			return fmt.Errorf("UI_SET_KEYBIT %s: %w", c, err)
		}
	}
	if _, err := unix.Write(fd, encodeUserDev(name)); err != nil {
		return fmt.Errorf("writing uinput_user_dev: %w", err)
	}
	if err := unix.IoctlSetInt(fd, uiDevCreate, 0); err != nil {
		return fmt.Errorf("UI_DEV_CREATE: %w", err)
	}
	return nil
}

// Name returns the device name.
func (u *Uinput) Name() string {
	return u.name
}

// Press implements Sink.
func (u *Uinput) Press(code key.Code) error {
	return u.write(keyEvent(code, valuePress))
}

// Release implements Sink.
func (u *Uinput) Release(code key.Code) error {
	return u.write(keyEvent(code, valueRelease))
}

// Sync implements Sink.
func (u *Uinput) Sync() error {
	return u.write(syncEvent())
}

// Available implements Sink.
func (u *Uinput) Available() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return !u.closed
}

// Close destroys the device. It is safe to call more than once.
func (u *Uinput) Close() error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.closed {
		return nil
	}
	u.closed = true

	destroyErr := unix.IoctlSetInt(u.fd, uiDevDestroy, 0)
	closeErr := unix.Close(u.fd)
	if destroyErr != nil {
		return fmt.Errorf("UI_DEV_DESTROY: %w", destroyErr)
	}
	return closeErr
}

func (u *Uinput) write(ev []byte) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.closed {
		return ErrClosed
	}
	n, err := unix.Write(u.fd, ev)
	if err != nil {
		return fmt.Errorf("uinput write: %w", err)
	}
	if n != len(ev) {
		return fmt.Errorf("uinput write: short write %d of %d bytes", n, len(ev))
	}
	return nil
}
