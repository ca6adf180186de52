package sink

import (
	"fmt"
	"strings"
	"sync"

	"github.com/dshills/stratagem/internal/input/key"
)

// Op is a recorded sink operation.
type Op uint8

const (
	OpPress Op = iota
	OpRelease
	OpSync
)

// String returns the operation name.
func (o Op) String() string {
	switch o {
	case OpPress:
		return "press"
	case OpRelease:
		return "release"
	case OpSync:
		return "sync"
	default:
		return fmt.Sprintf("Op(%d)", o)
	}
}

// Call is a single recorded sink call.
type Call struct {
	Op   Op
	Code key.Code
}

// String formats the call as "press(KEY_UP)" or "sync".
func (c Call) String() string {
	if c.Op == OpSync {
		return "sync"
	}
	return fmt.Sprintf("%s(%s)", c.Op, c.Code)
}

// FailFunc decides whether a call fails. n is the zero-based index of the
// call among all calls made, failed ones included.
type FailFunc func(n int, c Call) error

// Recorder is an in-memory sink that records every call.
// It is safe for concurrent use.
type Recorder struct {
	mu     sync.Mutex
	calls  []Call
	fail   FailFunc
	n      int
	closed bool
}

// NewRecorder creates an available recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// FailWith installs a failure hook. Failed calls are not recorded.
func (r *Recorder) FailWith(f FailFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fail = f
}

// Press implements Sink.
func (r *Recorder) Press(code key.Code) error {
	return r.record(Call{Op: OpPress, Code: code})
}

// Release implements Sink.
func (r *Recorder) Release(code key.Code) error {
	return r.record(Call{Op: OpRelease, Code: code})
}

// Sync implements Sink.
func (r *Recorder) Sync() error {
	return r.record(Call{Op: OpSync})
}

// Available implements Sink.
func (r *Recorder) Available() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return !r.closed
}

// Close implements Sink.
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return nil
}

func (r *Recorder) record(c Call) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrUnavailable
	}
	n := r.n
	r.n++
	if r.fail != nil {
		if err := r.fail(n, c); err != nil {
			return err
		}
	}
	r.calls = append(r.calls, c)
	return nil
}

// Calls returns a copy of the recorded calls.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Call, len(r.calls))
	copy(out, r.calls)
	return out
}

// Count returns the number of recorded calls matching op and code.
// Sync calls match on op alone.
func (r *Recorder) Count(op Op, code key.Code) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, c := range r.calls {
		if c.Op == op && (op == OpSync || c.Code == code) {
			n++
		}
	}
	return n
}

// Len returns the number of recorded calls.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

// Reset drops all recorded calls and the failure hook.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
	r.fail = nil
	r.n = 0
}

// String returns the recorded calls joined by ", ".
func (r *Recorder) String() string {
	calls := r.Calls()
	parts := make([]string, len(calls))
	for i, c := range calls {
		parts[i] = c.String()
	}
	return strings.Join(parts, ", ")
}
