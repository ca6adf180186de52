package replay

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/stratagem/internal/input/key"
	"github.com/dshills/stratagem/internal/sink"
)

// Engine types jobs on a sink.
type Engine struct {
	sink    sink.Sink
	lock    *Lock
	logger  Logger
	sleep   Sleeper
	metrics *Metrics

	mu      sync.Mutex
	current *Job
	cancel  context.CancelFunc
}

// NewEngine creates an engine writing to s.
func NewEngine(s sink.Sink, opts ...Option) *Engine {
	e := &Engine{
		sink:    s,
		lock:    NewLock(),
		logger:  nopLogger{},
		sleep:   Sleep,
		metrics: NewMetrics(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Lock returns the engine's execution lock.
func (e *Engine) Lock() *Lock {
	return e.lock
}

// Metrics returns the engine's metrics.
func (e *Engine) Metrics() *Metrics {
	return e.metrics
}

// Available reports whether the sink can be written.
func (e *Engine) Available() bool {
	return e.sink != nil && e.sink.Available()
}

// Executing reports whether a job is running.
func (e *Engine) Executing() bool {
	return e.lock.Held()
}

// Current returns the running job, if any.
func (e *Engine) Current() (Job, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.current == nil {
		return Job{}, false
	}
	return *e.current, true
}

// Cancel stops the running job at its next pause. Cleanup still runs.
// Safe to call when nothing is running.
func (e *Engine) Cancel() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cancel != nil {
		e.cancel()
	}
}

// Execute types job and blocks until it finishes.
//
// Checks run in this order: an empty sequence fails with
// ErrEmptySequence, an unavailable sink with ErrSinkUnavailable, and a
// held lock with ErrAlreadyExecuting. None of them writes to the sink.
func (e *Engine) Execute(ctx context.Context, job Job) error {
	if job.Sequence.IsEmpty() {
		return ErrEmptySequence
	}
	if !e.Available() {
		e.metrics.unavailable.Add(1)
		return e.unavailableErr()
	}
	codes, err := job.codes()
	if err != nil {
		return fmt.Errorf("replay %s: %w", job.Key, err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if !e.lock.TryAcquire() {
		e.metrics.rejectedBusy.Add(1)
		e.logger.Debug("rejected %s: already executing", job)
		return ErrAlreadyExecuting
	}
	defer e.lock.Release()

	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}

	ctx, cancel := context.WithCancel(ctx)
	e.mu.Lock()
	e.current = &job
	e.cancel = cancel
	e.mu.Unlock()
	defer func() {
		cancel()
		e.mu.Lock()
		e.current = nil
		e.cancel = nil
		e.mu.Unlock()
	}()

	e.metrics.started.Add(1)
	e.logger.Debug("replay %s start job=%s", job, job.ID)
	start := time.Now()

	err = e.run(ctx, job, codes)
	e.metrics.recordDuration(time.Since(start))

	switch {
	case err == nil:
		e.metrics.completed.Add(1)
		e.logger.Debug("replay %s done in %s", job, time.Since(start))
	case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
		e.metrics.cancelled.Add(1)
		e.logger.Info("replay %s cancelled: %v", job, err)
	default:
		e.metrics.failed.Add(1)
		e.logger.Error("replay %s failed: %v", job, err)
	}
	return err
}

func (e *Engine) unavailableErr() error {
	if e.sink == nil {
		return ErrSinkUnavailable
	}
	if u, ok := e.sink.(*sink.Unavailable); ok && u.Cause != nil {
		return fmt.Errorf("%w: %v", ErrSinkUnavailable, u.Cause)
	}
	return ErrSinkUnavailable
}

// run performs the steps of job. A deferred cleanup releases whatever is
// still down, and its errors are joined to the cause.
func (e *Engine) run(ctx context.Context, job Job, codes []key.Code) (err error) {
	s := &stepper{sink: e.sink, sleep: e.sleep, delay: job.delay()}
	defer func() {
		if cerr := s.cleanup(); cerr != nil {
			e.logger.Error("replay %s cleanup: %v", job, cerr)
			err = errors.Join(err, cerr)
		}
	}()

	if job.usesModifier() {
		if err := s.press(ctx, job.Modifier); err != nil {
			return err
		}
		if !job.HoldModifier {
			if err := s.release(ctx, job.Modifier); err != nil {
				return err
			}
		}
	}

	for _, c := range codes {
		if err := s.press(ctx, c); err != nil {
			return err
		}
		if err := s.release(ctx, c); err != nil {
			return err
		}
	}
	return nil
}

// stepper issues sink writes and remembers which keys are down.
type stepper struct {
	sink  sink.Sink
	sleep Sleeper
	delay time.Duration

	// down holds codes in press order.
	down []key.Code
}

// press is press, sync, pause.
func (s *stepper) press(ctx context.Context, c key.Code) error {
	if err := s.sink.Press(c); err != nil {
		return fmt.Errorf("press %s: %w", c, err)
	}
	s.down = append(s.down, c)
	if err := s.sink.Sync(); err != nil {
		return fmt.Errorf("sync after press %s: %w", c, err)
	}
	return s.sleep(ctx, s.delay)
}

// release is release, sync, pause.
func (s *stepper) release(ctx context.Context, c key.Code) error {
	if err := s.sink.Release(c); err != nil {
		return fmt.Errorf("release %s: %w", c, err)
	}
	s.forget(c)
	if err := s.sink.Sync(); err != nil {
		return fmt.Errorf("sync after release %s: %w", c, err)
	}
	return s.sleep(ctx, s.delay)
}

func (s *stepper) forget(c key.Code) {
	for i := len(s.down) - 1; i >= 0; i-- {
		if s.down[i] == c {
			s.down = append(s.down[:i], s.down[i+1:]...)
			return
		}
	}
}

// cleanup releases every key still down, newest first. Pauses here ignore
// cancellation so the release edge always settles.
func (s *stepper) cleanup() error {
	var errs []error
	for len(s.down) > 0 {
		c := s.down[len(s.down)-1]
		s.down = s.down[:len(s.down)-1]

		if err := s.sink.Release(c); err != nil {
			errs = append(errs, fmt.Errorf("release %s: %w", c, err))
			continue
		}
		if err := s.sink.Sync(); err != nil {
			errs = append(errs, fmt.Errorf("sync after release %s: %w", c, err))
		}
		_ = s.sleep(context.Background(), s.delay)
	}
	return errors.Join(errs...)
}
