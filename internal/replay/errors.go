package replay

import "errors"

var (
	// ErrEmptySequence is returned for a job without directions.
	ErrEmptySequence = errors.New("replay: empty sequence")

	// ErrAlreadyExecuting is returned when another job holds the lock.
	// It is routine under rapid triggering and not a fault.
	ErrAlreadyExecuting = errors.New("replay: already executing")

	// ErrSinkUnavailable is returned when the injection device does not
	// exist. Every attempt fails the same way until the device is fixed.
	ErrSinkUnavailable = errors.New("replay: injection device unavailable")
)
