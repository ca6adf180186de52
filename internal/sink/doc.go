// Package sink provides the virtual keyboard the replay engine types on.
//
// A Sink accepts key presses, key releases and sync markers. On Linux the
// Uinput sink creates a device through /dev/uinput. Elsewhere, or when the
// device cannot be opened, NewDevice returns an Unavailable sink so callers
// can still be built and report the problem on every replay attempt.
//
// Recorder is an in-memory sink for tests and dry runs.
package sink
