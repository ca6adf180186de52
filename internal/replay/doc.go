// Package replay types stratagem sequences on a virtual keyboard.
//
// An Engine runs one Job at a time. A job optionally opens the stratagem
// menu with a modifier key, then types every direction as six discrete
// steps: press, sync, pause, release, sync, pause. Whatever happens, a
// deferred cleanup phase releases every key the engine knows to be down
// and frees the execution lock, so a failure can never leave the real
// keyboard with a stuck modifier.
//
// Requests that arrive while a job is running are rejected with
// ErrAlreadyExecuting. They are not queued.
package replay
