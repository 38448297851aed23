// Package provider defines the pull/push boundary between the core
// state machine and the outside world.
package provider

import (
	"time"

	"github.com/gwenzek/layerz/internal/ievent"
)

// Provider is the two-method contract the core consumes. It is the only
// interface through which the core touches anything outside its own
// state: no other component may read from or write to it while the
// core's Loop is running.
type Provider interface {
	// ReadEvent returns the next event, or ok=false if none arrives
	// within timeout or the stream has ended. timeout==0 means block
	// indefinitely in production adapters; test adapters may honor a
	// virtual clock instead of wall time.
	ReadEvent(timeout time.Duration) (event ievent.Event, ok bool)

	// WriteEvent emits one event downstream. Failures are unrecoverable
	// and are reported by panicking or by the adapter's own fatal exit
	// path — the interface carries no error return because the core
	// has no recovery strategy for a broken sink.
	WriteEvent(event ievent.Event)
}
