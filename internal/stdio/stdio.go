// Package stdio implements a provider.Provider over a pair of byte
// streams, used when layerz is chained behind another tool instead of
// driving evdev/uinput directly.
package stdio

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/gwenzek/layerz/internal/ievent"
	layerzlog "github.com/gwenzek/layerz/internal/log"
)

// Provider reads input_event records from r on a background goroutine
// (os.Stdin has no portable read deadline, unlike a socket or a device
// file descriptor) and writes them to w synchronously on WriteEvent.
type Provider struct {
	w      io.Writer
	logger *slog.Logger
	raw    layerzlog.RawLogger

	events chan ievent.Event
	readErr error
}

// New starts the background reader over r and returns a Provider that
// writes outgoing events to w. logger and raw may be nil.
func New(r io.Reader, w io.Writer, logger *slog.Logger, raw layerzlog.RawLogger) *Provider {
	if logger == nil {
		logger = slog.Default()
	}
	if raw == nil {
		raw = layerzlog.NewRaw(nil)
	}
	p := &Provider{
		w:      w,
		logger: logger,
		raw:    raw,
		events: make(chan ievent.Event),
	}
	go p.readLoop(r)
	return p
}

func (p *Provider) readLoop(r io.Reader) {
	defer close(p.events)
	for {
		e, err := ievent.ReadFrom(r)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				p.readErr = err
			}
			return
		}
		p.raw.LogRead(e)
		p.events <- e
	}
}

// Err reports the fatal read-side error observed by the background
// reader, if any. A clean end-of-stream leaves it nil.
func (p *Provider) Err() error {
	return p.readErr
}

// ReadEvent implements provider.Provider. timeout==0 blocks until the
// next event or end-of-stream; a nonzero timeout bounds the wait.
func (p *Provider) ReadEvent(timeout time.Duration) (ievent.Event, bool) {
	if timeout == 0 {
		e, ok := <-p.events
		return e, ok
	}
	select {
	case e, ok := <-p.events:
		return e, ok
	case <-time.After(timeout):
		return ievent.Event{}, false
	}
}

// WriteEvent implements provider.Provider. A write failure is
// unrecoverable: it is logged and the process exits, per the core's
// provider-failure policy.
func (p *Provider) WriteEvent(e ievent.Event) {
	p.raw.LogWrite(e)
	if err := ievent.WriteTo(p.w, e); err != nil {
		p.logger.Error("write event failed", "error", err)
		os.Exit(1)
	}
}
