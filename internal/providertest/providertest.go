// Package providertest is an in-memory provider.Provider test double
// driven by a virtual clock instead of wall time, so that tap/hold
// timing tests are deterministic.
package providertest

import (
	"time"

	"github.com/gwenzek/layerz/internal/ievent"
)

// Provider replays a scripted sequence of input events and records
// every event the core writes back, for assertion in tests.
type Provider struct {
	script  []ievent.Event
	cursor  int
	now     time.Duration
	Written []ievent.Event
}

// New returns a Provider that will hand out script's events in order.
// Each event's TimeSec/TimeUsec is its virtual arrival timestamp.
func New(script ...ievent.Event) *Provider {
	return &Provider{script: script}
}

func eventTime(e ievent.Event) time.Duration {
	return time.Duration(e.TimeSec)*time.Second + time.Duration(e.TimeUsec)*time.Microsecond
}

// ReadEvent implements provider.Provider. timeout==0 means "wait as
// long as needed", matching the production contract: the next scripted
// event is always delivered regardless of its virtual timestamp. A
// nonzero timeout only yields nothing when the next event's virtual
// timestamp is further out than now+timeout, in which case the virtual
// clock is advanced by timeout and the call reports no event.
func (p *Provider) ReadEvent(timeout time.Duration) (ievent.Event, bool) {
	if p.cursor >= len(p.script) {
		return ievent.Event{}, false
	}
	next := p.script[p.cursor]
	nextTime := eventTime(next)
	if timeout != 0 && nextTime > p.now+timeout {
		p.now += timeout
		return ievent.Event{}, false
	}
	p.now = nextTime
	p.cursor++
	return next, true
}

// WriteEvent implements provider.Provider by recording the event.
func (p *Provider) WriteEvent(e ievent.Event) {
	p.Written = append(p.Written, e)
}

// Remaining reports how many scripted events have not yet been read,
// useful for asserting a handler consumed exactly the lookahead it needed.
func (p *Provider) Remaining() int {
	return len(p.script) - p.cursor
}
