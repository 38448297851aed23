// Package keyboard implements the core: a deterministic, pull-driven
// state machine that consumes a stream of input events from a
// provider.Provider and emits a transformed stream according to a
// layer.Layout.
package keyboard

import (
	"log/slog"
	"time"

	"github.com/gwenzek/layerz/internal/action"
	"github.com/gwenzek/layerz/internal/ievent"
	"github.com/gwenzek/layerz/internal/keycode"
	"github.com/gwenzek/layerz/internal/layer"
	"github.com/gwenzek/layerz/internal/provider"
)

// Machine holds the core's entire mutable state: the active layer and
// the per-keycode layer-of-press table. It owns these fields and the
// provider exclusively for the duration of Loop; nothing else may
// touch them concurrently (single-threaded by design, so there is
// deliberately no mutex here).
type Machine struct {
	layout    layer.Layout
	baseLayer uint8
	layer     uint8
	keyState  [layer.NumCodes]uint8
	startTime time.Time
	logger    *slog.Logger
}

// NewMachine returns a Machine over layout, with baseLayer as the
// fallback layer for Transparent and the target of LayerToggle/
// LayerHold reversion. logger may be nil, in which case slog.Default
// is used.
func NewMachine(layout layer.Layout, baseLayer uint8, logger *slog.Logger) *Machine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Machine{
		layout:    layout,
		baseLayer: baseLayer,
		layer:     baseLayer,
		logger:    logger,
	}
}

// CurrentLayer reports the currently active layer, for tests and debug
// formatting.
func (m *Machine) CurrentLayer() uint8 {
	return m.layer
}

// Init prepares the machine for a run: it zeroes key_state, resets the
// active layer to baseLayer, records startTime for debug formatting,
// and emits a synthetic ENTER release followed by a SYN_REPORT. This
// prevents a stuck ENTER left over from shell interaction before the
// upstream adapter grabbed the device.
func (m *Machine) Init(p provider.Provider) {
	m.startTime = time.Now()
	m.layer = m.baseLayer
	for i := range m.keyState {
		m.keyState[i] = 0
	}
	p.WriteEvent(ievent.Event{Type: ievent.EVKey, Code: uint16(keycode.Enter), Value: ievent.KeyRelease})
	p.WriteEvent(ievent.Event{Type: ievent.EVSyn, Code: ievent.SynReport, Value: 0})
}

// Loop drains p until it reports end-of-stream, dispatching every
// event read to Handle.
func (m *Machine) Loop(p provider.Provider) {
	for {
		e, ok := p.ReadEvent(0)
		if !ok {
			return
		}
		m.Handle(p, e)
	}
}

// Handle resolves one event to an action and dispatches it. Scan
// auxiliaries and anything that is not a key event (or whose keycode
// falls outside the layout's range) pass through unchanged.
func (m *Machine) Handle(p provider.Provider, e ievent.Event) {
	if e.Type == ievent.EVMsc && e.Code == ievent.MscScan {
		p.WriteEvent(e)
		return
	}
	if !e.IsKey() || e.Code >= layer.NumCodes {
		p.WriteEvent(e)
		return
	}
	a := m.resolve(e)
	m.dispatch(a, e, p)
}

// resolve implements §4.5 action resolution: a press or repeat resolves
// against the current layer and records it in key_state; a release
// resolves against key_state, never against the current layer (I2).
func (m *Machine) resolve(e ievent.Event) action.Action {
	code := keycode.Code(e.Code)
	var resolvingLayer uint8
	switch e.Value {
	case ievent.KeyPress, ievent.KeyRepeat:
		resolvingLayer = m.layer
		m.keyState[code] = m.layer
	case ievent.KeyRelease:
		resolvingLayer = m.keyState[code]
	default:
		m.logger.Warn("unknown key event value", "code", code, "value", e.Value)
		return action.Disabled{}
	}
	return m.layout[resolvingLayer][code]
}

func (m *Machine) dispatch(a action.Action, e ievent.Event, p provider.Provider) {
	switch a := a.(type) {
	case action.Tap:
		m.handleTap(a, e, p)
	case action.ModTap:
		m.handleModTap(a, e, p)
	case action.LayerToggle:
		m.handleLayerToggle(a, e)
	case action.LayerHold:
		m.handleLayerHold(a, e, p)
	case action.Disabled:
		// swallow
	case action.Transparent:
		m.handleTransparent(e, p)
	case action.Hook:
		m.handleHook(a, e)
	case action.MouseMove:
		m.handleMouseMove(a, e, p)
	default:
		m.logger.Warn("unhandled action kind", "action", a)
	}
}

func (m *Machine) handleTap(a action.Tap, e ievent.Event, p provider.Provider) {
	if e.Value == ievent.KeyRepeat {
		return
	}
	out := e
	out.Code = uint16(a.Key)
	p.WriteEvent(out)
}

// handleModTap implements the immediate-release ModTap variant: press
// emits mod-press then key-press, pulls exactly one lookahead event,
// emits mod-release, then recursively handles the pulled event so the
// modifier never leaks onto it.
func (m *Machine) handleModTap(a action.ModTap, e ievent.Event, p provider.Provider) {
	switch e.Value {
	case ievent.KeyPress:
		modPress := e
		modPress.Code = uint16(a.Mod)
		p.WriteEvent(modPress)

		keyPress := e
		keyPress.Code = uint16(a.Key)
		p.WriteEvent(keyPress)

		next, ok := p.ReadEvent(0)

		modRelease := e
		modRelease.Code = uint16(a.Mod)
		modRelease.Value = ievent.KeyRelease
		p.WriteEvent(modRelease)

		if ok {
			m.Handle(p, next)
		}
	case ievent.KeyRelease:
		out := e
		out.Code = uint16(a.Key)
		p.WriteEvent(out)
	case ievent.KeyRepeat:
		// suppressed
	}
}

func (m *Machine) handleLayerToggle(a action.LayerToggle, e ievent.Event) {
	if e.Value != ievent.KeyPress {
		return
	}
	if m.layer != a.Layer {
		m.layer = a.Layer
	} else {
		m.layer = m.baseLayer
	}
}

func (m *Machine) handleLayerHold(a action.LayerHold, e ievent.Event, p provider.Provider) {
	switch e.Value {
	case ievent.KeyPress:
		m.layerHoldLoop(a, e, p)
	case ievent.KeyRelease:
		if m.layer == a.Layer {
			m.layer = m.baseLayer
			return
		}
		out := e
		out.Code = uint16(a.Key)
		p.WriteEvent(out)
	case ievent.KeyRepeat:
		// already-ambiguous repeats on the hold key are functionally
		// ignored at the top level; the disambiguation loop is the only
		// place a repeat on the hold key has meaning (it stays in the
		// loop there, see layerHoldLoop).
	}
}

// layerHoldLoop is the inline lookahead loop that disambiguates a
// LayerHold press between tap and hold, per §4.6. It consumes events
// directly from p, recursing into Handle for anything it decides to
// pass through rather than resolve itself.
func (m *Machine) layerHoldLoop(a action.LayerHold, pressEvent ievent.Event, p provider.Provider) {
	for {
		next, ok := p.ReadEvent(0)
		if !ok {
			return
		}
		if next.IsKey() && keycode.Code(next.Code) == a.Key {
			switch next.Value {
			case ievent.KeyRelease:
				if elapsed := eventDelta(pressEvent, next); elapsed < a.Delay {
					p.WriteEvent(pressEvent)
					tapRelease := next
					tapRelease.Code = uint16(a.Key)
					p.WriteEvent(tapRelease)
				}
				return
			case ievent.KeyRepeat:
				continue
			default:
				m.logger.Warn("unexpected value on layer-hold key during disambiguation", "value", next.Value)
				return
			}
		}
		if next.IsKey() && next.Value == ievent.KeyPress {
			m.layer = a.Layer
			m.Handle(p, next)
			return
		}
		m.Handle(p, next)
	}
}

func (m *Machine) handleTransparent(e ievent.Event, p provider.Provider) {
	baseAction := m.layout[m.baseLayer][e.Code]
	if _, ok := baseAction.(action.Transparent); ok {
		p.WriteEvent(e)
		return
	}
	m.dispatch(baseAction, e, p)
}

func (m *Machine) handleHook(a action.Hook, e ievent.Event) {
	if e.Value != ievent.KeyPress || a.Fn == nil {
		return
	}
	if err := a.Fn(); err != nil {
		m.logger.Warn("hook failed", "error", err)
	}
}

func (m *Machine) handleMouseMove(a action.MouseMove, e ievent.Event, p provider.Provider) {
	if e.Value != ievent.KeyPress && e.Value != ievent.KeyRepeat {
		return
	}
	switch a.Axis {
	case action.AxisRelXY:
		if a.StepX != 0 {
			p.WriteEvent(relEvent(e, ievent.RelX, a.StepX))
		}
		if a.StepY != 0 {
			p.WriteEvent(relEvent(e, ievent.RelY, a.StepY))
		}
	case action.AxisWheel:
		p.WriteEvent(relEvent(e, ievent.RelWheel, a.StepX))
	case action.AxisDial:
		p.WriteEvent(relEvent(e, ievent.RelDial, a.StepX))
	case action.AxisHWheel:
		p.WriteEvent(relEvent(e, ievent.RelHWheel, a.StepY))
	default:
		m.logger.Warn("unknown mouse-move axis", "axis", a.Axis)
	}
}

func relEvent(e ievent.Event, code uint16, value int32) ievent.Event {
	out := e
	out.Type = ievent.EVRel
	out.Code = code
	out.Value = value
	return out
}

func eventDelta(from, to ievent.Event) time.Duration {
	fromD := time.Duration(from.TimeSec)*time.Second + time.Duration(from.TimeUsec)*time.Microsecond
	toD := time.Duration(to.TimeSec)*time.Second + time.Duration(to.TimeUsec)*time.Microsecond
	return toD - fromD
}
