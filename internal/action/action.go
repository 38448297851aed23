// Package action defines the closed set of operations a layer cell can
// bind a keycode to.
package action

import (
	"time"

	"github.com/gwenzek/layerz/internal/keycode"
)

// Kind identifies which concrete Action a cell holds, for dispatch and
// debug formatting without a type switch at every call site.
type Kind uint8

const (
	KindTap Kind = iota
	KindModTap
	KindLayerToggle
	KindLayerHold
	KindDisabled
	KindTransparent
	KindHook
	KindMouseMove
)

func (k Kind) String() string {
	switch k {
	case KindTap:
		return "Tap"
	case KindModTap:
		return "ModTap"
	case KindLayerToggle:
		return "LayerToggle"
	case KindLayerHold:
		return "LayerHold"
	case KindDisabled:
		return "Disabled"
	case KindTransparent:
		return "Transparent"
	case KindHook:
		return "Hook"
	case KindMouseMove:
		return "MouseMove"
	default:
		return "Unknown"
	}
}

// Action is the behavior bound to a single (layer, keycode) cell. It is a
// closed sum type: the core's handler type-switches on the concrete type
// rather than treating Action as an open extension point.
type Action interface {
	Kind() Kind
}

// Tap emits one key event with the incoming value and a rewritten code.
type Tap struct {
	Key keycode.Code
}

func (Tap) Kind() Kind { return KindTap }

// ModTap chords a modifier onto a key: press emits modifier-then-key,
// release emits the key (the modifier is released by the handler's
// lookahead, not stored here).
type ModTap struct {
	Key keycode.Code
	Mod keycode.Code
}

func (ModTap) Kind() Kind { return KindModTap }

// LayerToggle switches the active layer on press; release is a no-op.
type LayerToggle struct {
	Layer uint8
}

func (LayerToggle) Kind() Kind { return KindLayerToggle }

// LayerHold behaves as Tap(Key) if released within Delay without an
// intervening press of another key, else activates Layer for the
// duration of the hold. Delay defaults to 200ms (DefaultHoldDelay) when
// constructed through the DSL's LH helper.
type LayerHold struct {
	Key   keycode.Code
	Layer uint8
	Delay time.Duration
}

func (LayerHold) Kind() Kind { return KindLayerHold }

// DefaultHoldDelay is the tap/hold disambiguation window the DSL's LH
// helper uses when no explicit delay is given.
const DefaultHoldDelay = 200 * time.Millisecond

// Disabled swallows the event: neither press nor release is emitted.
type Disabled struct{}

func (Disabled) Kind() Kind { return KindDisabled }

// Transparent defers to the base layer's action at the same keycode. A
// Transparent cell on the base layer itself is identity.
type Transparent struct{}

func (Transparent) Kind() Kind { return KindTransparent }

// HookFunc is a user-supplied side-effecting function invoked by a Hook
// action on press. Any error it returns is logged and otherwise ignored.
type HookFunc func() error

// Hook invokes Fn on press only; it never emits an event itself.
type Hook struct {
	Fn HookFunc
}

func (Hook) Kind() Kind { return KindHook }

// Axis selects which EV_REL code(s) a MouseMove action emits.
type Axis uint8

const (
	AxisRelXY Axis = iota
	AxisWheel
	AxisHWheel
	AxisDial
)

// MouseMove synthesizes one or two EV_REL events on press/repeat and
// suppresses release.
type MouseMove struct {
	Axis  Axis
	StepX int32
	StepY int32
}

func (MouseMove) Kind() Kind { return KindMouseMove }
