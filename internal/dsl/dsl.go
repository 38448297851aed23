// Package dsl provides pure, compile-time helpers for building layouts.
// Every helper returns plain data; the core consumes it read-only.
package dsl

import (
	"time"

	"github.com/gwenzek/layerz/internal/action"
	"github.com/gwenzek/layerz/internal/keycode"
	"github.com/gwenzek/layerz/internal/layer"
)

// K returns a Tap action for the named key.
func K(name string) action.Action {
	return action.Tap{Key: keycode.MustResolve(name)}
}

// S returns a ModTap action chording LEFTSHIFT onto the named key.
func S(name string) action.Action {
	return action.ModTap{Key: keycode.MustResolve(name), Mod: keycode.LeftShift}
}

// Ctrl returns a ModTap action chording LEFTCTRL onto the named key.
func Ctrl(name string) action.Action {
	return action.ModTap{Key: keycode.MustResolve(name), Mod: keycode.LeftCtrl}
}

// AltGr returns a ModTap action chording RIGHTALT onto the named key.
func AltGr(name string) action.Action {
	return action.ModTap{Key: keycode.MustResolve(name), Mod: keycode.RightAlt}
}

// LT returns a LayerToggle action targeting the given layer index.
func LT(l uint8) action.Action {
	return action.LayerToggle{Layer: l}
}

// LH returns a LayerHold action for the named key and target layer. An
// optional delay overrides action.DefaultHoldDelay.
func LH(name string, l uint8, delay ...time.Duration) action.Action {
	d := action.DefaultHoldDelay
	if len(delay) > 0 {
		d = delay[0]
	}
	return action.LayerHold{Key: keycode.MustResolve(name), Layer: l, Delay: d}
}

// XX is the Disabled action: it swallows any event struck on its cell.
var XX action.Action = action.Disabled{}

// Transparent defers to the base layer's action at the same keycode.
var Transparent action.Action = action.Transparent{}

// Passthrough returns a layer filled entirely with Transparent, i.e. it
// behaves as identity when it is the base layer.
func Passthrough() layer.Layer {
	return layer.NewLayer()
}

// ANSI builds a layer from the four standard ANSI keyboard rows (13, 14,
// 13, and 12 keys respectively) laid out over a Passthrough base, then
// assigns each row's actions starting at the row's leftmost keycode.
func ANSI(numberRow [13]action.Action, topRow [14]action.Action, middleRow [13]action.Action, bottomRow [12]action.Action) layer.Layer {
	l := Passthrough()

	numberRowCodes := [13]keycode.Code{
		keycode.Esc, keycode.Num1, keycode.Num2, keycode.Num3, keycode.Num4,
		keycode.Num5, keycode.Num6, keycode.Num7, keycode.Num8, keycode.Num9,
		keycode.Num0, keycode.Minus, keycode.Equal,
	}
	topRowCodes := [14]keycode.Code{
		keycode.Tab, keycode.Q, keycode.W, keycode.E, keycode.R, keycode.T,
		keycode.Y, keycode.U, keycode.I, keycode.O, keycode.P,
		keycode.LeftBrace, keycode.RightBrace, keycode.Backslash,
	}
	middleRowCodes := [13]keycode.Code{
		keycode.CapsLock, keycode.A, keycode.S, keycode.D, keycode.F,
		keycode.G, keycode.H, keycode.J, keycode.K, keycode.L,
		keycode.Semicolon, keycode.Apostrophe, keycode.Enter,
	}
	bottomRowCodes := [12]keycode.Code{
		keycode.LeftShift, keycode.Z, keycode.X, keycode.C, keycode.V,
		keycode.B, keycode.N, keycode.M, keycode.Comma, keycode.Dot,
		keycode.Slash, keycode.RightShift,
	}

	for i, c := range numberRowCodes {
		l[c] = numberRow[i]
	}
	for i, c := range topRowCodes {
		l[c] = topRow[i]
	}
	for i, c := range middleRowCodes {
		l[c] = middleRow[i]
	}
	for i, c := range bottomRowCodes {
		l[c] = bottomRow[i]
	}
	return l
}

// MapKey assigns one cell of l, by symbolic key name, to a.
func MapKey(l *layer.Layer, name string, a action.Action) {
	l[keycode.MustResolve(name)] = a
}
