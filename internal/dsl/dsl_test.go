package dsl_test

import (
	"testing"
	"time"

	"github.com/gwenzek/layerz/internal/action"
	"github.com/gwenzek/layerz/internal/dsl"
	"github.com/gwenzek/layerz/internal/keycode"
	"github.com/stretchr/testify/assert"
)

func TestK(t *testing.T) {
	assert.Equal(t, action.Tap{Key: keycode.Q}, dsl.K("Q"))
}

func TestS(t *testing.T) {
	assert.Equal(t, action.ModTap{Key: keycode.Num9, Mod: keycode.LeftShift}, dsl.S("9"))
}

func TestCtrl(t *testing.T) {
	assert.Equal(t, action.ModTap{Key: keycode.C, Mod: keycode.LeftCtrl}, dsl.Ctrl("C"))
}

func TestAltGr(t *testing.T) {
	assert.Equal(t, action.ModTap{Key: keycode.E, Mod: keycode.RightAlt}, dsl.AltGr("E"))
}

func TestLT(t *testing.T) {
	assert.Equal(t, action.LayerToggle{Layer: 1}, dsl.LT(1))
}

func TestLHDefaultDelay(t *testing.T) {
	assert.Equal(t, action.LayerHold{Key: keycode.Tab, Layer: 1, Delay: action.DefaultHoldDelay}, dsl.LH("TAB", 1))
}

func TestLHExplicitDelay(t *testing.T) {
	got := dsl.LH("TAB", 1, 50*time.Millisecond)
	assert.Equal(t, action.LayerHold{Key: keycode.Tab, Layer: 1, Delay: 50 * time.Millisecond}, got)
}

func TestXXAndTransparent(t *testing.T) {
	assert.Equal(t, action.Disabled{}, dsl.XX)
	assert.Equal(t, action.Transparent{}, dsl.Transparent)
}

func TestPassthroughIsAllTransparent(t *testing.T) {
	l := dsl.Passthrough()
	for code, a := range l {
		assert.Equal(t, action.Transparent{}, a, "cell %d", code)
	}
}

func TestANSIPlacesRowsAndDefaultsRestToTransparent(t *testing.T) {
	numberRow := [13]action.Action{}
	for i := range numberRow {
		numberRow[i] = action.Transparent{}
	}
	numberRow[1] = dsl.K("1")

	topRow := [14]action.Action{}
	for i := range topRow {
		topRow[i] = action.Transparent{}
	}
	topRow[1] = dsl.K("Q")

	middleRow := [13]action.Action{}
	for i := range middleRow {
		middleRow[i] = action.Transparent{}
	}
	bottomRow := [12]action.Action{}
	for i := range bottomRow {
		bottomRow[i] = action.Transparent{}
	}

	l := dsl.ANSI(numberRow, topRow, middleRow, bottomRow)
	assert.Equal(t, dsl.K("1"), l[keycode.Num1])
	assert.Equal(t, dsl.K("Q"), l[keycode.Q])
	assert.Equal(t, action.Transparent{}, l[keycode.Esc])
	assert.Equal(t, action.Transparent{}, l[keycode.Space])
}

func TestMapKey(t *testing.T) {
	l := dsl.Passthrough()
	dsl.MapKey(&l, "Q", dsl.K("A"))
	assert.Equal(t, dsl.K("A"), l[keycode.Q])
}
