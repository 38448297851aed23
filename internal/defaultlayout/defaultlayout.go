// Package defaultlayout provides the layout compiled into the layerz
// binary when no other configuration is wired in. It exercises every
// action kind except Hook, so it can double as a smoke-test fixture.
package defaultlayout

import (
	"github.com/gwenzek/layerz/internal/action"
	"github.com/gwenzek/layerz/internal/dsl"
	"github.com/gwenzek/layerz/internal/layer"
)

// NavLayer is the index of the symbol/navigation layer reached by
// holding TAB.
const NavLayer uint8 = 1

// Layout is the two-layer default: a base layer that is identity except
// for TAB (LayerHold to the navigation layer) and CAPSLOCK (a Ctrl+ESC
// ModTap), and a TAB-held navigation layer with arrow keys under HJKL,
// a shifted "1", a TAB toggle, a disabled CAPSLOCK, and scroll-wheel
// MouseMove cells on U and D.
func Layout() layer.Layout {
	base := dsl.Passthrough()
	dsl.MapKey(&base, "TAB", dsl.LH("TAB", NavLayer))
	dsl.MapKey(&base, "CAPSLOCK", dsl.Ctrl("ESC"))

	nav := dsl.Passthrough()
	dsl.MapKey(&nav, "H", dsl.K("LEFT"))
	dsl.MapKey(&nav, "J", dsl.K("DOWN"))
	dsl.MapKey(&nav, "K", dsl.K("UP"))
	dsl.MapKey(&nav, "L", dsl.K("RIGHT"))
	dsl.MapKey(&nav, "1", dsl.S("1")) // chord LEFTSHIFT+1, i.e. '!'
	dsl.MapKey(&nav, "TAB", dsl.LT(NavLayer))
	dsl.MapKey(&nav, "CAPSLOCK", dsl.XX)
	dsl.MapKey(&nav, "U", action.MouseMove{Axis: action.AxisWheel, StepX: 1})
	dsl.MapKey(&nav, "D", action.MouseMove{Axis: action.AxisWheel, StepX: -1})

	lo, err := layer.NewLayout(base, nav)
	if err != nil {
		// base and nav are both fixed-size layer.Layer values; NewLayout
		// only rejects an empty or oversized layer count, which cannot
		// happen for this literal two-layer call.
		panic(err)
	}
	return lo
}
