// Package layer defines the dense per-keycode action table and the
// ordered stack of such tables that make up a keyboard layout.
package layer

import (
	"fmt"

	"github.com/gwenzek/layerz/internal/action"
)

// NumCodes is the width of a Layer: one cell per keycode in [0,256).
const NumCodes = 256

// MaxLayers bounds how many layers a Layout may hold.
const MaxLayers = 16

// Layer is a dense mapping from keycode to Action. The zero value of a
// cell (via NewLayer) is action.Transparent{}, not action.Disabled{} —
// an unmapped cell falls through rather than swallowing the key.
type Layer [NumCodes]action.Action

// NewLayer returns a layer with every cell set to action.Transparent{}.
func NewLayer() Layer {
	var l Layer
	for i := range l {
		l[i] = action.Transparent{}
	}
	return l
}

// Layout is an ordered list of layers; index 0 is the base layer.
type Layout []Layer

// NewLayout validates and returns layers as a Layout. It is an error to
// pass zero layers or more than MaxLayers.
func NewLayout(layers ...Layer) (Layout, error) {
	if len(layers) == 0 {
		return nil, fmt.Errorf("layer: layout must have at least one layer")
	}
	if len(layers) > MaxLayers {
		return nil, fmt.Errorf("layer: layout has %d layers, max is %d", len(layers), MaxLayers)
	}
	return Layout(layers), nil
}
