package defaultlayout_test

import (
	"testing"

	"github.com/gwenzek/layerz/internal/action"
	"github.com/gwenzek/layerz/internal/defaultlayout"
	"github.com/gwenzek/layerz/internal/keycode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayoutHasTwoLayers(t *testing.T) {
	lo := defaultlayout.Layout()
	require.Len(t, lo, 2)
}

func TestBaseLayerTabIsLayerHold(t *testing.T) {
	lo := defaultlayout.Layout()
	a, ok := lo[0][keycode.Tab].(action.LayerHold)
	require.True(t, ok)
	assert.Equal(t, defaultlayout.NavLayer, a.Layer)
}

func TestNavLayerArrowsAreTaps(t *testing.T) {
	lo := defaultlayout.Layout()
	a, ok := lo[defaultlayout.NavLayer][keycode.H].(action.Tap)
	require.True(t, ok)
	assert.Equal(t, keycode.Left, a.Key)
}

func TestNavLayerUnmappedKeysStayTransparent(t *testing.T) {
	lo := defaultlayout.Layout()
	assert.Equal(t, action.Transparent{}, lo[defaultlayout.NavLayer][keycode.A])
}
