package layer_test

import (
	"testing"

	"github.com/gwenzek/layerz/internal/action"
	"github.com/gwenzek/layerz/internal/layer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLayerDefaultsToTransparent(t *testing.T) {
	l := layer.NewLayer()
	for code, a := range l {
		require.Equal(t, action.Transparent{}, a, "cell %d", code)
	}
}

func TestNewLayoutRejectsEmpty(t *testing.T) {
	_, err := layer.NewLayout()
	assert.Error(t, err)
}

func TestNewLayoutRejectsTooMany(t *testing.T) {
	layers := make([]layer.Layer, layer.MaxLayers+1)
	for i := range layers {
		layers[i] = layer.NewLayer()
	}
	_, err := layer.NewLayout(layers...)
	assert.Error(t, err)
}

func TestNewLayoutAccepts(t *testing.T) {
	l0 := layer.NewLayer()
	l0[1] = action.Tap{}
	got, err := layer.NewLayout(l0, layer.NewLayer())
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, action.Tap{}, got[0][1])
}
