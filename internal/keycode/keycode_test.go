package keycode_test

import (
	"testing"

	"github.com/gwenzek/layerz/internal/keycode"
	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	cases := []struct {
		name string
		want keycode.Code
	}{
		{"Q", keycode.Q},
		{"LEFTSHIFT", keycode.LeftShift},
		{"ENTER", keycode.Enter},
		{"9", keycode.Num9},
		{"TAB", keycode.Tab},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := keycode.Resolve(tc.name)
			assert.True(t, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestResolveUnknown(t *testing.T) {
	_, ok := keycode.Resolve("NOT_A_KEY")
	assert.False(t, ok)
}

func TestNameRoundTrip(t *testing.T) {
	cases := []keycode.Code{keycode.Q, keycode.LeftShift, keycode.Enter, keycode.F12}
	for _, code := range cases {
		name := keycode.Name(code)
		resolved, ok := keycode.Resolve(name)
		assert.True(t, ok)
		assert.Equal(t, code, resolved)
	}
}

func TestNameUnregisteredCode(t *testing.T) {
	assert.Equal(t, "CODE(250)", keycode.Name(keycode.Code(250)))
}

func TestMustResolvePanicsOnUnknown(t *testing.T) {
	assert.Panics(t, func() {
		keycode.MustResolve("NOT_A_KEY")
	})
}
