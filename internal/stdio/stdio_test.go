package stdio_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/gwenzek/layerz/internal/ievent"
	"github.com/gwenzek/layerz/internal/stdio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadEventRoundTrip(t *testing.T) {
	want := ievent.Event{Type: ievent.EVKey, Code: 16, Value: ievent.KeyPress}
	b, err := want.MarshalBinary()
	require.NoError(t, err)

	var out bytes.Buffer
	p := stdio.New(bytes.NewReader(b), &out, nil, nil)

	got, ok := p.ReadEvent(time.Second)
	require.True(t, ok)
	assert.Equal(t, want, got)

	_, ok = p.ReadEvent(50 * time.Millisecond)
	assert.False(t, ok)
	assert.NoError(t, p.Err())
}

func TestWriteEventWritesWireFormat(t *testing.T) {
	want := ievent.Event{Type: ievent.EVKey, Code: 30, Value: ievent.KeyRelease}
	var out bytes.Buffer
	p := stdio.New(bytes.NewReader(nil), &out, nil, nil)
	p.WriteEvent(want)

	got, err := ievent.ReadFrom(&out)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
