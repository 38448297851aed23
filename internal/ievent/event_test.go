package ievent_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/gwenzek/layerz/internal/ievent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshalRoundTrip(t *testing.T) {
	e := ievent.Event{TimeSec: 12345, TimeUsec: 6789, Type: ievent.EVKey, Code: 16, Value: ievent.KeyPress}
	b, err := e.MarshalBinary()
	require.NoError(t, err)
	assert.Len(t, b, ievent.Sizeof)

	var got ievent.Event
	require.NoError(t, got.UnmarshalBinary(b))
	assert.Equal(t, e, got)
}

func TestUnmarshalTooShort(t *testing.T) {
	var e ievent.Event
	err := e.UnmarshalBinary(make([]byte, ievent.Sizeof-1))
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestReadFromRoundTrip(t *testing.T) {
	want := ievent.Event{TimeSec: 1, TimeUsec: 2, Type: ievent.EVKey, Code: 30, Value: ievent.KeyRelease}
	b, err := want.MarshalBinary()
	require.NoError(t, err)

	got, err := ievent.ReadFrom(bytes.NewReader(b))
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestReadFromEmptyIsEOF(t *testing.T) {
	_, err := ievent.ReadFrom(bytes.NewReader(nil))
	assert.ErrorIs(t, err, io.EOF)
}

func TestReadFromShortIsMalformed(t *testing.T) {
	_, err := ievent.ReadFrom(bytes.NewReader(make([]byte, ievent.Sizeof-3)))
	assert.ErrorIs(t, err, ievent.ErrShortRead)
}

func TestWriteToRoundTrip(t *testing.T) {
	want := ievent.Event{TimeSec: 9, TimeUsec: 8, Type: ievent.EVRel, Code: ievent.RelX, Value: -3}
	var buf bytes.Buffer
	require.NoError(t, ievent.WriteTo(&buf, want))

	got, err := ievent.ReadFrom(&buf)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
