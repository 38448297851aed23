//go:build amd64 || arm64

package ievent

import (
	"encoding/binary"
	"io"
)

// Sizeof is the byte length of one wire-format input_event record on this
// platform. The kernel's struct timeval widens tv_sec/tv_usec to 8 bytes
// each on 64-bit Linux ABIs; the trailing type/code/value triple is
// always 2+2+4 bytes, giving 8+8+2+2+4 = 24 bytes total.
const Sizeof = 24

// MarshalBinary encodes e into its platform input_event byte layout,
// byte-compatible with a native read()/write() on a grabbed evdev device
// or uinput mirror.
func (e Event) MarshalBinary() ([]byte, error) {
	b := make([]byte, Sizeof)
	binary.NativeEndian.PutUint64(b[0:8], uint64(e.TimeSec))
	binary.NativeEndian.PutUint64(b[8:16], uint64(e.TimeUsec))
	binary.NativeEndian.PutUint16(b[16:18], e.Type)
	binary.NativeEndian.PutUint16(b[18:20], e.Code)
	binary.NativeEndian.PutUint32(b[20:24], uint32(e.Value))
	return b, nil
}

// UnmarshalBinary decodes e from its platform input_event byte layout.
func (e *Event) UnmarshalBinary(b []byte) error {
	if len(b) < Sizeof {
		return io.ErrUnexpectedEOF
	}
	e.TimeSec = uint32(binary.NativeEndian.Uint64(b[0:8]))
	e.TimeUsec = uint32(binary.NativeEndian.Uint64(b[8:16]))
	e.Type = binary.NativeEndian.Uint16(b[16:18])
	e.Code = binary.NativeEndian.Uint16(b[18:20])
	e.Value = int32(binary.NativeEndian.Uint32(b[20:24]))
	return nil
}
