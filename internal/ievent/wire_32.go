//go:build 386 || arm

package ievent

import (
	"encoding/binary"
	"io"
)

// Sizeof is the byte length of one wire-format input_event record on this
// platform. struct timeval's tv_sec/tv_usec are 4 bytes each on 32-bit
// Linux ABIs, giving 4+4+2+2+4 = 16 bytes total.
const Sizeof = 16

// MarshalBinary encodes e into its platform input_event byte layout.
func (e Event) MarshalBinary() ([]byte, error) {
	b := make([]byte, Sizeof)
	binary.NativeEndian.PutUint32(b[0:4], e.TimeSec)
	binary.NativeEndian.PutUint32(b[4:8], e.TimeUsec)
	binary.NativeEndian.PutUint16(b[8:10], e.Type)
	binary.NativeEndian.PutUint16(b[10:12], e.Code)
	binary.NativeEndian.PutUint32(b[12:16], uint32(e.Value))
	return b, nil
}

// UnmarshalBinary decodes e from its platform input_event byte layout.
func (e *Event) UnmarshalBinary(b []byte) error {
	if len(b) < Sizeof {
		return io.ErrUnexpectedEOF
	}
	e.TimeSec = binary.NativeEndian.Uint32(b[0:4])
	e.TimeUsec = binary.NativeEndian.Uint32(b[4:8])
	e.Type = binary.NativeEndian.Uint16(b[8:10])
	e.Code = binary.NativeEndian.Uint16(b[10:12])
	e.Value = int32(binary.NativeEndian.Uint32(b[12:16]))
	return nil
}
