//go:build linux

package evdevio

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
)

func TestEviocgrabMatchesKernelConstant(t *testing.T) {
	// EVIOCGRAB is a fixed, well-known value in linux/input.h.
	assert.Equal(t, uintptr(0x40044590), eviocgrab())
}

func TestUinputUserDevNameFieldWidth(t *testing.T) {
	var dev uinputUserDev
	assert.Equal(t, uintptr(80), unsafe.Sizeof(dev.Name))
}

func TestEviocgbitEncodesEventTypeAndBufferLength(t *testing.T) {
	// EVIOCGBIT(EV_KEY=1, 96) against a hand-expanded _IOC(_IOC_READ, 'E',
	// 0x20+1, 96).
	assert.Equal(t, uintptr(0x80604521), eviocgbit(1, 96))
	// Same event type, different buffer length only changes the size field.
	assert.Equal(t, uintptr(0x80024521), eviocgbit(1, 2))
}

func TestBitSetReadsLowAndHighBitsOfEachByte(t *testing.T) {
	buf := []byte{0x01, 0x80}
	assert.True(t, bitSet(buf, 0))
	assert.False(t, bitSet(buf, 1))
	assert.True(t, bitSet(buf, 15))
	assert.False(t, bitSet(buf, 14))
	assert.False(t, bitSet(buf, 16))
}
