//go:build linux

package evdevio

import "unsafe"

// Linux _IOC encoding, mirrored from asm-generic/ioctl.h. golang.org/x/sys/unix
// does not export the evdev/uinput request numbers directly, so the few this
// adapter needs are built the same way the kernel headers do.
const (
	iocNRBits   = 8
	iocTypeBits = 8
	iocSizeBits = 14
	iocDirBits  = 2

	iocNRShift   = 0
	iocTypeShift = iocNRShift + iocNRBits
	iocSizeShift = iocTypeShift + iocTypeBits
	iocDirShift  = iocSizeShift + iocSizeBits

	iocWrite = 1
	iocRead  = 2
)

func ioc(dir, typ, nr, size uintptr) uintptr {
	return (dir << iocDirShift) | (typ << iocTypeShift) | (nr << iocNRShift) | (size << iocSizeShift)
}

// eviocgrab = EVIOCGRAB = _IOW('E', 0x90, int): grab (arg!=0) or release
// (arg==0) exclusive access to the evdev device.
func eviocgrab() uintptr {
	return ioc(iocWrite, uintptr('E'), 0x90, uintptr(unsafe.Sizeof(int32(0))))
}

// eviocgbit = EVIOCGBIT(ev, len) = _IOR('E', 0x20+ev, char[len]): read the
// capability bitmask for event type ev (EV_KEY, EV_REL, ...) into a
// len-byte buffer, one bit per code.
func eviocgbit(ev, length uintptr) uintptr {
	return ioc(iocRead, uintptr('E'), 0x20+ev, length)
}

// Uinput ioctl request numbers (linux/uinput.h); these are fixed legacy
// values, not _IOC-encoded from a struct size that varies by build.
const (
	uiSetEvBit   = 0x40045564
	uiSetKeyBit  = 0x40045565
	uiSetRelBit  = 0x40045566
	uiDevCreate  = 0x5501
	uiDevDestroy = 0x5502
)
