//go:build linux

// Package evdevio is the production provider.Provider: it grabs a real
// evdev input device exclusively and builds a uinput virtual device to
// mirror it onto, following the create/destroy lifecycle a
// libevdev-uinput caller follows (advertise capabilities, always trail
// a write with SYN_REPORT, destroy before close). EV_KEY capabilities
// are advertised over the full keycode range rather than queried from
// the source via EVIOCGBIT, since a layout can remap a press to any
// keycode regardless of what the source device itself reports; EV_REL
// capabilities are the source's real EVIOCGBIT bits unioned with the
// fixed axes MouseMove actions synthesize.
package evdevio

import (
	"encoding/binary"
	"fmt"
	"log/slog"
	"os"
	"time"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/gwenzek/layerz/internal/ievent"
	layerzlog "github.com/gwenzek/layerz/internal/log"
)

// keyMax mirrors linux/input-event-codes.h's KEY_MAX (0x2ff): the
// uinput mirror advertises every keycode up to this bound, not only the
// source device's own EVIOCGBIT-reported keys. A layout can remap any
// physical key to any keycode in that range, so the mirror has to be
// able to emit more than the source device can passively detect itself
// emitting.
const keyMax = 0x2ff

// relMax mirrors linux/input-event-codes.h's REL_MAX (0x0f).
const relMax = 0x0f

type inputID struct {
	Bustype uint16
	Vendor  uint16
	Product uint16
	Version uint16
}

type uinputUserDev struct {
	Name         [80]byte
	ID           inputID
	FFEffectsMax uint32
	Absmax       [64]int32
	Absmin       [64]int32
	Absfuzz      [64]int32
	Absflat      [64]int32
}

const busUSB = 0x03

// Provider drives a grabbed evdev device and its uinput mirror.
type Provider struct {
	dev     *os.File
	uidev   *os.File
	logger  *slog.Logger
	raw     layerzlog.RawLogger
	readErr error
}

// Open grabs the evdev device at path exclusively (EVIOCGRAB) and
// creates a uinput mirror advertising EV_KEY over [0,keyMax) plus
// whatever REL axes the source device reports via EVIOCGBIT, unioned
// with the fixed axes MouseMove actions can synthesize. On any failure
// it ungrabs and closes whatever it opened and returns a wrapped error;
// the caller treats that as a fatal device-acquisition failure.
func Open(path string, logger *slog.Logger, raw layerzlog.RawLogger) (*Provider, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if raw == nil {
		raw = layerzlog.NewRaw(nil)
	}

	dev, err := os.OpenFile(path, os.O_RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("evdevio: open %s: %w", path, err)
	}
	if err := unix.IoctlSetInt(int(dev.Fd()), uint(eviocgrab()), 1); err != nil {
		dev.Close()
		return nil, fmt.Errorf("evdevio: grab %s: %w", path, err)
	}

	uidev, err := createUinputMirror(int(dev.Fd()), logger)
	if err != nil {
		ungrab(dev)
		dev.Close()
		return nil, fmt.Errorf("evdevio: create uinput mirror: %w", err)
	}

	return &Provider{dev: dev, uidev: uidev, logger: logger, raw: raw}, nil
}

// queryBits issues EVIOCGBIT(ev, len(buf)) against fd, filling buf with
// the capability bitmask the kernel reports for that event type. The
// typed unix.IoctlSetInt/IoctlGetInt wrappers only carry int-sized
// arguments, so this one goes through the raw syscall with a pointer
// into buf.
func queryBits(fd int, ev uintptr, buf []byte) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), eviocgbit(ev, uintptr(len(buf))), uintptr(unsafe.Pointer(&buf[0])))
	if errno != 0 {
		return errno
	}
	return nil
}

func bitSet(bits []byte, code int) bool {
	idx := code / 8
	if idx < 0 || idx >= len(bits) {
		return false
	}
	return bits[idx]&(1<<(uint(code)%8)) != 0
}

func createUinputMirror(srcFd int, logger *slog.Logger) (*os.File, error) {
	relBits := make([]byte, relMax/8+1)
	if err := queryBits(srcFd, ievent.EVRel, relBits); err != nil {
		logger.Warn("could not query source device REL capabilities, mirroring only the axes MouseMove actions can synthesize", "error", err)
		relBits = nil
	}

	f, err := os.OpenFile("/dev/uinput", os.O_WRONLY, 0)
	if err != nil {
		return nil, err
	}
	fd := int(f.Fd())

	if err := unix.IoctlSetInt(fd, uiSetEvBit, ievent.EVKey); err != nil {
		f.Close()
		return nil, err
	}
	for code := 0; code < keyMax; code++ {
		if err := unix.IoctlSetInt(fd, uiSetKeyBit, code); err != nil {
			f.Close()
			return nil, err
		}
	}

	// REL axes: the source device's own bits (so a keyboard with a
	// built-in trackpoint or scroll wheel still passes its native REL
	// events through) unioned with the fixed axes MouseMove can
	// synthesize, since a plain keyboard source reports no REL bits of
	// its own at all.
	relAxes := map[int]bool{
		ievent.RelX: true, ievent.RelY: true, ievent.RelWheel: true,
		ievent.RelHWheel: true, ievent.RelDial: true,
	}
	for code := 0; code <= relMax; code++ {
		if bitSet(relBits, code) {
			relAxes[code] = true
		}
	}
	if err := unix.IoctlSetInt(fd, uiSetEvBit, ievent.EVRel); err != nil {
		f.Close()
		return nil, err
	}
	for rel := range relAxes {
		if err := unix.IoctlSetInt(fd, uiSetRelBit, rel); err != nil {
			f.Close()
			return nil, err
		}
	}

	var dev uinputUserDev
	copy(dev.Name[:], "layerz")
	dev.ID.Bustype = busUSB

	if err := binary.Write(f, binary.NativeEndian, &dev); err != nil {
		f.Close()
		return nil, err
	}
	if err := unix.IoctlSetInt(fd, uiDevCreate, 0); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func ungrab(dev *os.File) {
	_ = unix.IoctlSetInt(int(dev.Fd()), uint(eviocgrab()), 0)
}

// ForceUngrab opens the device at path and cycles EVIOCGRAB off then
// back on, independent of any Provider, then closes the fd (which
// releases the grab it just took). It exists for the companion reset
// tool: a crashed layerz process can leave the device in a state where
// the kernel still thinks it is grabbed by a dead client. Clearing and
// immediately re-claiming the grab on a fresh fd forces that stale
// state to resolve; closing this fd afterward hands the device back in
// its normal, ungrabbed state for whatever opens it next.
func ForceUngrab(path string) error {
	dev, err := os.OpenFile(path, os.O_RDONLY, 0)
	if err != nil {
		return fmt.Errorf("evdevio: open %s: %w", path, err)
	}
	defer dev.Close()

	grabIoctl := uint(eviocgrab())
	if err := unix.IoctlSetInt(int(dev.Fd()), grabIoctl, 0); err != nil {
		return fmt.Errorf("evdevio: release grab on %s: %w", path, err)
	}
	if err := unix.IoctlSetInt(int(dev.Fd()), grabIoctl, 1); err != nil {
		return fmt.Errorf("evdevio: re-acquire grab on %s: %w", path, err)
	}
	return nil
}

// Err reports the fatal read-side error observed by ReadEvent, if any.
func (p *Provider) Err() error {
	return p.readErr
}

// ReadEvent implements provider.Provider using unix.Poll to honor
// timeout without blocking the process indefinitely when timeout!=0.
// timeout==0 polls indefinitely, matching the production contract.
func (p *Provider) ReadEvent(timeout time.Duration) (ievent.Event, bool) {
	ms := -1
	if timeout != 0 {
		ms = int(timeout / time.Millisecond)
		if ms <= 0 {
			ms = 1
		}
	}
	fds := []unix.PollFd{{Fd: int32(p.dev.Fd()), Events: unix.POLLIN}}
	n, err := unix.Poll(fds, ms)
	if err != nil {
		if err == unix.EINTR {
			return ievent.Event{}, false
		}
		p.readErr = err
		return ievent.Event{}, false
	}
	if n == 0 {
		return ievent.Event{}, false
	}
	e, err := ievent.ReadFrom(p.dev)
	if err != nil {
		p.readErr = err
		return ievent.Event{}, false
	}
	p.raw.LogRead(e)
	return e, true
}

// WriteEvent implements provider.Provider. A write failure is
// unrecoverable: it is logged and the process exits.
func (p *Provider) WriteEvent(e ievent.Event) {
	p.raw.LogWrite(e)
	if err := ievent.WriteTo(p.uidev, e); err != nil {
		p.logger.Error("write event failed", "error", err)
		os.Exit(1)
	}
}

// Close destroys the uinput mirror and ungrabs and closes the source
// device. It is mandatory on teardown: a grabbed device left grabbed
// locks every other consumer out until the process dies.
func (p *Provider) Close() error {
	uiErr := unix.IoctlSetInt(int(p.uidev.Fd()), uiDevDestroy, 0)
	closeUiErr := p.uidev.Close()
	ungrab(p.dev)
	closeDevErr := p.dev.Close()

	for _, err := range []error{uiErr, closeUiErr, closeDevErr} {
		if err != nil {
			return fmt.Errorf("evdevio: close: %w", err)
		}
	}
	return nil
}
