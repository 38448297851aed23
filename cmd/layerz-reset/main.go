// Command layerz-reset clears a stuck EVIOCGRAB left on a device by a
// layerz process that died without reaching its deferred Close: it
// cycles the grab off then back on over a fresh file descriptor, then
// exits, which releases the grab it took and leaves the device free
// for the next process to open normally.
package main

import (
	"os"

	"github.com/alecthomas/kong"

	"github.com/gwenzek/layerz/internal/evdevio"
)

type cli struct {
	Device string `arg:"" help:"evdev device path to ungrab, e.g. /dev/input/event3."`
}

func main() {
	var c cli
	kong.Parse(&c,
		kong.Name("layerz-reset"),
		kong.Description("Clear a stuck evdev grab by cycling EVIOCGRAB off then on."),
		kong.UsageOnError(),
	)

	if err := evdevio.ForceUngrab(c.Device); err != nil {
		_, _ = os.Stderr.WriteString("layerz-reset: " + err.Error() + "\n")
		os.Exit(1)
	}
}
