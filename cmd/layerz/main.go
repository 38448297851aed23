// Command layerz is the layered keyboard remapper. With no arguments it
// reads input_event records from standard input and writes the
// rewritten stream to standard output, designed to be chained behind an
// upstream tool that has already grabbed a device. Given a device
// path, it opens and grabs that evdev device directly and mirrors the
// rewritten stream onto a uinput virtual device.
package main

import (
	"os"

	"github.com/alecthomas/kong"

	"github.com/gwenzek/layerz/internal/defaultlayout"
	"github.com/gwenzek/layerz/internal/evdevio"
	"github.com/gwenzek/layerz/internal/keyboard"
	layerzlog "github.com/gwenzek/layerz/internal/log"
	"github.com/gwenzek/layerz/internal/provider"
	"github.com/gwenzek/layerz/internal/stdio"
)

type cli struct {
	Device string `arg:"" optional:"" help:"evdev device to grab and mirror; reads stdin/writes stdout if omitted."`

	LogLevel string `name:"log-level" default:"info" help:"trace, debug, info, warn, or error."`
	LogFile  string `name:"log-file" help:"write logs to this file and to stderr instead of the stdout/stderr split."`
	RawLog   string `name:"raw-log" help:"hex-dump every event crossing the provider boundary to this file; defaults to stdout at trace log level if omitted."`
}

func main() {
	var c cli
	kong.Parse(&c,
		kong.Name("layerz"),
		kong.Description("Layered keyboard remapper."),
		kong.UsageOnError(),
	)

	logger, rawLogger, closers, err := layerzlog.SetupLogging(c.LogLevel, c.LogFile, c.RawLog)
	if err != nil {
		_, _ = os.Stderr.WriteString("layerz: failed to set up logging: " + err.Error() + "\n")
		os.Exit(2)
	}
	defer func() {
		for _, cl := range closers {
			_ = cl.Close()
		}
	}()

	var p provider.Provider
	var evdev *evdevio.Provider
	if c.Device == "" {
		p = stdio.New(os.Stdin, os.Stdout, logger, rawLogger)
	} else {
		evdev, err = evdevio.Open(c.Device, logger, rawLogger)
		if err != nil {
			logger.Error("failed to acquire device", "device", c.Device, "error", err)
			os.Exit(1)
		}
		defer evdev.Close()
		p = evdev
	}

	m := keyboard.NewMachine(defaultlayout.Layout(), 0, logger)
	m.Init(p)
	m.Loop(p)

	if readErr := providerErr(p); readErr != nil {
		logger.Error("provider read failed", "error", readErr)
		os.Exit(1)
	}
}

// providerErr surfaces the fatal read-side error the stdio and evdevio
// adapters accumulate, since provider.Provider's ReadEvent has no error
// return of its own — a broken read is reported here, after Loop
// returns, rather than through the hot path.
func providerErr(p provider.Provider) error {
	switch p := p.(type) {
	case *stdio.Provider:
		return p.Err()
	case *evdevio.Provider:
		return p.Err()
	default:
		return nil
	}
}
