// Command layerz-latbench measures per-event handling latency of
// internal/keyboard's core against a fixed synthetic trace, reporting
// p50/p90/p99 in one of table, markdown, or json formats. It replaces
// network round trips with direct in-process calls: there is no wire in
// this system's hot path to benchmark, only the handler itself.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/alecthomas/kong"

	"github.com/gwenzek/layerz/internal/defaultlayout"
	"github.com/gwenzek/layerz/internal/ievent"
	"github.com/gwenzek/layerz/internal/keyboard"
	"github.com/gwenzek/layerz/internal/keycode"
	"github.com/gwenzek/layerz/internal/providertest"
)

type cli struct {
	Format string `name:"format" default:"table" help:"Output format: table, markdown, or json."`
	Count  int    `name:"count" default:"1000" help:"Number of times the synthetic trace is replayed."`
	Out    string `name:"out" help:"Optional output file path; stdout if omitted."`
}

func main() {
	var c cli
	kong.Parse(&c,
		kong.Name("layerz-latbench"),
		kong.Description("Measure core handler latency against a synthetic trace."),
		kong.UsageOnError(),
	)

	samples := run(c.Count)
	report := summarize(samples)

	var out string
	switch strings.ToLower(c.Format) {
	case "markdown", "md":
		out = outputMarkdown(report)
	case "table":
		out = outputTable(report)
	case "json":
		js, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "layerz-latbench: json marshal: %v\n", err)
			os.Exit(1)
		}
		out = string(js)
	default:
		fmt.Fprintf(os.Stderr, "layerz-latbench: unknown format %q\n", c.Format)
		os.Exit(1)
	}

	if c.Out != "" {
		if err := os.WriteFile(c.Out, []byte(out), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "layerz-latbench: write output: %v\n", err)
			os.Exit(1)
		}
		return
	}
	fmt.Print(out)
}

// label identifies which handler branch a sample exercised, so the
// report can break latency down per dispatch kind rather than report
// one undifferentiated average.
type label string

const (
	labelPassthrough  label = "passthrough"
	labelModTap       label = "modtap"
	labelLayerHoldTap label = "layerhold-tap"
	labelLayerHoldUse label = "layerhold-use"
	labelMouseMove    label = "mousemove"
)

type sample struct {
	label    label
	duration time.Duration
}

// buildTrace returns one cycle of events exercising every dispatch
// branch defaultlayout.Layout() reaches, each tagged with the label of
// the event whose Handle call is timed. Events not carrying a label
// produce no sample: some are the lookahead events Handle pulls for
// itself (ModTap's mandatory pull, LayerHold's disambiguation loop) and
// count as part of the triggering call, the rest reach the top-level
// loop but their Handle time is not recorded.
func buildTrace() []struct {
	event ievent.Event
	label label
} {
	t := uint32(0)
	tick := func() (uint32, uint32) {
		t += 10000
		return t / 1000000, t % 1000000
	}
	ev := func(code keycode.Code, value int32) ievent.Event {
		sec, usec := tick()
		return ievent.Event{TimeSec: sec, TimeUsec: usec, Type: ievent.EVKey, Code: uint16(code), Value: value}
	}

	return []struct {
		event ievent.Event
		label label
	}{
		// Passthrough identity on the base layer.
		{ev(keycode.Q, ievent.KeyPress), labelPassthrough},
		{ev(keycode.Q, ievent.KeyRelease), ""},

		// ModTap: CAPSLOCK resolves to Ctrl("ESC") on the base layer.
		{ev(keycode.CapsLock, ievent.KeyPress), labelModTap},
		{ev(keycode.CapsLock, ievent.KeyRelease), ""},

		// LayerHold tapped quickly: TAB press then release inside the
		// hold delay resolves as a tap, never switching layers.
		{ev(keycode.Tab, ievent.KeyPress), labelLayerHoldTap},
		{ev(keycode.Tab, ievent.KeyRelease), ""},

		// LayerHold held: TAB press, then a nav-layer key press commits
		// the hold (handled recursively inside the disambiguation loop,
		// so its own Handle call is never observed at the top level).
		// Layer stays switched until TAB's release, so the nav-layer U
		// press/release that follows lands as an ordinary top-level
		// event and exercises MouseMove's wheel synthesis for real.
		{ev(keycode.Tab, ievent.KeyPress), labelLayerHoldUse},
		{ev(keycode.H, ievent.KeyPress), ""},
		{ev(keycode.H, ievent.KeyRelease), ""},
		{ev(keycode.U, ievent.KeyPress), labelMouseMove},
		{ev(keycode.U, ievent.KeyRelease), ""},
		{ev(keycode.Tab, ievent.KeyRelease), ""},
	}
}

func run(count int) []sample {
	trace := buildTrace()
	samples := make([]sample, 0, count*len(trace))

	for i := 0; i < count; i++ {
		events := make([]ievent.Event, len(trace))
		labels := make([]label, len(trace))
		for j, te := range trace {
			events[j] = te.event
			labels[j] = te.label
		}

		p := providertest.New(events...)
		m := keyboard.NewMachine(defaultlayout.Layout(), 0, nil)
		m.Init(p)
		for {
			// Recompute the just-read event's position from how many
			// events are still pending rather than counting outer-loop
			// iterations: a ModTap or LayerHold dispatch can pull extra
			// events straight from p itself, advancing the cursor by
			// more than one per call to Handle.
			before := p.Remaining()
			e, ok := p.ReadEvent(0)
			if !ok {
				break
			}
			idx := len(events) - before

			start := time.Now()
			m.Handle(p, e)
			elapsed := time.Since(start)

			if idx < len(labels) && labels[idx] != "" {
				samples = append(samples, sample{label: labels[idx], duration: elapsed})
			}
		}
	}
	return samples
}

type roleStats struct {
	Label  label         `json:"label"`
	N      int           `json:"n"`
	P50    time.Duration `json:"p50_ns"`
	P90    time.Duration `json:"p90_ns"`
	P99    time.Duration `json:"p99_ns"`
	Mean   time.Duration `json:"mean_ns"`
	Max    time.Duration `json:"max_ns"`
}

type report struct {
	Count int         `json:"count"`
	Roles []roleStats `json:"roles"`
}

func percentile(sorted []time.Duration, p float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(p * float64(len(sorted)-1))
	return sorted[idx]
}

func summarize(samples []sample) report {
	byLabel := map[label][]time.Duration{}
	for _, s := range samples {
		byLabel[s.label] = append(byLabel[s.label], s.duration)
	}

	order := []label{labelPassthrough, labelModTap, labelLayerHoldTap, labelLayerHoldUse, labelMouseMove}
	var roles []roleStats
	for _, l := range order {
		ds, ok := byLabel[l]
		if !ok {
			continue
		}
		sort.Slice(ds, func(i, j int) bool { return ds[i] < ds[j] })
		var sum, max time.Duration
		for _, d := range ds {
			sum += d
			if d > max {
				max = d
			}
		}
		roles = append(roles, roleStats{
			Label: l,
			N:     len(ds),
			P50:   percentile(ds, 0.50),
			P90:   percentile(ds, 0.90),
			P99:   percentile(ds, 0.99),
			Mean:  sum / time.Duration(len(ds)),
			Max:   max,
		})
	}
	count := 0
	if len(roles) > 0 {
		count = roles[0].N
	}
	return report{Count: count, Roles: roles}
}

func outputTable(r report) string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 2, 2, ' ', 0)
	fmt.Fprintf(w, "Role\tN\tP50\tP90\tP99\tMean\tMax\n")
	for _, role := range r.Roles {
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\t%s\t%s\n", role.Label, role.N, role.P50, role.P90, role.P99, role.Mean, role.Max)
	}
	w.Flush()
	return b.String()
}

func outputMarkdown(r report) string {
	var b strings.Builder
	b.WriteString("| Role | N | P50 | P90 | P99 | Mean | Max |\n")
	b.WriteString("|------|---|-----|-----|-----|------|-----|\n")
	for _, role := range r.Roles {
		b.WriteString(fmt.Sprintf("| %s | %d | %s | %s | %s | %s | %s |\n", role.Label, role.N, role.P50, role.P90, role.P99, role.Mean, role.Max))
	}
	return b.String()
}
