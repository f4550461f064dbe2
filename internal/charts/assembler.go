// Package charts assembles the Yellowjacket chart set for a flight log.
package charts

import (
	"context"
	"log/slog"

	"flightplots/internal/config"
	"flightplots/internal/logging"
	"flightplots/internal/plot"
	"flightplots/internal/schema"
	"flightplots/internal/ulog"
)

// Skip records a chart omitted because its data could not be read.
// Unexpected is set when the chart is not one that reads its topic strictly.
type Skip struct {
	Title      string
	Err        error
	Unexpected bool
}

// Result is the assembled chart list. A nil entry in Charts reserves the
// slot for the parameter-change toggle.
type Result struct {
	Charts  []*plot.Chart
	Empty   []string
	Skipped []Skip
}

// Shown returns the number of non-nil charts.
func (r Result) Shown() int {
	n := 0
	for _, c := range r.Charts {
		if c != nil {
			n++
		}
	}
	return n
}

// HasToggleSlot reports whether a parameter toggle slot was reserved.
func (r Result) HasToggleSlot() bool {
	for _, c := range r.Charts {
		if c == nil {
			return true
		}
	}
	return false
}

type definition struct {
	title string
	// guarded charts read their topic strictly and are skipped on error.
	guarded bool
	build   func(b *builder) (*plot.Chart, error)
}

var definitions = []definition{
	{title: "Altitudes", build: (*builder).altitudes},
	{title: "X&Y Velocities", build: (*builder).velocities},
	{title: "VIO Position", build: (*builder).vioPosition},
	{title: "VIO Quality and Number of Features", build: (*builder).vioQuality},
	{title: "Optical Flow and Body Velocity", build: (*builder).opticalFlow},
	{title: "Estimator Information Events", guarded: true, build: (*builder).informationEvents},
	{title: "Estimator Warning Events", guarded: true, build: (*builder).warningEvents},
	{title: "Angular Rates", build: (*builder).angularRates},
	{title: "Magnetometer", build: (*builder).magnetometer},
	{title: "Manual Control Inputs (Radio or Joystick)", build: (*builder).manualControl},
	{title: "Manual Control Switches", build: (*builder).manualSwitches},
	{title: "Power", build: (*builder).power},
	{title: "TECS Airspeed", build: (*builder).tecsAirspeed},
	{title: "Actuator Controls", build: (*builder).actuatorControls},
}

// Titles returns the titles of all chart definitions in page order.
func Titles() []string {
	out := make([]string, len(definitions))
	for i, d := range definitions {
		out[i] = d.title
	}
	return out
}

type builder struct {
	ctx     context.Context
	logger  *slog.Logger
	log     *ulog.Log
	aliases schema.Aliases
	cfg     *config.Config
	modes   []ulog.ModeChange
	params  []ulog.ChangedParameter
	xRange  plot.Range
}

// Build assembles all charts for a log whose aliases were resolved with
// schema.Resolve. Charts without data are dropped; guarded charts whose
// topic cannot be read are skipped with a warning. Build never fails.
func Build(ctx context.Context, l *ulog.Log, aliases schema.Aliases, cfg *config.Config) Result {
	b := &builder{
		ctx:     ctx,
		logger:  logging.FromContext(ctx).With("log", l.ID),
		log:     l,
		aliases: aliases,
		cfg:     cfg,
		modes:   ulog.FlightModeChanges(l),
		xRange:  plot.XRangeFor(l, cfg.Plot.XRangePadding),
	}

	var res Result
	// replay logs can have many parameter changes
	if !l.IsReplay() && len(l.ChangedParameters) > 0 {
		b.params = l.ChangedParameters
		res.Charts = append(res.Charts, nil)
	}

	for _, def := range definitions {
		c, err := def.build(b)
		if err != nil {
			if def.guarded {
				b.logger.Warn("chart skipped", "chart", def.title, "err", err)
			} else {
				b.logger.Error("chart failed", "chart", def.title, "err", err)
			}
			res.Skipped = append(res.Skipped, Skip{Title: def.title, Err: err, Unexpected: !def.guarded})
			continue
		}
		if c == nil {
			b.logger.Debug("chart has no data", "chart", def.title)
			res.Empty = append(res.Empty, def.title)
			continue
		}
		res.Charts = append(res.Charts, c)
	}
	return res
}

func (b *builder) newPlot(topic, title, yLabel string) *plot.DataPlot {
	return plot.New(b.ctx, b.log, b.cfg.Plot, topic, plot.Options{
		Title:         title,
		XAxisLabel:    "Time [s]",
		YAxisLabel:    yLabel,
		XRange:        b.xRange,
		ChangedParams: b.params,
	})
}

func (b *builder) finish(p *plot.DataPlot) *plot.Chart {
	p.FlightModesBackground(b.modes)
	return p.Finalize()
}
