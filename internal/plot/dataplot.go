// Package plot builds chart objects from log topics.
package plot

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/google/uuid"

	"flightplots/internal/config"
	"flightplots/internal/logging"
	"flightplots/internal/ulog"
)

// DefaultColor is used when a field group lists fewer colors than fields.
const DefaultColor = "#1f77b4"

// Options configure a new DataPlot.
type Options struct {
	Title      string
	XAxisLabel string
	YAxisLabel string
	XRange     Range
	YRange     *Range
	// ChangedParams enables the parameter-change overlay when non-nil.
	ChangedParams []ulog.ChangedParameter
	TopicInstance int
}

// DataPlot accumulates series for one chart. Missing topics or fields never
// fail the caller: the affected field group is skipped and the chart is
// dropped at Finalize if nothing was added.
type DataPlot struct {
	log      *ulog.Log
	cfg      config.PlotConfig
	opts     Options
	logger   *slog.Logger
	dataName string
	cur      *ulog.Topic
	err      error
	series   []Series
	modes    []ModeSpan
}

// New starts a chart on the given topic.
func New(ctx context.Context, l *ulog.Log, cfg config.PlotConfig, topic string, opts Options) *DataPlot {
	p := &DataPlot{
		log:    l,
		cfg:    cfg,
		opts:   opts,
		logger: logging.FromContext(ctx).With("chart", opts.Title),
	}
	if p.opts.XAxisLabel == "" {
		p.opts.XAxisLabel = "[us]"
	}
	p.ChangeDatasetInstance(topic, opts.TopicInstance)
	return p
}

// Title returns the chart title.
func (p *DataPlot) Title() string { return p.opts.Title }

// Err returns the last dataset or field error, if any.
func (p *DataPlot) Err() error { return p.err }

// Dataset returns the currently selected topic or nil.
func (p *DataPlot) Dataset() *ulog.Topic { return p.cur }

// ChangeDataset selects instance 0 of another topic for following AddGraph calls.
func (p *DataPlot) ChangeDataset(topic string) {
	p.ChangeDatasetInstance(topic, 0)
}

// ChangeDatasetInstance selects a topic instance for following AddGraph calls.
func (p *DataPlot) ChangeDatasetInstance(topic string, multiID int) {
	p.dataName = topic
	t, err := p.log.TopicInstance(topic, multiID)
	if err != nil {
		p.logger.Debug("dataset not found", "topic", topic, "err", err)
		p.cur = nil
		p.err = err
		return
	}
	p.cur = t
}

// AddGraph plots a group of fields of the current dataset. The group is
// skipped as a whole if any field is missing; fields without samples are
// not plotted.
func (p *DataPlot) AddGraph(fields []Field, colors, legends []string) {
	if p.cur == nil {
		return
	}
	x := timestampsToFloat(p.cur.Timestamps)
	group := make([]Series, 0, len(fields))
	for i, f := range fields {
		y, err := f.values(p.cur)
		if err != nil {
			p.logger.Debug("field not plotted", "topic", p.dataName, "field", f.Name, "err", err)
			p.err = fmt.Errorf("%s: %w", p.dataName, err)
			return
		}
		n := min(len(x), len(y))
		if n == 0 {
			p.logger.Debug("field has no samples", "topic", p.dataName, "field", f.Name)
			continue
		}
		sx, sy := downsample(x[:n], y[:n], p.cfg.MaxPoints)
		group = append(group, Series{
			Topic: p.dataName,
			Field: f.Name,
			Label: pick(legends, i, f.Name),
			Color: pick(colors, i, DefaultColor),
			X:     sx,
			Y:     sy,
		})
	}
	p.series = append(p.series, group...)
}

// AddSeries adds precomputed samples that are not tied to a single field.
// A series without samples is ignored.
func (p *DataPlot) AddSeries(s Series) {
	n := min(len(s.X), len(s.Y))
	if n == 0 {
		return
	}
	s.X, s.Y = downsample(s.X[:n], s.Y[:n], p.cfg.MaxPoints)
	p.series = append(p.series, s)
}

// FlightModesBackground overlays flight-mode bands. changes must end with a
// ulog.ModeEnd entry; unknown modes are not drawn.
func (p *DataPlot) FlightModesBackground(changes []ulog.ModeChange) {
	p.modes = p.modes[:0]
	for i := 0; i+1 < len(changes); i++ {
		mode, ok := ulog.FlightModes[changes[i].Mode]
		if !ok {
			continue
		}
		p.modes = append(p.modes, ModeSpan{
			Start: float64(changes[i].Timestamp),
			End:   float64(changes[i+1].Timestamp),
			Mode:  changes[i].Mode,
			Name:  mode.Name,
			Color: mode.Color,
		})
	}
}

// Finalize returns the chart, or nil if no data could be plotted.
func (p *DataPlot) Finalize() *Chart {
	if len(p.series) == 0 {
		return nil
	}
	c := &Chart{
		ID:          uuid.NewString(),
		Title:       p.opts.Title,
		XAxisLabel:  p.opts.XAxisLabel,
		YAxisLabel:  p.opts.YAxisLabel,
		Width:       p.cfg.Width,
		Height:      p.cfg.Height,
		XRange:      p.opts.XRange,
		YRange:      p.opts.YRange,
		Series:      p.series,
		FlightModes: append([]ModeSpan(nil), p.modes...),
	}
	if c.XRange.Span() <= 0 {
		c.XRange = XRangeFor(p.log, p.cfg.XRangePadding)
	}
	if p.opts.ChangedParams != nil {
		c.ParamLabel = paramLabel(p.opts.ChangedParams)
	}
	return c
}

// XRangeFor returns the log span widened by padding (a fraction of the span)
// on both sides.
func XRangeFor(l *ulog.Log, padding float64) Range {
	start, last := float64(l.StartTimestamp), float64(l.LastTimestamp)
	offset := (last - start) * padding
	return Range{Start: start - offset, End: last + offset}
}

func paramLabel(params []ulog.ChangedParameter) *ParamChangeLabel {
	label := &ParamChangeLabel{ID: uuid.NewString(), Visible: true, TextAlpha: 1}
	for _, cp := range params {
		label.Changes = append(label.Changes, ParamChange{
			Timestamp: float64(cp.Timestamp),
			Text:      fmt.Sprintf("%s: %g", cp.Name, cp.Value),
		})
	}
	return label
}

func timestampsToFloat(ts []uint64) []float64 {
	out := make([]float64, len(ts))
	for i, t := range ts {
		out[i] = float64(t)
	}
	return out
}

// downsample keeps every n-th sample so about limit points remain; the last
// sample is always kept. limit <= 0 disables downsampling.
func downsample(x, y []float64, limit int) ([]float64, []float64) {
	if limit <= 0 || len(x) <= limit {
		return x, y
	}
	stride := int(math.Ceil(float64(len(x)) / float64(limit)))
	outX := make([]float64, 0, limit+1)
	outY := make([]float64, 0, limit+1)
	for i := 0; i < len(x); i += stride {
		outX = append(outX, x[i])
		outY = append(outY, y[i])
	}
	if last := len(x) - 1; outX[len(outX)-1] != x[last] {
		outX = append(outX, x[last])
		outY = append(outY, y[last])
	}
	return outX, outY
}

func pick(values []string, i int, fallback string) string {
	if i < len(values) && values[i] != "" {
		return values[i]
	}
	return fallback
}
