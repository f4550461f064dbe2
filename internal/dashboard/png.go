// Package dashboard rasterises finalized charts and writes chart pages,
// either served live or as a static report directory.
package dashboard

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"flightplots/internal/plot"
)

// modeAlpha is the opacity of flight-mode background bands.
const modeAlpha = 40

// RenderPNG draws c as a PNG image. Parameter-change annotations are drawn
// only while the chart's label is visible.
func RenderPNG(w io.Writer, c *plot.Chart) error {
	if c == nil || len(c.Series) == 0 {
		return fmt.Errorf("render %q: no series", chartTitle(c))
	}
	xr := c.XRange
	if xr.Span() <= 0 {
		xr = dataXRange(c)
	}
	yr := yRangeFor(c)

	series := make([]chart.Series, 0, len(c.Series)+1)
	for _, s := range c.Series {
		xs, ys := s.X, s.Y
		if len(xs) == 1 {
			// go-chart needs two points to draw a line
			xs = []float64{xs[0], xs[0] + 1}
			ys = []float64{ys[0], ys[0]}
		}
		series = append(series, chart.ContinuousSeries{
			Name:    s.Label,
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeColor: colorFromHex(s.Color),
				StrokeWidth: 1.5,
			},
		})
	}
	if ann, ok := paramAnnotations(c.ParamLabel, yr.End); ok {
		series = append(series, ann)
	}

	ch := chart.Chart{
		Title:      c.Title,
		Width:      c.Width,
		Height:     c.Height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:           c.XAxisLabel,
			Range:          &chart.ContinuousRange{Min: xr.Start, Max: xr.End},
			ValueFormatter: secondsFormatter,
		},
		YAxis: chart.YAxis{
			Name:  c.YAxisLabel,
			Range: &chart.ContinuousRange{Min: yr.Start, Max: yr.End},
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{flightModeBands(c.FlightModes, xr), chart.Legend(&ch)}
	return ch.Render(chart.PNG, w)
}

func chartTitle(c *plot.Chart) string {
	if c == nil {
		return ""
	}
	return c.Title
}

// secondsFormatter prints microsecond timestamps as seconds.
func secondsFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return fmt.Sprintf("%.0f", f/1e6)
	}
	return ""
}

func colorFromHex(hex string) drawing.Color {
	if hex == "" {
		hex = plot.DefaultColor
	}
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}

func dataXRange(c *plot.Chart) plot.Range {
	r := plot.Range{Start: math.Inf(1), End: math.Inf(-1)}
	for _, s := range c.Series {
		for _, x := range s.X {
			r.Start = math.Min(r.Start, x)
			r.End = math.Max(r.End, x)
		}
	}
	return guardRange(r)
}

// yRangeFor returns the configured y range or the data bounds padded by 5%.
func yRangeFor(c *plot.Chart) plot.Range {
	if c.YRange != nil && c.YRange.Span() > 0 {
		return *c.YRange
	}
	r := plot.Range{Start: math.Inf(1), End: math.Inf(-1)}
	for _, s := range c.Series {
		for _, y := range s.Y {
			if math.IsNaN(y) || math.IsInf(y, 0) {
				continue
			}
			r.Start = math.Min(r.Start, y)
			r.End = math.Max(r.End, y)
		}
	}
	r = guardRange(r)
	pad := r.Span() * 0.05
	return plot.Range{Start: r.Start - pad, End: r.End + pad}
}

// guardRange widens empty or degenerate ranges, which go-chart rejects.
func guardRange(r plot.Range) plot.Range {
	if math.IsInf(r.Start, 0) || math.IsInf(r.End, 0) {
		return plot.Range{Start: 0, End: 1}
	}
	if r.Span() <= 0 {
		return plot.Range{Start: r.Start - 0.5, End: r.End + 0.5}
	}
	return r
}

func paramAnnotations(l *plot.ParamChangeLabel, top float64) (chart.AnnotationSeries, bool) {
	if l == nil || !l.Visible || l.TextAlpha <= 0 || len(l.Changes) == 0 {
		return chart.AnnotationSeries{}, false
	}
	alpha := uint8(math.Round(math.Min(l.TextAlpha, 1) * 255))
	ann := chart.AnnotationSeries{
		Style: chart.Style{
			FontColor:   drawing.ColorBlack.WithAlpha(alpha),
			FontSize:    8,
			FillColor:   drawing.ColorWhite.WithAlpha(alpha),
			StrokeColor: drawing.ColorFromHex("999999").WithAlpha(alpha),
		},
	}
	for _, pc := range l.Changes {
		ann.Annotations = append(ann.Annotations, chart.Value2{XValue: pc.Timestamp, YValue: top, Label: pc.Text})
	}
	return ann, true
}

// flightModeBands shades each flight-mode span over the full canvas height.
func flightModeBands(spans []plot.ModeSpan, xr plot.Range) chart.Renderable {
	return func(r chart.Renderer, cb chart.Box, _ chart.Style) {
		if xr.Span() <= 0 {
			return
		}
		toPx := func(x float64) int {
			x = math.Max(xr.Start, math.Min(xr.End, x))
			return cb.Left + int(float64(cb.Width())*(x-xr.Start)/xr.Span())
		}
		for _, s := range spans {
			left, right := toPx(s.Start), toPx(s.End)
			if right <= left {
				continue
			}
			r.SetFillColor(colorFromHex(s.Color).WithAlpha(modeAlpha))
			r.SetStrokeWidth(0)
			r.MoveTo(left, cb.Top)
			r.LineTo(right, cb.Top)
			r.LineTo(right, cb.Bottom)
			r.LineTo(left, cb.Bottom)
			r.Close()
			r.Fill()
		}
	}
}
