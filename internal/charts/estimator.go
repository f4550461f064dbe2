package charts

import (
	"flightplots/internal/flags"
	"flightplots/internal/plot"
)

const eventFlagsTopic = "estimator_event_flags"

func (b *builder) informationEvents() (*plot.Chart, error) {
	return b.eventFlags("Estimator Information Events", flags.InformationEvents)
}

func (b *builder) warningEvents() (*plot.Chart, error) {
	return b.eventFlags("Estimator Warning Events", flags.WarningEvents)
}

// eventFlags reads every candidate strictly: a missing topic or field skips
// the whole chart.
func (b *builder) eventFlags(title string, fields []string) (*plot.Chart, error) {
	t, err := b.log.Topic(eventFlagsTopic)
	if err != nil {
		return nil, err
	}
	candidates := make([]flags.Candidate, 0, len(fields))
	for _, f := range fields {
		data, err := t.Field(f)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, flags.Candidate{Label: f, Data: data})
	}

	selected := flags.Select(candidates, b.cfg.Flags.MaxShown, b.cfg.Flags.Threshold)

	p := b.newPlot(eventFlagsTopic, title, "")
	x := make([]float64, len(t.Timestamps))
	for i, ts := range t.Timestamps {
		x[i] = float64(ts)
	}
	for i, c := range selected {
		p.AddSeries(plot.Series{
			Topic: eventFlagsTopic,
			Field: c.Label,
			Label: c.Label,
			Color: plot.Palette[i%len(plot.Palette)],
			X:     x,
			Y:     c.Data,
		})
	}
	return b.finish(p), nil
}
