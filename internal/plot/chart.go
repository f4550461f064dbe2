package plot

// Range is a closed interval on an axis.
type Range struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Span returns End-Start.
func (r Range) Span() float64 { return r.End - r.Start }

// Series is one plotted line.
type Series struct {
	Topic string    `json:"topic"`
	Field string    `json:"field"`
	Label string    `json:"label"`
	Color string    `json:"color"`
	X     []float64 `json:"x"`
	Y     []float64 `json:"y"`
}

// ModeSpan is a flight-mode background band.
type ModeSpan struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Mode  int     `json:"mode"`
	Name  string  `json:"name"`
	Color string  `json:"color"`
}

// ParamChange is one annotated parameter edit.
type ParamChange struct {
	Timestamp float64 `json:"timestamp"`
	Text      string  `json:"text"`
}

// ParamChangeLabel is the overlay of parameter-change annotations on a
// single chart. Its visibility is driven by the page's toggle button.
type ParamChangeLabel struct {
	ID        string        `json:"id"`
	Changes   []ParamChange `json:"changes"`
	Visible   bool          `json:"visible"`
	TextAlpha float64       `json:"text_alpha"`
}

// Chart is a finalized time-series chart.
type Chart struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	XAxisLabel  string            `json:"x_axis_label"`
	YAxisLabel  string            `json:"y_axis_label"`
	Width       int               `json:"width"`
	Height      int               `json:"height"`
	XRange      Range             `json:"x_range"`
	YRange      *Range            `json:"y_range,omitempty"`
	Series      []Series          `json:"series"`
	FlightModes []ModeSpan        `json:"flight_modes,omitempty"`
	ParamLabel  *ParamChangeLabel `json:"param_label,omitempty"`
}

// Palette is used for charts whose series are not known in advance.
var Palette = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728",
	"#9467bd", "#8c564b", "#e377c2", "#7f7f7f",
}
