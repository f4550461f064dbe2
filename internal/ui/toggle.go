// Package ui turns an assembled chart list into page items, navigation
// entries and the parameter-change toggle.
package ui

import (
	"sync"

	"flightplots/internal/plot"
)

// ToggleState is the state of the parameter-change toggle.
type ToggleState int

const (
	Visible ToggleState = iota
	Hidden
)

func (s ToggleState) String() string {
	if s == Hidden {
		return "hidden"
	}
	return "visible"
}

// Button captions.
const (
	CaptionHide = "Hide Parameter Changes"
	CaptionShow = "Show Parameter Changes"
)

// LabelAppearance is how a bound label is drawn in a given state.
type LabelAppearance struct {
	Visible   bool    `json:"visible"`
	TextAlpha float64 `json:"text_alpha"`
}

// Appearance maps a toggle state to label appearance. Visibility alone is
// not honoured by every renderer, so text alpha is driven as well.
func Appearance(s ToggleState) LabelAppearance {
	if s == Hidden {
		return LabelAppearance{Visible: false, TextAlpha: 0}
	}
	return LabelAppearance{Visible: true, TextAlpha: 1}
}

// Caption returns the button caption offering the opposite action.
func Caption(s ToggleState) string {
	if s == Hidden {
		return CaptionShow
	}
	return CaptionHide
}

// LabelStatus reports the appearance of one bound label.
type LabelStatus struct {
	ID string `json:"id"`
	LabelAppearance
}

// ToggleStatus is a snapshot of the toggle and its labels.
type ToggleStatus struct {
	State   string        `json:"state"`
	Caption string        `json:"caption"`
	Labels  []LabelStatus `json:"labels"`
}

// ParamToggle owns the parameter-change labels of every chart on a page and
// switches them together.
type ParamToggle struct {
	mu     sync.Mutex
	state  ToggleState
	labels []*plot.ParamChangeLabel
}

// NewParamToggle returns a toggle in the Visible state.
func NewParamToggle() *ParamToggle {
	return &ParamToggle{state: Visible}
}

// Bind adds a label to the observer list and applies the current state to it.
func (t *ParamToggle) Bind(l *plot.ParamChangeLabel) {
	if l == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	apply(l, Appearance(t.state))
	t.labels = append(t.labels, l)
}

// Click flips the state and updates every bound label.
func (t *ParamToggle) Click() ToggleState {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state == Visible {
		t.state = Hidden
	} else {
		t.state = Visible
	}
	a := Appearance(t.state)
	for _, l := range t.labels {
		apply(l, a)
	}
	return t.state
}

// State returns the current state.
func (t *ParamToggle) State() ToggleState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Caption returns the current button caption.
func (t *ParamToggle) Caption() string {
	return Caption(t.State())
}

// Status returns a snapshot of the toggle and all bound labels.
func (t *ParamToggle) Status() ToggleStatus {
	t.mu.Lock()
	defer t.mu.Unlock()
	st := ToggleStatus{State: t.state.String(), Caption: Caption(t.state)}
	for _, l := range t.labels {
		st.Labels = append(st.Labels, LabelStatus{
			ID:              l.ID,
			LabelAppearance: LabelAppearance{Visible: l.Visible, TextAlpha: l.TextAlpha},
		})
	}
	return st
}

func apply(l *plot.ParamChangeLabel, a LabelAppearance) {
	l.Visible = a.Visible
	l.TextAlpha = a.TextAlpha
}
