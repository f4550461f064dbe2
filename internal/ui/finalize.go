package ui

import (
	"strings"

	"flightplots/internal/plot"
)

// ToggleLayout is the page item that replaces the reserved chart slot.
type ToggleLayout struct {
	Toggle *ParamToggle
	Width  int
}

// Item is one page entry: either a chart or the toggle layout.
type Item struct {
	Chart  *plot.Chart
	Layout *ToggleLayout
}

// NavEntry links a rendered chart from the page navigation.
type NavEntry struct {
	ModelID  string `json:"model_id"`
	Fragment string `json:"fragment"`
	Title    string `json:"title"`
}

// Page is the finalized chart page.
type Page struct {
	Items []Item
	Nav   []NavEntry
	// Toggle is nil when no slot was reserved.
	Toggle *ParamToggle
}

var anchorReplacer = strings.NewReplacer(" ", "-", "&", "_", "(", "", ")", "")

// Anchor derives the URL fragment for a chart title.
func Anchor(title string) string {
	return "Nav-" + anchorReplacer.Replace(title)
}

// Finalize replaces the nil slot in charts with the toggle layout, binds
// every chart's parameter-change label to the toggle and collects
// navigation entries in page order.
func Finalize(charts []*plot.Chart, plotWidth int) *Page {
	page := &Page{Items: make([]Item, 0, len(charts))}
	toggle := NewParamToggle()
	for _, c := range charts {
		if c == nil {
			page.Toggle = toggle
			page.Items = append(page.Items, Item{Layout: &ToggleLayout{
				Toggle: toggle,
				Width:  int(float64(plotWidth) * 0.99),
			}})
			continue
		}
		toggle.Bind(c.ParamLabel)
		page.Items = append(page.Items, Item{Chart: c})
		page.Nav = append(page.Nav, NavEntry{ModelID: c.ID, Fragment: Anchor(c.Title), Title: c.Title})
	}
	return page
}

// Chart returns the chart with the given render id.
func (p *Page) Chart(id string) (*plot.Chart, bool) {
	for _, it := range p.Items {
		if it.Chart != nil && it.Chart.ID == id {
			return it.Chart, true
		}
	}
	return nil, false
}

// Charts returns the charts of the page in order.
func (p *Page) Charts() []*plot.Chart {
	var out []*plot.Chart
	for _, it := range p.Items {
		if it.Chart != nil {
			out = append(out, it.Chart)
		}
	}
	return out
}
