package dashboard

import (
	"embed"
	"html/template"
	"io"

	"flightplots/internal/ui"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// ItemView is one rendered page entry.
type ItemView struct {
	Toggle   bool
	Caption  string
	ID       string
	Title    string
	Fragment string
	Src      string
	// AltSrc is the image without parameter annotations; static reports only.
	AltSrc string
	Width  int
	Height int
}

// PageView is the template model of a chart page.
type PageView struct {
	Title       string
	LogID       string
	Nav         []ui.NavEntry
	Items       []ItemView
	HasToggle   bool
	ToggleURL   string
	CaptionHide string
	CaptionShow string
}

// ImageSource maps a chart render id to image URLs: the current image and,
// optionally, the alternate image shown when the toggle flips.
type ImageSource func(id string) (src, alt string)

// NewPageView builds the template model for page.
func NewPageView(logID string, page *ui.Page, images ImageSource, toggleURL string) PageView {
	v := PageView{
		Title:       "Flight Review: " + logID,
		LogID:       logID,
		Nav:         page.Nav,
		HasToggle:   page.Toggle != nil,
		ToggleURL:   toggleURL,
		CaptionHide: ui.CaptionHide,
		CaptionShow: ui.CaptionShow,
	}
	for _, it := range page.Items {
		if it.Layout != nil {
			v.Items = append(v.Items, ItemView{Toggle: true, Caption: it.Layout.Toggle.Caption(), Width: it.Layout.Width})
			continue
		}
		c := it.Chart
		src, alt := images(c.ID)
		v.Items = append(v.Items, ItemView{
			ID:       c.ID,
			Title:    c.Title,
			Fragment: ui.Anchor(c.Title),
			Src:      src,
			AltSrc:   alt,
			Width:    c.Width,
			Height:   c.Height,
		})
	}
	return v
}

// WritePage renders the chart page template.
func WritePage(w io.Writer, v PageView) error {
	return templates.ExecuteTemplate(w, "page.html", v)
}

// WriteIndex renders the log list.
func WriteIndex(w io.Writer, logIDs []string) error {
	return templates.ExecuteTemplate(w, "index.html", logIDs)
}
