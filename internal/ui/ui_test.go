package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flightplots/internal/plot"
)

func chart(id, title string, withLabel bool) *plot.Chart {
	c := &plot.Chart{ID: id, Title: title}
	if withLabel {
		c.ParamLabel = &plot.ParamChangeLabel{ID: "label-" + id, Visible: true, TextAlpha: 1}
	}
	return c
}

func TestAnchor(t *testing.T) {
	cases := map[string]string{
		"X&Y Velocities": "Nav-X_Y-Velocities",
		"Altitudes":      "Nav-Altitudes",
		"Manual Control Inputs (Radio or Joystick)": "Nav-Manual-Control-Inputs-Radio-or-Joystick",
	}
	for title, want := range cases {
		assert.Equal(t, want, Anchor(title), title)
	}
}

func TestFinalizeReplacesSlotAndCollectsNav(t *testing.T) {
	charts := []*plot.Chart{nil, chart("a", "Altitudes", true), chart("b", "X&Y Velocities", true)}

	page := Finalize(charts, 1000)

	require.Len(t, page.Items, 3)
	require.NotNil(t, page.Items[0].Layout)
	assert.Nil(t, page.Items[0].Chart)
	assert.Equal(t, 990, page.Items[0].Layout.Width)
	assert.Same(t, page.Toggle, page.Items[0].Layout.Toggle)
	assert.Equal(t, []NavEntry{
		{ModelID: "a", Fragment: "Nav-Altitudes", Title: "Altitudes"},
		{ModelID: "b", Fragment: "Nav-X_Y-Velocities", Title: "X&Y Velocities"},
	}, page.Nav)
	assert.Len(t, page.Toggle.Status().Labels, 2)

	c, ok := page.Chart("b")
	require.True(t, ok)
	assert.Equal(t, "X&Y Velocities", c.Title)
	assert.Len(t, page.Charts(), 2)
}

func TestFinalizeWithoutSlot(t *testing.T) {
	page := Finalize([]*plot.Chart{chart("a", "Altitudes", false)}, 800)
	assert.Nil(t, page.Toggle)
	assert.Len(t, page.Nav, 1)
}

func TestToggleClickTwiceRestores(t *testing.T) {
	a, b := chart("a", "A", true), chart("b", "B", true)
	page := Finalize([]*plot.Chart{nil, a, b}, 800)
	toggle := page.Toggle
	before := toggle.Status()
	assert.Equal(t, CaptionHide, before.Caption)

	assert.Equal(t, Hidden, toggle.Click())
	assert.False(t, a.ParamLabel.Visible)
	assert.Zero(t, b.ParamLabel.TextAlpha)
	assert.Equal(t, CaptionShow, toggle.Caption())

	assert.Equal(t, Visible, toggle.Click())
	assert.Equal(t, before, toggle.Status())
	assert.True(t, a.ParamLabel.Visible)
	assert.Equal(t, 1.0, b.ParamLabel.TextAlpha)
}

func TestAppearanceIsPure(t *testing.T) {
	assert.Equal(t, LabelAppearance{Visible: true, TextAlpha: 1}, Appearance(Visible))
	assert.Equal(t, LabelAppearance{Visible: false, TextAlpha: 0}, Appearance(Hidden))
	assert.Equal(t, CaptionHide, Caption(Visible))
	assert.Equal(t, CaptionShow, Caption(Hidden))
}

func TestBindAppliesCurrentState(t *testing.T) {
	toggle := NewParamToggle()
	toggle.Click()
	l := &plot.ParamChangeLabel{ID: "late", Visible: true, TextAlpha: 1}
	toggle.Bind(l)
	assert.False(t, l.Visible)
	assert.Zero(t, l.TextAlpha)
}
