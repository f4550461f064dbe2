package dashboard

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bytedance/sonic"

	"flightplots/internal/logging"
	"flightplots/internal/plot"
	"flightplots/internal/ui"
)

// Report file names.
const (
	IndexFile = "index.html"
	NavFile   = "nav.json"
)

// Render writes a static report for page into outDir: index.html, nav.json
// and one PNG per chart. Charts carrying parameter annotations also get a
// <id>-noparams.png so the toggle works without a server.
func Render(ctx context.Context, logID string, page *ui.Page, outDir string) error {
	logger := logging.FromContext(ctx)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}

	alts := map[string]bool{}
	for _, c := range page.Charts() {
		if err := writePNG(filepath.Join(outDir, c.ID+".png"), c); err != nil {
			return err
		}
		if page.Toggle == nil || c.ParamLabel == nil {
			continue
		}
		if err := writePNG(filepath.Join(outDir, c.ID+"-noparams.png"), withLabel(c, ui.Hidden)); err != nil {
			return err
		}
		alts[c.ID] = true
	}

	nav, err := sonic.ConfigStd.MarshalIndent(page.Nav, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(outDir, NavFile), nav, 0o644); err != nil {
		return err
	}

	images := func(id string) (string, string) {
		if alts[id] {
			return id + ".png", id + "-noparams.png"
		}
		return id + ".png", ""
	}
	f, err := os.Create(filepath.Join(outDir, IndexFile))
	if err != nil {
		return err
	}
	if err := WritePage(f, NewPageView(logID, page, images, "")); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", IndexFile, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	logger.Info("report written", "dir", outDir, "charts", len(page.Nav))
	return nil
}

// withLabel returns a copy of c whose parameter label has the appearance of
// state s; c itself is left untouched.
func withLabel(c *plot.Chart, s ui.ToggleState) *plot.Chart {
	cp := *c
	if c.ParamLabel != nil {
		l := *c.ParamLabel
		a := ui.Appearance(s)
		l.Visible, l.TextAlpha = a.Visible, a.TextAlpha
		cp.ParamLabel = &l
	}
	return &cp
}

func writePNG(path string, c *plot.Chart) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := RenderPNG(f, c); err != nil {
		f.Close()
		return fmt.Errorf("render %q: %w", c.Title, err)
	}
	return f.Close()
}
