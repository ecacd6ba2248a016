// Package report renders model matrices as plots.
package report

import (
	"fmt"
	"image/color"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/kamusis/mvx-cli/internal/engine"
)

// Plot size in inches.
const (
	plotWidth  = 6 * vg.Inch
	plotHeight = 6 * vg.Inch
)

var supportedExt = map[string]bool{
	".png": true, ".svg": true, ".pdf": true, ".jpg": true, ".jpeg": true, ".eps": true, ".tif": true, ".tiff": true,
}

// ScorePlot writes a scatter plot of score column cx against column cy
// (1-based), labelling each point with its observation name. The image format
// follows the extension of path.
func ScorePlot(scores *engine.Matrix, cx, cy int, title, path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	if !supportedExt[ext] {
		return fmt.Errorf("unsupported plot format %q", ext)
	}
	xs, err := scores.Column(cx)
	if err != nil {
		return fmt.Errorf("cannot read score column %d: %w", cx, err)
	}
	ys, err := scores.Column(cy)
	if err != nil {
		return fmt.Errorf("cannot read score column %d: %w", cy, err)
	}

	pts := make(plotter.XYs, len(xs))
	labels := make([]string, len(xs))
	for i := range xs {
		pts[i].X = xs[i]
		pts[i].Y = ys[i]
		labels[i] = scores.RowName(i + 1)
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = axisLabel(scores, cx)
	p.Y.Label.Text = axisLabel(scores, cy)
	p.Add(plotter.NewGrid())

	sc, err := plotter.NewScatter(pts)
	if err != nil {
		return fmt.Errorf("cannot build scatter: %w", err)
	}
	sc.GlyphStyle.Color = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	sc.GlyphStyle.Radius = vg.Points(3)
	p.Add(sc)

	if hasLabels(labels) {
		lb, err := plotter.NewLabels(plotter.XYLabels{XYs: pts, Labels: labels})
		if err != nil {
			return fmt.Errorf("cannot build labels: %w", err)
		}
		p.Add(lb)
	}

	if err := p.Save(plotWidth, plotHeight, path); err != nil {
		return fmt.Errorf("cannot save plot %s: %w", path, err)
	}
	return nil
}

func axisLabel(m *engine.Matrix, col int) string {
	if name := m.ColName(col); name != "" {
		return name
	}
	return fmt.Sprintf("t%d", col)
}

func hasLabels(labels []string) bool {
	for _, l := range labels {
		if l != "" {
			return true
		}
	}
	return false
}
