// Copyright ©2021 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nanoplotter

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/nanoplot/nanoplot/nanomath"
)

// ScatterOpts configures a bivariate plot set.
type ScatterOpts struct {
	Color   color.Color
	Format  string
	Styles  []string // subset of dot, kde, hex; one artifact per style
	Log     bool     // x holds log10 values
	Title   string   // optional global or barcode title
	Pearson bool     // annotate with the Pearson correlation of x and y
	MinX    float64  // axis floor, NaN when unset
	MinY    float64
}

const gridCells = 64

// Scatter renders one bivariate plot per requested style and returns
// the artifacts in style order. Unknown styles are skipped.
func Scatter(x, y []float64, names [2]string, path string, o ScatterOpts) ([]Plot, error) {
	title := names[0] + " vs " + names[1]
	if o.Pearson {
		title = fmt.Sprintf("%s (Pearson r = %.4f)", title, nanomath.Pearson(x, y))
	}
	if o.Title != "" {
		title = o.Title + ": " + title
	}
	var plots []Plot
	for _, style := range o.Styles {
		switch style {
		case "dot", "kde", "hex":
		default:
			continue
		}
		p := plot.New()
		p.Title.Text = title
		p.X.Label.Text = axisLabel(names[0], o.Log)
		p.Y.Label.Text = names[1]
		if !math.IsNaN(o.MinX) {
			p.X.Min = o.MinX
		}
		if !math.IsNaN(o.MinY) {
			p.Y.Min = o.MinY
		}

		switch style {
		case "dot":
			xys := make(plotter.XYs, len(x))
			for i := range x {
				xys[i].X, xys[i].Y = x[i], y[i]
			}
			s, err := plotter.NewScatter(xys)
			if err != nil {
				return nil, err
			}
			s.GlyphStyle.Color = o.Color
			s.GlyphStyle.Radius = vg.Points(1)
			s.GlyphStyle.Shape = draw.CircleGlyph{}
			p.Add(s)
		case "hex":
			p.Add(plotter.NewHeatMap(binGrid(x, y, gridCells, gridCells), palette.Heat(16, 1)))
		case "kde":
			p.Add(plotter.NewHeatMap(kdeGrid(x, y, gridCells, gridCells), palette.Heat(16, 1)))
		}

		file := fmt.Sprintf("%s_%s.%s", path, style, o.Format)
		if err := p.Save(8*vg.Inch, 6*vg.Inch, file); err != nil {
			return nil, err
		}
		plots = append(plots, Plot{
			Path:  file,
			Title: fmt.Sprintf("%s vs %s (%s)", names[0], names[1], style),
		})
	}
	return plots, nil
}

func axisLabel(name string, log bool) string {
	if log {
		return name + " (log10)"
	}
	return name
}
