// Copyright ©2021 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nanoplotter

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

const histogramBins = 100

// LengthHistogram renders the read-length histogram, optionally
// marking the N50 with a vertical rule (pass n50 = 0 to omit it).
func LengthHistogram(lengths []int, n50 int, path, format, title string, col color.Color) ([]Plot, error) {
	vals := make(plotter.Values, len(lengths))
	max := 0
	for i, l := range lengths {
		vals[i] = float64(l)
		if l > max {
			max = l
		}
	}
	p := plot.New()
	p.Title.Text = joinTitle(title, "Histogram of read lengths")
	p.X.Label.Text = "Read length"
	p.Y.Label.Text = "Number of reads"

	h, err := plotter.NewHist(vals, histogramBins)
	if err != nil {
		return nil, err
	}
	h.FillColor = col
	p.Add(h)

	if n50 > 0 {
		_, _, _, ymax := h.DataRange()
		rule, err := plotter.NewLine(plotter.XYs{
			{X: float64(n50), Y: 0},
			{X: float64(n50), Y: ymax},
		})
		if err != nil {
			return nil, err
		}
		rule.LineStyle.Color = color.RGBA{R: 0xff, A: 0xff}
		rule.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
		p.Add(rule)
		p.Legend.Add(fmt.Sprintf("N50 = %d", n50), rule)
		p.Legend.Top = true
	}

	file := fmt.Sprintf("%sHistogramReadlength.%s", path, format)
	if err := p.Save(8*vg.Inch, 6*vg.Inch, file); err != nil {
		return nil, err
	}
	return []Plot{{Path: file, Title: "Histogram of read lengths"}}, nil
}

func joinTitle(global, own string) string {
	if global == "" {
		return own
	}
	return global + ": " + own
}
