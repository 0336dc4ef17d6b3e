// Copyright ©2021 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nanoplotter

import (
	"fmt"
	"image/color"
	"sort"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// TimePlots renders run-duration time series: cumulative yield in
// bases, and mean quality per hour of the run when quals is non-nil.
func TimePlots(times []time.Time, lengths []int, quals []float64, path, format, title string, col color.Color) ([]Plot, error) {
	idx := make([]int, len(times))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return times[idx[a]].Before(times[idx[b]]) })
	start := times[idx[0]]

	var plots []Plot

	yield := make(plotter.XYs, len(idx))
	var cum float64
	for i, j := range idx {
		cum += float64(lengths[j])
		yield[i].X = times[j].Sub(start).Hours()
		yield[i].Y = cum / 1e9
	}
	p := plot.New()
	p.Title.Text = joinTitle(title, "Cumulative yield")
	p.X.Label.Text = "Run time (hours)"
	p.Y.Label.Text = "Yield (Gb)"
	l, err := plotter.NewLine(yield)
	if err != nil {
		return nil, err
	}
	l.LineStyle.Color = col
	l.LineStyle.Width = vg.Points(1.5)
	p.Add(l)
	file := fmt.Sprintf("%sCumulativeYieldPlot.%s", path, format)
	if err := p.Save(8*vg.Inch, 6*vg.Inch, file); err != nil {
		return nil, err
	}
	plots = append(plots, Plot{Path: file, Title: "Cumulative yield over run time"})

	if quals != nil {
		type bucket struct {
			sum float64
			n   int
		}
		buckets := make(map[int]*bucket)
		maxHour := 0
		for _, j := range idx {
			h := int(times[j].Sub(start).Hours())
			b := buckets[h]
			if b == nil {
				b = new(bucket)
				buckets[h] = b
			}
			b.sum += quals[j]
			b.n++
			if h > maxHour {
				maxHour = h
			}
		}
		var xys plotter.XYs
		for h := 0; h <= maxHour; h++ {
			if b, ok := buckets[h]; ok {
				xys = append(xys, plotter.XY{X: float64(h), Y: b.sum / float64(b.n)})
			}
		}
		p := plot.New()
		p.Title.Text = joinTitle(title, "Quality over run time")
		p.X.Label.Text = "Run time (hours)"
		p.Y.Label.Text = "Mean basecall quality"
		l, err := plotter.NewLine(xys)
		if err != nil {
			return nil, err
		}
		l.LineStyle.Color = col
		l.LineStyle.Width = vg.Points(1.5)
		p.Add(l)
		file := fmt.Sprintf("%sQualityOverTime.%s", path, format)
		if err := p.Save(8*vg.Inch, 6*vg.Inch, file); err != nil {
			return nil, err
		}
		plots = append(plots, Plot{Path: file, Title: "Quality over run time"})
	}
	return plots, nil
}
