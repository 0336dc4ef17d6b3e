// Copyright ©2021 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nanoplotter

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Flow cell channel grid dimensions (512 channels).
const (
	channelCols = 32
	channelRows = 16
)

// SpatialHeatmap renders the per-channel read count over the physical
// channel layout of the flow cell. Channels outside 1..512 are ignored.
func SpatialHeatmap(channels []int, path, format, title string) ([]Plot, error) {
	g := denseGrid{
		z:    make([]float64, channelCols*channelRows),
		cols: channelCols, rows: channelRows,
		x0: 0, dx: 1,
		y0: 0, dy: 1,
	}
	for _, ch := range channels {
		if ch < 1 || ch > channelCols*channelRows {
			continue
		}
		g.z[ch-1]++
	}

	p := plot.New()
	p.Title.Text = joinTitle(title, "Number of reads per channel")
	p.X.Label.Text = "Channel column"
	p.Y.Label.Text = "Channel row"
	p.Add(plotter.NewHeatMap(g, palette.Heat(16, 1)))

	file := fmt.Sprintf("%sActivityMap_ReadsPerChannel.%s", path, format)
	if err := p.Save(8*vg.Inch, 4*vg.Inch, file); err != nil {
		return nil, err
	}
	return []Plot{{Path: file, Title: "Number of reads per channel"}}, nil
}
