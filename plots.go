// Copyright ©2021 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"log"
	"math"

	"github.com/nanoplot/nanoplot/nanomath"
	"github.com/nanoplot/nanoplot/nanoplotter"
	"github.com/nanoplot/nanoplot/reads"
)

// makePlots renders the plot set matching the table's capabilities and
// returns the artifacts in dispatch order. path is the base for output
// file names and title an optional heading (the barcode, when
// splitting). Plots are rendered sequentially; the first failure
// aborts.
func makePlots(tb *reads.Table, s *Settings, d Derived, path, title string) ([]nanoplotter.Plot, error) {
	caps := tb.Caps()
	var plots []nanoplotter.Plot

	n50 := 0
	if !s.NoN50 {
		n50 = nanomath.N50(tb.Lengths)
	}
	ps, err := nanoplotter.LengthHistogram(tb.Lengths, n50, path, s.Format, title, s.Color)
	if err != nil {
		return nil, err
	}
	plots = append(plots, ps...)
	log.Print("Created length histogram.")

	lengths := tb.Floats(d.LengthsPointer)
	base := nanoplotter.ScatterOpts{
		Color:  s.Color,
		Format: s.Format,
		Styles: s.Plots,
		Title:  title,
		MinX:   math.NaN(),
		MinY:   math.NaN(),
	}

	if caps.HasQuals {
		o := base
		o.Log = d.LogScale
		ps, err := nanoplotter.Scatter(lengths, tb.Quals,
			[2]string{"Read lengths", "Average read quality"},
			path+d.LengthPrefix+"LengthvsQualityScatterPlot", o)
		if err != nil {
			return nil, err
		}
		plots = append(plots, ps...)
		log.Print("Created length vs quality plots.")
	}

	if caps.HasChannel {
		ps, err := nanoplotter.SpatialHeatmap(tb.Channels, path, s.Format, title)
		if err != nil {
			return nil, err
		}
		plots = append(plots, ps...)
		log.Print("Created spatial heatmap of basecalls per channel.")
	}

	if caps.HasTime {
		ps, err := nanoplotter.TimePlots(tb.StartTimes, tb.Lengths, tb.Quals, path, s.Format, title, s.Color)
		if err != nil {
			return nil, err
		}
		plots = append(plots, ps...)
		log.Print("Created time plots.")
	}

	if caps.HasAlignment {
		ps, err := nanoplotter.Scatter(intFloats(tb.AlignedLengths), intFloats(tb.Lengths),
			[2]string{"Aligned read lengths", "Sequenced read length"},
			path+"AlignedReadlengthvsSequencedReadLength", base)
		if err != nil {
			return nil, err
		}
		plots = append(plots, ps...)
		log.Print("Created aligned length vs sequenced length plots.")
	}

	if caps.HasMapQ {
		mapq := intFloats(tb.MapQ)
		ps, err := nanoplotter.Scatter(mapq, tb.Quals,
			[2]string{"Read mapping quality", "Average basecall quality"},
			path+"MappingQualityvsAverageBaseQuality", base)
		if err != nil {
			return nil, err
		}
		plots = append(plots, ps...)
		log.Print("Created mapping quality vs base quality plots.")

		o := base
		o.Log = d.LogScale
		ps, err = nanoplotter.Scatter(lengths, mapq,
			[2]string{"Read length", "Read mapping quality"},
			path+d.LengthPrefix+"MappingQualityvsReadLength", o)
		if err != nil {
			return nil, err
		}
		plots = append(plots, ps...)
		log.Print("Created mapping quality vs read length plots.")
	}

	if caps.HasIdentity {
		minPID := nanomath.Percentile(tb.PercentIdentity, 1)
		quals := tb.AlignedQuals
		if quals == nil {
			quals = tb.Quals
		}

		o := base
		o.Pearson = true
		o.MinX = minPID
		ps, err := nanoplotter.Scatter(tb.PercentIdentity, quals,
			[2]string{"Percent identity", "Read quality"},
			path+"PercentIdentityvsAverageBaseQuality", o)
		if err != nil {
			return nil, err
		}
		plots = append(plots, ps...)
		log.Print("Created percent identity vs base quality plots.")

		o = base
		o.Pearson = true
		o.MinY = minPID
		o.Log = d.LogScale
		ps, err = nanoplotter.Scatter(lengths, tb.PercentIdentity,
			[2]string{"Aligned read length", "Percent identity"},
			path+d.LengthPrefix+"PercentIdentityvsAlignedReadLength", o)
		if err != nil {
			return nil, err
		}
		plots = append(plots, ps...)
		log.Print("Created percent identity vs read length plots.")
	}

	return plots, nil
}

func intFloats(xs []int) []float64 {
	fs := make([]float64, len(xs))
	for i, x := range xs {
		fs[i] = float64(x)
	}
	return fs
}
