// Copyright ©2021 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"
	"sort"
	"time"

	check "gopkg.in/check.v1"

	"github.com/nanoplot/nanoplot/nanoplotter"
	"github.com/nanoplot/nanoplot/reads"
)

func testSettings(c *check.C) *Settings {
	col, err := nanoplotter.CheckValidColor("#4cb391")
	c.Assert(err, check.IsNil)
	return &Settings{
		Color:  col,
		Format: "png",
		Plots:  []string{"dot"},
	}
}

func artifactNames(plots []nanoplotter.Plot) []string {
	names := make([]string, len(plots))
	for i, p := range plots {
		names[i] = filepath.Base(p.Path)
	}
	sort.Strings(names)
	return names
}

func (s *S) TestDispatchByColumnPresence(c *check.C) {
	lengths := []int{500, 1500, 2500, 3500, 4500, 5500, 6500, 7500}
	quals := []float64{7, 8, 9, 10, 11, 12, 10, 9}
	channels := []int{1, 2, 3, 4, 100, 200, 300, 400}
	start := time.Date(2021, 3, 1, 12, 0, 0, 0, time.UTC)
	times := make([]time.Time, len(lengths))
	for i := range times {
		times[i] = start.Add(time.Duration(i) * 30 * time.Minute)
	}
	aligned := []int{450, 1400, 2400, 3300, 4400, 5300, 6400, 7300}
	mapq := []int{60, 50, 40, 60, 30, 60, 20, 60}
	pid := []float64{85, 88, 90, 92, 91, 89, 87, 93}

	cases := []struct {
		name string
		tb   *reads.Table
		want []string
	}{
		{
			name: "lengths only",
			tb:   &reads.Table{Lengths: lengths},
			want: []string{"HistogramReadlength.png"},
		},
		{
			name: "lengths and quals",
			tb:   &reads.Table{Lengths: lengths, Quals: quals},
			want: []string{
				"HistogramReadlength.png",
				"LengthvsQualityScatterPlot_dot.png",
			},
		},
		{
			name: "adds channels and start times",
			tb: &reads.Table{
				Lengths: lengths, Quals: quals,
				Channels: channels, StartTimes: times,
			},
			want: []string{
				"ActivityMap_ReadsPerChannel.png",
				"CumulativeYieldPlot.png",
				"HistogramReadlength.png",
				"LengthvsQualityScatterPlot_dot.png",
				"QualityOverTime.png",
			},
		},
		{
			name: "adds alignment columns",
			tb: &reads.Table{
				Lengths: lengths, Quals: quals,
				Channels: channels, StartTimes: times,
				AlignedLengths: aligned, MapQ: mapq, PercentIdentity: pid,
			},
			want: []string{
				"ActivityMap_ReadsPerChannel.png",
				"AlignedReadlengthvsSequencedReadLength_dot.png",
				"CumulativeYieldPlot.png",
				"HistogramReadlength.png",
				"LengthvsQualityScatterPlot_dot.png",
				"MappingQualityvsAverageBaseQuality_dot.png",
				"MappingQualityvsReadLength_dot.png",
				"PercentIdentityvsAlignedReadLength_dot.png",
				"PercentIdentityvsAverageBaseQuality_dot.png",
				"QualityOverTime.png",
			},
		},
	}

	set := testSettings(c)
	for _, t := range cases {
		path := c.MkDir() + string(os.PathSeparator)
		_, d := filterData(t.tb, set)
		plots, err := makePlots(t.tb, set, d, path, "")
		c.Assert(err, check.IsNil, check.Commentf("%s", t.name))
		c.Check(artifactNames(plots), check.DeepEquals, t.want, check.Commentf("%s", t.name))
		for _, p := range plots {
			_, err := os.Stat(p.Path)
			c.Check(err, check.IsNil, check.Commentf("%s: missing artifact %s", t.name, p.Path))
		}
	}
}

func (s *S) TestDispatchStyleFanout(c *check.C) {
	tb := &reads.Table{
		Lengths: []int{500, 1500, 2500, 3500},
		Quals:   []float64{7, 9, 11, 13},
	}
	set := testSettings(c)
	set.Plots = []string{"kde", "hex", "dot"}
	path := c.MkDir() + string(os.PathSeparator)
	_, d := filterData(tb, set)
	plots, err := makePlots(tb, set, d, path, "")
	c.Assert(err, check.IsNil)
	c.Check(artifactNames(plots), check.DeepEquals, []string{
		"HistogramReadlength.png",
		"LengthvsQualityScatterPlot_dot.png",
		"LengthvsQualityScatterPlot_hex.png",
		"LengthvsQualityScatterPlot_kde.png",
	})
}

func (s *S) TestBarcodeSplitCounts(c *check.C) {
	tb := &reads.Table{
		Lengths:  []int{100, 200, 300, 400, 500},
		Barcodes: []string{"BC01", "BC02", "BC01", "BC02", "BC01"},
	}
	barcodes := tb.BarcodeSet()
	c.Check(barcodes, check.DeepEquals, []string{"BC01", "BC02"})

	total := 0
	for _, b := range barcodes {
		b := b
		sub := tb.Where(func(i int) bool { return tb.Barcodes[i] == b })
		total += sub.Len()
	}
	c.Check(total, check.Equals, tb.Len())
}
