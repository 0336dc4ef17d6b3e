// Copyright ©2021 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"testing"

	check "gopkg.in/check.v1"

	"github.com/nanoplot/nanoplot/reads"
)

func Test(t *testing.T) { check.TestingT(t) }

type S struct{}

var _ = check.Suite(&S{})

// lengthTable builds a table with the given lengths and, optionally,
// qualities.
func lengthTable(lengths []int, quals []float64) *reads.Table {
	return &reads.Table{Lengths: lengths, Quals: quals}
}

func (s *S) TestFilterNoOpIdempotence(c *check.C) {
	tb := lengthTable([]int{100, 200, 300, 400}, []float64{8, 9, 10, 11})
	cols := tb.Columns()

	for i := 0; i < 2; i++ {
		out, d := filterData(tb, &Settings{})
		c.Check(out.Len(), check.Equals, 4)
		c.Check(out.Columns(), check.DeepEquals, cols)
		c.Check(d.LengthsPointer, check.Equals, reads.ColLengths)
		c.Check(d.LogScale, check.Equals, false)
		c.Check(d.LengthPrefix, check.Equals, "")
		tb = out
	}
}

func (s *S) TestFilterMaxLength(c *check.C) {
	tb := lengthTable([]int{100, 4999, 5000, 5001, 20000}, nil)
	out, d := filterData(tb, &Settings{MaxLength: 5000})
	// The boundary value itself is dropped.
	c.Check(out.Lengths, check.DeepEquals, []int{100, 4999})
	c.Check(d.LengthPrefix, check.Equals, "MaxLength-5000_")
}

func (s *S) TestFilterMinQualBoundary(c *check.C) {
	tb := lengthTable([]int{10, 20, 30}, []float64{6.9, 7, 7.1})
	out, _ := filterData(tb, &Settings{MinQual: 7})
	// Strictly greater than the threshold is retained.
	c.Check(out.Quals, check.DeepEquals, []float64{7.1})

	tb = lengthTable([]int{10, 20, 30}, []float64{5, 6, 7})
	out, _ = filterData(tb, &Settings{MinQual: 7})
	c.Check(out.Len(), check.Equals, 0)
}

func (s *S) TestFilterOrderMaxLengthBeforeLog(c *check.C) {
	// If the max-length cutoff ran after the log transform, the log10
	// values would all fall below the threshold and nothing would be
	// dropped. The fixed order drops on raw lengths first.
	tb := lengthTable([]int{10, 100, 1000, 10000, 100000}, nil)
	out, d := filterData(tb, &Settings{MaxLength: 5000, LogLength: true})
	c.Check(out.Len(), check.Equals, 3)
	c.Check(d.LengthsPointer, check.Equals, reads.ColLogLengths)
	c.Check(d.LogScale, check.Equals, true)
	c.Check(len(out.LogLengths), check.Equals, 3)
}

func (s *S) TestFilterOutliers(c *check.C) {
	lengths := make([]int, 101)
	for i := range lengths {
		lengths[i] = 1000
	}
	lengths[100] = 1000000
	out, d := filterData(lengthTable(lengths, nil), &Settings{DropOutliers: true})
	c.Check(out.Len(), check.Equals, 100)
	c.Check(d.LengthPrefix, check.Equals, "OutliersRemoved_")
	for _, l := range out.Lengths {
		c.Check(l, check.Equals, 1000)
	}
}

func (s *S) TestFilterDownsampleBound(c *check.C) {
	lengths := make([]int, 50)
	for i := range lengths {
		lengths[i] = 100 + i // all distinct
	}
	for _, n := range []int{10, 50, 200} {
		out, d := filterData(lengthTable(append([]int(nil), lengths...), nil), &Settings{Downsample: n})
		want := n
		if want > 50 {
			want = 50
		}
		c.Check(out.Len(), check.Equals, want)
		c.Check(d.LengthPrefix, check.Equals, "Downsampled_")

		// Sampled without replacement from the original set.
		seen := make(map[int]bool)
		for _, l := range out.Lengths {
			c.Check(l >= 100 && l < 150, check.Equals, true)
			c.Check(seen[l], check.Equals, false)
			seen[l] = true
		}
	}
}

func (s *S) TestFilterAlignedSelection(c *check.C) {
	tb := &reads.Table{
		Lengths:        []int{100, 200},
		AlignedLengths: []int{90, 180},
	}
	out, d := filterData(tb, &Settings{ALength: true})
	c.Check(d.LengthsPointer, check.Equals, reads.ColAlignedLengths)
	c.Check(d.LengthPrefix, check.Equals, "Aligned_")
	c.Check(out.Len(), check.Equals, 2)

	// Without an alignment column the request falls back to lengths.
	out, d = filterData(lengthTable([]int{100, 200}, nil), &Settings{ALength: true})
	c.Check(d.LengthsPointer, check.Equals, reads.ColLengths)
	c.Check(d.LengthPrefix, check.Equals, "")
	c.Check(out.Len(), check.Equals, 2)
}

func (s *S) TestFilterPrefixConstruction(c *check.C) {
	lengths := []int{100, 200, 300, 400, 500, 6000}
	out, d := filterData(lengthTable(lengths, nil), &Settings{
		DropOutliers: true,
		MaxLength:    5000,
		LogLength:    true,
	})
	c.Check(d.LengthPrefix, check.Equals, "OutliersRemoved_MaxLength-5000_Log_")
	c.Check(out.Len() <= len(lengths), check.Equals, true)
}

func (s *S) TestFilterStepRowCounts(c *check.C) {
	// Each step verified independently on a known distribution.
	lengths := []int{100, 2000, 3000, 4000, 5000, 6000}
	quals := []float64{12, 11, 10, 9, 8, 7}

	steps := []struct {
		s    Settings
		want int
	}{
		{Settings{}, 6},
		{Settings{MaxLength: 4000}, 3},
		{Settings{MinQual: 9}, 3},
		{Settings{Downsample: 2}, 2},
	}
	for _, step := range steps {
		tb := lengthTable(append([]int(nil), lengths...), append([]float64(nil), quals...))
		out, _ := filterData(tb, &step.s)
		if out.Len() != step.want {
			c.Errorf("settings %+v: got %d rows, want %d", step.s, out.Len(), step.want)
		}
	}
}
