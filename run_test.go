// Copyright ©2021 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	check "gopkg.in/check.v1"

	"github.com/nanoplot/nanoplot/nanoget"
	"github.com/nanoplot/nanoplot/nanoplotter"
)

// writeSummary writes a small synthetic basecaller summary file.
func writeSummary(c *check.C, dir string, barcoded bool) string {
	var b strings.Builder
	header := "read_id\tsequence_length_template\tmean_qscore_template\tchannel\tstart_time"
	if barcoded {
		header += "\tbarcode_arrangement"
	}
	b.WriteString(header + "\n")
	for i := 0; i < 20; i++ {
		row := fmt.Sprintf("read%d\t%d\t%.1f\t%d\t%.1f", i, 500+300*i, 7+float64(i)/4, 1+i*13%512, float64(i*60))
		if barcoded {
			if i%2 == 0 {
				row += "\tBC01"
			} else {
				row += "\tBC02"
			}
		}
		b.WriteString(row + "\n")
	}
	file := filepath.Join(dir, "sequencing_summary.txt")
	err := os.WriteFile(file, []byte(b.String()), 0644)
	c.Assert(err, check.IsNil)
	return file
}

func (s *S) TestRunSummary(c *check.C) {
	dir := c.MkDir()
	summary := writeSummary(c, dir, false)
	col, err := nanoplotter.CheckValidColor("steelblue")
	c.Assert(err, check.IsNil)

	set := &Settings{
		Source:   nanoget.Summary,
		Files:    []string{summary},
		OutDir:   dir,
		Path:     dir + string(os.PathSeparator),
		Threads:  1,
		ReadType: "1D",
		Store:    true,
		Raw:      true,
		Color:    col,
		Format:   "png",
		Plots:    []string{"dot"},
	}
	logfile := filepath.Join(dir, "run.log")
	c.Assert(os.WriteFile(logfile, []byte("started\n"), 0644), check.IsNil)

	c.Assert(run(set, logfile), check.IsNil)

	for _, f := range []string{
		"NanoStats.txt",
		"NanoPlot-report.html",
		"NanoPlot-data.pickle",
		"NanoPlot-data.tsv.gz",
		"HistogramReadlength.png",
		"LengthvsQualityScatterPlot_dot.png",
		"ActivityMap_ReadsPerChannel.png",
		"CumulativeYieldPlot.png",
		"QualityOverTime.png",
	} {
		_, err := os.Stat(filepath.Join(dir, f))
		c.Check(err, check.IsNil, check.Commentf("missing %s", f))
	}
}

func (s *S) TestRunSummaryBarcoded(c *check.C) {
	dir := c.MkDir()
	summary := writeSummary(c, dir, true)
	col, err := nanoplotter.CheckValidColor("#4cb391")
	c.Assert(err, check.IsNil)

	set := &Settings{
		Source:   nanoget.Summary,
		Files:    []string{summary},
		OutDir:   dir,
		Path:     dir + string(os.PathSeparator),
		Threads:  1,
		ReadType: "1D",
		Barcoded: true,
		Color:    col,
		Format:   "png",
		Plots:    []string{"dot"},
	}
	c.Assert(run(set, ""), check.IsNil)

	stats, err := os.ReadFile(filepath.Join(dir, "NanoStats_barcoded.txt"))
	c.Assert(err, check.IsNil)
	var datasetRow string
	for _, line := range strings.Split(string(stats), "\n") {
		if strings.HasPrefix(line, "Dataset:") {
			datasetRow = line
			break
		}
	}
	c.Check(datasetRow, check.Equals, "Dataset:\tBC01\tBC02")

	for _, f := range []string{
		"BC01_HistogramReadlength.png",
		"BC02_HistogramReadlength.png",
		"BC01_LengthvsQualityScatterPlot_dot.png",
		"BC02_LengthvsQualityScatterPlot_dot.png",
		"NanoPlot-report.html",
	} {
		_, err := os.Stat(filepath.Join(dir, f))
		c.Check(err, check.IsNil, check.Commentf("missing %s", f))
	}

	// Per-barcode row counts sum to the pre-split total.
	rows := func(name string) string {
		for _, line := range strings.Split(string(stats), "\n") {
			if strings.HasPrefix(line, name) {
				return line
			}
		}
		return ""
	}
	c.Check(rows("Number of reads:"), check.Equals, "Number of reads:\t10\t10")
}
