// Copyright ©2021 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	check "gopkg.in/check.v1"

	"github.com/nanoplot/nanoplot/nanoget"
)

func defaultFlags() flagValues {
	return flagValues{
		outdir:   ".",
		threads:  4,
		readType: "1D",
		color:    "#4cb391",
		format:   "png",
		plots:    []string{"kde", "hex", "dot"},
	}
}

func (s *S) TestSettingsRequiresOneSource(c *check.C) {
	fv := defaultFlags()
	_, err := fv.settings()
	c.Check(err, check.ErrorMatches, "exactly one of .* is required")

	fv.fastq = []string{"a.fastq"}
	fv.bam = []string{"a.bam"}
	_, err = fv.settings()
	c.Check(err, check.ErrorMatches, "exactly one of .* is required")

	fv = defaultFlags()
	fv.summary = []string{"sequencing_summary.txt"}
	set, err := fv.settings()
	c.Assert(err, check.IsNil)
	c.Check(set.Source, check.Equals, nanoget.Summary)
	c.Check(set.Files, check.DeepEquals, []string{"sequencing_summary.txt"})

	fv = defaultFlags()
	fv.pickle = "data.pickle"
	set, err = fv.settings()
	c.Assert(err, check.IsNil)
	c.Check(set.Pickle, check.Equals, "data.pickle")
}

func (s *S) TestSettingsValidation(c *check.C) {
	fv := defaultFlags()
	fv.fastq = []string{"a.fastq"}

	fv.format = "bmp"
	_, err := fv.settings()
	c.Check(err, check.ErrorMatches, ".*unsupported output format.*")

	fv = defaultFlags()
	fv.fastq = []string{"a.fastq"}
	fv.color = "sparkly"
	_, err = fv.settings()
	c.Check(err, check.ErrorMatches, ".*invalid color.*")

	fv = defaultFlags()
	fv.fastq = []string{"a.fastq"}
	fv.plots = []string{"kde", "violin"}
	_, err = fv.settings()
	c.Check(err, check.ErrorMatches, `invalid plot style "violin".*`)

	fv = defaultFlags()
	fv.fastq = []string{"a.fastq"}
	fv.readType = "3D"
	_, err = fv.settings()
	c.Check(err, check.ErrorMatches, `invalid read type "3D".*`)
}

func (s *S) TestSettingsPauvreSkipped(c *check.C) {
	fv := defaultFlags()
	fv.fastq = []string{"a.fastq"}
	fv.plots = []string{"dot", "pauvre"}
	set, err := fv.settings()
	c.Assert(err, check.IsNil)
	c.Check(set.Plots, check.DeepEquals, []string{"dot"})
}

func (s *S) TestSettingsPathJoinsPrefix(c *check.C) {
	fv := defaultFlags()
	fv.fastq = []string{"a.fastq"}
	fv.outdir = "out"
	fv.prefix = "run1_"
	set, err := fv.settings()
	c.Assert(err, check.IsNil)
	c.Check(set.Path, check.Equals, "out/run1_")
}
