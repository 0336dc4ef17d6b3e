// Copyright ©2021 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"image/color"

	"github.com/nanoplot/nanoplot/nanoget"
)

// Settings is the parsed configuration. It is immutable once built;
// values derived during the run live in Derived instead.
type Settings struct {
	Source nanoget.Source
	Files  []string
	Pickle string

	OutDir  string
	Prefix  string
	Path    string // OutDir joined with Prefix, base of all output names
	Threads int
	Verbose bool
	Store   bool
	Raw     bool

	MaxLength    int
	DropOutliers bool
	Downsample   int
	LogLength    bool
	ALength      bool
	MinQual      float64
	ReadType     string
	Barcoded     bool

	Color  color.Color
	Format string
	Plots  []string
	NoN50  bool
	Title  string
}

// Derived carries the fields computed by the filter pipeline and
// consumed read-only by the plot dispatcher.
type Derived struct {
	LengthsPointer string // length column to plot
	LogScale       bool   // the column holds log10 values
	LengthPrefix   string // filter tokens embedded in output names
}

// stageError tags a pipeline failure with the stage it occurred in.
type stageError struct {
	stage string
	err   error
}

func (e *stageError) Error() string { return fmt.Sprintf("%s: %v", e.stage, e.err) }

func (e *stageError) Unwrap() error { return e.err }
