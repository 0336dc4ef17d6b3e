// Copyright ©2021 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package reads provides the in-memory table of per-read sequencing
// metadata shared by the ingestion, filtering and plotting stages.
//
// A Table holds one slice per column; a nil slice means the column is
// absent. Columns are all-or-nothing: a present column has exactly one
// value per read. The lengths column is always present.
package reads

import (
	"fmt"
	"math"
	"time"
)

// Column names used to address length columns after filtering.
const (
	ColLengths           = "lengths"
	ColAlignedLengths    = "aligned_lengths"
	ColLogLengths        = "log_lengths"
	ColLogAlignedLengths = "log_aligned_lengths"
)

// Table is a column-oriented collection of per-read records.
type Table struct {
	Lengths           []int
	AlignedLengths    []int
	Quals             []float64
	AlignedQuals      []float64
	Channels          []int
	StartTimes        []time.Time
	MapQ              []int
	PercentIdentity   []float64
	Barcodes          []string
	LogLengths        []float64
	LogAlignedLengths []float64
}

// Caps records which optional columns a table carries. It is computed
// once after ingestion and branched on by the plot dispatcher.
type Caps struct {
	HasQuals     bool
	HasChannel   bool
	HasTime      bool
	HasAlignment bool
	HasMapQ      bool
	HasIdentity  bool
	HasBarcode   bool
}

// Len returns the number of reads in the table.
func (t *Table) Len() int { return len(t.Lengths) }

// Caps returns the capability flags for the table's present columns.
func (t *Table) Caps() Caps {
	return Caps{
		HasQuals:     t.Quals != nil,
		HasChannel:   t.Channels != nil,
		HasTime:      t.StartTimes != nil,
		HasAlignment: t.AlignedLengths != nil,
		HasMapQ:      t.MapQ != nil,
		HasIdentity:  t.PercentIdentity != nil,
		HasBarcode:   t.Barcodes != nil,
	}
}

// Columns returns the names of the present columns, in a fixed order.
func (t *Table) Columns() []string {
	cols := []string{ColLengths}
	if t.AlignedLengths != nil {
		cols = append(cols, ColAlignedLengths)
	}
	if t.Quals != nil {
		cols = append(cols, "quals")
	}
	if t.AlignedQuals != nil {
		cols = append(cols, "aligned_quals")
	}
	if t.Channels != nil {
		cols = append(cols, "channelIDs")
	}
	if t.StartTimes != nil {
		cols = append(cols, "start_time")
	}
	if t.MapQ != nil {
		cols = append(cols, "mapQ")
	}
	if t.PercentIdentity != nil {
		cols = append(cols, "percentIdentity")
	}
	if t.Barcodes != nil {
		cols = append(cols, "barcode")
	}
	if t.LogLengths != nil {
		cols = append(cols, ColLogLengths)
	}
	if t.LogAlignedLengths != nil {
		cols = append(cols, ColLogAlignedLengths)
	}
	return cols
}

// Validate checks the table invariants: a non-empty lengths column with
// strictly positive values, and every present column row-aligned with it.
func (t *Table) Validate() error {
	n := len(t.Lengths)
	if n == 0 {
		return fmt.Errorf("reads: empty table")
	}
	for i, l := range t.Lengths {
		if l < 1 {
			return fmt.Errorf("reads: non-positive length %d at row %d", l, i)
		}
	}
	for _, c := range []struct {
		name string
		len  int
		nil  bool
	}{
		{ColAlignedLengths, len(t.AlignedLengths), t.AlignedLengths == nil},
		{"quals", len(t.Quals), t.Quals == nil},
		{"aligned_quals", len(t.AlignedQuals), t.AlignedQuals == nil},
		{"channelIDs", len(t.Channels), t.Channels == nil},
		{"start_time", len(t.StartTimes), t.StartTimes == nil},
		{"mapQ", len(t.MapQ), t.MapQ == nil},
		{"percentIdentity", len(t.PercentIdentity), t.PercentIdentity == nil},
		{"barcode", len(t.Barcodes), t.Barcodes == nil},
	} {
		if !c.nil && c.len != n {
			return fmt.Errorf("reads: column %s has %d rows, want %d", c.name, c.len, n)
		}
	}
	return nil
}

// Floats returns the named length column as float64 values. Integer
// length columns are converted; log columns are returned as stored.
func (t *Table) Floats(col string) []float64 {
	switch col {
	case ColLengths:
		return intsToFloats(t.Lengths)
	case ColAlignedLengths:
		return intsToFloats(t.AlignedLengths)
	case ColLogLengths:
		return t.LogLengths
	case ColLogAlignedLengths:
		return t.LogAlignedLengths
	}
	panic(fmt.Sprintf("reads: unknown length column %q", col))
}

// DeriveLog adds the log10 transform of the named integer length column
// and returns the name of the derived column.
func (t *Table) DeriveLog(col string) string {
	switch col {
	case ColLengths:
		t.LogLengths = logFloats(t.Lengths)
		return ColLogLengths
	case ColAlignedLengths:
		t.LogAlignedLengths = logFloats(t.AlignedLengths)
		return ColLogAlignedLengths
	}
	panic(fmt.Sprintf("reads: cannot log-transform column %q", col))
}

// Select returns a new table holding the rows at the given indices, in
// order, for every present column.
func (t *Table) Select(idx []int) *Table {
	n := new(Table)
	n.Lengths = selectInts(t.Lengths, idx)
	n.AlignedLengths = selectInts(t.AlignedLengths, idx)
	n.Quals = selectFloats(t.Quals, idx)
	n.AlignedQuals = selectFloats(t.AlignedQuals, idx)
	n.Channels = selectInts(t.Channels, idx)
	n.MapQ = selectInts(t.MapQ, idx)
	n.PercentIdentity = selectFloats(t.PercentIdentity, idx)
	n.LogLengths = selectFloats(t.LogLengths, idx)
	n.LogAlignedLengths = selectFloats(t.LogAlignedLengths, idx)
	if t.StartTimes != nil {
		n.StartTimes = make([]time.Time, len(idx))
		for i, j := range idx {
			n.StartTimes[i] = t.StartTimes[j]
		}
	}
	if t.Barcodes != nil {
		n.Barcodes = make([]string, len(idx))
		for i, j := range idx {
			n.Barcodes[i] = t.Barcodes[j]
		}
	}
	return n
}

// Where returns a new table holding the rows for which keep returns true.
func (t *Table) Where(keep func(i int) bool) *Table {
	var idx []int
	for i := 0; i < t.Len(); i++ {
		if keep(i) {
			idx = append(idx, i)
		}
	}
	return t.Select(idx)
}

// BarcodeSet returns the distinct barcode values in first-appearance order.
func (t *Table) BarcodeSet() []string {
	var (
		seen = make(map[string]bool)
		set  []string
	)
	for _, b := range t.Barcodes {
		if !seen[b] {
			seen[b] = true
			set = append(set, b)
		}
	}
	return set
}

// Append adds all rows of o to t. Both tables must carry the same
// column set; the caller guarantees this when concatenating files of a
// single source kind.
func (t *Table) Append(o *Table) {
	t.Lengths = append(t.Lengths, o.Lengths...)
	if o.AlignedLengths != nil {
		t.AlignedLengths = append(t.AlignedLengths, o.AlignedLengths...)
	}
	if o.Quals != nil {
		t.Quals = append(t.Quals, o.Quals...)
	}
	if o.AlignedQuals != nil {
		t.AlignedQuals = append(t.AlignedQuals, o.AlignedQuals...)
	}
	if o.Channels != nil {
		t.Channels = append(t.Channels, o.Channels...)
	}
	if o.StartTimes != nil {
		t.StartTimes = append(t.StartTimes, o.StartTimes...)
	}
	if o.MapQ != nil {
		t.MapQ = append(t.MapQ, o.MapQ...)
	}
	if o.PercentIdentity != nil {
		t.PercentIdentity = append(t.PercentIdentity, o.PercentIdentity...)
	}
	if o.Barcodes != nil {
		t.Barcodes = append(t.Barcodes, o.Barcodes...)
	}
}

func intsToFloats(xs []int) []float64 {
	fs := make([]float64, len(xs))
	for i, x := range xs {
		fs[i] = float64(x)
	}
	return fs
}

func logFloats(xs []int) []float64 {
	fs := make([]float64, len(xs))
	for i, x := range xs {
		fs[i] = math.Log10(float64(x))
	}
	return fs
}

func selectInts(xs []int, idx []int) []int {
	if xs == nil {
		return nil
	}
	s := make([]int, len(idx))
	for i, j := range idx {
		s[i] = xs[j]
	}
	return s
}

func selectFloats(xs []float64, idx []int) []float64 {
	if xs == nil {
		return nil
	}
	s := make([]float64, len(idx))
	for i, j := range idx {
		s[i] = xs[j]
	}
	return s
}
