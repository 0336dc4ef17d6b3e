// Copyright ©2021 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nanomath

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/nanoplot/nanoplot/reads"
)

var qualCutoffs = []int{5, 7, 10, 12, 15}

// summary holds the per-dataset values backing one column of the
// statistics file.
type summary struct {
	n           int
	totalBases  int
	meanLen     float64
	medianLen   float64
	n50         int
	hasQuals    bool
	meanQual    float64
	medianQual  float64
	hasAligned  bool
	alignedTot  int
	hasIdentity bool
	meanPID     float64
	aboveQ      []int // reads above each cutoff in qualCutoffs
	aboveQBases []int // total bases of those reads
	topLen      []string
	topQual     []string
}

func summarize(t *reads.Table) summary {
	var s summary
	s.n = t.Len()
	for _, l := range t.Lengths {
		s.totalBases += l
	}
	lens := t.Floats(reads.ColLengths)
	s.meanLen = Mean(lens)
	s.medianLen = Median(lens)
	s.n50 = N50(t.Lengths)
	if t.Quals != nil {
		s.hasQuals = true
		s.meanQual = Mean(t.Quals)
		s.medianQual = Median(t.Quals)
		s.aboveQ = make([]int, len(qualCutoffs))
		s.aboveQBases = make([]int, len(qualCutoffs))
		for i, q := range t.Quals {
			for c, cut := range qualCutoffs {
				if q > float64(cut) {
					s.aboveQ[c]++
					s.aboveQBases[c] += t.Lengths[i]
				}
			}
		}
		s.topLen = topLongest(t)
		s.topQual = topQuality(t)
	}
	if t.AlignedLengths != nil {
		s.hasAligned = true
		for _, l := range t.AlignedLengths {
			s.alignedTot += l
		}
	}
	if t.PercentIdentity != nil {
		s.hasIdentity = true
		s.meanPID = Mean(t.PercentIdentity)
	}
	return s
}

// topLongest renders the five longest reads as "length (quality)".
func topLongest(t *reads.Table) []string {
	idx := sortedIndex(t.Len(), func(i, j int) bool { return t.Lengths[i] > t.Lengths[j] })
	var top []string
	for _, i := range idx {
		if len(top) == 5 {
			break
		}
		top = append(top, fmt.Sprintf("%d (%.1f)", t.Lengths[i], t.Quals[i]))
	}
	return top
}

// topQuality renders the five highest-quality reads as "quality (length)".
func topQuality(t *reads.Table) []string {
	idx := sortedIndex(t.Len(), func(i, j int) bool { return t.Quals[i] > t.Quals[j] })
	var top []string
	for _, i := range idx {
		if len(top) == 5 {
			break
		}
		top = append(top, fmt.Sprintf("%.1f (%d)", t.Quals[i], t.Lengths[i]))
	}
	return top
}

func sortedIndex(n int, less func(i, j int) bool) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return less(idx[a], idx[b]) })
	return idx
}

// WriteStats renders the tab separated statistics file for one or more
// datasets. With multiple datasets each metric row carries one value
// column per dataset, headed by a Dataset row listing the given names.
func WriteStats(w io.Writer, tables []*reads.Table, names []string) error {
	sums := make([]summary, len(tables))
	for i, t := range tables {
		sums[i] = summarize(t)
	}
	bw := bufio.NewWriter(w)

	section := func(title string) { fmt.Fprintln(bw, title) }
	row := func(label string, value func(s summary) string) {
		cells := make([]string, len(sums)+1)
		cells[0] = label
		for i, s := range sums {
			cells[i+1] = value(s)
		}
		fmt.Fprintln(bw, strings.Join(cells, "\t"))
	}

	section("General summary:")
	if len(names) > 0 {
		cells := append([]string{"Dataset:"}, names...)
		fmt.Fprintln(bw, strings.Join(cells, "\t"))
	}
	row("Number of reads:", func(s summary) string { return fmt.Sprintf("%d", s.n) })
	row("Total bases:", func(s summary) string { return fmt.Sprintf("%d", s.totalBases) })
	if sums[0].hasAligned {
		row("Total bases aligned:", func(s summary) string { return fmt.Sprintf("%d", s.alignedTot) })
	}
	row("Mean read length:", func(s summary) string { return fmt.Sprintf("%.1f", s.meanLen) })
	row("Median read length:", func(s summary) string { return fmt.Sprintf("%.1f", s.medianLen) })
	row("Read length N50:", func(s summary) string { return fmt.Sprintf("%d", s.n50) })
	if sums[0].hasQuals {
		row("Mean read quality:", func(s summary) string { return fmt.Sprintf("%.1f", s.meanQual) })
		row("Median read quality:", func(s summary) string { return fmt.Sprintf("%.1f", s.medianQual) })
	}
	if sums[0].hasIdentity {
		row("Average percent identity:", func(s summary) string { return fmt.Sprintf("%.2f", s.meanPID) })
	}
	if sums[0].hasQuals {
		section("Number, percentage and megabases of reads above quality cutoffs")
		for c, cut := range qualCutoffs {
			c := c
			row(fmt.Sprintf(">Q%d:", cut), func(s summary) string {
				pct := 100 * float64(s.aboveQ[c]) / float64(s.n)
				mb := float64(s.aboveQBases[c]) / 1e6
				return fmt.Sprintf("%d (%.1f%%) %.1fMb", s.aboveQ[c], pct, mb)
			})
		}
		section("Top 5 longest reads and their mean basecall quality score")
		for i := 0; i < 5; i++ {
			i := i
			row(fmt.Sprintf("%d:", i+1), func(s summary) string {
				if i < len(s.topLen) {
					return s.topLen[i]
				}
				return ""
			})
		}
		section("Top 5 highest mean basecall quality scores and their read lengths")
		for i := 0; i < 5; i++ {
			i := i
			row(fmt.Sprintf("%d:", i+1), func(s summary) string {
				if i < len(s.topQual) {
					return s.topQual[i]
				}
				return ""
			})
		}
	}
	return bw.Flush()
}

// WriteStatsFile is WriteStats writing to the named file.
func WriteStatsFile(path string, tables []*reads.Table, names []string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		cerr := f.Close()
		if err == nil {
			err = cerr
		}
	}()
	return WriteStats(f, tables, names)
}
