// Copyright ©2021 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"log"
	"math/rand"
	"strconv"
	"strings"

	"github.com/nanoplot/nanoplot/nanomath"
	"github.com/nanoplot/nanoplot/reads"
)

// filterData applies the optional filters and transforms in their
// fixed order: length-column selection, outlier removal, max-length
// cutoff, min-quality cutoff, log transform, downsampling. It returns
// the filtered table and the derived fields, including the filename
// prefix built from one token per applied step.
func filterData(tb *reads.Table, s *Settings) (*reads.Table, Derived) {
	var (
		d      Derived
		prefix []string
	)

	if s.ALength && tb.Caps().HasAlignment {
		d.LengthsPointer = reads.ColAlignedLengths
		prefix = append(prefix, "Aligned_")
		log.Print("Using aligned read lengths for plotting.")
	} else {
		d.LengthsPointer = reads.ColLengths
		log.Print("Using sequenced read lengths for plotting.")
	}

	if s.DropOutliers {
		lens := tb.Floats(d.LengthsPointer)
		cut := nanomath.OutlierThreshold(lens)
		prior := tb.Len()
		tb = tb.Where(func(i int) bool { return lens[i] < cut })
		prefix = append(prefix, "OutliersRemoved_")
		log.Printf("Removing %d length outliers for plotting.", prior-tb.Len())
	}

	if s.MaxLength > 0 {
		lens := tb.Floats(d.LengthsPointer)
		prior := tb.Len()
		tb = tb.Where(func(i int) bool { return lens[i] < float64(s.MaxLength) })
		prefix = append(prefix, "MaxLength-"+strconv.Itoa(s.MaxLength)+"_")
		log.Printf("Removing %d reads longer than %dbp.", prior-tb.Len(), s.MaxLength)
	}

	if s.MinQual > 0 && tb.Quals != nil {
		quals := tb.Quals
		prior := tb.Len()
		tb = tb.Where(func(i int) bool { return quals[i] > s.MinQual })
		log.Printf("Removing %d reads with quality below Q%g.", prior-tb.Len(), s.MinQual)
	}

	if s.LogLength {
		d.LengthsPointer = tb.DeriveLog(d.LengthsPointer)
		d.LogScale = true
		prefix = append(prefix, "Log_")
		log.Print("Using log10 scaled read lengths.")
	}

	if s.Downsample > 0 {
		n := s.Downsample
		if n > tb.Len() {
			n = tb.Len()
		}
		prefix = append(prefix, "Downsampled_")
		log.Printf("Downsampling the dataset from %d to %d reads.", tb.Len(), n)
		tb = tb.Select(rand.Perm(tb.Len())[:n])
	}

	log.Printf("Processed the reads, optionally filtered. %d reads left.", tb.Len())
	d.LengthPrefix = strings.Join(prefix, "")
	return tb, d
}
