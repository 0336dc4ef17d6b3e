// Copyright ©2021 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package nanoget extracts per-read metadata from FASTQ, BAM and
// basecaller summary files into a reads.Table. Format decoding is
// delegated to the respective format libraries; this package only
// maps records onto table columns.
package nanoget

import (
	"fmt"
	"log"

	"github.com/nanoplot/nanoplot/reads"
)

// Source identifies the kind of input files to extract from.
type Source string

// The supported input kinds.
const (
	Fastq        Source = "fastq"
	FastqRich    Source = "fastq_rich"
	FastqMinimal Source = "fastq_minimal"
	Bam          Source = "bam"
	Summary      Source = "summary"
)

// Options carries ingestion settings. Threads is forwarded to readers
// that decompress in parallel; extraction itself is sequential.
type Options struct {
	Threads  int
	ReadType string // 1D, 2D or 1D2, summary sources only
	Barcoded bool   // extract the barcode column, summary sources only
}

// Get extracts a table of per-read records from the given files, which
// must all be of the same source kind. Records from multiple files are
// concatenated in argument order. Zero-length reads are skipped so that
// every returned row has a length of at least 1.
func Get(src Source, files []string, opts Options) (*reads.Table, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("nanoget: no input files for source %q", src)
	}
	tb := new(reads.Table)
	for _, f := range files {
		var (
			part *reads.Table
			err  error
		)
		switch src {
		case Fastq:
			part, err = extractFastq(f)
		case FastqRich:
			part, err = extractFastx(f, true)
		case FastqMinimal:
			part, err = extractFastx(f, false)
		case Bam:
			part, err = extractBam(f, opts.Threads)
		case Summary:
			part, err = extractSummary(f, opts.ReadType, opts.Barcoded)
		default:
			return nil, fmt.Errorf("nanoget: unknown source %q", src)
		}
		if err != nil {
			return nil, fmt.Errorf("nanoget: %s: %v", f, err)
		}
		log.Printf("Extracted %d reads from %s", part.Len(), f)
		tb.Append(part)
	}
	if err := tb.Validate(); err != nil {
		return nil, err
	}
	return tb, nil
}
