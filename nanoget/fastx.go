// Copyright ©2021 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nanoget

import (
	"io"
	"time"

	"github.com/shenwei356/bio/seq"
	"github.com/shenwei356/bio/seqio/fastx"

	"github.com/nanoplot/nanoplot/nanomath"
	"github.com/nanoplot/nanoplot/reads"
)

const phredOffset = 33

func init() {
	// Raw byte access to quality strings only; alphabet checks are
	// not needed for metadata extraction.
	seq.ValidateSeq = false
}

// extractFastx reads a FASTQ file written by albacore or MinKNOW,
// recording length, quality, channel and start time per read. With
// strict set, records with missing or malformed header fields are an
// error; otherwise the channel and time columns are dropped entirely
// as soon as one record lacks them, keeping column presence binary.
func extractFastx(file string, strict bool) (*reads.Table, error) {
	r, err := fastx.NewReader(seq.DNAredundant, file, fastx.DefaultIDRegexp)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	tb := &reads.Table{
		Quals:      []float64{},
		Channels:   []int{},
		StartTimes: []time.Time{},
	}
	rich := true
	for {
		rec, err := r.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}
		n := len(rec.Seq.Seq)
		if n < 1 {
			continue
		}
		tb.Lengths = append(tb.Lengths, n)
		tb.Quals = append(tb.Quals, nanomath.AvgQualBytes(rec.Seq.Qual, phredOffset))
		if !rich {
			continue
		}
		ch, start, ok, err := parseRichFields(string(rec.Name), strict)
		if err != nil {
			return nil, err
		}
		if !ok {
			rich = false
			tb.Channels = nil
			tb.StartTimes = nil
			continue
		}
		tb.Channels = append(tb.Channels, ch)
		tb.StartTimes = append(tb.StartTimes, start)
	}
	return tb, nil
}
