// Copyright ©2021 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nanoget

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fastq"
	"github.com/biogo/biogo/seq/linear"
	"github.com/shenwei356/xopen"

	"github.com/nanoplot/nanoplot/nanomath"
	"github.com/nanoplot/nanoplot/reads"
)

// extractFastq reads a plain (optionally gzip-compressed) FASTQ file,
// recording read length and mean basecall quality.
func extractFastq(file string) (*reads.Table, error) {
	in, err := xopen.Ropen(file)
	if err != nil {
		return nil, err
	}
	defer in.Close()

	t := linear.NewQSeq("", nil, alphabet.DNAredundant, alphabet.Sanger)
	sc := seqio.NewScanner(fastq.NewReader(in, t))
	tb := &reads.Table{Quals: []float64{}}
	for sc.Next() {
		s := sc.Seq().(*linear.QSeq)
		if s.Len() < 1 {
			continue
		}
		tb.Lengths = append(tb.Lengths, s.Len())
		tb.Quals = append(tb.Quals, avgQSeqQual(s))
	}
	if err := sc.Error(); err != nil {
		return nil, err
	}
	return tb, nil
}

func avgQSeqQual(s *linear.QSeq) float64 {
	phreds := make([]int, len(s.Seq))
	for i, ql := range s.Seq {
		phreds[i] = int(ql.Q)
	}
	return nanomath.AvgQual(phreds)
}

// parseRichFields extracts the channel and start-time key=value fields
// written by albacore and MinKNOW into FASTQ headers. A missing or
// malformed field is reported only when strict is set.
func parseRichFields(header string, strict bool) (ch int, start time.Time, ok bool, err error) {
	var haveCh, haveTime bool
	for _, f := range strings.Fields(header) {
		switch {
		case strings.HasPrefix(f, "ch="):
			ch, err = strconv.Atoi(f[len("ch="):])
			if err != nil {
				if strict {
					return 0, time.Time{}, false, fmt.Errorf("bad channel field %q: %v", f, err)
				}
				return 0, time.Time{}, false, nil
			}
			haveCh = true
		case strings.HasPrefix(f, "start_time="):
			start, err = time.Parse(time.RFC3339, f[len("start_time="):])
			if err != nil {
				if strict {
					return 0, time.Time{}, false, fmt.Errorf("bad start_time field %q: %v", f, err)
				}
				return 0, time.Time{}, false, nil
			}
			haveTime = true
		}
	}
	if !haveCh || !haveTime {
		if strict {
			return 0, time.Time{}, false, fmt.Errorf("header %q lacks ch= or start_time= field", header)
		}
		return 0, time.Time{}, false, nil
	}
	return ch, start, true, nil
}
