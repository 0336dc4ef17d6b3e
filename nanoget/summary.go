// Copyright ©2021 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nanoget

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shenwei356/xopen"

	"github.com/nanoplot/nanoplot/reads"
)

// Column families in basecaller summary files, keyed by read type.
var summaryColumns = map[string]struct{ length, qscore string }{
	"1D":  {"sequence_length_template", "mean_qscore_template"},
	"2D":  {"sequence_length_2d", "mean_qscore_2d"},
	"1D2": {"sequence_length_1d2", "mean_qscore_1d2"},
}

// extractSummary reads an albacore sequencing_summary file (optionally
// gzip-compressed), recording length and quality for the requested read
// type, plus channel, start time and, when requested, barcode columns
// where the file carries them.
func extractSummary(file, readtype string, barcoded bool) (*reads.Table, error) {
	cols, ok := summaryColumns[readtype]
	if !ok {
		return nil, fmt.Errorf("unknown read type %q", readtype)
	}
	in, err := xopen.Ropen(file)
	if err != nil {
		return nil, err
	}
	defer in.Close()

	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 1<<20), 1<<20)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("empty summary file")
	}
	index := make(map[string]int)
	for i, name := range strings.Split(sc.Text(), "\t") {
		index[name] = i
	}
	lenCol, ok := index[cols.length]
	if !ok {
		return nil, fmt.Errorf("summary lacks column %s", cols.length)
	}
	qualCol, ok := index[cols.qscore]
	if !ok {
		return nil, fmt.Errorf("summary lacks column %s", cols.qscore)
	}
	chanCol, hasChan := index["channel"]
	timeCol, hasTime := index["start_time"]
	barcCol, hasBarc := index["barcode_arrangement"]
	hasBarc = hasBarc && barcoded

	tb := &reads.Table{Quals: []float64{}}
	if hasChan {
		tb.Channels = []int{}
	}
	if hasTime {
		tb.StartTimes = []time.Time{}
	}
	if hasBarc {
		tb.Barcodes = []string{}
	}
	for line := 2; sc.Scan(); line++ {
		fields := strings.Split(sc.Text(), "\t")
		if len(fields) < len(index) {
			return nil, fmt.Errorf("line %d: %d fields, want %d", line, len(fields), len(index))
		}
		length, err := strconv.Atoi(fields[lenCol])
		if err != nil {
			return nil, fmt.Errorf("line %d: bad length: %v", line, err)
		}
		if length < 1 {
			continue
		}
		qual, err := strconv.ParseFloat(fields[qualCol], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad quality: %v", line, err)
		}
		tb.Lengths = append(tb.Lengths, length)
		tb.Quals = append(tb.Quals, qual)
		if hasChan {
			ch, err := strconv.Atoi(fields[chanCol])
			if err != nil {
				return nil, fmt.Errorf("line %d: bad channel: %v", line, err)
			}
			tb.Channels = append(tb.Channels, ch)
		}
		if hasTime {
			secs, err := strconv.ParseFloat(fields[timeCol], 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: bad start_time: %v", line, err)
			}
			tb.StartTimes = append(tb.StartTimes, runEpoch.Add(time.Duration(secs*float64(time.Second))))
		}
		if hasBarc {
			tb.Barcodes = append(tb.Barcodes, fields[barcCol])
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return tb, nil
}

// runEpoch anchors the relative start_time offsets found in summary
// files. Plots only use differences between start times, so the anchor
// value itself is arbitrary.
var runEpoch = time.Unix(0, 0).UTC()
