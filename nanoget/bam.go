// Copyright ©2021 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nanoget

import (
	"fmt"
	"io"
	"os"

	"github.com/biogo/hts/bam"
	"github.com/biogo/hts/sam"

	"github.com/nanoplot/nanoplot/nanomath"
	"github.com/nanoplot/nanoplot/reads"
)

// extractBam reads primary alignments from a BAM file, recording
// sequenced and aligned length, basecall and aligned quality, mapping
// quality and percent identity. BGZF decompression is parallelized
// over rd goroutines.
func extractBam(file string, rd int) (*reads.Table, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	br, err := bam.NewReader(f, rd)
	if err != nil {
		return nil, err
	}
	defer br.Close()

	tb := &reads.Table{
		AlignedLengths:  []int{},
		Quals:           []float64{},
		AlignedQuals:    []float64{},
		MapQ:            []int{},
		PercentIdentity: []float64{},
	}
	for {
		rec, err := br.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}
		if rec.Flags&(sam.Unmapped|sam.Secondary|sam.Supplementary) != 0 {
			continue
		}
		n := rec.Seq.Length
		if n < 1 {
			continue
		}
		alnLen, clipFront, clipBack := alignedLength(rec.Cigar)
		if alnLen < 1 {
			continue
		}
		pid, err := percentIdentity(rec, alnLen)
		if err != nil {
			return nil, err
		}
		tb.Lengths = append(tb.Lengths, n)
		tb.AlignedLengths = append(tb.AlignedLengths, alnLen)
		tb.Quals = append(tb.Quals, nanomath.AvgQualBytes(rec.Qual, 0))
		tb.AlignedQuals = append(tb.AlignedQuals, nanomath.AvgQualBytes(clip(rec.Qual, clipFront, clipBack), 0))
		tb.MapQ = append(tb.MapQ, int(rec.MapQ))
		tb.PercentIdentity = append(tb.PercentIdentity, pid)
	}
	return tb, nil
}

// alignedLength returns the number of query bases taking part in the
// alignment and the soft-clipped lengths at either end.
func alignedLength(cigar sam.Cigar) (aln, front, back int) {
	seen := false
	for _, co := range cigar {
		switch co.Type() {
		case sam.CigarMatch, sam.CigarInsertion, sam.CigarEqual, sam.CigarMismatch:
			aln += co.Len()
			seen = true
		case sam.CigarSoftClipped:
			if seen {
				back += co.Len()
			} else {
				front += co.Len()
			}
		}
	}
	return aln, front, back
}

func clip(qual []byte, front, back int) []byte {
	if front+back >= len(qual) {
		return qual
	}
	return qual[front : len(qual)-back]
}

// percentIdentity derives identity from the NM edit-distance tag.
func percentIdentity(rec *sam.Record, alnLen int) (float64, error) {
	aux, ok := rec.Tag([]byte("NM"))
	if !ok {
		return 0, fmt.Errorf("alignment %s lacks NM tag", rec.Name)
	}
	var nm int
	switch v := aux.Value().(type) {
	case int8:
		nm = int(v)
	case uint8:
		nm = int(v)
	case int16:
		nm = int(v)
	case uint16:
		nm = int(v)
	case int32:
		nm = int(v)
	case uint32:
		nm = int(v)
	case int:
		nm = v
	default:
		return 0, fmt.Errorf("alignment %s has non-integer NM tag %v", rec.Name, v)
	}
	return 100 * (1 - float64(nm)/float64(alnLen)), nil
}
