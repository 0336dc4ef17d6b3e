// Copyright ©2021 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reads

import (
	"bufio"
	"encoding/gob"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/klauspost/pgzip"
)

// Store writes the table to path as a gob-encoded blob for later reuse.
func (t *Table) Store(path string) (err error) {
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
	return gob.NewEncoder(f).Encode(t)
}

// Load restores a table previously written by Store.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	t := new(Table)
	if err := gob.NewDecoder(f).Decode(t); err != nil {
		return nil, fmt.Errorf("reads: restoring %s: %v", path, err)
	}
	return t, nil
}

// DumpRaw writes the table to path as a gzip-compressed tab separated
// file with a header row. Compression is parallelized over the given
// number of threads.
func (t *Table) DumpRaw(path string, threads int) (err error) {
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
	zw := pgzip.NewWriter(f)
	if threads > 1 {
		if err := zw.SetConcurrency(1<<20, threads); err != nil {
			return err
		}
	}
	defer func() {
		cerr := zw.Close()
		if err == nil {
			err = cerr
		}
	}()
	return t.WriteTSV(zw)
}

// WriteTSV writes the present columns of the table to w as
// tab separated values with a header row.
func (t *Table) WriteTSV(w io.Writer) error {
	bw := bufio.NewWriter(w)
	cols := t.Columns()
	for i, c := range cols {
		if i > 0 {
			bw.WriteByte('\t')
		}
		bw.WriteString(c)
	}
	bw.WriteByte('\n')
	for i := 0; i < t.Len(); i++ {
		for j, c := range cols {
			if j > 0 {
				bw.WriteByte('\t')
			}
			bw.WriteString(t.cell(c, i))
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

func (t *Table) cell(col string, i int) string {
	switch col {
	case ColLengths:
		return strconv.Itoa(t.Lengths[i])
	case ColAlignedLengths:
		return strconv.Itoa(t.AlignedLengths[i])
	case "quals":
		return strconv.FormatFloat(t.Quals[i], 'f', 2, 64)
	case "aligned_quals":
		return strconv.FormatFloat(t.AlignedQuals[i], 'f', 2, 64)
	case "channelIDs":
		return strconv.Itoa(t.Channels[i])
	case "start_time":
		return t.StartTimes[i].Format(time.RFC3339)
	case "mapQ":
		return strconv.Itoa(t.MapQ[i])
	case "percentIdentity":
		return strconv.FormatFloat(t.PercentIdentity[i], 'f', 4, 64)
	case "barcode":
		return t.Barcodes[i]
	case ColLogLengths:
		return strconv.FormatFloat(t.LogLengths[i], 'f', 4, 64)
	case ColLogAlignedLengths:
		return strconv.FormatFloat(t.LogAlignedLengths[i], 'f', 4, 64)
	}
	panic(fmt.Sprintf("reads: unknown column %q", col))
}
