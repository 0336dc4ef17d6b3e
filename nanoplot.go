// Copyright ©2021 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"log"
	"path/filepath"

	"github.com/nanoplot/nanoplot/nanoget"
	"github.com/nanoplot/nanoplot/nanomath"
	"github.com/nanoplot/nanoplot/nanoplotter"
	"github.com/nanoplot/nanoplot/reads"
	"github.com/nanoplot/nanoplot/report"
)

// run executes the pipeline: ingest (or restore) the table, write
// statistics, filter, dispatch plots (per barcode when splitting) and
// assemble the report. Failures are tagged with their stage.
func run(s *Settings, logfile string) error {
	var (
		tb  *reads.Table
		err error
	)
	if s.Pickle != "" {
		tb, err = reads.Load(s.Pickle)
	} else {
		tb, err = nanoget.Get(s.Source, s.Files, nanoget.Options{
			Threads:  s.Threads,
			ReadType: s.ReadType,
			Barcoded: s.Barcoded,
		})
	}
	if err != nil {
		return &stageError{"ingestion", err}
	}

	if s.Store {
		if err := tb.Store(s.Path + "NanoPlot-data.pickle"); err != nil {
			return &stageError{"store", err}
		}
		log.Print("Stored the extracted data for future plotting.")
	}
	if s.Raw {
		if err := tb.DumpRaw(filepath.Join(s.OutDir, "NanoPlot-data.tsv.gz"), s.Threads); err != nil {
			return &stageError{"raw dump", err}
		}
		log.Print("Dumped the extracted data as compressed TSV.")
	}

	statsfile := s.Path + "NanoStats.txt"
	if err := nanomath.WriteStatsFile(statsfile, []*reads.Table{tb}, nil); err != nil {
		return &stageError{"statistics", err}
	}
	log.Print("Calculated statistics.")

	tb, d := filterData(tb, s)

	var plots []nanoplotter.Plot
	if s.Barcoded && tb.Caps().HasBarcode {
		barcodes := tb.BarcodeSet()
		subs := make([]*reads.Table, len(barcodes))
		for i, b := range barcodes {
			b := b
			subs[i] = tb.Where(func(j int) bool { return tb.Barcodes[j] == b })
		}
		statsfile = s.Path + "NanoStats_barcoded.txt"
		if err := nanomath.WriteStatsFile(statsfile, subs, barcodes); err != nil {
			return &stageError{"statistics", err}
		}
		for i, b := range barcodes {
			log.Printf("Processing %s.", b)
			ps, err := makePlots(subs[i], s, d, s.Path+b+"_", b)
			if err != nil {
				return &stageError{"plotting", err}
			}
			plots = append(plots, ps...)
		}
	} else {
		plots, err = makePlots(tb, s, d, s.Path, s.Title)
		if err != nil {
			return &stageError{"plotting", err}
		}
	}

	if err := report.Write(s.Path+"NanoPlot-report.html", plots, statsfile, logfile); err != nil {
		return &stageError{"report", err}
	}
	log.Print("Finished!")
	return nil
}
