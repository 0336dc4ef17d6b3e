// Copyright ©2021 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// nanoplot creates statistics and diagnostic plots for long-read
// sequencing data, read from FASTQ files, BAM files or basecaller
// summary files, and bundles them into an HTML report.
package main

import (
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/nanoplot/nanoplot/nanoget"
	"github.com/nanoplot/nanoplot/nanoplotter"
)

const version = "1.0.0"

const crashMessage = `

If you read this then nanoplot has crashed :-(
Please report this issue at https://github.com/nanoplot/nanoplot/issues
If you include the log file that would be really helpful.
Thanks!

`

func main() {
	rand.Seed(time.Now().UnixNano())
	if err := newCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

// flagValues collects raw flag values before validation into Settings.
type flagValues struct {
	fastq        []string
	fastqRich    []string
	fastqMinimal []string
	bam          []string
	summary      []string
	pickle       string

	outdir  string
	prefix  string
	threads int
	verbose bool
	store   bool
	raw     bool

	maxLength    int
	dropOutliers bool
	downsample   int
	logLength    bool
	aLength      bool
	minQual      float64
	readType     string
	barcoded     bool

	color      string
	format     string
	plots      []string
	noN50      bool
	title      string
	listColors bool
}

func newCommand() *cobra.Command {
	var fv flagValues
	cmd := &cobra.Command{
		Use:     "nanoplot",
		Short:   "Plotting tool for long-read sequencing data and alignments",
		Version: version,
		Example: `  nanoplot --summary sequencing_summary.txt --loglength --outdir summary-plots
  nanoplot -t 2 --fastq reads1.fastq.gz reads2.fastq.gz --maxlength 40000 --plots hex dot
  nanoplot --color yellow --bam alignment.bam --downsample 10000`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if fv.listColors {
				fmt.Println(strings.Join(nanoplotter.ListColors(), "\n"))
				return nil
			}
			s, err := fv.settings()
			if err != nil {
				return err
			}
			logfile, err := initLogs(s)
			if err != nil {
				return err
			}
			if err := run(s, logfile); err != nil {
				log.Printf("Fatal: %v", err)
				fmt.Print(crashMessage)
				return err
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.SortFlags = false
	f.StringSliceVar(&fv.fastq, "fastq", nil, "data is in one or more default fastq file(s)")
	f.StringSliceVar(&fv.fastqRich, "fastq_rich", nil, "data is in one or more fastq file(s) with albacore/MinKNOW channel and time information")
	f.StringSliceVar(&fv.fastqMinimal, "fastq_minimal", nil, "like fastq_rich, extracted swiftly without elaborate checks")
	f.StringSliceVar(&fv.bam, "bam", nil, "data is in one or more sorted bam file(s)")
	f.StringSliceVar(&fv.summary, "summary", nil, "data is in one or more basecaller summary file(s)")
	f.StringVar(&fv.pickle, "pickle", "", "data is a table stored earlier with --store")

	f.StringVarP(&fv.outdir, "outdir", "o", ".", "directory in which output has to be created")
	f.StringVarP(&fv.prefix, "prefix", "p", "", "optional prefix for the output files")
	f.IntVarP(&fv.threads, "threads", "t", 4, "allowed number of threads for input decompression")
	f.BoolVar(&fv.verbose, "verbose", false, "write log messages also to the terminal")
	f.BoolVar(&fv.store, "store", false, "store the extracted data for future plotting")
	f.BoolVar(&fv.raw, "raw", false, "store the extracted data in a compressed tab separated file")

	f.IntVar(&fv.maxLength, "maxlength", 0, "drop reads longer than the given length")
	f.BoolVar(&fv.dropOutliers, "drop_outliers", false, "drop outlier reads with extreme long length")
	f.IntVar(&fv.downsample, "downsample", 0, "reduce the dataset to N reads by random sampling")
	f.BoolVar(&fv.logLength, "loglength", false, "logarithmic scaling of lengths in plots")
	f.BoolVar(&fv.aLength, "alength", false, "use aligned read lengths rather than sequenced length (bam mode)")
	f.Float64Var(&fv.minQual, "minqual", 0, "drop reads with an average quality lower than the given value")
	f.StringVar(&fv.readType, "readtype", "1D", "which read type to extract from a summary: 1D, 2D or 1D2")
	f.BoolVar(&fv.barcoded, "barcoded", false, "split the summary file by barcode")

	f.StringVarP(&fv.color, "color", "c", "#4cb391", "color for the plots, a color name or #rrggbb")
	f.StringVarP(&fv.format, "format", "f", "png", "output format of the plots")
	f.StringSliceVar(&fv.plots, "plots", []string{"kde", "hex", "dot"}, "which bivariate plot styles to make: kde, hex, dot, pauvre")
	f.BoolVar(&fv.noN50, "no-N50", false, "hide the N50 mark in the read length histogram")
	f.StringVar(&fv.title, "title", "", "a title for all plots")
	f.BoolVar(&fv.listColors, "listcolors", false, "list the colors available for plotting and exit")

	return cmd
}

// settings validates the flag values and resolves them into an
// immutable Settings value.
func (fv *flagValues) settings() (*Settings, error) {
	var (
		source nanoget.Source
		files  []string
		n      int
	)
	for _, src := range []struct {
		kind  nanoget.Source
		files []string
	}{
		{nanoget.Fastq, fv.fastq},
		{nanoget.FastqRich, fv.fastqRich},
		{nanoget.FastqMinimal, fv.fastqMinimal},
		{nanoget.Bam, fv.bam},
		{nanoget.Summary, fv.summary},
	} {
		if len(src.files) > 0 {
			source, files = src.kind, src.files
			n++
		}
	}
	if fv.pickle != "" {
		n++
	}
	if n != 1 {
		return nil, fmt.Errorf("exactly one of --fastq, --fastq_rich, --fastq_minimal, --bam, --summary or --pickle is required")
	}

	format, err := nanoplotter.CheckValidFormat(fv.format)
	if err != nil {
		return nil, err
	}
	col, err := nanoplotter.CheckValidColor(fv.color)
	if err != nil {
		return nil, err
	}
	var styles []string
	for _, p := range fv.plots {
		switch p {
		case "kde", "hex", "dot":
			styles = append(styles, p)
		case "pauvre":
			// No renderer for this style here; requested styles that
			// are absent are simply omitted.
			fmt.Fprintln(os.Stderr, "the pauvre plot style is not supported and will be skipped")
		default:
			return nil, fmt.Errorf("invalid plot style %q, choose from kde, hex, dot, pauvre", p)
		}
	}
	switch fv.readType {
	case "1D", "2D", "1D2":
	default:
		return nil, fmt.Errorf("invalid read type %q, choose from 1D, 2D, 1D2", fv.readType)
	}
	if fv.threads < 1 {
		return nil, fmt.Errorf("threads must be at least 1")
	}

	return &Settings{
		Source:       source,
		Files:        files,
		Pickle:       fv.pickle,
		OutDir:       fv.outdir,
		Prefix:       fv.prefix,
		Path:         filepath.Clean(fv.outdir) + string(os.PathSeparator) + fv.prefix,
		Threads:      fv.threads,
		Verbose:      fv.verbose,
		Store:        fv.store,
		Raw:          fv.raw,
		MaxLength:    fv.maxLength,
		DropOutliers: fv.dropOutliers,
		Downsample:   fv.downsample,
		LogLength:    fv.logLength,
		ALength:      fv.aLength,
		MinQual:      fv.minQual,
		ReadType:     fv.readType,
		Barcoded:     fv.barcoded,
		Color:        col,
		Format:       format,
		Plots:        styles,
		NoN50:        fv.noN50,
		Title:        fv.title,
	}, nil
}

// initLogs creates the output directory and a timestamped log file in
// it, and directs the standard logger there (and to the terminal with
// --verbose). It returns the log file path for the report.
func initLogs(s *Settings) (string, error) {
	if err := os.MkdirAll(s.OutDir, 0755); err != nil {
		return "", err
	}
	logfile := filepath.Join(s.OutDir, "NanoPlot_"+time.Now().Format("20060102_1504")+".log")
	f, err := os.Create(logfile)
	if err != nil {
		return "", err
	}
	if s.Verbose {
		log.SetOutput(io.MultiWriter(f, os.Stderr))
	} else {
		log.SetOutput(f)
	}
	log.Printf("nanoplot %s started with settings %+v", version, *s)
	return logfile, nil
}
