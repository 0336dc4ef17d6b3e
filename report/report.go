// Copyright ©2021 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package report assembles the statistics file, the rendered plots and
// the run log into a single self-contained HTML document.
package report

import (
	"bufio"
	"fmt"
	"html"
	"os"
	"strings"

	"github.com/nanoplot/nanoplot/nanoplotter"
)

const htmlHead = `<!DOCTYPE html>
<html>
	<head>
	<meta charset="UTF-8">
		<style>
		table, th, td {
			text-align: left;
			padding: 2px;
		}
		h2 {
			line-height: 0pt;
		}
		</style>
		<title>NanoPlot Report</title>
	</head>`

// sectionSentinel marks the numeric tail of the statistics file; table
// parsing stops there and remaining lines pass through as plain rows.
// This matches the stats writer's output format and is kept as is.
const sectionSentinel = "Data"

// Write assembles the report at htmlPath from the tab separated
// statistics file, the plot artifacts in order, and, when logfile is
// non-empty, a preformatted dump of the run log wrapped at 150 columns.
func Write(htmlPath string, plots []nanoplotter.Plot, statsfile, logfile string) (err error) {
	out, err := os.Create(htmlPath)
	if err != nil {
		return err
	}
	defer func() {
		cerr := out.Close()
		if err == nil {
			err = cerr
		}
	}()
	w := bufio.NewWriter(out)

	fmt.Fprint(w, htmlHead)
	fmt.Fprint(w, "\n<body>\n<h1>NanoPlot report</h1>")
	fmt.Fprint(w, "\n<h2>Summary statistics</h2>")
	if err := writeStatsTable(w, statsfile); err != nil {
		return err
	}

	fmt.Fprint(w, "\n<h2>Plots</h2>")
	for _, p := range plots {
		embed, err := p.Encode()
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "\n<h3>%s</h3>\n%s\n<br>\n<br>", html.EscapeString(p.Title), embed)
	}

	if logfile != "" {
		if err := writeLog(w, logfile); err != nil {
			return err
		}
	}
	fmt.Fprint(w, "\n</body></html>\n")
	return w.Flush()
}

// writeStatsTable renders the statistics file as an HTML table. A line
// with a single column becomes a full-width bold header row, a line
// with several tab separated columns a data row. The first line
// starting with the section sentinel ends table parsing; it and all
// following lines are emitted as plain full-width rows.
func writeStatsTable(w *bufio.Writer, statsfile string) error {
	f, err := os.Open(statsfile)
	if err != nil {
		return err
	}
	defer f.Close()

	fmt.Fprint(w, "\n<table>")
	sc := bufio.NewScanner(f)
	passthrough := false
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r\n")
		if passthrough {
			fmt.Fprintf(w, "\n<tr>\n\t<td colspan=\"2\">%s</td>\n</tr>", html.EscapeString(strings.TrimSpace(line)))
			continue
		}
		if strings.HasPrefix(line, sectionSentinel) {
			fmt.Fprintf(w, "\n<tr></tr>\n<tr>\n\t<td colspan=\"2\">%s</td>\n</tr>", html.EscapeString(strings.TrimSpace(line)))
			passthrough = true
			continue
		}
		cells := strings.Split(strings.TrimSpace(line), "\t")
		if len(cells) > 1 {
			fmt.Fprint(w, "\n<tr>\n\t")
			for _, c := range cells {
				fmt.Fprintf(w, "<td>%s</td>", html.EscapeString(c))
			}
			fmt.Fprint(w, "\n</tr>")
		} else {
			fmt.Fprintf(w, "\n<tr></tr>\n<tr>\n\t<td colspan=\"2\"><b>%s</b></td>\n</tr>", html.EscapeString(strings.TrimSpace(line)))
		}
	}
	if err := sc.Err(); err != nil {
		return err
	}
	fmt.Fprint(w, "\n</table>")
	return nil
}

const logWrapWidth = 150

func writeLog(w *bufio.Writer, logfile string) error {
	f, err := os.Open(logfile)
	if err != nil {
		return err
	}
	defer f.Close()

	fmt.Fprint(w, "\n<h2>Log file</h2>\n<pre>")
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		for _, l := range wrap(strings.TrimRight(sc.Text(), " \t"), logWrapWidth) {
			fmt.Fprintf(w, "\n%s", html.EscapeString(l))
		}
	}
	if err := sc.Err(); err != nil {
		return err
	}
	fmt.Fprint(w, "\n</pre>")
	return nil
}

// wrap splits s into lines of at most width bytes, breaking on spaces
// where possible.
func wrap(s string, width int) []string {
	if len(s) <= width {
		return []string{s}
	}
	var lines []string
	for len(s) > width {
		cut := strings.LastIndex(s[:width+1], " ")
		if cut <= 0 {
			cut = width
		}
		lines = append(lines, strings.TrimRight(s[:cut], " "))
		s = strings.TrimLeft(s[cut:], " ")
	}
	if s != "" {
		lines = append(lines, s)
	}
	return lines
}
