// Copyright 2025 The Simexplore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Simexplore computes baseline-relative performance ratios from
// EnergyPlus concurrency benchmark projects.
//
// Usage:
//
//	simexplore -project file.json [-sel cells] [-base baseline] [-sort order] [options]
//
// The project file names one profiling dataset per run configuration
// on the 6×7 matrix of thread counts {1,2,4,8,16,32} and concurrent
// simulation counts {1,2,4,8,16,32,64}. Simexplore loads every
// readable dataset, warns about the rest, and prints a table of
// per-function time ratios between the selected cells and a baseline.
//
// The -sel option selects cells to compare: a comma-separated list of
// terms, each a cell like 8x4 (threads x sims), row:8 (every loaded
// cell with 8 threads), col:4 (every loaded cell with 4 sims), or all.
//
// The -base option chooses the denominator policy: single:8x1
// compares everything to one cell, row:8 compares each cell to the
// cell with 8 threads and the same sim count, and col:1 compares each
// cell to the cell with 1 sim and the same thread count. The default
// is the first loaded cell.
//
// The -sort option specifies an order in which to list the results:
// name (function name), ratio (mean ratio, most regressed first), or
// time (biggest time consumer first). A leading "-" prefix reverses
// the order.
//
// The -html and -csv options change the output format. The -png and
// -svg options additionally export a ratio chart to the named file.
//
// A ratio above 1.0 means the selected cell is slower than the
// baseline for that function. Ratios that cannot be computed, such as
// a function missing from the baseline or a zero baseline time, are
// printed as "?" and listed separately; they never enter the
// aggregate columns.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/energyplus-tools/simexplore/simfmt"
	"github.com/energyplus-tools/simexplore/simfmt/simtest"
	"github.com/energyplus-tools/simexplore/simplot"
	"github.com/energyplus-tools/simexplore/simstat"
)

var exit = os.Exit // replaced during testing

func usage() {
	fmt.Fprintf(os.Stderr, "usage: simexplore -project file.json [options]\n")
	fmt.Fprintf(os.Stderr, "options:\n")
	flag.PrintDefaults()
	exit(2)
}

var (
	flagProject = flag.String("project", "", "load datasets from project `file`")
	flagDemo    = flag.Bool("demo", false, "explore a synthetic benchmark matrix instead of a project file")
	flagSel     = flag.String("sel", "all", "compare `cells`: comma-separated cells, row:N, col:N, or all")
	flagBase    = flag.String("base", "", "`baseline`: single:<cell>, row:<threads>, or col:<sims> (default first loaded cell)")
	flagSort    = flag.String("sort", "name", "sort by `order`: [-]name, [-]ratio, [-]time")
	flagHTML    = flag.Bool("html", false, "print the ratio table as HTML")
	flagCSV     = flag.Bool("csv", false, "print the ratio table as CSV")
	flagPNG     = flag.String("png", "", "write a ratio chart to PNG `file`")
	flagSVG     = flag.String("svg", "", "write a ratio chart to SVG `file`")
	flagQuiet   = flag.Bool("q", false, "suppress dataset load warnings")
)

var sortNames = map[string]simstat.SortFunc{
	"name":  simstat.ByName,
	"ratio": simstat.ByRatio,
	"time":  simstat.ByTime,
}

func main() {
	log.SetPrefix("simexplore: ")
	log.SetFlags(0)
	flag.Usage = usage
	flag.Parse()

	sortName := *flagSort
	reverse := false
	if strings.HasPrefix(sortName, "-") {
		reverse = true
		sortName = sortName[1:]
	}
	order, ok := sortNames[sortName]
	if !ok || flag.NArg() > 0 || (*flagProject == "" && !*flagDemo) {
		flag.Usage()
	}
	if reverse {
		order = simstat.SortReverse(order)
	}

	m := loadMatrix()

	base, err := baseline(m)
	if err != nil {
		log.Fatal(err)
	}
	sel, err := simstat.ParseSelection(m, *flagSel)
	if err != nil {
		log.Fatal(err)
	}
	c, err := simstat.Compare(m, sel, base)
	if err != nil {
		log.Fatal(err)
	}
	simstat.Sort(c, order)

	if *flagPNG != "" {
		if err := simplot.WritePNG(*flagPNG, c, simplot.Options{}); err != nil {
			log.Fatal(err)
		}
	}
	if *flagSVG != "" {
		if err := simplot.WriteSVG(*flagSVG, c, simplot.Options{}); err != nil {
			log.Fatal(err)
		}
	}

	var buf bytes.Buffer
	switch {
	case *flagHTML:
		buf.WriteString(htmlHeader)
		simstat.FormatHTML(&buf, c)
		buf.WriteString(htmlFooter)
	case *flagCSV:
		if err := simstat.WriteCSV(&buf, c); err != nil {
			log.Fatal(err)
		}
	default:
		opts := simstat.TextOptions{}
		if fd := int(os.Stdout.Fd()); term.IsTerminal(fd) {
			if width, _, err := term.GetSize(fd); err == nil {
				opts.MaxWidth = width
			}
		}
		if err := simstat.FormatText(&buf, c, opts); err != nil {
			log.Fatal(err)
		}
	}
	os.Stdout.Write(buf.Bytes())
}

// loadMatrix loads the project named by -project, or generates the
// synthetic matrix with -demo. Cells that fail to load are warned
// about and skipped; only a fully unreadable project is fatal.
func loadMatrix() *simfmt.Matrix {
	if *flagDemo {
		return simtest.Matrix()
	}
	p, err := simfmt.ReadProjectFile(*flagProject)
	if err != nil {
		log.Fatal(err)
	}
	m, loadErrs := p.Load()
	if !*flagQuiet {
		for _, e := range loadErrs {
			log.Printf("warning: %v", e)
		}
	}
	if m.Len() == 0 {
		log.Fatalf("%s: no datasets loaded", *flagProject)
	}
	return m
}

func baseline(m *simfmt.Matrix) (simstat.Baseline, error) {
	if *flagBase == "" {
		cells := m.Cells()
		return simstat.SingleBaseline(cells[0]), nil
	}
	return simstat.ParseBaseline(*flagBase)
}

var htmlHeader = `<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>Simulation Performance Comparison</title>
<style>
.simstat { border-collapse: collapse; }
.simstat th:nth-child(1) { text-align: left; }
.simstat td:nth-child(1n+2) { text-align: right; padding: 0em 1em; }
.simstat tr.header th { border-top: 1px solid #666; border-bottom: 1px solid #ccc; }
.simstat td.better { color: #060; }
.simstat td.worse { color: #c00; }
.simstat td.invalid, .simstat td.unchanged { color: #666; }
</style>
</head>
<body>
`

var htmlFooter = `</body>
</html>
`
