// Copyright 2025 The Simexplore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package simstat

import (
	"fmt"
	"io"
	"math"

	"github.com/energyplus-tools/simexplore/internal/texttab"
)

// Threshold is the fractional band around 1.0 inside which a ratio is
// reported as unchanged. Ratios above 1+Threshold are regressions,
// ratios below 1-Threshold are improvements.
const Threshold = 0.05

// Change classifies ratio r against Threshold: -1 for an improvement,
// 0 for no significant change (including NaN), +1 for a regression.
func Change(r float64) int {
	switch {
	case r > 1+Threshold:
		return +1
	case math.IsNaN(r) || r >= 1-Threshold:
		return 0
	}
	return -1
}

// FormatRatio renders r the way the tool prints ratios everywhere:
// "1.50x", or "?" if r is NaN.
func FormatRatio(r float64) string {
	if math.IsNaN(r) {
		return "?"
	}
	return fmt.Sprintf("%.2fx", r)
}

// TextOptions configure FormatText.
type TextOptions struct {
	// MaxWidth, if positive, truncates over-long cells so rows fit
	// in a terminal of this width.
	MaxWidth int

	// NoSummary omits the min/mean/max columns.
	NoSummary bool
}

// FormatText writes the ratio table of c to w in aligned plain text,
// followed by the overall row and a note per flagged ratio.
func FormatText(w io.Writer, c *Comparison, opts TextOptions) error {
	var tab texttab.Table
	if opts.MaxWidth > 0 {
		// Leave the function column at least a third of the
		// terminal; the value columns are short.
		tab.MaxCellWidth = opts.MaxWidth / 3
	}

	summarize := !opts.NoSummary && len(c.Cells) > 1

	tab.Row().Cell("function")
	for _, cell := range c.Cells {
		tab.RCell(cell.String())
	}
	if summarize {
		tab.RCell("min").RCell("mean").RCell("max")
	}
	tab.Row().Cell("(" + c.Baseline.Describe() + ")")

	for _, fn := range c.Funcs {
		row := tab.Row().Cell(fn)
		for _, cell := range c.Cells {
			if r, ok := c.Ratios[RatioKey{cell, fn}]; ok {
				row.RCell(FormatRatio(r.Value))
			} else {
				row.RCell("")
			}
		}
		if summarize {
			if s := c.Summary[fn]; s != nil {
				row.RCell(FormatRatio(s.Min)).RCell(FormatRatio(s.Mean)).RCell(FormatRatio(s.Max))
			} else {
				row.RCell("?").RCell("?").RCell("?")
			}
		}
	}

	row := tab.Row().Cell("overall")
	for _, cell := range c.Cells {
		row.RCell(FormatRatio(c.Overall[cell]))
	}

	if err := tab.WriteTo(w); err != nil {
		return err
	}

	if len(c.Invalid) > 0 {
		if _, err := fmt.Fprintf(w, "\n"); err != nil {
			return err
		}
		for _, r := range c.Invalid {
			if _, err := fmt.Fprintf(w, "note: %s: %s: %s\n", r.Cell, r.Func, r.Invalid); err != nil {
				return err
			}
		}
	}
	return nil
}
