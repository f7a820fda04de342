// Copyright 2025 The Simexplore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package simstat

import (
	"encoding/csv"
	"io"
	"math"
	"strconv"
)

// WriteCSV writes the ratio table of c to w as CSV. The first column
// is the function name, followed by one column per selected cell and,
// when more than one cell is selected, min/mean/max columns. Flagged
// ratios are left empty. The last record is the overall row.
func WriteCSV(w io.Writer, c *Comparison) error {
	cw := csv.NewWriter(w)

	summarize := len(c.Cells) > 1
	hdr := []string{"function"}
	for _, cell := range c.Cells {
		hdr = append(hdr, cell.String())
	}
	if summarize {
		hdr = append(hdr, "min", "mean", "max")
	}
	if err := cw.Write(hdr); err != nil {
		return err
	}

	num := func(v float64) string {
		if math.IsNaN(v) {
			return ""
		}
		return strconv.FormatFloat(v, 'g', -1, 64)
	}

	for _, fn := range c.Funcs {
		rec := []string{fn}
		for _, cell := range c.Cells {
			if r, ok := c.Ratios[RatioKey{cell, fn}]; ok {
				rec = append(rec, num(r.Value))
			} else {
				rec = append(rec, "")
			}
		}
		if summarize {
			if s := c.Summary[fn]; s != nil {
				rec = append(rec, num(s.Min), num(s.Mean), num(s.Max))
			} else {
				rec = append(rec, "", "", "")
			}
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}

	rec := []string{"overall"}
	for _, cell := range c.Cells {
		rec = append(rec, num(c.Overall[cell]))
	}
	if summarize {
		rec = append(rec, "", "", "")
	}
	if err := cw.Write(rec); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}
