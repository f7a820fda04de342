// Copyright 2025 The Simexplore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package simstat

import (
	"math"
	"sort"
)

// A SortFunc abstracts the sorting interface to compare two functions
// of a Comparison by name.
type SortFunc func(*Comparison, string, string) bool

// ByName sorts the function rows alphabetically.
func ByName(c *Comparison, a, b string) bool {
	return a < b
}

// ByRatio sorts the function rows by mean ratio, most regressed first.
// Functions with no valid ratio sort last.
func ByRatio(c *Comparison, a, b string) bool {
	return meanRatio(c, a) > meanRatio(c, b)
}

// ByTime sorts the function rows by total time in the first selected
// cell, biggest consumer first.
func ByTime(c *Comparison, a, b string) bool {
	return firstCellTime(c, a) > firstCellTime(c, b)
}

// SortReverse returns a SortFunc that is the reverse of sortFunc.
func SortReverse(sortFunc SortFunc) SortFunc {
	return func(c *Comparison, a, b string) bool { return !sortFunc(c, a, b) }
}

// Sort reorders c.Funcs (in place) by the given SortFunc.
func Sort(c *Comparison, sortFunc SortFunc) {
	sort.SliceStable(c.Funcs, func(i, j int) bool { return sortFunc(c, c.Funcs[i], c.Funcs[j]) })
}

// meanRatio returns the mean ratio of fn, or -Inf if it has no valid
// ratio, so flagged functions sort after everything else.
func meanRatio(c *Comparison, fn string) float64 {
	if s := c.Summary[fn]; s != nil {
		return s.Mean
	}
	return math.Inf(-1)
}

func firstCellTime(c *Comparison, fn string) float64 {
	if len(c.Cells) == 0 {
		return 0
	}
	if r, ok := c.Ratios[RatioKey{c.Cells[0], fn}]; ok {
		return r.Time
	}
	return 0
}
