// Copyright 2025 The Simexplore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package simstat computes baseline-relative performance ratios over a
// loaded run matrix.
//
// The entry point is Compare, which is a pure function of the matrix,
// a cell selection and a baseline policy. Ratios that cannot be
// computed (a function missing on either side, a zero baseline time,
// an unloaded baseline cell) are flagged and excluded from the
// aggregate statistics instead of being silently dropped or zeroed.
package simstat

import (
	"fmt"
	"math"
	"sort"

	"github.com/aclements/go-moremath/stats"

	"github.com/energyplus-tools/simexplore/simfmt"
)

// An InvalidReason explains why a ratio could not be computed.
type InvalidReason int

const (
	// Valid marks a computed ratio.
	Valid InvalidReason = iota

	// MissingInBaseline means the function is absent from the
	// baseline dataset.
	MissingInBaseline

	// MissingInTarget means the function is absent from the
	// selected dataset.
	MissingInTarget

	// ZeroBaseline means the baseline time is zero, so the ratio
	// is undefined.
	ZeroBaseline

	// MissingBaseline means the baseline cell itself did not load.
	MissingBaseline
)

func (r InvalidReason) String() string {
	switch r {
	case Valid:
		return "valid"
	case MissingInBaseline:
		return "missing in baseline"
	case MissingInTarget:
		return "missing in target"
	case ZeroBaseline:
		return "zero baseline time"
	case MissingBaseline:
		return "baseline cell not loaded"
	}
	return fmt.Sprintf("InvalidReason(%d)", int(r))
}

// A Ratio is one baseline-relative measurement: the elapsed time of
// Func in Cell divided by its time in the baseline cell for Cell.
// If Invalid is not Valid, Value is NaN.
type Ratio struct {
	Cell    simfmt.Cell
	Func    string
	Value   float64
	Time    float64 // total time of Func in Cell, seconds; 0 if missing
	Invalid InvalidReason
}

// A RatioKey indexes one ratio in a Comparison.
type RatioKey struct {
	Cell simfmt.Cell
	Func string
}

// A FuncSummary aggregates the valid ratios of one function across
// all selected cells.
type FuncSummary struct {
	Func string
	N    int // number of valid ratios
	Min  float64
	Mean float64
	Max  float64
}

// A Comparison holds the ratios and aggregate statistics of one
// selection against one baseline policy.
type Comparison struct {
	Baseline Baseline

	// Cells is the selected cells, in selection order.
	Cells []simfmt.Cell

	// Funcs is the sorted set of function names that appear in the
	// ratio table: every function present in at least one selected
	// dataset.
	Funcs []string

	// Ratios maps (cell, function) to the computed ratio. Only
	// functions present in the target dataset appear here;
	// functions missing from the target are surfaced in Invalid.
	Ratios map[RatioKey]Ratio

	// Overall maps each selected cell to its whole-run ratio: the
	// sum of its function times divided by the sum of the baseline
	// times, over functions valid on both sides.
	Overall map[simfmt.Cell]float64

	// Summary maps function names to aggregate statistics over
	// valid ratios. Functions with no valid ratio are absent.
	Summary map[string]*FuncSummary

	// Invalid lists every flagged ratio, including those excluded
	// from the ratio table, in (cell, function) order.
	Invalid []Ratio
}

// Ratio returns the ratio for cell c and function fn, if present in
// the ratio table.
func (c *Comparison) Ratio(cell simfmt.Cell, fn string) (Ratio, bool) {
	r, ok := c.Ratios[RatioKey{cell, fn}]
	return r, ok
}

// Compare computes baseline-relative ratios for the selected cells.
//
// It is a single-pass, deterministic, pure function of its inputs.
// Every selected cell must be loaded in m; baseline cells need not be
// (their absence flags the affected ratios instead).
func Compare(m *simfmt.Matrix, sel []simfmt.Cell, base Baseline) (*Comparison, error) {
	if len(sel) == 0 {
		return nil, fmt.Errorf("no cells selected")
	}
	if base.Kind == BaselineSingle && !base.Cell.Valid() {
		return nil, fmt.Errorf("baseline cell %s is not on the run matrix", base.Cell)
	}

	cmp := &Comparison{
		Baseline: base,
		Ratios:   make(map[RatioKey]Ratio),
		Overall:  make(map[simfmt.Cell]float64),
		Summary:  make(map[string]*FuncSummary),
	}

	seen := make(map[simfmt.Cell]bool)
	funcSet := make(map[string]bool)
	for _, cell := range sel {
		if seen[cell] {
			continue
		}
		seen[cell] = true
		if !cell.Valid() {
			return nil, fmt.Errorf("selected cell %s is not on the run matrix", cell)
		}
		target := m.Dataset(cell)
		if target == nil {
			return nil, fmt.Errorf("selected cell %s is not loaded", cell)
		}
		cmp.Cells = append(cmp.Cells, cell)

		bcell := base.For(cell)
		bds := m.Dataset(bcell)

		var sumTarget, sumBase float64
		for _, fn := range unionFuncs(target, bds) {
			ttime, inTarget := target.TotalTime(fn)
			if inTarget {
				funcSet[fn] = true
			}
			r := Ratio{Cell: cell, Func: fn, Value: math.NaN(), Time: ttime}
			switch {
			case bds == nil:
				r.Invalid = MissingBaseline
			case !inTarget:
				r.Invalid = MissingInTarget
			default:
				btime, inBase := bds.TotalTime(fn)
				switch {
				case !inBase:
					r.Invalid = MissingInBaseline
				case btime == 0:
					r.Invalid = ZeroBaseline
				default:
					r.Invalid = Valid
					r.Value = ttime / btime
					sumTarget += ttime
					sumBase += btime
				}
			}
			if r.Invalid != Valid {
				cmp.Invalid = append(cmp.Invalid, r)
			}
			// Functions missing from the target never enter
			// the ratio table; they are only surfaced above.
			if inTarget {
				cmp.Ratios[RatioKey{cell, fn}] = r
			}
		}
		if sumBase > 0 {
			cmp.Overall[cell] = sumTarget / sumBase
		} else {
			cmp.Overall[cell] = math.NaN()
		}
	}

	cmp.Funcs = make([]string, 0, len(funcSet))
	for fn := range funcSet {
		cmp.Funcs = append(cmp.Funcs, fn)
	}
	sort.Strings(cmp.Funcs)

	// Aggregate valid ratios per function.
	for _, fn := range cmp.Funcs {
		var vals []float64
		for _, cell := range cmp.Cells {
			if r, ok := cmp.Ratios[RatioKey{cell, fn}]; ok && r.Invalid == Valid {
				vals = append(vals, r.Value)
			}
		}
		if len(vals) == 0 {
			continue
		}
		s := stats.Sample{Xs: vals}
		min, max := s.Bounds()
		cmp.Summary[fn] = &FuncSummary{
			Func: fn,
			N:    len(vals),
			Min:  min,
			Mean: s.Mean(),
			Max:  max,
		}
	}
	return cmp, nil
}

// unionFuncs returns the sorted union of the function names of a and
// b. Either may be nil.
func unionFuncs(a, b *simfmt.Dataset) []string {
	set := make(map[string]bool)
	for _, ds := range []*simfmt.Dataset{a, b} {
		if ds == nil {
			continue
		}
		for fn := range ds.Functions {
			set[fn] = true
		}
	}
	names := make([]string, 0, len(set))
	for fn := range set {
		names = append(names, fn)
	}
	sort.Strings(names)
	return names
}
