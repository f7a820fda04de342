// Copyright 2025 The Simexplore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package simstat

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/energyplus-tools/simexplore/simfmt"
)

// A BaselineKind selects how the denominator dataset is chosen for
// each compared cell.
type BaselineKind int

const (
	// BaselineSingle compares every selected cell against one
	// fixed cell.
	BaselineSingle BaselineKind = iota

	// BaselineRow compares each selected cell against the cell
	// with a fixed thread count and the selected cell's sim count.
	BaselineRow

	// BaselineColumn compares each selected cell against the cell
	// with a fixed sim count and the selected cell's thread count.
	BaselineColumn
)

// A Baseline is the denominator policy of a comparison.
//
// For BaselineSingle, Cell is the fixed baseline cell. For
// BaselineRow only Cell.Threads is meaningful, and for BaselineColumn
// only Cell.Sims.
type Baseline struct {
	Kind BaselineKind
	Cell simfmt.Cell
}

// SingleBaseline returns a Baseline that always uses cell c.
func SingleBaseline(c simfmt.Cell) Baseline {
	return Baseline{BaselineSingle, c}
}

// RowBaseline returns a Baseline fixed to the given thread count.
func RowBaseline(threads int) Baseline {
	return Baseline{BaselineRow, simfmt.Cell{Threads: threads}}
}

// ColumnBaseline returns a Baseline fixed to the given sim count.
func ColumnBaseline(sims int) Baseline {
	return Baseline{BaselineColumn, simfmt.Cell{Sims: sims}}
}

// For returns the baseline cell used for the given target cell.
func (b Baseline) For(target simfmt.Cell) simfmt.Cell {
	switch b.Kind {
	case BaselineRow:
		return simfmt.Cell{Threads: b.Cell.Threads, Sims: target.Sims}
	case BaselineColumn:
		return simfmt.Cell{Threads: target.Threads, Sims: b.Cell.Sims}
	default:
		return b.Cell
	}
}

// String returns the canonical parseable form of b, e.g. "single:8x1",
// "row:8" or "col:4".
func (b Baseline) String() string {
	switch b.Kind {
	case BaselineRow:
		return fmt.Sprintf("row:%d", b.Cell.Threads)
	case BaselineColumn:
		return fmt.Sprintf("col:%d", b.Cell.Sims)
	default:
		return fmt.Sprintf("single:%s", b.Cell)
	}
}

// Describe returns a human-readable description of b.
func (b Baseline) Describe() string {
	switch b.Kind {
	case BaselineRow:
		return fmt.Sprintf("row baseline, %d threads", b.Cell.Threads)
	case BaselineColumn:
		return fmt.Sprintf("column baseline, %d sims", b.Cell.Sims)
	default:
		return fmt.Sprintf("single baseline, %d threads × %d sims", b.Cell.Threads, b.Cell.Sims)
	}
}

// ParseBaseline parses the form produced by Baseline.String. A bare
// cell like "8x1" is accepted as shorthand for "single:8x1".
func ParseBaseline(s string) (Baseline, error) {
	kind, rest, ok := strings.Cut(s, ":")
	if !ok {
		c, err := simfmt.ParseCell(s)
		if err != nil {
			return Baseline{}, fmt.Errorf("baseline %q: want single:<cell>, row:<threads> or col:<sims>", s)
		}
		return SingleBaseline(c), nil
	}
	switch kind {
	case "single":
		c, err := simfmt.ParseCell(rest)
		if err != nil {
			return Baseline{}, fmt.Errorf("baseline %q: %v", s, err)
		}
		return SingleBaseline(c), nil
	case "row":
		threads, err := strconv.Atoi(rest)
		if err != nil {
			return Baseline{}, fmt.Errorf("baseline %q: bad thread count: %v", s, err)
		}
		return RowBaseline(threads), nil
	case "col", "column":
		sims, err := strconv.Atoi(rest)
		if err != nil {
			return Baseline{}, fmt.Errorf("baseline %q: bad sim count: %v", s, err)
		}
		return ColumnBaseline(sims), nil
	}
	return Baseline{}, fmt.Errorf("baseline %q: unknown kind %q", s, kind)
}
