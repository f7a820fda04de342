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

// ParseSelection expands a selection expression into loaded cells of m.
//
// The expression is a comma-separated list of terms:
//
//	8x4       a single cell
//	row:8     every loaded cell with 8 threads
//	col:4     every loaded cell with 4 concurrent sims
//	all       every loaded cell
//
// Row, column and all terms expand to loaded cells only; a term that
// expands to nothing is an error, as is a named cell that is not
// loaded. Duplicates are dropped, keeping first position.
func ParseSelection(m *simfmt.Matrix, expr string) ([]simfmt.Cell, error) {
	var sel []simfmt.Cell
	seen := make(map[simfmt.Cell]bool)
	add := func(c simfmt.Cell) {
		if !seen[c] {
			seen[c] = true
			sel = append(sel, c)
		}
	}
	for _, term := range strings.Split(expr, ",") {
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}
		switch kind, rest, ok := strings.Cut(term, ":"); {
		case term == "all":
			for _, c := range m.Cells() {
				add(c)
			}
		case ok && kind == "row":
			threads, err := strconv.Atoi(rest)
			if err != nil {
				return nil, fmt.Errorf("selection %q: bad thread count: %v", term, err)
			}
			cells := m.Row(threads)
			if len(cells) == 0 {
				return nil, fmt.Errorf("selection %q: no loaded cells with %d threads", term, threads)
			}
			for _, c := range cells {
				add(c)
			}
		case ok && (kind == "col" || kind == "column"):
			sims, err := strconv.Atoi(rest)
			if err != nil {
				return nil, fmt.Errorf("selection %q: bad sim count: %v", term, err)
			}
			cells := m.Column(sims)
			if len(cells) == 0 {
				return nil, fmt.Errorf("selection %q: no loaded cells with %d sims", term, sims)
			}
			for _, c := range cells {
				add(c)
			}
		case ok:
			return nil, fmt.Errorf("selection %q: unknown term kind %q", term, kind)
		default:
			c, err := simfmt.ParseCell(term)
			if err != nil {
				return nil, fmt.Errorf("selection %q: %v", term, err)
			}
			if !c.Valid() {
				return nil, fmt.Errorf("selection %q: cell is not on the run matrix", term)
			}
			if m.Dataset(c) == nil {
				return nil, fmt.Errorf("selection %q: cell not loaded", term)
			}
			add(c)
		}
	}
	if len(sel) == 0 {
		return nil, fmt.Errorf("empty selection %q", expr)
	}
	return sel, nil
}
