// Copyright 2025 The Simexplore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package texttab does layout of text-based tables.
package texttab

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// A Table accumulates rows of cells and writes them out with columns
// padded to a common width.
//
// Methods return the Table so callers can chain them to build up many
// cells at once.
type Table struct {
	rows [][]cell

	// MaxCellWidth, if positive, truncates cell values longer than
	// this many runes with an ellipsis.
	MaxCellWidth int
}

type cell struct {
	value string
	right bool
}

// Row starts a new row in table t.
func (t *Table) Row() *Table {
	t.rows = append(t.rows, nil)
	return t
}

// Cell adds a left-aligned cell at the end of the current row.
func (t *Table) Cell(value string) *Table {
	return t.add(value, false)
}

// RCell adds a right-aligned cell at the end of the current row.
func (t *Table) RCell(value string) *Table {
	return t.add(value, true)
}

func (t *Table) add(value string, right bool) *Table {
	if len(t.rows) == 0 {
		panic("texttab: Cell before Row")
	}
	if t.MaxCellWidth > 2 && utf8.RuneCountInString(value) > t.MaxCellWidth {
		runes := []rune(value)
		value = string(runes[:t.MaxCellWidth-1]) + "…"
	}
	i := len(t.rows) - 1
	t.rows[i] = append(t.rows[i], cell{value, right})
	return t
}

// WriteTo lays out the table and writes it to w.
func (t *Table) WriteTo(w io.Writer) error {
	var widths []int
	for _, row := range t.rows {
		for i, c := range row {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			if n := utf8.RuneCountInString(c.value); n > widths[i] {
				widths[i] = n
			}
		}
	}

	var sb strings.Builder
	for _, row := range t.rows {
		for i, c := range row {
			if i > 0 {
				sb.WriteString("  ")
			}
			pad := widths[i] - utf8.RuneCountInString(c.value)
			if i == len(row)-1 && !c.right {
				pad = 0 // no trailing spaces
			}
			if c.right {
				sb.WriteString(strings.Repeat(" ", pad))
				sb.WriteString(c.value)
			} else {
				sb.WriteString(c.value)
				sb.WriteString(strings.Repeat(" ", pad))
			}
		}
		sb.WriteString("\n")
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// String lays out the table and returns it as a string.
func (t *Table) String() string {
	var sb strings.Builder
	if err := t.WriteTo(&sb); err != nil {
		panic(fmt.Sprintf("texttab: %v", err))
	}
	return sb.String()
}
