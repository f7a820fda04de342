// Copyright 2025 The Simexplore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package simfmt provides the data model and readers for concurrent
// simulation profiling results.
//
// A profiling run is described by a project file, which maps each
// configuration of the run matrix to a per-configuration dataset file.
// The matrix has two fixed axes: the number of OpenMP threads given to
// each simulation, and the number of simulations running concurrently.
// Each dataset file records the total elapsed time of every profiled
// function for one configuration.
//
// This package is designed to be used with the higher-level packages
// simstat and simplot.
package simfmt

import (
	"fmt"
	"strconv"
	"strings"
)

// ThreadCounts is the fixed thread-count axis of the run matrix.
var ThreadCounts = []int{1, 2, 4, 8, 16, 32}

// SimCounts is the fixed concurrent-simulation axis of the run matrix.
var SimCounts = []int{1, 2, 4, 8, 16, 32, 64}

// A Cell identifies one configuration in the run matrix: Threads
// OpenMP threads per simulation, Sims simulations running at once.
type Cell struct {
	Threads int
	Sims    int
}

// String returns the canonical "<threads>x<sims>" form of c, e.g.
// "8x4" for 8 threads and 4 concurrent simulations.
func (c Cell) String() string {
	return fmt.Sprintf("%dx%d", c.Threads, c.Sims)
}

// Valid reports whether both coordinates of c lie on the matrix axes.
func (c Cell) Valid() bool {
	return axisIndex(ThreadCounts, c.Threads) >= 0 && axisIndex(SimCounts, c.Sims) >= 0
}

// ParseCell parses the "<threads>x<sims>" form produced by
// Cell.String. It does not check that the cell is on the axes; use
// Cell.Valid for that.
func ParseCell(s string) (Cell, error) {
	t, m, ok := strings.Cut(s, "x")
	if !ok {
		return Cell{}, fmt.Errorf("cell %q: want <threads>x<sims>", s)
	}
	threads, err := strconv.Atoi(t)
	if err != nil {
		return Cell{}, fmt.Errorf("cell %q: bad thread count: %v", s, err)
	}
	sims, err := strconv.Atoi(m)
	if err != nil {
		return Cell{}, fmt.Errorf("cell %q: bad sim count: %v", s, err)
	}
	return Cell{threads, sims}, nil
}

func axisIndex(axis []int, v int) int {
	for i, a := range axis {
		if a == v {
			return i
		}
	}
	return -1
}

// A Matrix holds the loaded datasets of a project, indexed by cell.
// Cells whose dataset file was missing or malformed are simply absent;
// the rest of the matrix remains usable.
type Matrix struct {
	cells map[Cell]*Dataset
}

// NewMatrix returns an empty Matrix.
func NewMatrix() *Matrix {
	return &Matrix{cells: make(map[Cell]*Dataset)}
}

// Set stores ds at cell c. It reports an error if c is not on the
// matrix axes.
func (m *Matrix) Set(c Cell, ds *Dataset) error {
	if !c.Valid() {
		return fmt.Errorf("cell %s is not on the %d×%d run matrix", c, len(ThreadCounts), len(SimCounts))
	}
	m.cells[c] = ds
	return nil
}

// Dataset returns the dataset loaded at cell c, or nil if that cell
// did not load.
func (m *Matrix) Dataset(c Cell) *Dataset {
	return m.cells[c]
}

// Len returns the number of loaded cells.
func (m *Matrix) Len() int {
	return len(m.cells)
}

// Cells returns the loaded cells in axis order: by thread count, then
// by sim count.
func (m *Matrix) Cells() []Cell {
	var out []Cell
	for _, t := range ThreadCounts {
		for _, s := range SimCounts {
			c := Cell{t, s}
			if m.cells[c] != nil {
				out = append(out, c)
			}
		}
	}
	return out
}

// Row returns the loaded cells with the given thread count, in sim
// count order.
func (m *Matrix) Row(threads int) []Cell {
	var out []Cell
	for _, s := range SimCounts {
		c := Cell{threads, s}
		if m.cells[c] != nil {
			out = append(out, c)
		}
	}
	return out
}

// Column returns the loaded cells with the given sim count, in thread
// count order.
func (m *Matrix) Column(sims int) []Cell {
	var out []Cell
	for _, t := range ThreadCounts {
		c := Cell{t, sims}
		if m.cells[c] != nil {
			out = append(out, c)
		}
	}
	return out
}
