// Copyright 2025 The Simexplore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package simstat

import (
	"github.com/aclements/go-gg/ggstat"
	"github.com/aclements/go-gg/table"
)

// A ScalingAxis selects which matrix axis a scaling summary varies
// over.
type ScalingAxis int

const (
	// BySims aggregates over cells with the same concurrent-sim
	// count.
	BySims ScalingAxis = iota

	// ByThreads aggregates over cells with the same thread count.
	ByThreads
)

func (a ScalingAxis) String() string {
	if a == ByThreads {
		return "threads"
	}
	return "sims"
}

// A ScalingPoint is the aggregate ratio of every valid (cell,
// function) ratio at one level of the scaling axis.
type ScalingPoint struct {
	Level int // thread or sim count, per the axis
	Mean  float64
	Min   float64
	Max   float64
}

// Scaling aggregates the valid ratios of c along one matrix axis,
// showing how performance degrades as that axis grows. Flagged ratios
// are excluded. The points are sorted by level.
func Scaling(c *Comparison, axis ScalingAxis) []ScalingPoint {
	var levels []int
	var ratios []float64
	for key, r := range c.Ratios {
		if r.Invalid != Valid {
			continue
		}
		level := key.Cell.Sims
		if axis == ByThreads {
			level = key.Cell.Threads
		}
		levels = append(levels, level)
		ratios = append(ratios, r.Value)
	}
	if len(levels) == 0 {
		return nil
	}

	tab := new(table.Builder).Add("level", levels).Add("ratio", ratios).Done()
	g := ggstat.Agg("level")(ggstat.AggMean("ratio"), ggstat.AggMin("ratio"), ggstat.AggMax("ratio")).
		F(table.SortBy(tab, "level"))

	var out []ScalingPoint
	for _, gid := range g.Tables() {
		t := g.Table(gid)
		outLevels := t.MustColumn("level").([]int)
		means := t.MustColumn("mean ratio").([]float64)
		mins := t.MustColumn("min ratio").([]float64)
		maxs := t.MustColumn("max ratio").([]float64)
		for i := range outLevels {
			out = append(out, ScalingPoint{
				Level: outLevels[i],
				Mean:  means[i],
				Min:   mins[i],
				Max:   maxs[i],
			})
		}
	}
	return out
}
