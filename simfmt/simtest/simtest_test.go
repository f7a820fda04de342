// Copyright 2025 The Simexplore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package simtest

import (
	"reflect"
	"testing"

	"github.com/energyplus-tools/simexplore/simfmt"
)

func TestDeterministic(t *testing.T) {
	c := simfmt.Cell{Threads: 8, Sims: 4}
	d1, d2 := Dataset(c), Dataset(c)
	if !reflect.DeepEqual(d1.Functions, d2.Functions) {
		t.Errorf("generation is not deterministic")
	}
}

func TestMatrixShape(t *testing.T) {
	m := Matrix()
	if got, want := m.Len(), len(simfmt.ThreadCounts)*len(simfmt.SimCounts); got != want {
		t.Fatalf("Len = %d, want %d", got, want)
	}
	base := m.Dataset(simfmt.Cell{Threads: 1, Sims: 1})
	for _, c := range m.Cells() {
		ds := m.Dataset(c)
		if got, want := len(ds.Functions), len(base.Functions); got != want {
			t.Errorf("%v: %d functions, want %d", c, got, want)
		}
		if ds.ElapsedTime() <= 0 {
			t.Errorf("%v: non-positive elapsed time", c)
		}
	}

	// More concurrency at a fixed thread count never speeds up I/O.
	t1, _ := m.Dataset(simfmt.Cell{Threads: 8, Sims: 1}).TotalTime("WriteOutputToSQLite")
	t64, _ := m.Dataset(simfmt.Cell{Threads: 8, Sims: 64}).TotalTime("WriteOutputToSQLite")
	if t64 <= t1 {
		t.Errorf("WriteOutputToSQLite at 64 sims (%v) not slower than at 1 sim (%v)", t64, t1)
	}
}

func TestWriteProject(t *testing.T) {
	dir := t.TempDir()
	path, err := WriteProject(dir)
	if err != nil {
		t.Fatalf("WriteProject: %v", err)
	}
	p, err := simfmt.ReadProjectFile(path)
	if err != nil {
		t.Fatalf("ReadProjectFile: %v", err)
	}
	m, errs := p.Load()
	if len(errs) != 0 {
		t.Fatalf("load errors: %v", errs)
	}
	if got, want := m.Len(), 42; got != want {
		t.Errorf("loaded %d cells, want %d", got, want)
	}
	ds := m.Dataset(simfmt.Cell{Threads: 8, Sims: 4})
	gen := Dataset(simfmt.Cell{Threads: 8, Sims: 4})
	want, _ := gen.TotalTime("HeatBalanceManager")
	if got, _ := ds.TotalTime("HeatBalanceManager"); got != want {
		t.Errorf("round-tripped HeatBalanceManager = %v, want %v", got, want)
	}
}
