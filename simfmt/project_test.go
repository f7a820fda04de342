// Copyright 2025 The Simexplore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package simfmt

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoadProject(t *testing.T) {
	p, err := ReadProjectFile("testdata/project.json")
	if err != nil {
		t.Fatalf("ReadProjectFile: %v", err)
	}
	if got, want := p.Info.Name, "EnergyPlus Concurrent Simulation Study"; got != want {
		t.Errorf("Info.Name = %q, want %q", got, want)
	}

	m, errs := p.Load()

	// Two readable datasets, at their project positions.
	want := []Cell{{8, 1}, {8, 4}}
	if got := m.Cells(); !reflect.DeepEqual(got, want) {
		t.Errorf("loaded cells = %v, want %v", got, want)
	}
	for _, c := range want {
		ds := m.Dataset(c)
		if ds == nil {
			t.Fatalf("Dataset(%v) = nil", c)
		}
		if ds.Cell != c {
			t.Errorf("Dataset(%v).Cell = %v", c, ds.Cell)
		}
	}

	// One malformed file, one missing file, one off-axis key.
	if len(errs) != 3 {
		t.Fatalf("got %d load errors %v, want 3", len(errs), errs)
	}
	byCell := make(map[Cell]*LoadError)
	for _, e := range errs {
		byCell[e.Cell] = e
	}
	if e := byCell[Cell{8, 2}]; e == nil {
		t.Errorf("no load error for malformed cell 8x2")
	}
	if e := byCell[Cell{8, 8}]; e == nil {
		t.Errorf("no load error for missing cell 8x8")
	} else if !os.IsNotExist(e.Unwrap()) {
		t.Errorf("cell 8x8 error = %v, want not-exist", e)
	}
	if e := byCell[Cell{3, 8}]; e == nil {
		t.Errorf("no load error for off-axis cell 3x8")
	}
}

func TestProjectCounts(t *testing.T) {
	// A project referencing N readable dataset files yields exactly
	// N datasets with matching axis keys.
	dir := t.TempDir()
	data, err := os.ReadFile("testdata/ds_8x1.json")
	if err != nil {
		t.Fatal(err)
	}
	proj := `{"project_info": {"name": "n"}, "datasets": {
		"1": {"1": "d.json", "2": "d.json"},
		"2": {"4": "d.json"}
	}}`
	if err := os.WriteFile(filepath.Join(dir, "d.json"), data, 0666); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "p.json"), []byte(proj), 0666); err != nil {
		t.Fatal(err)
	}

	p, err := ReadProjectFile(filepath.Join(dir, "p.json"))
	if err != nil {
		t.Fatal(err)
	}
	m, errs := p.Load()
	if len(errs) != 0 {
		t.Fatalf("load errors: %v", errs)
	}
	want := []Cell{{1, 1}, {2, 1}, {4, 2}}
	if got := m.Cells(); !reflect.DeepEqual(got, want) {
		t.Errorf("loaded cells = %v, want %v", got, want)
	}
}

func TestProjectFatalErrors(t *testing.T) {
	if _, err := ReadProjectFile("testdata/no_such_project.json"); err == nil {
		t.Errorf("missing project file did not error")
	}
	if _, err := ParseProject([]byte("{"), "."); err == nil {
		t.Errorf("malformed project did not error")
	}
	if _, err := ParseProject([]byte(`{"project_info":{"name":"x"}}`), "."); err == nil {
		t.Errorf("project without datasets did not error")
	}
}
