// Copyright 2025 The Simexplore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package simfmt

import (
	"reflect"
	"strings"
	"testing"
)

func TestParseDataset(t *testing.T) {
	ds, err := ReadDatasetFile("testdata/ds_8x1.json")
	if err != nil {
		t.Fatalf("ReadDatasetFile: %v", err)
	}
	if got, want := len(ds.Functions), 4; got != want {
		t.Errorf("len(Functions) = %d, want %d", got, want)
	}
	v, ok := ds.TotalTime("HeatBalanceManager")
	if !ok || v != 100.0 {
		t.Errorf("TotalTime(HeatBalanceManager) = %v, %v, want 100, true", v, ok)
	}
	if _, ok := ds.TotalTime("NoSuchFunction"); ok {
		t.Errorf("TotalTime(NoSuchFunction) reported present")
	}
	if got, want := ds.ElapsedTime(), 156.1; got != want {
		t.Errorf("ElapsedTime = %v, want %v", got, want)
	}
	if got, want := ds.Metadata.SystemConditions.TotalThreads, 8; got != want {
		t.Errorf("TotalThreads = %d, want %d", got, want)
	}
	want := []string{"HeatBalanceManager", "ManageWeather", "SimulateHVAC", "WriteOutputToSQLite"}
	if got := ds.FuncNames(); !reflect.DeepEqual(got, want) {
		t.Errorf("FuncNames = %v, want %v", got, want)
	}
}

func TestParseDatasetErrors(t *testing.T) {
	if _, err := ParseDataset([]byte("{not json"), "x.json"); err == nil {
		t.Errorf("malformed JSON did not error")
	}
	if _, err := ParseDataset([]byte(`{"metadata":{},"functions":{}}`), "x.json"); err == nil {
		t.Errorf("empty function table did not error")
	} else if !strings.Contains(err.Error(), "no function data") {
		t.Errorf("unexpected error %v", err)
	}
}

func TestElapsedTimeFallback(t *testing.T) {
	ds := &Dataset{Functions: map[string]FunctionTiming{
		"A": {TotalTime: 1.5},
		"B": {TotalTime: 2.5},
	}}
	if got, want := ds.ElapsedTime(), 4.0; got != want {
		t.Errorf("ElapsedTime = %v, want %v", got, want)
	}
}

func TestCell(t *testing.T) {
	check := func(s string, want Cell, valid bool) {
		t.Helper()
		c, err := ParseCell(s)
		if err != nil {
			t.Errorf("ParseCell(%q): %v", s, err)
			return
		}
		if c != want {
			t.Errorf("ParseCell(%q) = %v, want %v", s, c, want)
		}
		if c.Valid() != valid {
			t.Errorf("Valid(%v) = %v, want %v", c, c.Valid(), valid)
		}
		if c.String() != s {
			t.Errorf("String(%v) = %q, want %q", c, c.String(), s)
		}
	}
	check("1x1", Cell{1, 1}, true)
	check("8x64", Cell{8, 64}, true)
	check("32x64", Cell{32, 64}, true)
	check("64x1", Cell{64, 1}, false)
	check("8x3", Cell{8, 3}, false)

	for _, bad := range []string{"", "8", "8x", "x4", "axb"} {
		if _, err := ParseCell(bad); err == nil {
			t.Errorf("ParseCell(%q) did not error", bad)
		}
	}
}

func TestMatrix(t *testing.T) {
	m := NewMatrix()
	if err := m.Set(Cell{7, 4}, &Dataset{}); err == nil {
		t.Errorf("Set off-axis cell did not error")
	}
	for _, c := range []Cell{{8, 4}, {8, 1}, {16, 4}} {
		if err := m.Set(c, &Dataset{Cell: c}); err != nil {
			t.Fatalf("Set(%v): %v", c, err)
		}
	}
	if m.Len() != 3 {
		t.Errorf("Len = %d, want 3", m.Len())
	}
	if ds := m.Dataset(Cell{8, 4}); ds == nil || ds.Cell != (Cell{8, 4}) {
		t.Errorf("Dataset(8x4) = %v", ds)
	}
	if ds := m.Dataset(Cell{32, 64}); ds != nil {
		t.Errorf("Dataset(32x64) = %v, want nil", ds)
	}

	want := []Cell{{8, 1}, {8, 4}, {16, 4}}
	if got := m.Cells(); !reflect.DeepEqual(got, want) {
		t.Errorf("Cells = %v, want %v", got, want)
	}
	if got, want := m.Row(8), []Cell{{8, 1}, {8, 4}}; !reflect.DeepEqual(got, want) {
		t.Errorf("Row(8) = %v, want %v", got, want)
	}
	if got, want := m.Column(4), []Cell{{8, 4}, {16, 4}}; !reflect.DeepEqual(got, want) {
		t.Errorf("Column(4) = %v, want %v", got, want)
	}
}
