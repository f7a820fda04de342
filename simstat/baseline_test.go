// Copyright 2025 The Simexplore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package simstat

import (
	"reflect"
	"strings"
	"testing"

	"github.com/energyplus-tools/simexplore/simfmt"
)

func TestBaselineFor(t *testing.T) {
	target := simfmt.Cell{Threads: 16, Sims: 8}
	for _, tc := range []struct {
		base Baseline
		want simfmt.Cell
	}{
		{SingleBaseline(simfmt.Cell{Threads: 8, Sims: 1}), simfmt.Cell{Threads: 8, Sims: 1}},
		{RowBaseline(1), simfmt.Cell{Threads: 1, Sims: 8}},
		{ColumnBaseline(1), simfmt.Cell{Threads: 16, Sims: 1}},
	} {
		if got := tc.base.For(target); got != tc.want {
			t.Errorf("%v.For(%v) = %v, want %v", tc.base, target, got, tc.want)
		}
	}
}

func TestParseBaseline(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want Baseline
	}{
		{"single:8x1", SingleBaseline(simfmt.Cell{Threads: 8, Sims: 1})},
		{"8x1", SingleBaseline(simfmt.Cell{Threads: 8, Sims: 1})},
		{"row:8", RowBaseline(8)},
		{"col:4", ColumnBaseline(4)},
		{"column:4", ColumnBaseline(4)},
	} {
		got, err := ParseBaseline(tc.in)
		if err != nil {
			t.Errorf("ParseBaseline(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseBaseline(%q) = %v, want %v", tc.in, got, tc.want)
		}
		// The canonical forms round-trip.
		if tc.in != "8x1" && tc.in != "column:4" {
			if s := got.String(); s != tc.in {
				t.Errorf("ParseBaseline(%q).String() = %q", tc.in, s)
			}
		}
	}

	for _, in := range []string{"", "nope", "row:x", "col:", "tilt:4"} {
		if _, err := ParseBaseline(in); err == nil {
			t.Errorf("ParseBaseline(%q) succeeded, want error", in)
		}
	}
}

func TestParseSelection(t *testing.T) {
	m := testMatrix(t) // 8x1, 8x2, 8x4

	for _, tc := range []struct {
		in   string
		want []simfmt.Cell
	}{
		{"8x4", []simfmt.Cell{{Threads: 8, Sims: 4}}},
		{"8x4,8x1", []simfmt.Cell{{Threads: 8, Sims: 4}, {Threads: 8, Sims: 1}}},
		{"8x4, 8x4, 8x4", []simfmt.Cell{{Threads: 8, Sims: 4}}},
		{"row:8", []simfmt.Cell{{Threads: 8, Sims: 1}, {Threads: 8, Sims: 2}, {Threads: 8, Sims: 4}}},
		{"col:2", []simfmt.Cell{{Threads: 8, Sims: 2}}},
		{"all", []simfmt.Cell{{Threads: 8, Sims: 1}, {Threads: 8, Sims: 2}, {Threads: 8, Sims: 4}}},
		{"8x2,row:8", []simfmt.Cell{{Threads: 8, Sims: 2}, {Threads: 8, Sims: 1}, {Threads: 8, Sims: 4}}},
	} {
		got, err := ParseSelection(m, tc.in)
		if err != nil {
			t.Errorf("ParseSelection(%q): %v", tc.in, err)
			continue
		}
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("ParseSelection(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}

	for _, tc := range []struct {
		in   string
		want string
	}{
		{"", "empty selection"},
		{"1x1", "not loaded"},
		{"9x9", "run matrix"},
		{"row:16", "no loaded cells"},
		{"col:64", "no loaded cells"},
		{"row:x", "bad thread count"},
		{"diag:3", "unknown term"},
	} {
		_, err := ParseSelection(m, tc.in)
		if err == nil || !strings.Contains(err.Error(), tc.want) {
			t.Errorf("ParseSelection(%q) error = %v, want %q", tc.in, err, tc.want)
		}
	}
}
