// Copyright 2025 The Simexplore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package db_test

import (
	"math"
	"strings"
	"testing"

	"golang.org/x/net/context"

	"github.com/energyplus-tools/simexplore/simfmt"
	"github.com/energyplus-tools/simexplore/simfmt/simtest"
	"github.com/energyplus-tools/simexplore/simstat"
	"github.com/energyplus-tools/simexplore/storage/db/dbtest"
)

func testComparison(t *testing.T) *simstat.Comparison {
	t.Helper()
	m := simtest.Matrix()
	sel := []simfmt.Cell{{Threads: 8, Sims: 1}, {Threads: 8, Sims: 4}}
	c, err := simstat.Compare(m, sel, simstat.SingleBaseline(simfmt.Cell{Threads: 8, Sims: 1}))
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	return c
}

func TestSaveGetDelete(t *testing.T) {
	ctx := context.Background()
	d, cleanup := dbtest.NewDB(t)
	defer cleanup()

	c := testComparison(t)
	id, err := d.SaveComparison(ctx, "warmup run", "office.json", c)
	if err != nil {
		t.Fatalf("SaveComparison: %v", err)
	}

	got, err := d.GetComparison(ctx, id)
	if err != nil {
		t.Fatalf("GetComparison: %v", err)
	}
	if got.Name != "warmup run" || got.Project != "office.json" {
		t.Errorf("got %q/%q, want warmup run/office.json", got.Name, got.Project)
	}
	if got.Baseline != c.Baseline.String() {
		t.Errorf("baseline = %q, want %q", got.Baseline, c.Baseline.String())
	}
	if _, err := simstat.ParseBaseline(got.Baseline); err != nil {
		t.Errorf("stored baseline does not parse: %v", err)
	}
	if got.Selection != "8x1,8x4" {
		t.Errorf("selection = %q, want 8x1,8x4", got.Selection)
	}
	if want := len(c.Cells) * len(c.Funcs); len(got.Ratios) != want {
		t.Errorf("got %d ratios, want %d", len(got.Ratios), want)
	}
	for _, r := range got.Ratios {
		orig, ok := c.Ratio(r.Cell, r.Func)
		if !ok {
			t.Errorf("unexpected ratio %s %s", r.Cell, r.Func)
			continue
		}
		switch {
		case orig.Invalid == simstat.Valid:
			if r.Reason != "" || r.Ratio != orig.Value {
				t.Errorf("%s %s = %v (%q), want %v", r.Cell, r.Func, r.Ratio, r.Reason, orig.Value)
			}
		default:
			if r.Reason == "" || !math.IsNaN(r.Ratio) {
				t.Errorf("%s %s = %v (%q), want flagged NaN", r.Cell, r.Func, r.Ratio, r.Reason)
			}
		}
	}

	if err := d.DeleteComparison(ctx, id); err != nil {
		t.Fatalf("DeleteComparison: %v", err)
	}
	if _, err := d.GetComparison(ctx, id); err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("GetComparison after delete = %v, want not found", err)
	}
	if n, _ := d.CountComparisons(); n != 0 {
		t.Errorf("%d comparisons left after delete", n)
	}
}

func TestList(t *testing.T) {
	ctx := context.Background()
	d, cleanup := dbtest.NewDB(t)
	defer cleanup()

	c := testComparison(t)
	var ids []int64
	for _, name := range []string{"first", "second", "third"} {
		id, err := d.SaveComparison(ctx, name, "office.json", c)
		if err != nil {
			t.Fatalf("SaveComparison %s: %v", name, err)
		}
		ids = append(ids, id)
	}

	list, err := d.ListComparisons(ctx)
	if err != nil {
		t.Fatalf("ListComparisons: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("got %d comparisons, want 3", len(list))
	}
	// Newest first.
	if list[0].ID != ids[2] || list[0].Name != "third" {
		t.Errorf("first listed = %d %q, want %d third", list[0].ID, list[0].Name, ids[2])
	}
	for _, c := range list {
		if len(c.Ratios) != 0 {
			t.Errorf("%q: list returned %d ratios, want none", c.Name, len(c.Ratios))
		}
	}
}

func TestDeleteMissing(t *testing.T) {
	d, cleanup := dbtest.NewDB(t)
	defer cleanup()
	if err := d.DeleteComparison(context.Background(), 42); err == nil {
		t.Errorf("DeleteComparison of missing row succeeded")
	}
}
