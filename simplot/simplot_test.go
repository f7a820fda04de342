// Copyright 2025 The Simexplore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package simplot

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/energyplus-tools/simexplore/simfmt"
	"github.com/energyplus-tools/simexplore/simfmt/simtest"
	"github.com/energyplus-tools/simexplore/simstat"
)

func testComparison(t *testing.T, cells ...simfmt.Cell) *simstat.Comparison {
	t.Helper()
	m := simtest.Matrix()
	c, err := simstat.Compare(m, cells, simstat.SingleBaseline(simfmt.Cell{Threads: 8, Sims: 1}))
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	return c
}

func TestRender(t *testing.T) {
	c := testComparison(t, simfmt.Cell{Threads: 8, Sims: 4}, simfmt.Cell{Threads: 8, Sims: 16})
	pl, err := Render(c, Options{})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	// The unit ratio must be inside the Y range so the reference
	// line is visible.
	if pl.Y.Min > 1 || pl.Y.Max < 1 {
		t.Errorf("Y range [%v, %v] excludes 1.0", pl.Y.Min, pl.Y.Max)
	}
	if pl.Title.Text == "" {
		t.Errorf("no default title")
	}
}

func TestRenderEmpty(t *testing.T) {
	c := &simstat.Comparison{}
	if _, err := Render(c, Options{}); err == nil {
		t.Errorf("Render of empty comparison succeeded, want error")
	}
}

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func TestWritePNG(t *testing.T) {
	c := testComparison(t, simfmt.Cell{Threads: 8, Sims: 4})
	path := filepath.Join(t.TempDir(), "chart.png")
	if err := WritePNG(path, c, Options{}); err != nil {
		t.Fatalf("WritePNG: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading chart: %v", err)
	}
	if !bytes.HasPrefix(data, pngMagic) {
		t.Errorf("output is not a PNG")
	}
}

func TestWriteSVG(t *testing.T) {
	c := testComparison(t, simfmt.Cell{Threads: 8, Sims: 4}, simfmt.Cell{Threads: 8, Sims: 64})
	path := filepath.Join(t.TempDir(), "chart.svg")
	if err := WriteSVG(path, c, Options{Width: 20, Height: 10}); err != nil {
		t.Fatalf("WriteSVG: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading chart: %v", err)
	}
	if !bytes.Contains(data, []byte("<svg")) {
		t.Errorf("output is not an SVG")
	}
}
