// Copyright 2025 The Simexplore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package simstat

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/energyplus-tools/simexplore/simfmt"
)

func compare8x4(t *testing.T) *Comparison {
	t.Helper()
	m := testMatrix(t)
	return mustCompare(t, m,
		[]simfmt.Cell{{Threads: 8, Sims: 1}, {Threads: 8, Sims: 4}},
		SingleBaseline(simfmt.Cell{Threads: 8, Sims: 1}))
}

func TestFormatText(t *testing.T) {
	c := compare8x4(t)
	var buf bytes.Buffer
	if err := FormatText(&buf, c, TextOptions{}); err != nil {
		t.Fatalf("FormatText: %v", err)
	}
	out := buf.String()

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	// 2 header lines, 5 functions, overall, blank, 3 notes.
	if got, want := len(lines), 12; got != want {
		t.Fatalf("got %d lines, want %d:\n%s", got, want, out)
	}
	for _, want := range []string{
		"function",
		"single baseline, 8 threads",
		"1.50x", // HeatBalanceManager at 8x4
		"1.45x", // overall at 8x4
		"note: 8x1: ManageWeather: zero baseline time",
		"note: 8x4: CalcSolarRadiation: missing in baseline",
		"note: 8x4: ManageWeather: missing in target",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output lacks %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "NaN") {
		t.Errorf("output prints NaN:\n%s", out)
	}
	// Flagged ratios show as "?" in the table.
	for _, line := range lines {
		if strings.HasPrefix(line, "CalcSolarRadiation") && !strings.Contains(line, "?") {
			t.Errorf("CalcSolarRadiation row lacks ?: %q", line)
		}
	}
}

func TestFormatTextTruncates(t *testing.T) {
	c := compare8x4(t)
	var buf bytes.Buffer
	if err := FormatText(&buf, c, TextOptions{MaxWidth: 45}); err != nil {
		t.Fatalf("FormatText: %v", err)
	}
	if !strings.Contains(buf.String(), "…") {
		t.Errorf("narrow output not truncated:\n%s", buf.String())
	}
}

func TestWriteCSV(t *testing.T) {
	c := compare8x4(t)
	var buf bytes.Buffer
	if err := WriteCSV(&buf, c); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	recs, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("reading back: %v", err)
	}
	// Header, 5 functions, overall.
	if got, want := len(recs), 7; got != want {
		t.Fatalf("got %d records, want %d", got, want)
	}
	hdr := recs[0]
	if hdr[0] != "function" || hdr[1] != "8x1" || hdr[2] != "8x4" || hdr[3] != "min" {
		t.Errorf("header = %v", hdr)
	}
	for _, rec := range recs[1:] {
		if rec[0] == "HeatBalanceManager" {
			if rec[1] != "1" || rec[2] != "1.5" {
				t.Errorf("HeatBalanceManager = %v", rec)
			}
		}
		if rec[0] == "CalcSolarRadiation" {
			if rec[1] != "" || rec[2] != "" {
				t.Errorf("CalcSolarRadiation = %v, want empty ratios", rec)
			}
		}
	}
	if last := recs[len(recs)-1]; last[0] != "overall" {
		t.Errorf("last record = %v, want overall", last)
	}
}

func TestFormatHTML(t *testing.T) {
	c := compare8x4(t)
	var buf bytes.Buffer
	FormatHTML(&buf, c)
	out := buf.String()
	for _, want := range []string{
		"<table class='simstat'>",
		"class='worse'>1.50x",
		"class='unchanged'>1.00x",
		"class='invalid'>?",
		"CalcSolarRadiation: missing in baseline",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("HTML lacks %q:\n%s", want, out)
		}
	}
}
