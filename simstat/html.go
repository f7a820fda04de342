// Copyright 2025 The Simexplore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package simstat

import (
	"bytes"
	"html/template"
	"math"

	"github.com/energyplus-tools/simexplore/simfmt"
)

var htmlTemplate = template.Must(template.New("").Funcs(htmlFuncs).Parse(`
<table class='simstat'>
<tr class='header'><th>function{{range .Cells}}<th>{{.}}{{end}}{{if .Summarize}}<th>min<th>mean<th>max{{end}}
<tbody>
{{- $c := . -}}
{{range $fn := .Funcs}}
<tr><td>{{$fn}}{{range $cell := $c.Cells}}{{with $c.Lookup $cell $fn}}<td class='{{class .Value}}'>{{format .Value}}{{else}}<td class='empty'>{{end}}{{end}}
{{- if $c.Summarize}}{{with index $c.Summary $fn}}<td>{{format .Min}}<td>{{format .Mean}}<td>{{format .Max}}{{else}}<td><td><td>{{end}}{{end}}
{{end}}
<tr class='overall'><td>overall{{range .Cells}}{{$v := index $c.Overall .}}<td class='{{class $v}}'>{{format $v}}{{end}}{{if .Summarize}}<td><td><td>{{end}}
</tbody>
</table>
{{if .Invalid}}
<ul class='notes'>
{{range .Invalid}}<li>{{.Cell}}: {{.Func}}: {{.Invalid}}
{{end}}</ul>
{{end}}
`))

var htmlFuncs = template.FuncMap{
	"format": FormatRatio,
	"class": func(v float64) string {
		switch Change(v) {
		case 1:
			return "worse"
		case -1:
			return "better"
		}
		if math.IsNaN(v) {
			return "invalid"
		}
		return "unchanged"
	},
}

type htmlComparison struct {
	*Comparison
	Summarize bool
}

// Lookup returns the ratio for (cell, fn), or nil if the function is
// not in the ratio table for that cell.
func (c *htmlComparison) Lookup(cell simfmt.Cell, fn string) *Ratio {
	if r, ok := c.Ratios[RatioKey{cell, fn}]; ok {
		return &r
	}
	return nil
}

// FormatHTML appends an HTML rendering of the ratio table of c to buf.
// Cells carry better/worse/unchanged/invalid classes so a surrounding
// page can color them.
func FormatHTML(buf *bytes.Buffer, c *Comparison) {
	err := htmlTemplate.Execute(buf, &htmlComparison{c, len(c.Cells) > 1})
	if err != nil {
		// Only possible errors here are template not matching data
		// structure. Don't make caller check - it's our fault.
		panic(err)
	}
}
