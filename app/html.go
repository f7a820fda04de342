// Copyright 2025 The Simexplore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package app

import (
	"log"
	"math"
	"net/http"
	"strconv"

	"github.com/google/safehtml/template"

	"github.com/energyplus-tools/simexplore/simfmt"
	"github.com/energyplus-tools/simexplore/simstat"
	"github.com/energyplus-tools/simexplore/storage/db"
)

var tmplFuncs = template.FuncMap{
	"format": simstat.FormatRatio,
	"class": func(v float64) string {
		switch simstat.Change(v) {
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

const pageStyle = `
body { font-family: sans-serif; margin: 2em; }
table { border-collapse: collapse; }
td, th { padding: 0.2em 0.6em; text-align: right; }
td:first-child, th:first-child { text-align: left; }
.better { color: #006600; }
.worse { color: #bb0000; }
.unchanged, .invalid { color: #666666; }
.missing { background: #eeeeee; }
.overall td { border-top: 1px solid #999999; font-weight: bold; }
`

var indexTemplate = template.Must(template.New("index").Funcs(tmplFuncs).ParseFromTrustedTemplate(template.MakeTrustedTemplate(`
<!DOCTYPE html>
<html><head><title>simexplore: {{.Info.Name}}</title><style>` + pageStyle + `</style></head>
<body>
<h1>{{.Info.Name}}</h1>
{{with .Info.Description}}<p>{{.}}</p>{{end}}
<p>{{.Loaded}} of {{.Total}} run configurations loaded.</p>
<table>
<tr><th>threads \ sims{{range .SimCounts}}<th>{{.}}{{end}}
{{range .Rows}}
<tr><th>{{.Threads}}{{range .Cells}}{{if .Loaded}}<td><a href="/compare?sel={{.Cell}}">{{.Cell}}</a><br>{{printf "%.1fs" .Elapsed}}{{else}}<td class='missing'>&mdash;{{end}}{{end}}
{{end}}
</table>
{{if .LoadErrors}}
<h2>Load errors</h2>
<ul>
{{range .LoadErrors}}<li>{{.}}
{{end}}</ul>
{{end}}
<h2>Compare</h2>
<form action="/compare" method="GET">
<label>cells <input name="sel" value="all"></label>
<label>baseline <input name="base" value="{{.DefaultBase}}"></label>
<label>sort <select name="sort"><option>name</option><option>ratio</option><option>time</option></select></label>
<input type="submit" value="compare">
</form>
{{if .HasDB}}<p><a href="/saved">saved comparisons</a></p>{{end}}
</body></html>
`)))

type gridCell struct {
	Cell    simfmt.Cell
	Loaded  bool
	Elapsed float64 // total run time, seconds
}

type gridRow struct {
	Threads int
	Cells   []gridCell
}

type indexData struct {
	Info        simfmt.ProjectInfo
	SimCounts   []int
	Rows        []gridRow
	Loaded      int
	Total       int
	LoadErrors  []*simfmt.LoadError
	DefaultBase string
	HasDB       bool
}

func (a *App) index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	data := &indexData{
		Info:       a.Info,
		SimCounts:  simfmt.SimCounts,
		Loaded:     a.Matrix.Len(),
		Total:      len(simfmt.ThreadCounts) * len(simfmt.SimCounts),
		LoadErrors: a.LoadErrors,
		HasDB:      a.DB != nil,
	}
	if cells := a.Matrix.Cells(); len(cells) > 0 {
		data.DefaultBase = "single:" + cells[0].String()
	}
	for _, threads := range simfmt.ThreadCounts {
		row := gridRow{Threads: threads}
		for _, sims := range simfmt.SimCounts {
			c := simfmt.Cell{Threads: threads, Sims: sims}
			gc := gridCell{Cell: c}
			if ds := a.Matrix.Dataset(c); ds != nil {
				gc.Loaded = true
				gc.Elapsed = ds.ElapsedTime()
			}
			row.Cells = append(row.Cells, gc)
		}
		data.Rows = append(data.Rows, row)
	}
	executeTemplate(w, indexTemplate, data)
}

var compareTemplate = template.Must(template.New("compare").Funcs(tmplFuncs).ParseFromTrustedTemplate(template.MakeTrustedTemplate(`
<!DOCTYPE html>
<html><head><title>simexplore: compare</title><style>` + pageStyle + `</style></head>
<body>
<p><a href="/">&larr; matrix</a></p>
<h1>vs {{.C.Baseline.Describe}}</h1>
{{$v := .}}
<table>
<tr><th>function{{range .C.Cells}}<th>{{.}}{{end}}{{if .Summarize}}<th>min<th>mean<th>max{{end}}
{{range $fn := .C.Funcs}}
<tr><td>{{$fn}}{{range $cell := $v.C.Cells}}{{with $v.Lookup $cell $fn}}<td class='{{class .Value}}'>{{format .Value}}{{else}}<td class='missing'>{{end}}{{end}}
{{- if $v.Summarize}}{{with index $v.C.Summary $fn}}<td>{{format .Min}}<td>{{format .Mean}}<td>{{format .Max}}{{else}}<td><td><td>{{end}}{{end}}
{{end}}
<tr class='overall'><td>overall{{range .C.Cells}}{{$ov := index $v.C.Overall .}}<td class='{{class $ov}}'>{{format $ov}}{{end}}{{if .Summarize}}<td><td><td>{{end}}
</table>
{{if .C.Invalid}}
<h2>Flagged</h2>
<ul>
{{range .C.Invalid}}<li>{{.Cell}}: {{.Func}}: {{.Invalid}}
{{end}}</ul>
{{end}}
<p><img src="/chart.png?sel={{.Sel}}&base={{.Base}}&sort={{.Sort}}" alt="ratio chart" width="900"></p>
<p><a href="/chart.svg?sel={{.Sel}}&base={{.Base}}&sort={{.Sort}}">SVG</a>
 | <a href="/scaling?sel={{.Sel}}&base={{.Base}}">scaling summary</a></p>
{{if .HasDB}}
<form action="/save" method="POST">
<input type="hidden" name="sel" value="{{.Sel}}">
<input type="hidden" name="base" value="{{.Base}}">
<input type="hidden" name="sort" value="{{.Sort}}">
<label>name <input name="name"></label>
<input type="submit" value="save">
</form>
{{end}}
</body></html>
`)))

type compareData struct {
	C         *simstat.Comparison
	Sel       string
	Base      string
	Sort      string
	Summarize bool
	HasDB     bool
}

// Lookup returns the ratio for (cell, fn), or nil if the function is
// not in the ratio table for that cell.
func (d *compareData) Lookup(cell simfmt.Cell, fn string) *simstat.Ratio {
	if r, ok := d.C.Ratio(cell, fn); ok {
		return &r
	}
	return nil
}

func (a *App) compare(w http.ResponseWriter, r *http.Request) {
	c, err := a.comparisonFromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	data := &compareData{
		C:         c,
		Sel:       r.FormValue("sel"),
		Base:      c.Baseline.String(),
		Sort:      r.FormValue("sort"),
		Summarize: len(c.Cells) > 1,
		HasDB:     a.DB != nil,
	}
	if data.Sel == "" {
		data.Sel = "all"
	}
	executeTemplate(w, compareTemplate, data)
}

var scalingTemplate = template.Must(template.New("scaling").Funcs(tmplFuncs).ParseFromTrustedTemplate(template.MakeTrustedTemplate(`
<!DOCTYPE html>
<html><head><title>simexplore: scaling</title><style>` + pageStyle + `</style></head>
<body>
<p><a href="/">&larr; matrix</a></p>
<h1>Scaling by {{.Axis}} vs {{.C.Baseline.Describe}}</h1>
<table>
<tr><th>{{.Axis}}<th>min<th>mean<th>max
{{range .Points}}
<tr><td>{{.Level}}<td class='{{class .Min}}'>{{format .Min}}<td class='{{class .Mean}}'>{{format .Mean}}<td class='{{class .Max}}'>{{format .Max}}
{{end}}
</table>
</body></html>
`)))

type scalingData struct {
	C      *simstat.Comparison
	Axis   simstat.ScalingAxis
	Points []simstat.ScalingPoint
}

func (a *App) scaling(w http.ResponseWriter, r *http.Request) {
	c, err := a.comparisonFromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	axis := simstat.BySims
	if r.FormValue("axis") == "threads" {
		axis = simstat.ByThreads
	}
	executeTemplate(w, scalingTemplate, &scalingData{c, axis, simstat.Scaling(c, axis)})
}

var savedTemplate = template.Must(template.New("saved").Funcs(tmplFuncs).ParseFromTrustedTemplate(template.MakeTrustedTemplate(`
<!DOCTYPE html>
<html><head><title>simexplore: saved comparisons</title><style>` + pageStyle + `</style></head>
<body>
<p><a href="/">&larr; matrix</a></p>
<h1>Saved comparisons</h1>
{{if not .List}}<p>None saved yet.</p>{{end}}
<table>
{{range .List}}
<tr><td><a href="/saved/view?id={{.ID}}">{{.Name}}</a><td>{{.Selection}}<td>{{.Baseline}}<td>{{.Created.Format "2006-01-02 15:04"}}
<td><a href="/compare?sel={{.Selection}}&base={{.Baseline}}">re-run</a>
<td><form action="/saved/delete" method="POST"><input type="hidden" name="id" value="{{.ID}}"><input type="submit" value="delete"></form>
{{end}}
</table>
</body></html>
`)))

func (a *App) saved(w http.ResponseWriter, r *http.Request) {
	if a.DB == nil {
		http.Error(w, "no history database configured", http.StatusServiceUnavailable)
		return
	}
	list, err := a.DB.ListComparisons(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	executeTemplate(w, savedTemplate, struct{ List []db.SavedComparison }{list})
}

var savedViewTemplate = template.Must(template.New("savedView").Funcs(tmplFuncs).ParseFromTrustedTemplate(template.MakeTrustedTemplate(`
<!DOCTYPE html>
<html><head><title>simexplore: {{.C.Name}}</title><style>` + pageStyle + `</style></head>
<body>
<p><a href="/saved">&larr; saved comparisons</a></p>
<h1>{{.C.Name}}</h1>
<p>project {{.C.Project}}, baseline {{.C.Baseline}}, saved {{.C.Created.Format "2006-01-02 15:04"}}</p>
<table>
<tr><th>cell<th>function<th>ratio<th>
{{range .C.Ratios}}
<tr><td>{{.Cell}}<td>{{.Func}}<td class='{{class .Ratio}}'>{{format .Ratio}}<td>{{.Reason}}
{{end}}
</table>
</body></html>
`)))

func (a *App) savedView(w http.ResponseWriter, r *http.Request) {
	if a.DB == nil {
		http.Error(w, "no history database configured", http.StatusServiceUnavailable)
		return
	}
	id, err := strconv.ParseInt(r.FormValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "bad id", http.StatusBadRequest)
		return
	}
	c, err := a.DB.GetComparison(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	executeTemplate(w, savedViewTemplate, struct{ C *db.SavedComparison }{c})
}

func executeTemplate(w http.ResponseWriter, t *template.Template, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := t.Execute(w, data); err != nil {
		log.Printf("executing template %s: %v", t.Name(), err)
	}
}
