// Copyright 2025 The Simexplore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package app implements the local exploration web UI. Combine an App
// with a loaded matrix and call RegisterOnMux to connect it with an
// HTTP server.
package app

import (
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/energyplus-tools/simexplore/simfmt"
	"github.com/energyplus-tools/simexplore/simplot"
	"github.com/energyplus-tools/simexplore/simstat"
	"github.com/energyplus-tools/simexplore/storage/db"
)

// App manages the explorer UI logic. Construct an App instance using
// a literal and call RegisterOnMux to connect it with an HTTP server.
type App struct {
	// Matrix is the loaded run matrix being explored.
	Matrix *simfmt.Matrix

	// Info describes the loaded project.
	Info simfmt.ProjectInfo

	// ProjectPath is recorded with saved comparisons. Purely
	// diagnostic.
	ProjectPath string

	// LoadErrors are the per-cell errors from loading the project.
	LoadErrors []*simfmt.LoadError

	// DB is the comparison history. If nil, saving is disabled and
	// the history pages report that.
	DB *db.DB
}

// RegisterOnMux registers the app's URLs on mux.
func (a *App) RegisterOnMux(mux *http.ServeMux) {
	mux.HandleFunc("/", a.index)
	mux.HandleFunc("/compare", a.compare)
	mux.HandleFunc("/scaling", a.scaling)
	mux.HandleFunc("/chart.png", a.chartPNG)
	mux.HandleFunc("/chart.svg", a.chartSVG)
	mux.HandleFunc("/save", a.save)
	mux.HandleFunc("/saved", a.saved)
	mux.HandleFunc("/saved/view", a.savedView)
	mux.HandleFunc("/saved/delete", a.savedDelete)
	mux.Handle("/metrics", promhttp.Handler())
}

// comparisonFromRequest computes the comparison described by the
// request's sel, base and sort parameters. Empty parameters default
// to every loaded cell against the first one.
func (a *App) comparisonFromRequest(r *http.Request) (*simstat.Comparison, error) {
	sel := r.FormValue("sel")
	if sel == "" {
		sel = "all"
	}
	baseStr := r.FormValue("base")
	if baseStr == "" {
		cells := a.Matrix.Cells()
		if len(cells) == 0 {
			return nil, fmt.Errorf("no datasets loaded")
		}
		baseStr = "single:" + cells[0].String()
	}
	base, err := simstat.ParseBaseline(baseStr)
	if err != nil {
		return nil, err
	}
	cells, err := simstat.ParseSelection(a.Matrix, sel)
	if err != nil {
		return nil, err
	}
	c, err := simstat.Compare(a.Matrix, cells, base)
	if err != nil {
		return nil, err
	}
	comparisonsComputed.Inc()
	switch r.FormValue("sort") {
	case "", "name":
	case "ratio":
		simstat.Sort(c, simstat.ByRatio)
	case "time":
		simstat.Sort(c, simstat.ByTime)
	default:
		return nil, fmt.Errorf("unknown sort %q", r.FormValue("sort"))
	}
	return c, nil
}

func (a *App) chartPNG(w http.ResponseWriter, r *http.Request) {
	c, err := a.comparisonFromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	if err := simplot.PNG(w, c, simplot.Options{}); err != nil {
		log.Printf("rendering chart: %v", err)
		return
	}
	chartsRendered.WithLabelValues("png").Inc()
}

func (a *App) chartSVG(w http.ResponseWriter, r *http.Request) {
	c, err := a.comparisonFromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	if err := simplot.SVG(w, c, simplot.Options{}); err != nil {
		log.Printf("rendering chart: %v", err)
		return
	}
	chartsRendered.WithLabelValues("svg").Inc()
}

func (a *App) save(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST required", http.StatusMethodNotAllowed)
		return
	}
	if a.DB == nil {
		http.Error(w, "no history database configured", http.StatusServiceUnavailable)
		return
	}
	c, err := a.comparisonFromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	name := r.FormValue("name")
	if name == "" {
		name = "comparison " + c.Baseline.String()
	}
	if _, err := a.DB.SaveComparison(r.Context(), name, a.ProjectPath, c); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	comparisonsSaved.Inc()
	http.Redirect(w, r, "/saved", http.StatusSeeOther)
}

func (a *App) savedDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST required", http.StatusMethodNotAllowed)
		return
	}
	if a.DB == nil {
		http.Error(w, "no history database configured", http.StatusServiceUnavailable)
		return
	}
	id, err := strconv.ParseInt(r.FormValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "bad id", http.StatusBadRequest)
		return
	}
	if err := a.DB.DeleteComparison(r.Context(), id); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	http.Redirect(w, r, "/saved", http.StatusSeeOther)
}
