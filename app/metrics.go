// Copyright 2025 The Simexplore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package app

import "github.com/prometheus/client_golang/prometheus"

// Prometheus metrics, global only (no unbounded label cardinality).
var (
	comparisonsComputed = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "simexplore_comparisons_total",
		Help: "Total ratio comparisons computed",
	})
	chartsRendered = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "simexplore_charts_rendered_total",
		Help: "Total charts rendered, by output format",
	}, []string{"format"})
	comparisonsSaved = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "simexplore_comparisons_saved_total",
		Help: "Total comparisons saved to the history database",
	})
)

func init() {
	prometheus.MustRegister(comparisonsComputed, chartsRendered, comparisonsSaved)
}
