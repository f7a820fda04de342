// Copyright 2025 The Simexplore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package simtest generates synthetic profiling datasets for tests and
// demos.
//
// The generated timings follow the shape of real concurrent runs: an
// Amdahl-style speedup curve over the thread axis and growing memory,
// I/O and cache contention over the concurrency axis. Generation is
// fully deterministic so tests can assert on exact values.
package simtest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/energyplus-tools/simexplore/simfmt"
)

// baseFunc is the single-thread, single-sim time of one profiled
// function together with its behavior under load.
type baseFunc struct {
	name  string
	time  float64
	calls int64
	class funcClass
}

type funcClass int

const (
	classDefault funcClass = iota
	classCPU               // scales with threads, cache sensitive
	classIO                // barely threads, suffers most under concurrency
	classMath              // tiny leaf calls, cache sensitive
)

var baseFuncs = []baseFunc{
	{"HeatBalanceManager", 45.8, 733, classCPU},
	{"SimulateHVAC", 45.2, 842, classCPU},
	{"CalcHeatBalFiniteDiff", 31.4, 733, classCPU},
	{"ManagePlantLoops", 28.9, 636, classDefault},
	{"CalcHeatBalConductionTransferFunction", 25.7, 678, classCPU},
	{"CalcZoneAirLoads", 22.1, 1172, classCPU},
	{"CalcWindowHeatBalance", 19.8, 917, classCPU},
	{"SimulateAirLoopComponents", 18.7, 952, classDefault},
	{"GetInput", 15.7, 1, classIO},
	{"ManageZoneEquipment", 15.6, 1200, classDefault},
	{"CalcSolarRadiation", 13.5, 1217, classCPU},
	{"SimulateChillers", 12.5, 426, classDefault},
	{"UpdateDataandReport", 12.4, 186, classIO},
	{"CalcInteriorSurfaceTemp", 11.2, 1049, classDefault},
	{"SimulateCoils", 8.9, 992, classDefault},
	{"WriteOutputToSQLite", 8.7, 177, classIO},
	{"CalcExteriorSurfaceTemp", 8.7, 1029, classDefault},
	{"SimulateInternalHeatGains", 7.3, 1088, classDefault},
	{"CalcBoilerModel", 6.8, 364, classDefault},
	{"CalcCoolingCoil", 5.2, 876, classDefault},
	{"CalcTariffEvaluation", 5.1, 119, classDefault},
	{"ReportSurfaceHeatBalance", 4.6, 179, classIO},
	{"CalcHeatingCoil", 4.1, 836, classDefault},
	{"ManageWeather", 1.8, 8728, classDefault},
	{"CalculateSunDirectionCosines", 0.8, 8114, classMath},
	{"TableLookup", 0.025, 68817, classMath},
	{"CurveValue", 0.012, 83630, classMath},
	{"PsyRhoAirFnPbTdbW", 0.02, 44680, classMath},
}

// factors holds the load model for one cell.
type factors struct {
	cpuSpeedup float64 // Amdahl speedup, >= 1
	memory     float64 // contention multipliers, >= 1
	io         float64
	cache      float64
}

func cellFactors(c simfmt.Cell) factors {
	var f factors
	n := float64(c.Sims)
	f.memory = 1 + (n-1)*0.15
	f.io = 1 + (n-1)*0.25
	f.cache = 1 + (n-1)*0.08

	// 70% of the simulation parallelizes; thread management costs
	// 3% per extra thread.
	t := float64(c.Threads)
	f.cpuSpeedup = 1 / (0.3 + 0.7/t)
	f.cpuSpeedup /= 1 + (t-1)*0.03
	if f.cpuSpeedup < 1 {
		f.cpuSpeedup = 1
	}
	return f
}

func funcTime(bf baseFunc, f factors) float64 {
	t := bf.time
	switch bf.class {
	case classCPU:
		t = t / f.cpuSpeedup * f.cache
	case classIO:
		t = t * f.io
	case classMath:
		t = t * f.cache * 1.1
	default:
		t = t / (1 + (f.cpuSpeedup-1)*0.5) * f.memory
	}
	if min := bf.time * 0.1; t < min {
		t = min
	}
	return t
}

// Dataset generates the synthetic dataset for cell c.
func Dataset(c simfmt.Cell) *simfmt.Dataset {
	f := cellFactors(c)
	funcs := make(map[string]simfmt.FunctionTiming, len(baseFuncs))
	var total float64
	for _, bf := range baseFuncs {
		t := funcTime(bf, f)
		total += t
		funcs[bf.name] = simfmt.FunctionTiming{
			TotalTime:      t,
			CallCount:      bf.calls,
			AvgTimePerCall: t / float64(bf.calls),
		}
	}
	for name, ft := range funcs {
		ft.PctOfTotal = ft.TotalTime / total * 100
		funcs[name] = ft
	}
	return &simfmt.Dataset{
		Cell: c,
		Metadata: simfmt.Metadata{
			BuildingType:        "Commercial Office",
			ClimateZone:         "4A",
			SimulationPeriod:    "Annual",
			Timestep:            "4 per hour",
			TotalSimulationTime: total,
			SystemConditions: simfmt.SystemConditions{
				ConcurrentSimulations: c.Sims,
				ThreadsPerSimulation:  c.Threads,
				TotalThreads:          c.Sims * c.Threads,
			},
		},
		Functions: funcs,
	}
}

// Matrix generates the full 6×7 synthetic matrix.
func Matrix() *simfmt.Matrix {
	m := simfmt.NewMatrix()
	for _, t := range simfmt.ThreadCounts {
		for _, s := range simfmt.SimCounts {
			c := simfmt.Cell{Threads: t, Sims: s}
			m.Set(c, Dataset(c))
		}
	}
	return m
}

// WriteProject writes a full synthetic project into dir: one dataset
// file per cell plus a project file referencing them all. It returns
// the project file path.
func WriteProject(dir string) (string, error) {
	datasets := make(map[string]map[string]string)
	for _, t := range simfmt.ThreadCounts {
		for _, s := range simfmt.SimCounts {
			c := simfmt.Cell{Threads: t, Sims: s}
			name := fmt.Sprintf("synthetic_%02dsims_%02dthreads.json", s, t)
			if err := writeDataset(filepath.Join(dir, name), Dataset(c)); err != nil {
				return "", err
			}
			simKey := fmt.Sprint(s)
			if datasets[simKey] == nil {
				datasets[simKey] = make(map[string]string)
			}
			datasets[simKey][fmt.Sprint(t)] = name
		}
	}
	proj := map[string]interface{}{
		"project_info": map[string]string{
			"name":        "Synthetic Concurrency Sweep",
			"description": "Deterministic generated data for tests and demos",
		},
		"datasets": datasets,
	}
	data, err := json.MarshalIndent(proj, "", "  ")
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, "project.json")
	return path, os.WriteFile(path, data, 0666)
}

func writeDataset(path string, ds *simfmt.Dataset) error {
	file := map[string]interface{}{
		"metadata":  ds.Metadata,
		"functions": ds.Functions,
	}
	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0666)
}
