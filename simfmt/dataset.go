// Copyright 2025 The Simexplore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package simfmt

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// A Dataset is the profiling result of one run configuration: the
// per-function elapsed times of a simulation run with a fixed thread
// count and concurrency level.
type Dataset struct {
	// Cell is the matrix position this dataset was loaded at.
	Cell Cell

	// Path is the file the dataset was read from, or "" if it was
	// constructed in memory. It is purely diagnostic.
	Path string

	// Metadata describes the simulated building and the system
	// conditions of the run.
	Metadata Metadata

	// Functions maps profiled function names to their timings.
	Functions map[string]FunctionTiming
}

// A FunctionTiming holds the profiler measurements for one function.
type FunctionTiming struct {
	TotalTime      float64 `json:"total_time"`
	CallCount      int64   `json:"call_count"`
	AvgTimePerCall float64 `json:"avg_time_per_call"`
	MinTime        float64 `json:"min_time"`
	MaxTime        float64 `json:"max_time"`
	StdDeviation   float64 `json:"std_deviation"`
	PctOfTotal     float64 `json:"percentage_of_total"`
}

// Metadata describes a dataset's run.
type Metadata struct {
	BuildingType        string           `json:"building_type"`
	ClimateZone         string           `json:"climate_zone"`
	SimulationPeriod    string           `json:"simulation_period"`
	Timestep            string           `json:"timestep"`
	TotalSimulationTime float64          `json:"total_simulation_time"`
	SystemConditions    SystemConditions `json:"system_conditions"`
}

// SystemConditions records the machine-level conditions the profiler
// observed during a run.
type SystemConditions struct {
	ConcurrentSimulations int     `json:"concurrent_simulations"`
	ThreadsPerSimulation  int     `json:"threads_per_simulation"`
	TotalThreads          int     `json:"total_threads"`
	EstimatedMemoryGB     float64 `json:"estimated_memory_usage_gb"`
	CPUUtilizationPct     float64 `json:"cpu_utilization_percent"`
	SchedulerScenario     string  `json:"scheduler_scenario"`
	ResourceContention    string  `json:"resource_contention_level"`
}

// datasetFile is the on-disk shape of a dataset. The summary block is
// redundant with the function table, so it is not retained.
type datasetFile struct {
	Metadata  Metadata                  `json:"metadata"`
	Timestamp string                    `json:"timestamp"`
	Functions map[string]FunctionTiming `json:"functions"`
}

// ParseDataset parses a dataset from JSON data. path is used in error
// messages; it is purely diagnostic.
func ParseDataset(data []byte, path string) (*Dataset, error) {
	var df datasetFile
	if err := json.Unmarshal(data, &df); err != nil {
		return nil, fmt.Errorf("%s: invalid JSON: %v", path, err)
	}
	if len(df.Functions) == 0 {
		return nil, fmt.Errorf("%s: no function data", path)
	}
	return &Dataset{Path: path, Metadata: df.Metadata, Functions: df.Functions}, nil
}

// ReadDatasetFile reads and parses the dataset file at path.
func ReadDatasetFile(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseDataset(data, path)
}

// FuncNames returns the dataset's function names in sorted order.
func (d *Dataset) FuncNames() []string {
	names := make([]string, 0, len(d.Functions))
	for name := range d.Functions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// TotalTime returns the total elapsed time of the named function in
// seconds, and whether the function is present in this dataset.
func (d *Dataset) TotalTime(name string) (float64, bool) {
	ft, ok := d.Functions[name]
	return ft.TotalTime, ok
}

// ElapsedTime returns the run's total simulation time in seconds.
// If the metadata does not record one, it is the sum of the function
// times.
func (d *Dataset) ElapsedTime() float64 {
	if t := d.Metadata.TotalSimulationTime; t > 0 {
		return t
	}
	var sum float64
	for _, ft := range d.Functions {
		sum += ft.TotalTime
	}
	return sum
}
