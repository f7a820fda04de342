// Copyright 2025 The Simexplore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package simfmt

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
)

// A Project indexes the dataset files of one profiling run matrix.
//
// The on-disk form is
//
//	{
//	  "project_info": {"name": ..., "description": ...},
//	  "datasets": {"<sims>": {"<threads>": "path", ...}, ...}
//	}
//
// Dataset paths are resolved relative to the project file.
type Project struct {
	Info ProjectInfo

	// Files maps each cell named by the project to its dataset
	// file path.
	Files map[Cell]string

	// badKeys records datasets listed under axis keys that are not
	// on the run matrix. They are reported by Load.
	badKeys []*LoadError
}

// ProjectInfo is the descriptive header of a project file.
type ProjectInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Created     string `json:"created"`
}

// A LoadError describes a dataset that could not be loaded. The rest
// of the matrix is unaffected by it.
type LoadError struct {
	Path string
	Cell Cell
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("cell %s (%s): %v", e.Cell, e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

type projectFile struct {
	Info     ProjectInfo                  `json:"project_info"`
	Datasets map[string]map[string]string `json:"datasets"`
}

// ParseProject parses a project from JSON data. Dataset paths are
// resolved relative to baseDir.
func ParseProject(data []byte, baseDir string) (*Project, error) {
	var pf projectFile
	if err := json.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("invalid project JSON: %v", err)
	}
	if len(pf.Datasets) == 0 {
		return nil, fmt.Errorf("project lists no datasets")
	}
	p := &Project{Info: pf.Info, Files: make(map[Cell]string)}
	for simKey, row := range pf.Datasets {
		sims, err := strconv.Atoi(simKey)
		if err != nil {
			p.badKeys = append(p.badKeys, &LoadError{Err: fmt.Errorf("bad sim count key %q", simKey)})
			continue
		}
		for threadKey, path := range row {
			threads, err := strconv.Atoi(threadKey)
			if err != nil {
				p.badKeys = append(p.badKeys, &LoadError{Err: fmt.Errorf("bad thread count key %q", threadKey)})
				continue
			}
			c := Cell{Threads: threads, Sims: sims}
			if !filepath.IsAbs(path) {
				path = filepath.Join(baseDir, path)
			}
			if !c.Valid() {
				p.badKeys = append(p.badKeys, &LoadError{Path: path, Cell: c, Err: fmt.Errorf("cell is not on the run matrix")})
				continue
			}
			p.Files[c] = path
		}
	}
	return p, nil
}

// ReadProjectFile reads and parses the project file at path. An
// unreadable or malformed project file is the only fatal load error;
// problems with individual datasets are reported by Load.
func ReadProjectFile(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	p, err := ParseProject(data, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %v", path, err)
	}
	return p, nil
}

// Load reads every dataset the project names and returns the resulting
// matrix. Datasets that are missing or malformed are skipped and
// reported in the returned errors; the matrix holds everything that
// did load.
func (p *Project) Load() (*Matrix, []*LoadError) {
	m := NewMatrix()
	errs := append([]*LoadError(nil), p.badKeys...)

	cells := make([]Cell, 0, len(p.Files))
	for c := range p.Files {
		cells = append(cells, c)
	}
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Threads != cells[j].Threads {
			return cells[i].Threads < cells[j].Threads
		}
		return cells[i].Sims < cells[j].Sims
	})

	for _, c := range cells {
		path := p.Files[c]
		ds, err := ReadDatasetFile(path)
		if err != nil {
			errs = append(errs, &LoadError{Path: path, Cell: c, Err: err})
			continue
		}
		ds.Cell = c
		m.Set(c, ds)
	}
	return m, errs
}
