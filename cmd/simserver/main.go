// Copyright 2025 The Simexplore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Simserver runs the simexplore web UI on a local HTTP server.
//
// Usage:
//
//	simserver -project file.json [-addr :8080] [-db file.db]
//
// The server shows the loaded run matrix, computes comparisons on
// demand, renders charts, and keeps a history of saved comparisons in
// a SQLite database (or MySQL with -driver mysql).
package main

import (
	"flag"
	"log"
	"net/http"

	_ "github.com/go-sql-driver/mysql"

	"github.com/energyplus-tools/simexplore/app"
	"github.com/energyplus-tools/simexplore/simfmt"
	"github.com/energyplus-tools/simexplore/simfmt/simtest"
	"github.com/energyplus-tools/simexplore/storage/db"
	_ "github.com/energyplus-tools/simexplore/storage/db/sqlite3"
)

var (
	addr        = flag.String("addr", "localhost:8080", "serve HTTP on `address`")
	flagProject = flag.String("project", "", "load datasets from project `file`")
	flagDemo    = flag.Bool("demo", false, "serve a synthetic benchmark matrix instead of a project file")
	flagDriver  = flag.String("driver", "sqlite3", "database `driver` for the comparison history: sqlite3 or mysql")
	flagDB      = flag.String("db", ":memory:", "comparison history database `dsn`; empty disables saving")
)

func main() {
	log.SetPrefix("simserver: ")
	log.SetFlags(0)
	flag.Parse()
	if *flagProject == "" && !*flagDemo {
		log.Fatal("-project or -demo is required")
	}

	a := &app.App{}
	if *flagDemo {
		a.Matrix = simtest.Matrix()
		a.Info = simfmt.ProjectInfo{Name: "synthetic demo matrix"}
		a.ProjectPath = "demo"
	} else {
		p, err := simfmt.ReadProjectFile(*flagProject)
		if err != nil {
			log.Fatal(err)
		}
		m, loadErrs := p.Load()
		for _, e := range loadErrs {
			log.Printf("warning: %v", e)
		}
		if m.Len() == 0 {
			log.Fatalf("%s: no datasets loaded", *flagProject)
		}
		a.Matrix = m
		a.Info = p.Info
		a.ProjectPath = *flagProject
		a.LoadErrors = loadErrs
	}

	if *flagDB != "" {
		d, err := db.OpenSQL(*flagDriver, *flagDB)
		if err != nil {
			log.Fatalf("open database: %v", err)
		}
		a.DB = d
	}

	a.RegisterOnMux(http.DefaultServeMux)

	log.Printf("Listening on %s", *addr)
	log.Fatal(http.ListenAndServe(*addr, nil))
}
