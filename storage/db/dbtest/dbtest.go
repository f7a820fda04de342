// Copyright 2025 The Simexplore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dbtest provides a database for testing.
package dbtest

import (
	"flag"
	"testing"

	"github.com/energyplus-tools/simexplore/storage/db"
	_ "github.com/energyplus-tools/simexplore/storage/db/sqlite3"
	_ "github.com/go-sql-driver/mysql"
)

var mysqlDSN = flag.String("mysql", "", "run database tests against this MySQL DSN instead of in-memory SQLite")

// NewDB makes a connection to a testing database, in-memory SQLite by
// default or MySQL with the -mysql flag. cleanup must be called when
// done with the testing database, instead of calling db.Close()
func NewDB(t *testing.T) (*db.DB, func()) {
	driverName, dataSourceName := "sqlite3", ":memory:"
	if *mysqlDSN != "" {
		driverName, dataSourceName = "mysql", *mysqlDSN
	}
	d, err := db.OpenSQL(driverName, dataSourceName)
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	cleanup := func() { d.Close() }
	// Make sure the database really is empty.
	n, err := d.CountComparisons()
	if err != nil {
		cleanup()
		t.Fatal(err)
	}
	if n != 0 {
		cleanup()
		t.Fatalf("found %d row(s) in Comparisons, want 0", n)
	}
	return d, cleanup
}
