// Copyright 2025 The Simexplore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sqlite3 provides the sqlite3 driver for
// simexplore/storage/db. It must be imported instead of
// github.com/mattn/go-sqlite3 to ensure foreign keys are enforced.
package sqlite3

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"

	"github.com/energyplus-tools/simexplore/storage/db"
)

func init() {
	db.RegisterOpenHook("sqlite3", func(d *sql.DB) error {
		// A single connection keeps the pragma in effect for
		// every query and makes :memory: databases usable.
		d.SetMaxOpenConns(1)
		_, err := d.Exec("PRAGMA foreign_keys = ON;")
		return err
	})
}
