// Copyright 2025 The Simexplore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package db stores comparison results so earlier explorations can be
// reloaded and reviewed.
package db

import (
	"bytes"
	"database/sql"
	"fmt"
	"math"
	"strings"
	"text/template"
	"time"

	"golang.org/x/net/context"

	"github.com/energyplus-tools/simexplore/simfmt"
	"github.com/energyplus-tools/simexplore/simstat"
)

// DB is a high-level interface to the comparison history database.
// It's safe for concurrent use by multiple goroutines.
type DB struct {
	sql *sql.DB // underlying database connection
	// prepared statements
	insertComparison *sql.Stmt
	deleteComparison *sql.Stmt
}

// OpenSQL creates a DB backed by a SQL database. The parameters are
// the same as the parameters for sql.Open. Only mysql and sqlite3 are
// explicitly supported; other database engines will receive MySQL
// query syntax which may or may not be compatible.
func OpenSQL(driverName, dataSourceName string) (*DB, error) {
	db, err := sql.Open(driverName, dataSourceName)
	if err != nil {
		return nil, err
	}
	if hook := openHooks[driverName]; hook != nil {
		if err := hook(db); err != nil {
			return nil, err
		}
	}
	d := &DB{sql: db}
	if err := d.createTables(driverName); err != nil {
		return nil, err
	}
	if err := d.prepareStatements(driverName); err != nil {
		return nil, err
	}
	return d, nil
}

var openHooks = make(map[string]func(*sql.DB) error)

// RegisterOpenHook registers a hook to be called after opening a connection to driverName.
// This is used by the sqlite3 package to set connection pragmas.
// It must be called from an init function.
func RegisterOpenHook(driverName string, hook func(*sql.DB) error) {
	openHooks[driverName] = hook
}

// createTmpl is the template used to prepare the CREATE statements
// for the database. It is evaluated with . as a map containing one
// entry whose key is the driver name.
var createTmpl = template.Must(template.New("create").Parse(`
CREATE TABLE IF NOT EXISTS Comparisons (
	ComparisonID {{if .sqlite3}}INTEGER PRIMARY KEY AUTOINCREMENT{{else}}SERIAL PRIMARY KEY AUTO_INCREMENT{{end}},
	Name VARCHAR(255),
	Project VARCHAR(255),
	Baseline VARCHAR(64),
	Selection VARCHAR(1024),
	Created BIGINT
);
CREATE TABLE IF NOT EXISTS ComparisonRatios (
	ComparisonID BIGINT UNSIGNED,
	Cell VARCHAR(16),
	Func VARCHAR(255),
	Ratio DOUBLE,
	Reason VARCHAR(64),
	PRIMARY KEY (ComparisonID, Cell, Func),
	FOREIGN KEY (ComparisonID) REFERENCES Comparisons(ComparisonID) ON UPDATE CASCADE ON DELETE CASCADE
);
`))

// createTables creates any missing tables on the connection in
// db.sql. driverName is the same driver name passed to sql.Open and
// is used to select the correct syntax.
func (db *DB) createTables(driverName string) error {
	var buf bytes.Buffer
	if err := createTmpl.Execute(&buf, map[string]bool{driverName: true}); err != nil {
		return err
	}
	for _, q := range strings.Split(buf.String(), ";") {
		if strings.TrimSpace(q) == "" {
			continue
		}
		if _, err := db.sql.Exec(q); err != nil {
			return fmt.Errorf("create table: %v", err)
		}
	}
	return nil
}

// prepareStatements calls db.sql.Prepare on reusable SQL statements.
func (db *DB) prepareStatements(driverName string) error {
	var err error
	db.insertComparison, err = db.sql.Prepare("INSERT INTO Comparisons(Name, Project, Baseline, Selection, Created) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	db.deleteComparison, err = db.sql.Prepare("DELETE FROM Comparisons WHERE ComparisonID = ?")
	if err != nil {
		return err
	}
	return nil
}

// A SavedComparison is one comparison stored in the history, with the
// ratios it recorded. List leaves Ratios empty; Get fills it.
type SavedComparison struct {
	ID        int64
	Name      string
	Project   string
	Baseline  string // canonical form, see simstat.ParseBaseline
	Selection string // the cells compared, in canonical cell form
	Created   time.Time
	Ratios    []SavedRatio
}

// A SavedRatio is one stored (cell, function) ratio. Reason is empty
// for a computed ratio and names the flag otherwise.
type SavedRatio struct {
	Cell   simfmt.Cell
	Func   string
	Ratio  float64 // NaN if flagged
	Reason string
}

// SaveComparison stores c in the history under the given name and
// returns its ID. project records which project file c came from.
// Both computed and flagged ratios are stored, so a reload shows the
// same table the user saved.
func (db *DB) SaveComparison(ctx context.Context, name, project string, c *simstat.Comparison) (id int64, err error) {
	tx, err := db.sql.Begin()
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()
	var cells []string
	for _, cell := range c.Cells {
		cells = append(cells, cell.String())
	}
	res, err := tx.Stmt(db.insertComparison).ExecContext(ctx, name, project, c.Baseline.String(), strings.Join(cells, ","), time.Now().Unix())
	if err != nil {
		return 0, err
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, err
	}

	var args []interface{}
	add := func(r simstat.Ratio) {
		var ratio sql.NullFloat64
		var reason string
		if r.Invalid == simstat.Valid {
			ratio = sql.NullFloat64{Float64: r.Value, Valid: true}
		} else {
			reason = r.Invalid.String()
		}
		args = append(args, id, r.Cell.String(), r.Func, ratio, reason)
	}
	for _, cell := range c.Cells {
		for _, fn := range c.Funcs {
			if r, ok := c.Ratio(cell, fn); ok {
				add(r)
			}
		}
	}
	// Flagged ratios that never made the table, such as functions
	// missing from a target dataset.
	for _, r := range c.Invalid {
		if _, ok := c.Ratio(r.Cell, r.Func); !ok {
			add(r)
		}
	}
	if len(args) > 0 {
		query := "INSERT INTO ComparisonRatios VALUES " + strings.Repeat("(?, ?, ?, ?, ?), ", len(args)/5)
		query = strings.TrimSuffix(query, ", ")
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return 0, err
		}
	}
	return id, nil
}

// ListComparisons returns the saved comparisons, newest first,
// without their ratios.
func (db *DB) ListComparisons(ctx context.Context) ([]SavedComparison, error) {
	rows, err := db.sql.QueryContext(ctx, "SELECT ComparisonID, Name, Project, Baseline, Selection, Created FROM Comparisons ORDER BY Created DESC, ComparisonID DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []SavedComparison
	for rows.Next() {
		var c SavedComparison
		var created int64
		if err := rows.Scan(&c.ID, &c.Name, &c.Project, &c.Baseline, &c.Selection, &created); err != nil {
			return nil, err
		}
		c.Created = time.Unix(created, 0)
		out = append(out, c)
	}
	return out, rows.Err()
}

// GetComparison returns the saved comparison with the given ID,
// including its ratios in (cell, function) order.
func (db *DB) GetComparison(ctx context.Context, id int64) (*SavedComparison, error) {
	var c SavedComparison
	var created int64
	err := db.sql.QueryRowContext(ctx, "SELECT ComparisonID, Name, Project, Baseline, Selection, Created FROM Comparisons WHERE ComparisonID = ?", id).
		Scan(&c.ID, &c.Name, &c.Project, &c.Baseline, &c.Selection, &created)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("comparison %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	c.Created = time.Unix(created, 0)

	rows, err := db.sql.QueryContext(ctx, "SELECT Cell, Func, Ratio, Reason FROM ComparisonRatios WHERE ComparisonID = ? ORDER BY Cell, Func", id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var r SavedRatio
		var cell string
		var ratio sql.NullFloat64
		if err := rows.Scan(&cell, &r.Func, &ratio, &r.Reason); err != nil {
			return nil, err
		}
		if r.Cell, err = simfmt.ParseCell(cell); err != nil {
			return nil, err
		}
		if ratio.Valid {
			r.Ratio = ratio.Float64
		} else {
			r.Ratio = math.NaN()
		}
		c.Ratios = append(c.Ratios, r)
	}
	return &c, rows.Err()
}

// DeleteComparison removes the saved comparison with the given ID and
// its ratios.
func (db *DB) DeleteComparison(ctx context.Context, id int64) error {
	res, err := db.deleteComparison.ExecContext(ctx, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("comparison %d not found", id)
	}
	return nil
}

// CountComparisons returns the number of saved comparisons.
func (db *DB) CountComparisons() (int, error) {
	var n int
	err := db.sql.QueryRow("SELECT COUNT(*) FROM Comparisons").Scan(&n)
	return n, err
}

// Close closes the database connections, releasing any open resources.
func (db *DB) Close() error {
	if err := db.insertComparison.Close(); err != nil {
		return err
	}
	if err := db.deleteComparison.Close(); err != nil {
		return err
	}
	return db.sql.Close()
}
