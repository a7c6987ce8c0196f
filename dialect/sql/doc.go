// Package sql wraps database/sql handles with a dialect and applies
// emitted DDL statements to a live database.
//
// The database drivers are not imported by this package; register the ones
// you need with blank imports:
//
//	import (
//	    _ "github.com/go-sql-driver/mysql"
//	    _ "github.com/lib/pq"
//	    _ "modernc.org/sqlite"
//	)
//
// Applying a planned schema:
//
//	drv, err := sql.Open(dialect.SQLite, "file:app.db?_pragma=foreign_keys(1)")
//	if err != nil {
//	    return err
//	}
//	defer drv.Close()
//	stmts, err := schema.Plan(ctx, dialect.SQLite, tables)
//	if err != nil {
//	    return err
//	}
//	return sql.Apply(ctx, drv, logger, stmts)
//
// Statements run in a single transaction; a failing statement rolls back
// the ones before it.
package sql
