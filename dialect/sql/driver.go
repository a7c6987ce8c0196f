package sql

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"

	"github.com/syssam/modelc/dialect"
)

// driverNames maps dialects to the database/sql driver names registered by
// modernc.org/sqlite, github.com/lib/pq and github.com/go-sql-driver/mysql.
var driverNames = map[string]string{
	dialect.SQLite:   "sqlite",
	dialect.Postgres: "postgres",
	dialect.MySQL:    "mysql",
}

// Driver is a dialect.Driver implementation for SQL based databases.
type Driver struct {
	Conn
	dialect string
}

// NewDriver creates a new Driver with the given Conn and dialect.
func NewDriver(dialect string, c Conn) *Driver {
	return &Driver{dialect: dialect, Conn: c}
}

// Open validates the data source name of the dialect and opens a database
// handle. The database drivers must be registered by the caller (blank
// imports); the command-line tool registers all three.
func Open(name, source string) (*Driver, error) {
	d, err := dialect.Parse(name)
	if err != nil {
		return nil, err
	}
	if err := CheckDSN(d, source); err != nil {
		return nil, err
	}
	db, err := sql.Open(driverNames[d], source)
	if err != nil {
		return nil, err
	}
	return NewDriver(d, Conn{db, d}), nil
}

// CheckDSN reports whether the data source name is well-formed for the
// dialect.
func CheckDSN(d, source string) error {
	if source == "" {
		return fmt.Errorf("dialect/sql: empty data source name for %s", d)
	}
	switch d {
	case dialect.MySQL:
		if _, err := mysql.ParseDSN(source); err != nil {
			return fmt.Errorf("dialect/sql: invalid mysql dsn: %w", err)
		}
	case dialect.Postgres:
		if strings.HasPrefix(source, "postgres://") || strings.HasPrefix(source, "postgresql://") {
			if _, err := pq.ParseURL(source); err != nil {
				return fmt.Errorf("dialect/sql: invalid postgres url: %w", err)
			}
		}
	}
	return nil
}

// OpenDB wraps the given database/sql.DB method with a Driver.
func OpenDB(dialect string, db *sql.DB) *Driver {
	return NewDriver(dialect, Conn{db, dialect})
}

// DB returns the underlying *sql.DB instance.
func (d Driver) DB() *sql.DB {
	return d.ExecQuerier.(*sql.DB)
}

// Dialect implements the dialect.Dialect method.
func (d Driver) Dialect() string {
	// If the underlying driver is wrapped with a telemetry driver.
	for _, name := range []string{dialect.MySQL, dialect.SQLite, dialect.Postgres} {
		if strings.HasPrefix(d.dialect, name) {
			return name
		}
	}
	return d.dialect
}

// Tx starts and returns a transaction.
func (d *Driver) Tx(ctx context.Context) (dialect.Tx, error) {
	return d.BeginTx(ctx, nil)
}

// BeginTx starts a transaction with options.
func (d *Driver) BeginTx(ctx context.Context, opts *TxOptions) (dialect.Tx, error) {
	tx, err := d.DB().BeginTx(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &Tx{
		Conn: Conn{tx, d.dialect},
		Tx:   tx,
	}, nil
}

// Close closes the underlying connection.
func (d *Driver) Close() error { return d.DB().Close() }

// Tx implements dialect.Tx interface.
type Tx struct {
	Conn
	driver.Tx
}

// ExecQuerier wraps the standard Exec and Query methods.
type ExecQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Conn implements dialect.ExecQuerier given ExecQuerier.
type Conn struct {
	ExecQuerier
	dialect string
}

// Exec implements the dialect.Exec method.
func (c Conn) Exec(ctx context.Context, query string, args, v any) error {
	argv, ok := args.([]any)
	if !ok {
		return fmt.Errorf("dialect/sql: invalid type %T. expect []any for args", args)
	}
	switch v := v.(type) {
	case nil:
		if _, err := c.ExecContext(ctx, query, argv...); err != nil {
			return fmt.Errorf("dialect/sql: exec: %w", err)
		}
	case *sql.Result:
		res, err := c.ExecContext(ctx, query, argv...)
		if err != nil {
			return fmt.Errorf("dialect/sql: exec: %w", err)
		}
		*v = res
	default:
		return fmt.Errorf("dialect/sql: invalid type %T. expect *sql.Result", v)
	}
	return nil
}

// Query implements the dialect.Query method.
func (c Conn) Query(ctx context.Context, query string, args, v any) error {
	vr, ok := v.(*Rows)
	if !ok {
		return fmt.Errorf("dialect/sql: invalid type %T. expect *sql.Rows", v)
	}
	argv, ok := args.([]any)
	if !ok {
		return fmt.Errorf("dialect/sql: invalid type %T. expect []any for args", args)
	}
	rows, err := c.QueryContext(ctx, query, argv...)
	if err != nil {
		return fmt.Errorf("dialect/sql: query: %w", err)
	}
	*vr = Rows{rows}
	return nil
}

var _ dialect.Driver = (*Driver)(nil)

// Apply executes the DDL statements in one transaction, in order. On
// failure the transaction is rolled back and the failing statement is
// reported.
func Apply(ctx context.Context, drv dialect.Driver, logger *slog.Logger, stmts []string) error {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	start := time.Now()
	tx, err := drv.Tx(ctx)
	if err != nil {
		return fmt.Errorf("dialect/sql: begin: %w", err)
	}
	for i, stmt := range stmts {
		logger.DebugContext(ctx, "exec ddl", "dialect", drv.Dialect(), "seq", i, "stmt", stmt)
		if err := tx.Exec(ctx, stmt, []any{}, nil); err != nil {
			return errors.Join(fmt.Errorf("dialect/sql: statement %d: %w", i, err), tx.Rollback())
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("dialect/sql: commit: %w", err)
	}
	logger.InfoContext(ctx, "schema applied", "dialect", drv.Dialect(), "statements", len(stmts), "duration", time.Since(start))
	return nil
}

type (
	// Rows wraps the sql.Rows to avoid locks copy.
	Rows struct{ ColumnScanner }
	// Result is an alias to sql.Result.
	Result = sql.Result
	// TxOptions holds the transaction options to be used in DB.BeginTx.
	TxOptions = sql.TxOptions
)

// ColumnScanner is the interface that wraps the standard
// sql.Rows methods used for scanning database rows.
type ColumnScanner interface {
	Close() error
	ColumnTypes() ([]*sql.ColumnType, error)
	Columns() ([]string, error)
	Err() error
	Next() bool
	NextResultSet() bool
	Scan(dest ...any) error
}
