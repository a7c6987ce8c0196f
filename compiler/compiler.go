// Package compiler compiles model declarations into relational tables in
// one call. It chains the loaders of compiler/load, the graph resolution
// of compiler/gen and the DDL planning of dialect/sql/schema.
package compiler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/syssam/modelc/compiler/gen"
	"github.com/syssam/modelc/compiler/load"
	"github.com/syssam/modelc/dialect"
	"github.com/syssam/modelc/dialect/sql"
	sqlschema "github.com/syssam/modelc/dialect/sql/schema"
	"github.com/syssam/modelc/schema"
)

// Result holds the outcome of one compilation.
type Result struct {
	// Graph is the resolved and validated graph.
	Graph *gen.Graph
	// Tables are the emitted tables: declared entities in declaration
	// order, then join tables by name.
	Tables []*sqlschema.Table
}

// Compile resolves the declarations and emits their tables.
func Compile(schemas []*load.Schema, opts ...gen.Option) (*Result, error) {
	return CompileContext(context.Background(), schemas, opts...)
}

// CompileContext is like Compile, but stops field resolution when ctx is
// done.
func CompileContext(ctx context.Context, schemas []*load.Schema, opts ...gen.Option) (*Result, error) {
	cfg, err := gen.NewConfig(opts...)
	if err != nil {
		return nil, err
	}
	g, err := gen.NewGraphContext(ctx, cfg, schemas...)
	if err != nil {
		return nil, err
	}
	tables, err := g.Tables()
	if err != nil {
		return nil, err
	}
	return &Result{Graph: g, Tables: tables}, nil
}

// CompileModels compiles builder declarations.
//
//	res, err := compiler.CompileModels([]*schema.Builder{
//	    schema.Model("List").Edges(edge.HasMany("todos", "Todo")),
//	    schema.Model("Todo"),
//	})
func CompileModels(models []*schema.Builder, opts ...gen.Option) (*Result, error) {
	schemas, err := load.Models(models...)
	if err != nil {
		return nil, err
	}
	return Compile(schemas, opts...)
}

// CompileFiles loads the declaration documents in order and compiles them
// as one set.
func CompileFiles(ctx context.Context, paths []string, opts ...gen.Option) (*Result, error) {
	schemas, err := load.Files(paths...)
	if err != nil {
		return nil, err
	}
	return CompileContext(ctx, schemas, opts...)
}

// DDL returns the CREATE statements of the tables for the given dialect.
func (r *Result) DDL(ctx context.Context, d string) ([]string, error) {
	d, err := dialect.Parse(d)
	if err != nil {
		return nil, err
	}
	return sqlschema.Plan(ctx, d, r.Tables)
}

// Apply plans the tables for the dialect of the driver and executes the
// statements in one transaction.
func (r *Result) Apply(ctx context.Context, drv dialect.Driver, logger *slog.Logger) error {
	stmts, err := r.DDL(ctx, drv.Dialect())
	if err != nil {
		return fmt.Errorf("compiler: %w", err)
	}
	return sql.Apply(ctx, drv, logger, stmts)
}
