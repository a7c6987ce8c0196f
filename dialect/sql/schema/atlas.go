package schema

import (
	"context"
	"fmt"

	"ariga.io/atlas/sql/migrate"
	"ariga.io/atlas/sql/mysql"
	"ariga.io/atlas/sql/postgres"
	"ariga.io/atlas/sql/schema"
	"ariga.io/atlas/sql/sqlite"

	"github.com/syssam/modelc/dialect"
	"github.com/syssam/modelc/schema/field"
)

// Atlas converts the tables into atlas tables for the given dialect. The
// tables are attached to one unnamed schema, so the planned statements are
// not qualified.
func Atlas(d string, tables []*Table) ([]*schema.Table, error) {
	var (
		realm = schema.New("")
		out   = make([]*schema.Table, 0, len(tables))
		byT   = make(map[*Table]*schema.Table, len(tables))
		cols  = make(map[*Column]*schema.Column)
	)
	for _, t := range tables {
		at := &schema.Table{Name: t.Name}
		if t.Comment != "" {
			at.SetComment(t.Comment)
		}
		for _, c := range t.Columns {
			ct, err := columnType(d, c)
			if err != nil {
				return nil, fmt.Errorf("table %q: %w", t.Name, err)
			}
			ac := &schema.Column{
				Name: c.Name,
				Type: &schema.ColumnType{Type: ct, Null: c.Nullable},
			}
			if c.Comment != "" {
				ac.SetComment(c.Comment)
			}
			at.AddColumns(ac)
			cols[c] = ac
		}
		if len(t.PrimaryKey) > 0 {
			pk := &schema.Index{Unique: true, Table: at}
			for i, c := range t.PrimaryKey {
				pk.Parts = append(pk.Parts, &schema.IndexPart{SeqNo: i, C: cols[c]})
			}
			at.SetPrimaryKey(pk)
		}
		for _, idx := range t.Indexes {
			ai := &schema.Index{Name: idx.Name, Unique: idx.Unique, Table: at}
			for i, c := range idx.Columns {
				ac, ok := cols[c]
				if !ok {
					return nil, fmt.Errorf("table %q: index %q column %q is not a table column", t.Name, idx.Name, c.Name)
				}
				ai.Parts = append(ai.Parts, &schema.IndexPart{SeqNo: i, C: ac})
			}
			at.AddIndexes(ai)
		}
		realm.AddTables(at)
		byT[t] = at
		out = append(out, at)
	}
	// Foreign keys are added once every table exists, since references may
	// point forward.
	for _, t := range tables {
		at := byT[t]
		for _, fk := range t.ForeignKeys {
			ref, ok := byT[fk.RefTable]
			if !ok {
				return nil, fmt.Errorf("table %q: foreign key %q references unknown table %q", t.Name, fk.Symbol, fk.RefTable.Name)
			}
			afk := &schema.ForeignKey{
				Symbol:   fk.Symbol,
				Table:    at,
				RefTable: ref,
				OnUpdate: schema.ReferenceOption(fk.OnUpdate),
				OnDelete: schema.ReferenceOption(fk.OnDelete),
			}
			for _, c := range fk.Columns {
				afk.Columns = append(afk.Columns, cols[c])
			}
			for _, c := range fk.RefColumns {
				afk.RefColumns = append(afk.RefColumns, cols[c])
			}
			at.AddForeignKeys(afk)
		}
	}
	return out, nil
}

// columnType maps the storage kind of a column to the atlas type of the
// dialect. Lists and custom composites are stored as JSON documents.
func columnType(d string, c *Column) (schema.Type, error) {
	if c.Array || c.Custom {
		return jsonType(d), nil
	}
	switch d {
	case dialect.SQLite:
		return sqliteType(c)
	case dialect.Postgres:
		return postgresType(c)
	case dialect.MySQL:
		return mysqlType(c)
	}
	return nil, fmt.Errorf("unsupported dialect %q", d)
}

func jsonType(d string) schema.Type {
	switch d {
	case dialect.Postgres:
		return &schema.JSONType{T: "jsonb"}
	default:
		return &schema.JSONType{T: "json"}
	}
}

func sqliteType(c *Column) (schema.Type, error) {
	switch c.Type {
	case field.TypeInteger, field.TypeTimestamp:
		return &schema.IntegerType{T: "integer"}, nil
	case field.TypeFloat:
		return &schema.FloatType{T: "real"}, nil
	case field.TypeBoolean:
		return &schema.BoolType{T: "bool"}, nil
	case field.TypeJSON:
		return &schema.JSONType{T: "json"}, nil
	case field.TypeID, field.TypeString, field.TypeDate, field.TypeTime, field.TypeDateTime,
		field.TypeEmail, field.TypePhone, field.TypeURL, field.TypeIPAddress, field.TypeEnum:
		return &schema.StringType{T: "text"}, nil
	}
	return nil, fmt.Errorf("column %q: unsupported kind %s", c.Name, c.Type)
}

func postgresType(c *Column) (schema.Type, error) {
	switch c.Type {
	case field.TypeInteger, field.TypeTimestamp:
		return &schema.IntegerType{T: "bigint"}, nil
	case field.TypeFloat:
		return &schema.FloatType{T: "double precision"}, nil
	case field.TypeBoolean:
		return &schema.BoolType{T: "boolean"}, nil
	case field.TypeJSON:
		return &schema.JSONType{T: "jsonb"}, nil
	case field.TypeDate:
		return &schema.TimeType{T: "date"}, nil
	case field.TypeTime:
		return &schema.TimeType{T: "time without time zone"}, nil
	case field.TypeDateTime:
		return &schema.TimeType{T: "timestamp with time zone"}, nil
	case field.TypeID, field.TypeString, field.TypeEmail, field.TypePhone, field.TypeURL, field.TypeIPAddress, field.TypeEnum:
		return &schema.StringType{T: "text"}, nil
	}
	return nil, fmt.Errorf("column %q: unsupported kind %s", c.Name, c.Type)
}

func mysqlType(c *Column) (schema.Type, error) {
	switch c.Type {
	case field.TypeInteger, field.TypeTimestamp:
		return &schema.IntegerType{T: "bigint"}, nil
	case field.TypeFloat:
		return &schema.FloatType{T: "double"}, nil
	case field.TypeBoolean:
		return &schema.BoolType{T: "bool"}, nil
	case field.TypeJSON:
		return &schema.JSONType{T: "json"}, nil
	case field.TypeDate:
		return &schema.TimeType{T: "date"}, nil
	case field.TypeTime:
		return &schema.TimeType{T: "time"}, nil
	case field.TypeDateTime:
		return &schema.TimeType{T: "datetime"}, nil
	case field.TypeEnum:
		return &schema.EnumType{T: "enum", Values: c.Enums}, nil
	case field.TypeID, field.TypeString, field.TypeEmail, field.TypePhone, field.TypeURL, field.TypeIPAddress:
		return &schema.StringType{T: "varchar", Size: 255}, nil
	}
	return nil, fmt.Errorf("column %q: unsupported kind %s", c.Name, c.Type)
}

// planner returns the offline atlas planner of the dialect.
func planner(d string) (migrate.PlanApplier, error) {
	switch d {
	case dialect.SQLite:
		return sqlite.DefaultPlan, nil
	case dialect.Postgres:
		return postgres.DefaultPlan, nil
	case dialect.MySQL:
		return mysql.DefaultPlan, nil
	}
	return nil, fmt.Errorf("dialect/sql/schema: unsupported dialect %q", d)
}

// Plan returns the CREATE statements of the tables for the dialect, in
// table order. It does not connect to a database.
func Plan(ctx context.Context, d string, tables []*Table) ([]string, error) {
	if res := ValidateSchema(tables); res.HasErrors() {
		return nil, fmt.Errorf("dialect/sql/schema: invalid tables:\n%s", res)
	}
	pl, err := planner(d)
	if err != nil {
		return nil, err
	}
	ats, err := Atlas(d, tables)
	if err != nil {
		return nil, fmt.Errorf("dialect/sql/schema: %w", err)
	}
	changes := make([]schema.Change, 0, len(ats))
	for _, t := range ats {
		changes = append(changes, &schema.AddTable{T: t})
	}
	plan, err := pl.PlanChanges(ctx, "modelc", changes)
	if err != nil {
		return nil, fmt.Errorf("dialect/sql/schema: plan %s: %w", d, err)
	}
	stmts := make([]string, 0, len(plan.Changes))
	for _, c := range plan.Changes {
		stmts = append(stmts, c.Cmd)
	}
	return stmts, nil
}
