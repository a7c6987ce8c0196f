// Package schema holds the normalized table definitions emitted by the
// compiler, validates them, and plans their DDL with atlas.
package schema

import (
	"fmt"
	"strings"

	"github.com/syssam/modelc/schema/field"
)

// Table schema definition for SQL dialects.
type Table struct {
	Name        string
	Columns     []*Column
	columns     map[string]*Column
	Indexes     []*Index
	PrimaryKey  []*Column
	ForeignKeys []*ForeignKey
	// Join marks the table of a many-to-many join entity.
	Join    bool
	Comment string
}

// NewTable returns a new table with the given name.
func NewTable(name string) *Table {
	return &Table{
		Name:    name,
		columns: make(map[string]*Column),
	}
}

// AddColumn adds a new column to the table.
func (t *Table) AddColumn(c *Column) *Table {
	if t.columns == nil {
		t.columns = make(map[string]*Column)
	}
	t.columns[c.Name] = c
	t.Columns = append(t.Columns, c)
	return t
}

// AddPrimary adds a new primary key to the table.
func (t *Table) AddPrimary(c *Column) *Table {
	c.Key = PrimaryKey
	t.PrimaryKey = append(t.PrimaryKey, c)
	return t
}

// AddForeignKey adds a foreign key to the table.
func (t *Table) AddForeignKey(fk *ForeignKey) *Table {
	t.ForeignKeys = append(t.ForeignKeys, fk)
	return t
}

// AddIndex creates and adds a new index to the table from the given options.
func (t *Table) AddIndex(name string, unique bool, columns []string) *Table {
	return t.addIndex(&Index{
		Name:    name,
		Unique:  unique,
		columns: columns,
	})
}

// addIndex adds a new index to the table and resolves its columns.
func (t *Table) addIndex(idx *Index) *Table {
	for _, name := range idx.columns {
		c, ok := t.columns[name]
		if !ok {
			// Unresolved names are reported by ValidateTable.
			c = &Column{Name: name}
		}
		c.indexes = append(c.indexes, idx)
		idx.Columns = append(idx.Columns, c)
	}
	t.Indexes = append(t.Indexes, idx)
	return t
}

// Column returns the column with the given name, if exists.
func (t *Table) Column(name string) (*Column, bool) {
	if c, ok := t.columns[name]; ok {
		return c, true
	}
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// Index returns a table index by its exact name.
func (t *Table) Index(name string) (*Index, bool) {
	for _, idx := range t.Indexes {
		if name == idx.Name {
			return idx, true
		}
	}
	return nil, false
}

// String returns a compact description of the table:
//
//	Todo(id id!, description string!, listId id->List) pk(id)
func (t *Table) String() string {
	var b strings.Builder
	b.WriteString(t.Name)
	b.WriteByte('(')
	for i, c := range t.Columns {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(c.String())
	}
	b.WriteString(") pk(")
	for i, c := range t.PrimaryKey {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(c.Name)
	}
	b.WriteByte(')')
	return b.String()
}

// Column schema definition for SQL dialects.
type Column struct {
	Name string
	// Type is the storage kind of the column. Reference columns carry the
	// kind of the referenced identifier and name it in Ref.
	Type field.Type
	// Enums holds the variants of enum columns.
	Enums []string
	// Ref is the referenced table of foreign-key columns.
	Ref string
	// Nullable column.
	Nullable bool
	// Array columns hold a list of values of Type.
	Array bool
	// ElemNullable reports whether the elements of array columns can be null.
	ElemNullable bool
	// Custom columns hold a composite value, stored as a document.
	Custom  bool
	Default any
	Key     string
	Comment string
	indexes []*Index
}

// Column keys.
const (
	PrimaryKey = "PRI"
	UniqueKey  = "UNI"
	MultiKey   = "MUL"
)

// UniqueKey returns boolean indicates if this column is a unique key.
func (c *Column) UniqueKey() bool { return c.Key == UniqueKey }

// PrimaryKey returns boolean indicates if this column is on of the primary key columns.
func (c *Column) PrimaryKey() bool { return c.Key == PrimaryKey }

// Document reports whether the column is stored as a JSON document: lists,
// custom composites and JSON values.
func (c *Column) Document() bool {
	return c.Array || c.Custom || c.Type == field.TypeJSON
}

// String returns the column name with its kind and nullability marker.
func (c *Column) String() string {
	kind := c.Type.String()
	if c.Custom {
		kind = field.TypeCustom.String()
	}
	if c.Array {
		if !c.ElemNullable {
			kind += "!"
		}
		kind = "[" + kind + "]"
	}
	if !c.Nullable {
		kind += "!"
	}
	if c.Ref != "" {
		kind = fmt.Sprintf("%s->%s", kind, c.Ref)
	}
	return c.Name + " " + kind
}

// ReferenceOption for constraint actions.
type ReferenceOption string

// Reference options.
const (
	NoAction   ReferenceOption = "NO ACTION"
	Restrict   ReferenceOption = "RESTRICT"
	Cascade    ReferenceOption = "CASCADE"
	SetNull    ReferenceOption = "SET NULL"
	SetDefault ReferenceOption = "SET DEFAULT"
)

// ForeignKey definition for creation.
type ForeignKey struct {
	Symbol     string          // foreign-key name. Generated if empty.
	Columns    []*Column       // table column
	RefTable   *Table          // referenced table.
	RefColumns []*Column       // referenced columns.
	OnUpdate   ReferenceOption // action on update.
	OnDelete   ReferenceOption // action on delete.
}

// Index definition for table index.
type Index struct {
	Name    string    // index name.
	Unique  bool      // uniqueness.
	Columns []*Column // actual table columns.
	columns []string  // column names given to AddIndex.
}

// ColumnNames returns the names of the index columns.
func (i *Index) ColumnNames() []string {
	names := make([]string, len(i.Columns))
	for j, c := range i.Columns {
		names[j] = c.Name
	}
	return names
}
