package gen

import (
	"strconv"

	"golang.org/x/text/cases"

	"github.com/syssam/modelc/compiler/load"
	"github.com/syssam/modelc/schema/field"
)

// The following types make up the resolved graph of one compilation.
type (
	// Type represents one entity in the graph, its relations and
	// the information it holds.
	Type struct {
		*Config
		schema *load.Schema
		// Name holds the entity name.
		Name string
		// Identifier holds the identifier field names, in order.
		Identifier []string
		// ID holds the identifier fields, aligned with Identifier. An entry
		// is nil when the name does not resolve to a declared field.
		ID []*Field
		// Fields holds all the fields of this type: the synthesized
		// identifier first, then declared fields, then synthesized
		// foreign-key fields.
		Fields []*Field
		fields map[string]*Field
		// Edges holds all the edges of this type, declared ones first.
		Edges []*Edge
		// Indexes are the secondary indexes of this type.
		Indexes []*Index
		// ForeignKeys are the foreign keys stored in this type.
		ForeignKeys []*ForeignKey
		// Join indicates a synthesized many-to-many join entity.
		Join bool
		// Comment of the declaration.
		Comment string
	}

	// Field holds the resolved information of a field.
	Field struct {
		def *load.Field
		typ *Type
		// Name is the name of this field.
		Name string
		// Type holds the type information of the field. Foreign-key fields
		// hold a TypeRef whose Elem is a copy of the referenced identifier
		// type.
		Type *field.TypeInfo
		// Array indicates a list field.
		Array bool
		// Optional indicates the field was declared optional.
		Optional bool
		// Nillable indicates that this field (or list container) can be null
		// in storage. Foreign-key fields are nillable regardless of their
		// declaration.
		Nillable bool
		// ElemNillable indicates that list elements can be null.
		ElemNillable bool
		// Default holds the normalized default value, if any.
		Default any
		// Fields holds the nested fields of a custom composite field.
		Fields []*Field
		// UserDefined indicates that this field was declared explicitly.
		// The synthesized identifier and foreign-key fields are not.
		UserDefined bool
		// Comment of the declaration.
		Comment string
		// referenced foreign-key.
		fk *ForeignKey
	}

	// Index represents a secondary index.
	Index struct {
		// Name of the index; empty names are derived at emission.
		Name string
		// Unique index or not.
		Unique bool
		// Fields are the indexed field names.
		Fields []string
	}
)

// Label returns the entity name.
func (t Type) Label() string { return t.Name }

// Table returns the emitted table name of the type.
func (t Type) Table() string {
	if t.Config != nil && t.Naming == NamingSnake {
		return snake(plural(t.Name))
	}
	return t.Name
}

// Pos returns the source position of the declaration, if known.
func (t Type) Pos() string {
	if t.schema != nil {
		return t.schema.Pos
	}
	return ""
}

// HasCompositeID indicates if the type has a multi-field identifier.
func (t Type) HasCompositeID() bool { return len(t.Identifier) > 1 }

// HasOneFieldID indicates if the type has a single-field identifier.
func (t Type) HasOneFieldID() bool { return len(t.Identifier) == 1 }

// Field returns the field with the given name.
func (t Type) Field(name string) (*Field, bool) {
	f, ok := t.fields[name]
	return f, ok
}

// EdgeBy returns the edge with the given name.
func (t Type) EdgeBy(name string) (*Edge, bool) {
	for _, e := range t.Edges {
		if e.Name == name {
			return e, true
		}
	}
	return nil, false
}

// FKEdges returns the edges whose foreign keys reside in this type.
func (t Type) FKEdges() (edges []*Edge) {
	for _, e := range t.Edges {
		if e.OwnFK() {
			edges = append(edges, e)
		}
	}
	return
}

// RelatedTypes returns all the types this type relates to, in edge order
// and without duplicates.
func (t Type) RelatedTypes() []*Type {
	seen := map[string]bool{t.Name: true}
	related := make([]*Type, 0, len(t.Edges))
	for _, e := range t.Edges {
		if !seen[e.Type.Name] {
			seen[e.Type.Name] = true
			related = append(related, e.Type)
		}
	}
	return related
}

// hasName reports whether a field or edge of the type uses the name, or
// a field is emitted under the same column. Names are compared case
// insensitively.
func (t *Type) hasName(name string) bool {
	fold := cases.Fold()
	key, col := fold.String(name), name
	if t.Config != nil && t.Naming == NamingSnake {
		col = snake(name)
	}
	col = fold.String(col)
	for _, f := range t.Fields {
		if fold.String(f.Name) == key || fold.String(f.Column()) == col {
			return true
		}
	}
	for _, e := range t.Edges {
		if fold.String(e.Name) == key {
			return true
		}
	}
	return false
}

// uniqueName returns base, or base suffixed with a counter, such that no
// field or edge of the type uses it.
func (t *Type) uniqueName(base string) string {
	name := base
	for i := 2; t.hasName(name); i++ {
		name = base + strconv.Itoa(i)
	}
	return name
}

func (t *Type) addField(f *Field) {
	f.typ = t
	t.Fields = append(t.Fields, f)
	t.fields[f.Name] = f
}

// Column returns the emitted column name of the field.
func (f Field) Column() string {
	if f.typ != nil && f.typ.Config != nil && f.typ.Naming == NamingSnake {
		return snake(f.Name)
	}
	return f.Name
}

// Kind returns the display form of the field type, with list and
// nullability markers: "[String!]" style.
func (f Field) Kind() string {
	s := f.Type.String()
	if f.Array {
		if !f.ElemNillable {
			s += "!"
		}
		s = "[" + s + "]"
	}
	if !f.Nillable {
		s += "!"
	}
	return s
}

// IsEdgeField reports whether the field stores a foreign key.
func (f Field) IsEdgeField() bool { return f.fk != nil }

// ForeignKey returns the foreign key the field belongs to, if any.
func (f Field) ForeignKey() (*ForeignKey, bool) {
	return f.fk, f.fk != nil
}

// Owner returns the type the field belongs to.
func (f Field) Owner() *Type { return f.typ }
