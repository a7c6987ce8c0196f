package load

import (
	"encoding/json"
	"fmt"

	"github.com/syssam/modelc/schema"
	"github.com/syssam/modelc/schema/edge"
	"github.com/syssam/modelc/schema/field"
	"github.com/syssam/modelc/schema/index"
)

// Schema represents one entity declaration, whatever document it was loaded
// from.
type Schema struct {
	Name       string   `json:"name" yaml:"name"`
	Pos        string   `json:"-" yaml:"-"`
	Fields     []*Field `json:"fields,omitempty" yaml:"fields,omitempty"`
	Edges      []*Edge  `json:"relationships,omitempty" yaml:"relationships,omitempty"`
	Identifier []string `json:"identifier,omitempty" yaml:"identifier,omitempty"`
	Indexes    []*Index `json:"indexes,omitempty" yaml:"indexes,omitempty"`
	Comment    string   `json:"comment,omitempty" yaml:"comment,omitempty"`
}

// Field represents a declared field. Type is a declaration tag ("string",
// "AWSDateTime") or a type expression ("[String!]!"); the flags are merged
// with the modifiers of the expression.
type Field struct {
	Name         string   `json:"name" yaml:"name"`
	Type         string   `json:"type" yaml:"type"`
	Array        bool     `json:"array,omitempty" yaml:"array,omitempty"`
	Required     bool     `json:"required,omitempty" yaml:"required,omitempty"`
	ElemRequired bool     `json:"elemRequired,omitempty" yaml:"elemRequired,omitempty"`
	Enums        []string `json:"values,omitempty" yaml:"values,omitempty"`
	Fields       []*Field `json:"fields,omitempty" yaml:"fields,omitempty"`
	Default      any      `json:"default,omitempty" yaml:"default,omitempty"`
	Comment      string   `json:"comment,omitempty" yaml:"comment,omitempty"`
}

// Edge represents a declared relationship edge. Kind holds the declaration
// keyword ("hasMany", "belongs_to", ...).
type Edge struct {
	Name         string   `json:"name" yaml:"name"`
	Kind         string   `json:"kind" yaml:"kind"`
	Target       string   `json:"target" yaml:"target"`
	References   []string `json:"references,omitempty" yaml:"references,omitempty"`
	RelationName string   `json:"relationName,omitempty" yaml:"relationName,omitempty"`
	Required     bool     `json:"required,omitempty" yaml:"required,omitempty"`
	Comment      string   `json:"comment,omitempty" yaml:"comment,omitempty"`
}

// Index represents a declared secondary index.
type Index struct {
	Name   string   `json:"name,omitempty" yaml:"name,omitempty"`
	Fields []string `json:"fields" yaml:"fields"`
	Unique bool     `json:"unique,omitempty" yaml:"unique,omitempty"`
}

// NewField creates a loaded field from field descriptor.
func NewField(fd *field.Descriptor) (*Field, error) {
	if fd.Err != nil {
		return nil, fmt.Errorf("field %q: %w", fd.Name, fd.Err)
	}
	sf := &Field{
		Name:         fd.Name,
		Type:         fd.Type,
		Array:        fd.Array,
		Required:     fd.Required,
		ElemRequired: fd.ElemRequired,
		Enums:        fd.Enums,
		Default:      fd.Default,
		Comment:      fd.Comment,
	}
	for _, nd := range fd.Fields {
		nf, err := NewField(nd)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", fd.Name, err)
		}
		sf.Fields = append(sf.Fields, nf)
	}
	return sf, nil
}

// NewEdge creates a loaded edge from edge descriptor.
func NewEdge(ed *edge.Descriptor) *Edge {
	return &Edge{
		Name:         ed.Name,
		Kind:         ed.Kind.String(),
		Target:       ed.Target,
		References:   ed.References,
		RelationName: ed.RelationName,
		Required:     ed.Required,
		Comment:      ed.Comment,
	}
}

// NewIndex creates a loaded index from index descriptor.
func NewIndex(idx *index.Descriptor) *Index {
	return &Index{
		Name:   idx.Name,
		Fields: idx.Fields,
		Unique: idx.Unique,
	}
}

// NewSchema creates a loaded schema from a model descriptor.
func NewSchema(d *schema.Descriptor) (*Schema, error) {
	s := &Schema{
		Name:       d.Name,
		Identifier: d.Identifier,
		Comment:    d.Comment,
	}
	for _, fd := range d.Fields {
		sf, err := NewField(fd)
		if err != nil {
			return nil, fmt.Errorf("schema %q: %w", d.Name, err)
		}
		s.Fields = append(s.Fields, sf)
	}
	for _, ed := range d.Edges {
		s.Edges = append(s.Edges, NewEdge(ed))
	}
	for _, idx := range d.Indexes {
		s.Indexes = append(s.Indexes, NewIndex(idx))
	}
	return s, nil
}

// Models loads the declarations of the given model builders, in order.
func Models(models ...*schema.Builder) ([]*Schema, error) {
	schemas := make([]*Schema, 0, len(models))
	for _, m := range models {
		s, err := NewSchema(m.Descriptor())
		if err != nil {
			return nil, err
		}
		schemas = append(schemas, s)
	}
	return schemas, nil
}

// MarshalSchema encodes the declarations into a JSON document that
// ParseJSON decodes back.
func MarshalSchema(schemas []*Schema) ([]byte, error) {
	return json.MarshalIndent(&document{Models: schemas}, "", "  ")
}

// document is the top-level shape of JSON and YAML declaration documents.
type document struct {
	Models []*Schema `json:"models" yaml:"models"`
}
