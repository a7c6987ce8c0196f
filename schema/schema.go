package schema

import (
	"github.com/syssam/modelc/schema/edge"
	"github.com/syssam/modelc/schema/field"
	"github.com/syssam/modelc/schema/index"
)

// Mixin is a reusable set of fields, edges and indexes that can be mixed
// into several models.
type Mixin interface {
	Fields() []*field.Builder
	Edges() []*edge.Builder
	Indexes() []*index.Builder
}

// A Descriptor holds one entity declaration.
type Descriptor struct {
	Name       string
	Fields     []*field.Descriptor
	Edges      []*edge.Descriptor
	Identifier []string
	Indexes    []*index.Descriptor
	Comment    string
}

// Builder is a chainable entity declaration.
type Builder struct {
	desc *Descriptor
}

// Model starts the declaration of an entity.
func Model(name string) *Builder {
	return &Builder{desc: &Descriptor{Name: name}}
}

// Fields appends fields to the model.
func (b *Builder) Fields(fields ...*field.Builder) *Builder {
	for _, f := range fields {
		b.desc.Fields = append(b.desc.Fields, f.Descriptor())
	}
	return b
}

// Edges appends relationship edges to the model.
func (b *Builder) Edges(edges ...*edge.Builder) *Builder {
	for _, e := range edges {
		b.desc.Edges = append(b.desc.Edges, e.Descriptor())
	}
	return b
}

// Identifier overrides the default surrogate identifier with the given
// ordered field set.
//
//	schema.Model("SerializedPart").Identifier("partNumber", "serial")
func (b *Builder) Identifier(fields ...string) *Builder {
	b.desc.Identifier = append([]string(nil), fields...)
	return b
}

// Indexes appends secondary indexes to the model.
func (b *Builder) Indexes(indexes ...*index.Builder) *Builder {
	for _, i := range indexes {
		b.desc.Indexes = append(b.desc.Indexes, i.Descriptor())
	}
	return b
}

// Mixin appends the fields, edges and indexes of each mixin.
func (b *Builder) Mixin(mixins ...Mixin) *Builder {
	for _, m := range mixins {
		b.Fields(m.Fields()...)
		b.Edges(m.Edges()...)
		b.Indexes(m.Indexes()...)
	}
	return b
}

// Comment sets the comment of the model.
func (b *Builder) Comment(c string) *Builder {
	b.desc.Comment = c
	return b
}

// Descriptor returns the model descriptor.
func (b *Builder) Descriptor() *Descriptor {
	return b.desc
}
