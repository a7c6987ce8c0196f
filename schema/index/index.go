// Package index provides builders for secondary indexes.
//
//	index.Fields("listId", "createdAt").Name("byList")
//	index.Fields("email").Unique()
package index

// A Descriptor for index configuration.
type Descriptor struct {
	Name   string   // index name; derived from the fields when empty.
	Fields []string // indexed fields, in order.
	Unique bool     // unique index.
}

// Builder for indexes on fields.
type Builder struct {
	desc *Descriptor
}

// Fields creates an index on the given fields.
func Fields(fields ...string) *Builder {
	return &Builder{desc: &Descriptor{Fields: append([]string(nil), fields...)}}
}

// Name sets the index name.
func (b *Builder) Name(name string) *Builder {
	b.desc.Name = name
	return b
}

// Unique sets the index to be unique.
func (b *Builder) Unique() *Builder {
	b.desc.Unique = true
	return b
}

// Descriptor returns the index descriptor.
func (b *Builder) Descriptor() *Descriptor {
	return b.desc
}
