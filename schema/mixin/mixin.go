package mixin

import (
	"github.com/syssam/modelc/schema"
	"github.com/syssam/modelc/schema/edge"
	"github.com/syssam/modelc/schema/field"
	"github.com/syssam/modelc/schema/index"
)

// Schema is the default implementation for the schema.Mixin interface.
// It should be embedded in all custom mixin definitions.
type Schema struct{}

// Fields returns the fields of the mixin.
func (Schema) Fields() []*field.Builder { return nil }

// Edges returns the edges of the mixin.
func (Schema) Edges() []*edge.Builder { return nil }

// Indexes returns the indexes of the mixin.
func (Schema) Indexes() []*index.Builder { return nil }

var _ schema.Mixin = (*Schema)(nil)

// =============================================================================
// Built-in Mixins
// =============================================================================

// Timestamps adds the required createdAt and updatedAt date-time fields
// managed models carry.
type Timestamps struct {
	Schema
}

// Fields returns the timestamp fields.
func (Timestamps) Fields() []*field.Builder {
	return []*field.Builder{
		field.DateTime("createdAt").
			Required().
			Comment("Time the record was created"),
		field.DateTime("updatedAt").
			Required().
			Comment("Time the record was last updated"),
	}
}

// CreateTime adds only the createdAt field.
type CreateTime struct {
	Schema
}

// Fields returns the createdAt field.
func (CreateTime) Fields() []*field.Builder {
	return []*field.Builder{
		field.DateTime("createdAt").
			Required().
			Comment("Time the record was created"),
	}
}

// Owner adds an optional owner field and an index over it, the shape
// owner-scoped models use.
type Owner struct {
	Schema
}

// Fields returns the owner field.
func (Owner) Fields() []*field.Builder {
	return []*field.Builder{
		field.String("owner").Comment("Identity owning the record"),
	}
}

// Indexes returns the owner index.
func (Owner) Indexes() []*index.Builder {
	return []*index.Builder{
		index.Fields("owner").Name("byOwner"),
	}
}
