// Package mixin provides reusable sets of fields, edges and indexes for
// model declarations.
//
// A mixin can be mixed into several models. Embed Schema and override what
// you need:
//
//	type Owned struct {
//	    mixin.Schema
//	}
//
//	func (Owned) Fields() []*field.Builder {
//	    return []*field.Builder{
//	        field.String("owner"),
//	    }
//	}
//
//	func (Owned) Indexes() []*index.Builder {
//	    return []*index.Builder{
//	        index.Fields("owner"),
//	    }
//	}
//
// Builder.Mixin appends the fields, edges and indexes of each mixin in call
// order:
//
//	schema.Model("Todo").Mixin(Owned{}, mixin.Timestamps{})
//
// # Built-in Mixins
//
//   - Timestamps: required createdAt and updatedAt date-time fields
//   - CreateTime: only createdAt
//   - Owner: an optional owner field and a byOwner index
//
// A field declared by a mixin and again by the model is reported as a
// duplicate field name.
package mixin
