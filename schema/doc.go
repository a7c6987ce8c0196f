// Package schema provides the building blocks for declaring entity models.
//
// This package is the entry point for declarations, composed from its
// subpackages:
//
//   - [field]: Field builders for entity attributes
//   - [edge]: Edge builders for relationships
//   - [index]: Secondary index builders
//   - [mixin]: Reusable field sets
//
// # Quick Start
//
//	list := schema.Model("List").
//	    Fields(field.String("title").Required()).
//	    Edges(edge.HasMany("todos", "Todo"))
//
//	todo := schema.Model("Todo").
//	    Fields(field.String("description").Required()).
//	    Mixin(mixin.Timestamps{})
//
//	res, err := compiler.CompileModels([]*schema.Builder{list, todo})
//
// # Identifiers
//
// Every model gets a required surrogate "id" field unless it declares an
// identifier:
//
//	schema.Model("SerializedPart").
//	    Fields(
//	        field.String("partNumber").Required(),
//	        field.String("serial").Required(),
//	    ).
//	    Identifier("partNumber", "serial")
package schema
