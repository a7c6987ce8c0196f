// Package field provides fluent builders for declaring entity fields.
//
// Each builder names a scalar kind:
//
//	field.ID("id")
//	field.String("title").Required()
//	field.Integer("priority").Default(1)
//	field.DateTime("dueAt")
//	field.Enum("status", "OPEN", "DONE")
//	field.Custom("location",
//	    field.Float("lat").Required(),
//	    field.Float("long").Required(),
//	)
//
// # Nullability
//
// Element and container nullability of list fields are independent. The
// position of Required relative to Array decides which one it sets:
//
//	field.String("tags").Required().Array()             // [String!]
//	field.String("tags").Array().Required()             // [String]!
//	field.String("tags").Required().Array().Required()  // [String!]!
//
// Fields can also be declared by a type expression:
//
//	field.Of("tags", "[String!]!")
//	field.Of("createdAt", "AWSDateTime!")
//
// # Kinds
//
// [Type] is the closed set of scalar kinds. [ParseType] maps declaration tags
// (case-insensitive, AppSync names included) to kinds; [TypeRef] is never
// declared and only appears on resolved foreign-key fields.
package field
