// Package edge provides fluent builders for declaring relationships between
// entities.
//
// # Edge Kinds
//
//   - edge.HasOne: owning to-one; the target holds the foreign key
//   - edge.HasMany: owning to-many; the target holds the foreign key
//   - edge.BelongsTo: owned side; the declaring entity holds the foreign key
//   - edge.ManyToMany: backed by a synthesized join entity
//
// # Inverses
//
// The inverse side may be omitted. A has-many with no belongs-to still puts
// a nullable foreign key on the target:
//
//	// List
//	edge.HasMany("todos", "Todo")
//	// Todo gets listId: reference(List), nullable.
//
// Declared on both sides, the two edges merge into one relationship:
//
//	// Car
//	edge.HasOne("steeringWheel", "SteeringWheel")
//	// SteeringWheel
//	edge.BelongsTo("car", "Car")
//
// # Relation Names
//
// Parallel edges between the same pair of entities must carry distinct
// relation names:
//
//	// Post
//	edge.BelongsTo("author", "User").RelationName("authored").References("authorId")
//	edge.BelongsTo("editor", "User").RelationName("edited").References("editorId")
//
// Many-to-many join entities are named after the relation name, or after the
// sorted pair of entity names when none is given:
//
//	// Pizza
//	edge.ManyToMany("toppings", "Topping").RelationName("X")
//	// Topping
//	edge.ManyToMany("pizzas", "Pizza").RelationName("X")
//
// # Foreign Keys
//
// References names the foreign-key fields on the owned side, one per
// identifier field of the owning entity and in the same order:
//
//	edge.HasMany("parts", "SerializedPart").References("binPartNumber", "binSerial")
package edge
