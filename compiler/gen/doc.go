// Package gen resolves loaded model declarations into a relational graph
// and emits its normalized tables.
//
// # Architecture
//
// The pipeline follows this flow:
//
//	Declarations (compiler/load)
//	        ↓
//	   Registry (unique names, declaration order)
//	        ↓
//	   Field resolution (concurrent, one worker per entity)
//	        ↓
//	   Relationship resolution (counterparts, foreign keys)
//	        ↓
//	   Composite identifiers (arity, kind propagation)
//	        ↓
//	   Many-to-many expansion (join types)
//	        ↓
//	   Validation (aggregated)
//	        ↓
//	   Tables (dialect/sql/schema)
//
// # Key Types
//
//   - Graph: the declared types and the synthesized join types
//   - Type: an entity with fields, edges, indexes and foreign keys
//   - Field: a resolved field; foreign-key fields hold a reference type
//   - Edge: one side of a relationship, paired with its counterpart in Ref
//   - ForeignKey: the fields of one relationship and the identifier they reference
//   - Config: the options of one compilation
//
// # Usage
//
//	schemas, err := load.File("amplify/schema.graphql")
//	if err != nil {
//	    return err
//	}
//	g, err := gen.NewGraph(gen.MustNewConfig(gen.WithNaming(gen.NamingSnake)), schemas...)
//	if err != nil {
//	    return err
//	}
//	tables, err := g.Tables()
//
// # Errors
//
// Declaration problems fail with a *modelc.DeclarationError and relationship
// problems with a *modelc.RelationshipError, as soon as they are found. The
// final validation collects every violation into one *modelc.ValidationError.
// Option problems are reported as *ConfigError.
package gen
