package load

import (
	"regexp"

	"github.com/syssam/modelc"
)

var entityName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Registry holds the raw entity declarations of one compilation, keyed by
// name. It does not resolve cross-entity references.
type Registry struct {
	schemas []*Schema
	names   map[string]int
}

// NewRegistry registers the declarations in the given order. It fails with
// ErrDuplicateEntityName if two declarations share a name.
func NewRegistry(schemas ...*Schema) (*Registry, error) {
	r := &Registry{
		schemas: make([]*Schema, 0, len(schemas)),
		names:   make(map[string]int, len(schemas)),
	}
	for _, s := range schemas {
		if s == nil {
			return nil, modelc.NewDeclarationError(modelc.ErrInvalidEntityName, "", "", "nil declaration at position %d", len(r.schemas))
		}
		if !entityName.MatchString(s.Name) {
			return nil, modelc.NewDeclarationError(modelc.ErrInvalidEntityName, s.Name, "", "entity names must be identifiers")
		}
		if i, ok := r.names[s.Name]; ok {
			return nil, modelc.NewDeclarationError(modelc.ErrDuplicateEntityName, s.Name, "", "declared at positions %d and %d", i, len(r.schemas))
		}
		r.names[s.Name] = len(r.schemas)
		r.schemas = append(r.schemas, s)
	}
	return r, nil
}

// Lookup returns the declaration with the given name.
func (r *Registry) Lookup(name string) (*Schema, bool) {
	i, ok := r.names[name]
	if !ok {
		return nil, false
	}
	return r.schemas[i], true
}

// Index returns the declaration position of the named entity, or -1.
func (r *Registry) Index(name string) int {
	if i, ok := r.names[name]; ok {
		return i
	}
	return -1
}

// Schemas returns the declarations in registration order.
func (r *Registry) Schemas() []*Schema {
	return r.schemas
}

// Len returns the number of registered declarations.
func (r *Registry) Len() int {
	return len(r.schemas)
}
