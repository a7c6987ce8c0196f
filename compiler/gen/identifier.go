package gen

import (
	"github.com/syssam/modelc"
	"github.com/syssam/modelc/schema/field"
)

// resolveIdentifiers checks explicit identifiers and propagates identifier
// kinds to the foreign keys that reference them.
func (g *Graph) resolveIdentifiers() error {
	for _, t := range g.Nodes {
		if err := checkIdentifier(t); err != nil {
			return err
		}
	}
	for _, t := range g.Nodes {
		for _, fk := range t.ForeignKeys {
			if len(fk.Fields) != len(fk.RefFields) {
				c := fk.Edge
				return modelc.NewRelationshipError(modelc.ErrIdentifierArityMismatch, c.Owner.Name, c.Name, c.Type.Name,
					"%d foreign-key field(s) %v for identifier %v of %s", len(fk.Fields), fk.Names(), fk.RefType.Identifier, fk.RefType.Name)
			}
		}
	}
	var (
		done    = make(map[*ForeignKey]bool)
		visited = make(map[*ForeignKey]bool)
	)
	var resolve func(fk *ForeignKey)
	resolve = func(fk *ForeignKey) {
		if done[fk] || visited[fk] {
			return
		}
		visited[fk] = true
		for i, f := range fk.Fields {
			ref := fk.RefFields[i]
			// The referenced identifier may be a foreign key itself.
			if ref.fk != nil {
				resolve(ref.fk)
			}
			if f.fk != fk {
				continue
			}
			f.Type = &field.TypeInfo{
				Type: field.TypeRef,
				Ref:  fk.RefType.Name,
				Elem: ref.Type.Storage().Clone(),
			}
		}
		done[fk] = true
	}
	for _, t := range g.Nodes {
		for _, fk := range t.ForeignKeys {
			resolve(fk)
		}
	}
	return nil
}

// checkIdentifier checks that every identifier field exists and holds a
// required single scalar.
func checkIdentifier(t *Type) error {
	seen := make(map[string]bool, len(t.Identifier))
	for i, name := range t.Identifier {
		f := t.ID[i]
		switch {
		case seen[name]:
			return modelc.NewDeclarationError(modelc.ErrInvalidIdentifierField, t.Name, name, "field is listed twice in the identifier")
		case f == nil:
			return modelc.NewDeclarationError(modelc.ErrInvalidIdentifierField, t.Name, name, "identifier field is not declared")
		case f.Optional:
			return modelc.NewDeclarationError(modelc.ErrInvalidIdentifierField, t.Name, name, "identifier field must be required")
		case f.Array:
			return modelc.NewDeclarationError(modelc.ErrInvalidIdentifierField, t.Name, name, "identifier field cannot be a list")
		case f.Type.Type == field.TypeCustom || f.Type.Type == field.TypeJSON:
			return modelc.NewDeclarationError(modelc.ErrInvalidIdentifierField, t.Name, name, "identifier field cannot be %s", f.Type)
		}
		seen[name] = true
	}
	return nil
}
