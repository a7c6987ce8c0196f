package gen

import (
	"golang.org/x/text/cases"

	"github.com/syssam/modelc"
	"github.com/syssam/modelc/schema/field"
)

// validate checks the structural invariants of the resolved graph. Unlike
// the earlier stages, it collects every violation before failing. Cycles
// in the relationship graph are allowed.
func (g *Graph) validate() error {
	var (
		verr   = &modelc.ValidationError{}
		fold   = cases.Fold()
		tables = make(map[string]string)
	)
	for _, t := range g.Types() {
		table := fold.String(t.Table())
		if prev, ok := tables[table]; ok {
			verr.Addf(t.Name, "", "", "table %q collides with the table of %s", t.Table(), prev)
		} else {
			tables[table] = t.Name
		}
		validateIdentifier(verr, t)
		validateNames(verr, t)
		validateFields(verr, t, t.Fields, "")
		validateForeignKeys(g, verr, t)
		validateEdges(verr, t)
		validateIndexes(verr, t)
	}
	if err := verr.Err(); err != nil {
		g.logger().Debug("validation failed", "reasons", len(verr.Reasons))
		return err
	}
	for _, e := range g.Edges() {
		e.advance(StateValidated)
	}
	return nil
}

func validateIdentifier(verr *modelc.ValidationError, t *Type) {
	if len(t.ID) == 0 {
		verr.Addf(t.Name, "", "", "type has no identifier")
	}
	for i, f := range t.ID {
		switch {
		case f == nil:
			verr.Addf(t.Name, t.Identifier[i], "", "identifier field is not declared")
		case f.Nillable:
			verr.Addf(t.Name, f.Name, "", "identifier field is nullable; foreign-key fields cannot be identifier components")
		}
	}
}

// validateNames checks that no two fields or edges share a name, even when
// differing only by case, and that no two fields share an emitted column,
// since storage layers fold column names.
func validateNames(verr *modelc.ValidationError, t *Type) {
	var (
		fold     = cases.Fold()
		names    = make(map[string]string, len(t.Fields)+len(t.Edges))
		columns  = make(map[string]string, len(t.Fields))
		reported = make(map[*Field]bool)
	)
	check := func(name, fieldName, edgeName string) bool {
		key := fold.String(name)
		if prev, ok := names[key]; ok {
			verr.Addf(t.Name, fieldName, edgeName, "name collides with %q", prev)
			return false
		}
		names[key] = name
		return true
	}
	for _, f := range t.Fields {
		if !check(f.Name, f.Name, "") {
			reported[f] = true
		}
	}
	for _, e := range t.Edges {
		check(e.Name, "", e.Name)
	}
	for _, f := range t.Fields {
		col := f.Column()
		key := fold.String(col)
		prev, ok := columns[key]
		switch {
		case !ok:
			columns[key] = f.Name
		case !reported[f]:
			verr.Addf(t.Name, f.Name, "", "column %q collides with the column of %q", col, prev)
		}
	}
	owners := make(map[*Field]*ForeignKey)
	for _, fk := range t.ForeignKeys {
		for _, f := range fk.Fields {
			if prev, ok := owners[f]; ok && prev != fk {
				verr.Addf(t.Name, f.Name, "", "field is shared by the foreign keys of %s and %s", prev.Edge.Label(), fk.Edge.Label())
				continue
			}
			owners[f] = fk
		}
	}
}

// validateFields switches over every kind of the closed type set.
func validateFields(verr *modelc.ValidationError, t *Type, fields []*Field, prefix string) {
	for _, f := range fields {
		name := prefix + f.Name
		if f.Type == nil {
			verr.Addf(t.Name, name, "", "field has no type")
			continue
		}
		switch f.Type.Type {
		case field.TypeID, field.TypeString, field.TypeInteger, field.TypeFloat, field.TypeBoolean,
			field.TypeDate, field.TypeTime, field.TypeDateTime, field.TypeTimestamp,
			field.TypeEmail, field.TypeJSON, field.TypePhone, field.TypeURL, field.TypeIPAddress:
		case field.TypeEnum:
			if len(f.Type.Enums) == 0 {
				verr.Addf(t.Name, name, "", "enum has no values")
			}
		case field.TypeCustom:
			if len(f.Fields) == 0 {
				verr.Addf(t.Name, name, "", "custom type has no fields")
			}
			validateFields(verr, t, f.Fields, name+".")
		case field.TypeRef:
			switch {
			case prefix != "" || f.fk == nil:
				verr.Addf(t.Name, name, "", "reference fields are only produced by relationships")
			case f.Type.Elem == nil || !f.Type.Storage().Type.Scalar():
				verr.Addf(t.Name, name, "", "reference to %s has no scalar storage type", f.Type.Ref)
			}
		default:
			verr.Addf(t.Name, name, "", "unknown field kind %d", f.Type.Type)
		}
	}
}

func validateForeignKeys(g *Graph, verr *modelc.ValidationError, t *Type) {
	for _, fk := range t.ForeignKeys {
		edgeName := ""
		if fk.Edge != nil && fk.Edge.Owner == t {
			edgeName = fk.Edge.Name
		}
		if len(fk.Fields) != len(fk.RefFields) {
			verr.Addf(t.Name, "", edgeName, "%d foreign-key field(s) for %d identifier field(s) of %s", len(fk.Fields), len(fk.RefFields), fk.RefType.Name)
			continue
		}
		for i, f := range fk.Fields {
			ref := fk.RefFields[i]
			if ref == nil {
				continue
			}
			if got, want := f.Type.Storage().Type, ref.Type.Storage().Type; !got.Compatible(want) {
				verr.Addf(t.Name, f.Name, "", "foreign key is %s, but %s.%s is %s", got, fk.RefType.Name, ref.Name, want)
			}
			if f.Nillable != fk.Fields[0].Nillable {
				verr.Addf(t.Name, f.Name, "", "foreign-key fields of %s must share nullability", fk.RefType.Name)
			}
			if !t.Join && !g.StrictForeignKeys && !f.Nillable {
				verr.Addf(t.Name, f.Name, "", "foreign-key field must be nullable")
			}
		}
	}
}

func validateEdges(verr *modelc.ValidationError, t *Type) {
	for _, e := range t.Edges {
		switch {
		case e.Ref == nil:
			verr.Addf(t.Name, "", e.Name, "edge has no counterpart")
		case e.Ref.Ref != e || e.Ref.Owner != e.Type || e.Ref.Type != t:
			verr.Addf(t.Name, "", e.Name, "edge is not bidirectional with %s", e.Ref.Label())
		case e.State < StateCounterpartMatched:
			verr.Addf(t.Name, "", e.Name, "edge is %s", e.State)
		case e.M2M() && e.Through == nil:
			verr.Addf(t.Name, "", e.Name, "many-to-many edge has no join")
		}
	}
}

func validateIndexes(verr *modelc.ValidationError, t *Type) {
	names := make(map[string]bool, len(t.Indexes))
	for _, idx := range t.Indexes {
		if idx.Name != "" {
			if names[idx.Name] {
				verr.Addf(t.Name, "", "", "index %q is declared more than once", idx.Name)
			}
			names[idx.Name] = true
		}
		if len(idx.Fields) == 0 {
			verr.Addf(t.Name, "", "", "index %q has no fields", idx.Name)
		}
		for _, name := range idx.Fields {
			if _, ok := t.Field(name); !ok {
				verr.Addf(t.Name, name, "", "index %q references an unknown field", idx.Name)
			}
		}
	}
}
