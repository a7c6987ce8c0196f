package gen

import (
	"cmp"
	"slices"

	"github.com/syssam/modelc"
	"github.com/syssam/modelc/compiler/load"
	"github.com/syssam/modelc/schema/edge"
	"github.com/syssam/modelc/schema/field"
)

// expandJoins pairs the many-to-many edges and synthesizes one join type
// per pair.
func (g *Graph) expandJoins() error {
	names := make(map[string]*Edge)
	for _, t := range g.Nodes {
		for _, e := range declared(t.Edges) {
			if e.Kind != edge.ManyToManyKind || e.Ref != nil {
				continue
			}
			if err := g.matchM2M(e); err != nil {
				return err
			}
			name := e.RelationName
			if name == "" {
				name = joinName(e.Owner.Name, e.Type.Name)
			}
			if prev, ok := names[name]; ok {
				return modelc.NewRelationshipError(modelc.ErrDuplicateManyToManyRelationName, e.Owner.Name, e.Name, e.Type.Name,
					"join %q is already defined by %s", name, prev.Label())
			}
			if _, ok := g.registry.Lookup(name); ok {
				return modelc.NewRelationshipError(modelc.ErrDuplicateManyToManyRelationName, e.Owner.Name, e.Name, e.Type.Name,
					"join %q collides with a declared entity", name)
			}
			names[name] = e
			g.Joins = append(g.Joins, g.newJoin(name, e))
		}
	}
	slices.SortFunc(g.Joins, func(a, b *Type) int { return cmp.Compare(a.Name, b.Name) })
	return nil
}

// matchM2M pairs a many-to-many edge with its counterpart on the target, or
// synthesizes one.
func (g *Graph) matchM2M(e *Edge) error {
	var cands []*Edge
	for _, c := range candidates(e) {
		if c.Kind == edge.ManyToManyKind {
			cands = append(cands, c)
		}
	}
	for _, c := range cands {
		if c.RelationName == e.RelationName {
			pair(e, c, StateCounterpartMatched)
			return nil
		}
	}
	if len(cands) == 1 && countM2M(e.Owner, e.Type) == 1 {
		return modelc.NewRelationshipError(modelc.ErrManyToManyRelationNameMismatch, e.Owner.Name, e.Name, e.Type.Name,
			"relation name %q does not match %q of %s", e.RelationName, cands[0].RelationName, cands[0].Label())
	}
	c := &Edge{
		Name:         e.Type.uniqueName(lowerFirst(plural(e.Owner.Name))),
		Kind:         edge.ManyToManyKind,
		Type:         e.Owner,
		Owner:        e.Type,
		RelationName: e.RelationName,
		Synthesized:  true,
	}
	c.advance(StateTargetResolved)
	e.Type.Edges = append(e.Type.Edges, c)
	pair(e, c, StateCounterpartSynthesized)
	g.logger().Debug("synthesized counterpart", "entity", c.Owner.Name, "edge", c.Name, "kind", c.Kind, "synthesized", true)
	return nil
}

// countM2M counts the declared unpaired many-to-many edges from t to
// target.
func countM2M(t, target *Type) (n int) {
	for _, e := range t.Edges {
		if !e.Synthesized && e.Ref == nil && e.Kind == edge.ManyToManyKind && e.Type == target {
			n++
		}
	}
	return n
}

// newJoin creates the join type of a many-to-many pair: one required
// foreign key per participant, and a composite identifier made of both.
// Field names taken by the first participant are suffixed on the second.
func (g *Graph) newJoin(name string, e *Edge) *Type {
	j := &Type{
		Config: g.Config,
		schema: &load.Schema{Name: name},
		Name:   name,
		Join:   true,
		fields: make(map[string]*Field),
	}
	self := e.Owner == e.Type
	side := func(p *Type, via *Edge, prefix string) *ForeignKey {
		fk := &ForeignKey{Edge: via, Owner: j, RefType: p, RefFields: p.ID}
		for i, id := range p.Identifier {
			fname := fkName(p.Name, id)
			if prefix != "" {
				fname = prefix + titleCase(fname)
			}
			fname = j.uniqueName(fname)
			f := &Field{
				def:  &load.Field{Name: fname, Type: field.TypeRef.String(), Required: true},
				Name: fname,
				Type: &field.TypeInfo{Type: field.TypeRef, Ref: p.Name, Elem: p.ID[i].Type.Storage().Clone()},
				fk:   fk,
			}
			j.addField(f)
			fk.Fields = append(fk.Fields, f)
		}
		j.ForeignKeys = append(j.ForeignKeys, fk)
		return fk
	}
	var src, dst string
	if self {
		src, dst = "source", "target"
	}
	from := side(e.Owner, e, src)
	to := side(e.Type, e.Ref, dst)
	for _, f := range j.Fields {
		j.Identifier = append(j.Identifier, f.Name)
		j.ID = append(j.ID, f)
	}
	e.Through, e.Ref.Through = j, j
	e.Rel = Relation{Type: M2M, Table: j.Table(), Columns: slices.Concat(from.Columns(), to.Columns())}
	e.Ref.Rel = Relation{Type: M2M, Table: j.Table(), Columns: slices.Concat(to.Columns(), from.Columns())}
	g.logger().Debug("synthesized join", "join", name, "entity", e.Owner.Name, "edge", e.Name, "synthesized", true)
	return j
}
