package gen

import (
	"slices"

	"github.com/syssam/modelc"
	"github.com/syssam/modelc/compiler/load"
	"github.com/syssam/modelc/schema/edge"
	"github.com/syssam/modelc/schema/field"
)

// resolveEdges runs the relationship resolver over the whole graph. It is
// single-threaded: counterpart matching needs every type.
func (g *Graph) resolveEdges() error {
	for _, t := range g.Nodes {
		for _, d := range t.schema.Edges {
			e, err := g.newEdge(t, d)
			if err != nil {
				return err
			}
			t.Edges = append(t.Edges, e)
		}
	}
	for _, t := range g.Nodes {
		if err := checkAmbiguity(t); err != nil {
			return err
		}
	}
	// Edges synthesized below are appended to the types while iterating.
	// Only declared edges take part in matching.
	for _, t := range g.Nodes {
		for _, e := range declared(t.Edges) {
			if e.IsOwning() && e.Ref == nil {
				if err := g.matchOwning(e); err != nil {
					return err
				}
			}
		}
	}
	for _, t := range g.Nodes {
		for _, e := range declared(t.Edges) {
			if e.Kind == edge.BelongsToKind && e.Ref == nil {
				if err := g.matchBelongsTo(e); err != nil {
					return err
				}
			}
		}
	}
	for _, t := range g.Nodes {
		for _, e := range t.Edges {
			if e.OwnFK() {
				if err := g.setupFK(e); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// newEdge resolves the target of one declared edge.
func (g *Graph) newEdge(t *Type, d *load.Edge) (*Edge, error) {
	kind, err := edge.ParseKind(d.Kind)
	if err != nil {
		return nil, modelc.NewDeclarationError(modelc.ErrUnknownRelationshipKind, t.Name, d.Name, "%v", err)
	}
	target, ok := g.nodes[d.Target]
	if !ok {
		return nil, modelc.NewRelationshipError(modelc.ErrUnknownRelationshipTarget, t.Name, d.Name, d.Target, "entity %q is not declared", d.Target)
	}
	if kind == edge.ManyToManyKind && len(d.References) > 0 {
		return nil, modelc.NewRelationshipError(modelc.ErrIncompatibleRelationshipPairing, t.Name, d.Name, d.Target, "many-to-many edges do not take references")
	}
	e := &Edge{
		def:          d,
		Name:         d.Name,
		Kind:         kind,
		Type:         target,
		Owner:        t,
		RelationName: d.RelationName,
		References:   slices.Clone(d.References),
		Required:     d.Required,
	}
	e.advance(StateTargetResolved)
	return e, nil
}

// declared returns a snapshot of the declared edges.
func declared(edges []*Edge) []*Edge {
	out := make([]*Edge, 0, len(edges))
	for _, e := range edges {
		if !e.Synthesized {
			out = append(out, e)
		}
	}
	return out
}

// checkAmbiguity requires distinct relation names on parallel edges: when
// a type declares more than one edge to the same target, whatever their
// kinds, every one of them must be named and the names must differ.
// Self-referencing edges are declared in pairs on the same type, so each
// name may appear twice there.
func checkAmbiguity(t *Type) error {
	var (
		order  []string
		groups = make(map[string][]*Edge)
	)
	for _, e := range t.Edges {
		if _, ok := groups[e.Type.Name]; !ok {
			order = append(order, e.Type.Name)
		}
		groups[e.Type.Name] = append(groups[e.Type.Name], e)
	}
	for _, target := range order {
		edges := groups[target]
		if len(edges) < 2 {
			continue
		}
		seen := make(map[string][]*Edge, len(edges))
		for _, e := range edges {
			if e.RelationName == "" {
				return modelc.NewRelationshipError(modelc.ErrAmbiguousRelationshipName, t.Name, e.Name, e.Type.Name,
					"%d edges to %s require distinct relation names", len(edges), e.Type.Name)
			}
			prev := seen[e.RelationName]
			seen[e.RelationName] = append(prev, e)
			switch {
			case len(prev) == 0:
			case len(prev) == 1 && target == t.Name && counterparts(prev[0], e):
			default:
				return modelc.NewRelationshipError(modelc.ErrAmbiguousRelationshipName, t.Name, e.Name, e.Type.Name,
					"relation name %q is used by more than one edge to %s", e.RelationName, e.Type.Name)
			}
		}
	}
	return nil
}

// counterparts reports whether two edges of a self-referencing type can be
// the two sides of one relationship.
func counterparts(a, b *Edge) bool {
	switch {
	case a.Kind == edge.ManyToManyKind:
		return b.Kind == edge.ManyToManyKind
	case a.Kind == edge.BelongsToKind:
		return b.Kind.Owning()
	default:
		return b.Kind == edge.BelongsToKind
	}
}

// candidates returns the declared, unpaired edges of e's target that point
// back to e's owner.
func candidates(e *Edge) []*Edge {
	var out []*Edge
	for _, c := range e.Type.Edges {
		if c != e && c.Ref == nil && !c.Synthesized && c.Type == e.Owner {
			out = append(out, c)
		}
	}
	return out
}

// matchOwning finds or synthesizes the belongs-to counterpart of a has-one
// or has-many edge.
func (g *Graph) matchOwning(e *Edge) error {
	var (
		cands     = candidates(e)
		same, bts []*Edge
	)
	for _, c := range cands {
		if c.Kind == edge.BelongsToKind {
			bts = append(bts, c)
		}
		if c.RelationName == e.RelationName {
			same = append(same, c)
		}
	}
	var match []*Edge
	for _, c := range same {
		if c.Kind == edge.BelongsToKind {
			match = append(match, c)
		}
	}
	switch {
	case len(match) == 1:
		return merge(e, match[0])
	case len(match) > 1:
		return modelc.NewRelationshipError(modelc.ErrAmbiguousRelationshipName, e.Owner.Name, e.Name, e.Type.Name,
			"%d belongs-to edges on %s match relation name %q", len(match), e.Type.Name, e.RelationName)
	}
	for _, c := range same {
		if e.RelationName != "" || c.IsOwning() {
			return modelc.NewRelationshipError(modelc.ErrIncompatibleRelationshipPairing, e.Owner.Name, e.Name, e.Type.Name,
				"%s cannot be paired with %s edge %s", e.Kind, c.Kind, c.Label())
		}
	}
	if len(bts) == 1 && countOwning(e.Owner, e.Type) == 1 {
		return modelc.NewRelationshipError(modelc.ErrIncompatibleRelationshipPairing, e.Owner.Name, e.Name, e.Type.Name,
			"relation name %q does not match %q of %s", e.RelationName, bts[0].RelationName, bts[0].Label())
	}
	base := lowerFirst(e.Owner.Name)
	if e.RelationName != "" {
		base = lowerFirst(e.RelationName)
	}
	c := &Edge{
		Name:         e.Type.uniqueName(base),
		Kind:         edge.BelongsToKind,
		Type:         e.Owner,
		Owner:        e.Type,
		RelationName: e.RelationName,
		References:   slices.Clone(e.References),
		Synthesized:  true,
	}
	c.advance(StateTargetResolved)
	e.Type.Edges = append(e.Type.Edges, c)
	pair(e, c, StateCounterpartSynthesized)
	g.logger().Debug("synthesized counterpart", "entity", c.Owner.Name, "edge", c.Name, "kind", c.Kind, "synthesized", true)
	return nil
}

// matchBelongsTo synthesizes the has-many counterpart of a belongs-to edge
// that no owning edge claimed.
func (g *Graph) matchBelongsTo(c *Edge) error {
	for _, e := range c.Type.Edges {
		if e.Kind == edge.ManyToManyKind && e.Type == c.Owner && e.RelationName != "" && e.RelationName == c.RelationName {
			return modelc.NewRelationshipError(modelc.ErrIncompatibleRelationshipPairing, c.Owner.Name, c.Name, c.Type.Name,
				"belongsTo cannot be paired with manyToMany edge %s", e.Label())
		}
	}
	e := &Edge{
		Name:         c.Type.uniqueName(lowerFirst(plural(c.Owner.Name))),
		Kind:         edge.HasManyKind,
		Type:         c.Owner,
		Owner:        c.Type,
		RelationName: c.RelationName,
		Synthesized:  true,
	}
	e.advance(StateTargetResolved)
	c.Type.Edges = append(c.Type.Edges, e)
	pair(e, c, StateCounterpartSynthesized)
	g.logger().Debug("synthesized counterpart", "entity", e.Owner.Name, "edge", e.Name, "kind", e.Kind, "synthesized", true)
	return nil
}

// countOwning counts the declared owning edges from t to target.
func countOwning(t, target *Type) (n int) {
	for _, e := range t.Edges {
		if !e.Synthesized && e.IsOwning() && e.Type == target {
			n++
		}
	}
	return n
}

// merge pairs an owning edge with its declared belongs-to counterpart.
// Both sides may name the foreign-key fields, but they must agree.
func merge(e, c *Edge) error {
	switch {
	case len(e.References) == 0:
	case len(c.References) == 0:
		c.References = slices.Clone(e.References)
	case !slices.Equal(e.References, c.References):
		return modelc.NewRelationshipError(modelc.ErrIncompatibleRelationshipPairing, e.Owner.Name, e.Name, e.Type.Name,
			"references %v do not match %v of %s", e.References, c.References, c.Label())
	}
	pair(e, c, StateCounterpartMatched)
	return nil
}

// setupFK determines the foreign-key fields of a belongs-to edge, creating
// the ones that are not declared, and sets the relation info of both sides.
func (g *Graph) setupFK(c *Edge) error {
	var (
		holder, owner = c.Owner, c.Type
		e             = c.Ref
		refs          = c.References
	)
	if len(refs) == 0 {
		for _, id := range owner.Identifier {
			refs = append(refs, fkName(c.Name, id))
		}
	}
	nillable := !(g.StrictForeignKeys && (c.Required || e.Required))
	fk := &ForeignKey{
		Edge:      c,
		Owner:     holder,
		RefType:   owner,
		RefFields: owner.ID,
	}
	for i, name := range refs {
		if _, ok := holder.EdgeBy(name); ok {
			return modelc.NewRelationshipError(modelc.ErrForeignKeyTypeConflict, holder.Name, c.Name, owner.Name,
				"foreign-key field %q is the name of a relationship", name)
		}
		f, ok := holder.Field(name)
		switch {
		case !ok:
			f = &Field{
				def:      &load.Field{Name: name, Type: field.TypeRef.String()},
				Name:     name,
				Type:     &field.TypeInfo{Type: field.TypeRef, Ref: owner.Name},
				Optional: true,
			}
			holder.addField(f)
			g.logger().Debug("synthesized foreign key", "entity", holder.Name, "field", name, "references", owner.Name, "synthesized", true)
		case f.Array || f.IsCustom():
			return modelc.NewRelationshipError(modelc.ErrForeignKeyTypeConflict, holder.Name, c.Name, owner.Name,
				"foreign-key field %q must hold a single scalar, not %s", name, f.Kind())
		default:
			if f.UserDefined {
				fk.UserDefined = true
			}
			if len(refs) == len(owner.ID) && owner.ID[i] != nil && f.Type.Type != field.TypeRef {
				if want := owner.ID[i].Type.Storage().Type; want != field.TypeRef && !f.Type.Type.Compatible(want) {
					return modelc.NewRelationshipError(modelc.ErrForeignKeyTypeConflict, holder.Name, c.Name, owner.Name,
						"field %q is %s, but %s.%s is %s", name, f.Type, owner.Name, owner.ID[i].Name, want)
				}
			}
		}
		f.Nillable = nillable
		if f.fk == nil {
			f.fk = fk
		}
		fk.Fields = append(fk.Fields, f)
	}
	c.References = refs
	holder.ForeignKeys = append(holder.ForeignKeys, fk)
	c.Rel = Relation{Table: holder.Table(), Columns: fk.Columns(), fk: fk}
	e.Rel = Relation{Table: holder.Table(), Columns: fk.Columns(), fk: fk}
	if e.Kind == edge.HasOneKind {
		c.Rel.Type, e.Rel.Type = O2O, O2O
		holder.Indexes = append(holder.Indexes, &Index{Unique: true, Fields: fk.Names()})
	} else {
		c.Rel.Type, e.Rel.Type = M2O, O2M
	}
	return nil
}
