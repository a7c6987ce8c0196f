package gen

import (
	"fmt"

	"github.com/syssam/modelc/compiler/load"
	"github.com/syssam/modelc/schema/edge"
)

type (
	// Edge of a graph between two types.
	Edge struct {
		def *load.Edge
		// Name holds the name of the edge.
		Name string
		// Kind holds the declared (or synthesized) role of the edge.
		Kind edge.Kind
		// Type holds a reference to the type this edge is directed to.
		Type *Type
		// Owner holds the type that holds the edge.
		Owner *Type
		// RelationName disambiguates parallel edges and names join types.
		RelationName string
		// References holds the declared foreign-key field names.
		References []string
		// Required indicates a mandatory relationship.
		Required bool
		// Synthesized indicates that the edge was not declared but created
		// as the counterpart of a one-sided declaration.
		Synthesized bool
		// Ref points to the reciprocal edge on the target type.
		Ref *Edge
		// Through holds the join type of many-to-many edges.
		Through *Type
		// Rel holds the relation info of an edge.
		Rel Relation
		// State is the resolution state of the edge.
		State EdgeState
		// Counterpart records how Ref was obtained:
		// StateCounterpartMatched or StateCounterpartSynthesized.
		Counterpart EdgeState
	}

	// Relation holds the relational information for edges.
	Relation struct {
		// Type holds the relation type of the edge.
		Type Rel
		// Table holds the type storing the relation: the foreign-key
		// holder for O2O, O2M and M2O, the join type for M2M.
		Table string
		// Columns holds the relation fields in the table above. For M2M
		// edges the fields of the edge owner come first.
		Columns []string
		// foreign-key information for non-M2M edges.
		fk *ForeignKey
	}

	// ForeignKey holds the information of one foreign key: an ordered set
	// of fields referencing the identifier of another type.
	ForeignKey struct {
		// Fields are the foreign-key fields, in identifier order.
		Fields []*Field
		// Edge that is associated with this foreign-key. For owned edges it
		// is the belongs-to edge; for join types, the participant's edge.
		Edge *Edge
		// Owner is the type storing the fields.
		Owner *Type
		// RefType is the referenced type and RefFields its identifier.
		RefType   *Type
		RefFields []*Field
		// UserDefined indicates that at least one field was declared
		// explicitly and referenced by the relationship.
		UserDefined bool
	}
)

// Label returns the qualified edge name: "Owner.edge".
func (e Edge) Label() string {
	return e.Owner.Name + "." + e.Name
}

// M2M indicates if this edge is M2M edge.
func (e Edge) M2M() bool { return e.Rel.Type == M2M }

// M2O indicates if this edge is M2O edge.
func (e Edge) M2O() bool { return e.Rel.Type == M2O }

// O2M indicates if this edge is O2M edge.
func (e Edge) O2M() bool { return e.Rel.Type == O2M }

// O2O indicates if this edge is O2O edge.
func (e Edge) O2O() bool { return e.Rel.Type == O2O }

// IsOwning indicates a has-one or has-many edge.
func (e Edge) IsOwning() bool { return e.Kind.Owning() }

// OwnFK indicates if the foreign-key of this edge resides in the owner
// type, which is the case for belongs-to edges.
func (e Edge) OwnFK() bool { return e.Kind == edge.BelongsToKind }

// Unique indicates the edge points to at most one entity.
func (e Edge) Unique() bool {
	return e.Kind == edge.HasOneKind || e.Kind == edge.BelongsToKind
}

// ForeignKey returns the foreign-key of the edge.
func (e *Edge) ForeignKey() (*ForeignKey, error) {
	if e.Rel.fk != nil {
		return e.Rel.fk, nil
	}
	return nil, fmt.Errorf("foreign-key was not found for edge %q of type %s", e.Name, e.Rel.Type)
}

// Comment returns the comment of the edge.
func (e Edge) Comment() string {
	if e.def != nil {
		return e.def.Comment
	}
	return ""
}

func (e *Edge) advance(s EdgeState) {
	if s > e.State {
		e.State = s
	}
	if s == StateCounterpartMatched || s == StateCounterpartSynthesized {
		e.Counterpart = s
	}
}

// pair links two reciprocal edges.
func pair(a, b *Edge, how EdgeState) {
	a.Ref, b.Ref = b, a
	a.advance(how)
	b.advance(how)
}

// Columns returns the column names of the foreign-key fields.
func (f ForeignKey) Columns() []string {
	cols := make([]string, len(f.Fields))
	for i, fd := range f.Fields {
		cols[i] = fd.Column()
	}
	return cols
}

// Names returns the names of the foreign-key fields.
func (f ForeignKey) Names() []string {
	names := make([]string, len(f.Fields))
	for i, fd := range f.Fields {
		names[i] = fd.Name
	}
	return names
}

// EdgeState is the resolution state of an edge:
//
//	Declared → TargetResolved → CounterpartMatched|CounterpartSynthesized → Validated
type EdgeState uint

// Edge states.
const (
	StateDeclared EdgeState = iota
	StateTargetResolved
	StateCounterpartMatched
	StateCounterpartSynthesized
	StateValidated
)

// String returns the state name.
func (s EdgeState) String() string {
	switch s {
	case StateDeclared:
		return "Declared"
	case StateTargetResolved:
		return "TargetResolved"
	case StateCounterpartMatched:
		return "CounterpartMatched"
	case StateCounterpartSynthesized:
		return "CounterpartSynthesized"
	case StateValidated:
		return "Validated"
	default:
		return "Unknown"
	}
}

// Rel is a relation type of an edge.
type Rel int

// Relation types.
const (
	Unk Rel = iota // Unknown.
	O2O            // One to one / has one.
	O2M            // One to many / has many.
	M2O            // Many to one (inverse perspective for O2M).
	M2M            // Many to many.
)

// String returns the relation name.
func (r Rel) String() string {
	s := "Unknown"
	switch r {
	case O2O:
		s = "O2O"
	case O2M:
		s = "O2M"
	case M2O:
		s = "M2O"
	case M2M:
		s = "M2M"
	}
	return s
}
