package edge

import (
	"fmt"
	"strings"
)

// Kind is the declared role of a relationship edge.
type Kind uint8

// Relationship kinds.
const (
	KindInvalid    Kind = iota
	HasOneKind          // to-one, owning
	HasManyKind         // to-many, owning
	BelongsToKind       // to-one, owned; holds the foreign key
	ManyToManyKind      // to-many on both sides, backed by a join entity
)

var kindNames = [...]string{
	KindInvalid:    "invalid",
	HasOneKind:     "hasOne",
	HasManyKind:    "hasMany",
	BelongsToKind:  "belongsTo",
	ManyToManyKind: "manyToMany",
}

// String returns the declaration keyword of the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return kindNames[KindInvalid]
}

// Owning reports whether the kind declares the target directly.
func (k Kind) Owning() bool { return k == HasOneKind || k == HasManyKind }

// ParseKind parses a declaration keyword. It accepts camel, snake and kebab
// spellings ("hasMany", "has_many", "has-many").
func ParseKind(s string) (Kind, error) {
	norm := strings.NewReplacer("_", "", "-", "", " ", "").Replace(strings.ToLower(s))
	switch norm {
	case "hasone":
		return HasOneKind, nil
	case "hasmany":
		return HasManyKind, nil
	case "belongsto":
		return BelongsToKind, nil
	case "manytomany":
		return ManyToManyKind, nil
	}
	return KindInvalid, fmt.Errorf("edge: unknown relationship kind %q", s)
}

// A Descriptor for edge configuration.
type Descriptor struct {
	Name         string   // edge name.
	Kind         Kind     // declared role.
	Target       string   // target entity name.
	References   []string // foreign-key field names on the owned side.
	RelationName string   // disambiguates parallel edges and names join entities.
	Required     bool     // the relationship is mandatory in the business sense.
	Comment      string   // edge comment.
}

// Builder is a chainable edge declaration.
type Builder struct {
	desc *Descriptor
}

func newBuilder(k Kind, name, target string) *Builder {
	return &Builder{desc: &Descriptor{Name: name, Kind: k, Target: target}}
}

// HasOne declares an owning to-one edge. The target entity holds the
// foreign key.
//
//	edge.HasOne("steeringWheel", "SteeringWheel")
func HasOne(name, target string) *Builder { return newBuilder(HasOneKind, name, target) }

// HasMany declares an owning to-many edge.
//
//	edge.HasMany("todos", "Todo")
func HasMany(name, target string) *Builder { return newBuilder(HasManyKind, name, target) }

// BelongsTo declares the owned side of a to-one or to-many edge. The
// declaring entity holds the foreign key.
//
//	edge.BelongsTo("car", "Car")
func BelongsTo(name, target string) *Builder { return newBuilder(BelongsToKind, name, target) }

// ManyToMany declares one side of a many-to-many edge.
//
//	edge.ManyToMany("toppings", "Topping").RelationName("PizzaTopping")
func ManyToMany(name, target string) *Builder { return newBuilder(ManyToManyKind, name, target) }

// References sets the foreign-key field names, in identifier order.
func (b *Builder) References(fields ...string) *Builder {
	b.desc.References = append(b.desc.References, fields...)
	return b
}

// RelationName sets the relation name.
func (b *Builder) RelationName(name string) *Builder {
	b.desc.RelationName = name
	return b
}

// Required marks the relationship as mandatory. It does not make the
// foreign key non-null unless strict foreign keys are enabled.
func (b *Builder) Required() *Builder {
	b.desc.Required = true
	return b
}

// Comment sets the comment of the edge.
func (b *Builder) Comment(c string) *Builder {
	b.desc.Comment = c
	return b
}

// Descriptor returns the edge descriptor.
func (b *Builder) Descriptor() *Descriptor {
	return b.desc
}
