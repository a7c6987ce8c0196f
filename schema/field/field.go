package field

import "errors"

// A Descriptor for field configuration.
type Descriptor struct {
	Name         string        // field name.
	Type         string        // declaration tag or type expression.
	Array        bool          // field holds a list of values.
	Required     bool          // field (or the list container) is non-null.
	ElemRequired bool          // list elements are non-null.
	Enums        []string      // enum variants.
	Fields       []*Descriptor // nested fields of a custom type.
	Default      any           // default value.
	Comment      string        // field comment.
	Err          error
}

// Builder is a chainable field declaration.
type Builder struct {
	desc *Descriptor
}

func newBuilder(name string, t Type) *Builder {
	return &Builder{desc: &Descriptor{Name: name, Type: t.String()}}
}

// ID returns a new field of the identifier kind.
func ID(name string) *Builder { return newBuilder(name, TypeID) }

// String returns a new string field.
func String(name string) *Builder { return newBuilder(name, TypeString) }

// Integer returns a new integer field.
func Integer(name string) *Builder { return newBuilder(name, TypeInteger) }

// Float returns a new float field.
func Float(name string) *Builder { return newBuilder(name, TypeFloat) }

// Boolean returns a new boolean field.
func Boolean(name string) *Builder { return newBuilder(name, TypeBoolean) }

// Date returns a new calendar date field (YYYY-MM-DD).
func Date(name string) *Builder { return newBuilder(name, TypeDate) }

// Time returns a new time-of-day field.
func Time(name string) *Builder { return newBuilder(name, TypeTime) }

// DateTime returns a new date-time field.
func DateTime(name string) *Builder { return newBuilder(name, TypeDateTime) }

// Timestamp returns a new Unix timestamp field.
func Timestamp(name string) *Builder { return newBuilder(name, TypeTimestamp) }

// Email returns a new email field.
func Email(name string) *Builder { return newBuilder(name, TypeEmail) }

// JSON returns a new JSON field.
func JSON(name string) *Builder { return newBuilder(name, TypeJSON) }

// Phone returns a new phone number field.
func Phone(name string) *Builder { return newBuilder(name, TypePhone) }

// URL returns a new URL field.
func URL(name string) *Builder { return newBuilder(name, TypeURL) }

// IPAddress returns a new IP address field.
func IPAddress(name string) *Builder { return newBuilder(name, TypeIPAddress) }

// Enum returns a new enum field with the given variants.
//
//	field.Enum("status", "ACTIVE", "ARCHIVED")
func Enum(name string, values ...string) *Builder {
	b := newBuilder(name, TypeEnum)
	return b.Values(values...)
}

// Custom returns a new custom composite field made of the given fields.
//
//	field.Custom("location",
//		field.Float("lat").Required(),
//		field.Float("long").Required(),
//	)
func Custom(name string, fields ...*Builder) *Builder {
	b := newBuilder(name, TypeCustom)
	for _, f := range fields {
		if f == nil {
			b.desc.Err = errors.Join(b.desc.Err, errors.New("field: nil nested field in custom type "+name))
			continue
		}
		b.desc.Fields = append(b.desc.Fields, f.Descriptor())
	}
	return b
}

// Of returns a new field declared by a type expression such as
// "[String!]!" or "AWSDateTime".
func Of(name, expr string) *Builder {
	return &Builder{desc: &Descriptor{Name: name, Type: expr}}
}

// Values appends enum variants.
func (b *Builder) Values(values ...string) *Builder {
	b.desc.Enums = append(b.desc.Enums, values...)
	return b
}

// Required marks the field non-null. Called before Array it applies to the
// elements, after Array to the list itself:
//
//	field.String("tags").Required().Array()  // [String!]
//	field.String("tags").Array().Required()  // [String]!
func (b *Builder) Required() *Builder {
	b.desc.Required = true
	return b
}

// Array turns the field into a list of its kind.
func (b *Builder) Array() *Builder {
	if !b.desc.Array {
		b.desc.Array = true
		b.desc.ElemRequired = b.desc.Required
		b.desc.Required = false
	}
	return b
}

// Default sets the default value of the field.
func (b *Builder) Default(v any) *Builder {
	b.desc.Default = v
	return b
}

// Comment sets the comment of the field.
func (b *Builder) Comment(c string) *Builder {
	b.desc.Comment = c
	return b
}

// Descriptor returns the field descriptor.
func (b *Builder) Descriptor() *Descriptor {
	return b.desc
}
