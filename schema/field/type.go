package field

import (
	"fmt"
	"strings"
)

// A Type represents a scalar kind of a field.
type Type uint8

// List of scalar kinds. The set is closed; consumers switch over it
// exhaustively.
const (
	TypeInvalid Type = iota
	TypeID
	TypeString
	TypeInteger
	TypeFloat
	TypeBoolean
	TypeDate
	TypeTime
	TypeDateTime
	TypeTimestamp
	TypeEmail
	TypeJSON
	TypePhone
	TypeURL
	TypeIPAddress
	TypeEnum
	TypeCustom
	TypeRef
	endTypes
)

var typeNames = [...]string{
	TypeInvalid:   "invalid",
	TypeID:        "id",
	TypeString:    "string",
	TypeInteger:   "integer",
	TypeFloat:     "float",
	TypeBoolean:   "boolean",
	TypeDate:      "date",
	TypeTime:      "time",
	TypeDateTime:  "datetime",
	TypeTimestamp: "timestamp",
	TypeEmail:     "email",
	TypeJSON:      "json",
	TypePhone:     "phone",
	TypeURL:       "url",
	TypeIPAddress: "ipaddress",
	TypeEnum:      "enum",
	TypeCustom:    "custom",
	TypeRef:       "reference",
}

// String returns the canonical tag of the type.
func (t Type) String() string {
	if t < endTypes {
		return typeNames[t]
	}
	return typeNames[TypeInvalid]
}

// Valid reports if the given type if known type.
func (t Type) Valid() bool {
	return t > TypeInvalid && t < endTypes
}

// Scalar reports whether the type holds a single storable value: every valid
// kind except custom composites and references.
func (t Type) Scalar() bool {
	return t.Valid() && t != TypeCustom && t != TypeRef
}

// Compatible reports whether values of t can be stored in a field of kind o.
// Identifiers are strings, so the two are interchangeable.
func (t Type) Compatible(o Type) bool {
	if t == o {
		return true
	}
	str := func(t Type) bool { return t == TypeID || t == TypeString }
	return str(t) && str(o)
}

// tags maps every accepted (lower-cased) declaration tag to its kind. It
// covers the builder vocabulary and the AppSync scalar names. References are
// produced by relationships and cannot be declared directly.
var tags = map[string]Type{
	"id":           TypeID,
	"string":       TypeString,
	"int":          TypeInteger,
	"integer":      TypeInteger,
	"float":        TypeFloat,
	"bool":         TypeBoolean,
	"boolean":      TypeBoolean,
	"date":         TypeDate,
	"awsdate":      TypeDate,
	"time":         TypeTime,
	"awstime":      TypeTime,
	"datetime":     TypeDateTime,
	"awsdatetime":  TypeDateTime,
	"timestamp":    TypeTimestamp,
	"awstimestamp": TypeTimestamp,
	"email":        TypeEmail,
	"awsemail":     TypeEmail,
	"json":         TypeJSON,
	"awsjson":      TypeJSON,
	"phone":        TypePhone,
	"awsphone":     TypePhone,
	"url":          TypeURL,
	"awsurl":       TypeURL,
	"ipaddress":    TypeIPAddress,
	"awsipaddress": TypeIPAddress,
	"enum":         TypeEnum,
	"custom":       TypeCustom,
	"customtype":   TypeCustom,
}

// ParseType returns the kind of a declaration tag. Tags are matched
// case-insensitively.
func ParseType(tag string) (Type, bool) {
	t, ok := tags[strings.ToLower(strings.TrimSpace(tag))]
	return t, ok
}

// Expr is a parsed type expression. A bare tag such as "String" has no
// modifiers; "[String!]!" is a required array of required strings.
type Expr struct {
	Tag          string
	Array        bool
	Required     bool
	ElemRequired bool
}

// ParseExpr parses a type expression in the GraphQL list notation.
func ParseExpr(s string) (Expr, error) {
	var e Expr
	s = strings.TrimSpace(s)
	if rest, ok := strings.CutSuffix(s, "!"); ok {
		e.Required = true
		s = strings.TrimSpace(rest)
	}
	if strings.HasPrefix(s, "[") {
		inner, ok := strings.CutSuffix(s[1:], "]")
		if !ok {
			return Expr{}, fmt.Errorf("field: unbalanced brackets in type %q", s)
		}
		e.Array = true
		inner = strings.TrimSpace(inner)
		if rest, ok := strings.CutSuffix(inner, "!"); ok {
			e.ElemRequired = true
			inner = strings.TrimSpace(rest)
		}
		s = inner
	}
	if s == "" || strings.ContainsAny(s, "[]!") {
		return Expr{}, fmt.Errorf("field: invalid type expression %q", s)
	}
	e.Tag = s
	return e, nil
}

// TypeInfo holds the resolved type of a field.
type TypeInfo struct {
	Type  Type
	Enums []string  // ordered variants of TypeEnum
	Ref   string    // referenced entity of TypeRef
	Elem  *TypeInfo // storage type of the referenced identifier field of TypeRef
}

// String returns the display form of the type: "enum(A|B)",
// "reference(List)" or the bare tag.
func (t *TypeInfo) String() string {
	if t == nil {
		return TypeInvalid.String()
	}
	switch t.Type {
	case TypeEnum:
		return "enum(" + strings.Join(t.Enums, "|") + ")"
	case TypeRef:
		return "reference(" + t.Ref + ")"
	default:
		return t.Type.String()
	}
}

// Storage returns the type used to store the value. For references this is
// the kind of the referenced identifier field.
func (t *TypeInfo) Storage() *TypeInfo {
	for t != nil && t.Type == TypeRef && t.Elem != nil {
		t = t.Elem
	}
	return t
}

// Clone returns a deep copy of the type.
func (t *TypeInfo) Clone() *TypeInfo {
	if t == nil {
		return nil
	}
	c := *t
	if t.Enums != nil {
		c.Enums = append([]string(nil), t.Enums...)
	}
	c.Elem = t.Elem.Clone()
	return &c
}
