package gen

import (
	"regexp"
	"slices"

	"github.com/syssam/modelc"
	"github.com/syssam/modelc/compiler/load"
	"github.com/syssam/modelc/schema/field"
)

var fieldName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// NewType creates a type from the schema declaration and resolves its
// fields: every declared type expression becomes a concrete TypeInfo, enum
// variants and defaults are checked, and the surrogate identifier is
// synthesized when the declaration does not carry one. Relationships are
// resolved later by the graph, since they need every type.
func NewType(c *Config, schema *load.Schema) (*Type, error) {
	if c == nil {
		c = &Config{}
	}
	typ := &Type{
		Config:  c,
		schema:  schema,
		Name:    schema.Name,
		Comment: schema.Comment,
		Fields:  make([]*Field, 0, len(schema.Fields)+1),
		fields:  make(map[string]*Field, len(schema.Fields)+1),
	}
	names := make(map[string]bool, len(schema.Fields)+len(schema.Edges))
	for _, f := range schema.Fields {
		if err := typ.checkName(names, f.Name); err != nil {
			return nil, err
		}
		tf, err := typ.newField(f, f.Name)
		if err != nil {
			return nil, err
		}
		tf.UserDefined = true
		typ.addField(tf)
	}
	for _, e := range schema.Edges {
		if err := typ.checkName(names, e.Name); err != nil {
			return nil, err
		}
	}
	if err := typ.resolveID(); err != nil {
		return nil, err
	}
	for _, idx := range schema.Indexes {
		typ.Indexes = append(typ.Indexes, &Index{
			Name:   idx.Name,
			Unique: idx.Unique,
			Fields: slices.Clone(idx.Fields),
		})
	}
	return typ, nil
}

// checkName checks that a field or edge name is an identifier that is not
// taken yet. Fields and edges share one namespace.
func (t *Type) checkName(names map[string]bool, name string) error {
	switch {
	case name == "":
		return modelc.NewDeclarationError(modelc.ErrInvalidFieldName, t.Name, "", "field and relationship names cannot be empty")
	case !fieldName.MatchString(name):
		return modelc.NewDeclarationError(modelc.ErrInvalidFieldName, t.Name, name, "names must be identifiers")
	case names[name]:
		return modelc.NewDeclarationError(modelc.ErrDuplicateFieldName, t.Name, name, "name is declared more than once")
	}
	names[name] = true
	return nil
}

// newField resolves one declared field. The path is the dotted name used
// in errors for nested fields of custom types.
func (t *Type) newField(f *load.Field, path string) (*Field, error) {
	expr, err := field.ParseExpr(f.Type)
	if err != nil {
		return nil, modelc.NewDeclarationError(modelc.ErrUnknownScalarKind, t.Name, path, "%v", err)
	}
	kind, ok := field.ParseType(expr.Tag)
	if !ok {
		return nil, modelc.NewDeclarationError(modelc.ErrUnknownScalarKind, t.Name, path, "unknown type %q", expr.Tag)
	}
	array := f.Array || expr.Array
	required := f.Required || expr.Required
	elemRequired := array && (f.ElemRequired || expr.ElemRequired)
	tf := &Field{
		def:          f,
		Name:         f.Name,
		Type:         &field.TypeInfo{Type: kind},
		Array:        array,
		Optional:     !required,
		Nillable:     !required,
		ElemNillable: array && !elemRequired,
		Comment:      f.Comment,
	}
	switch kind {
	case field.TypeEnum:
		tf.Type.Enums = variants(f.Enums)
		if len(tf.Type.Enums) == 0 {
			return nil, modelc.NewDeclarationError(modelc.ErrEmptyEnumVariantSet, t.Name, path, "enum must declare at least one value")
		}
	case field.TypeCustom:
		if len(f.Fields) == 0 {
			return nil, modelc.NewDeclarationError(modelc.ErrEmptyCustomType, t.Name, path, "custom type must declare at least one field")
		}
		nested := make(map[string]bool, len(f.Fields))
		for _, nf := range f.Fields {
			npath := path + "." + nf.Name
			switch {
			case nf.Name == "":
				return nil, modelc.NewDeclarationError(modelc.ErrInvalidFieldName, t.Name, path, "nested field names cannot be empty")
			case nested[nf.Name]:
				return nil, modelc.NewDeclarationError(modelc.ErrDuplicateFieldName, t.Name, npath, "name is declared more than once")
			}
			nested[nf.Name] = true
			sub, err := t.newField(nf, npath)
			if err != nil {
				return nil, err
			}
			sub.typ = t
			sub.UserDefined = true
			tf.Fields = append(tf.Fields, sub)
		}
	}
	if f.Default != nil {
		if kind == field.TypeCustom {
			return nil, modelc.NewDeclarationError(modelc.ErrInvalidDefaultValue, t.Name, path, "custom types do not take defaults")
		}
		v, err := field.NormalizeDefault(tf.Type, array, f.Default)
		if err != nil {
			return nil, modelc.NewDeclarationError(modelc.ErrInvalidDefaultValue, t.Name, path, "%v", err)
		}
		tf.Default = v
	}
	return tf, nil
}

// variants returns the enum values in declaration order, without empty and
// repeated entries.
func variants(values []string) []string {
	var (
		out  = make([]string, 0, len(values))
		seen = make(map[string]bool, len(values))
	)
	for _, v := range values {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

// resolveID sets the identifier of the type. An explicit identifier is kept
// as declared and checked once the graph is complete. Otherwise, a declared
// field with the identifier name is used, or a surrogate is synthesized and
// placed first.
func (t *Type) resolveID() error {
	name := t.idField()
	if len(t.schema.Identifier) > 0 && !slices.Equal(t.schema.Identifier, []string{name}) {
		t.Identifier = slices.Clone(t.schema.Identifier)
		t.ID = make([]*Field, len(t.Identifier))
		for i, n := range t.Identifier {
			t.ID[i] = t.fields[n]
		}
		return nil
	}
	t.Identifier = []string{name}
	if f, ok := t.fields[name]; ok {
		if f.Optional {
			return modelc.NewDeclarationError(modelc.ErrInvalidIdentifierField, t.Name, name, "identifier field cannot be optional")
		}
		t.ID = []*Field{f}
		return nil
	}
	id := &Field{
		def:  &load.Field{Name: name, Type: t.idType().Type.String(), Required: true},
		typ:  t,
		Name: name,
		Type: t.idType().Clone(),
	}
	t.Fields = slices.Insert(t.Fields, 0, id)
	t.fields[name] = id
	t.ID = []*Field{id}
	return nil
}

// =============================================================================
// Field methods
// =============================================================================

// IsID reports whether the field is a component of the type identifier.
func (f Field) IsID() bool {
	if f.typ == nil {
		return false
	}
	return slices.Contains(f.typ.Identifier, f.Name)
}

// HasDefault reports whether the field declares a default value.
func (f Field) HasDefault() bool { return f.Default != nil }

// IsEnum reports whether the field is an enum.
func (f Field) IsEnum() bool { return f.Type != nil && f.Type.Type == field.TypeEnum }

// IsCustom reports whether the field is a composite of nested fields.
func (f Field) IsCustom() bool { return f.Type != nil && f.Type.Type == field.TypeCustom }

// EnumValues returns the enum variants of the field.
func (f Field) EnumValues() []string {
	if !f.IsEnum() {
		return nil
	}
	return f.Type.Enums
}
