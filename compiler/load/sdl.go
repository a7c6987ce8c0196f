package load

import (
	"fmt"
	"strconv"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
)

// Relationship directives and the edge kinds they declare.
var relDirectives = []struct{ name, kind string }{
	{"hasOne", "hasOne"},
	{"hasMany", "hasMany"},
	{"belongsTo", "belongsTo"},
	{"manyToMany", "manyToMany"},
}

// ParseSDL parses a GraphQL schema document in the managed-backend dialect:
//
//	type List @model {
//	  title: String!
//	  todos: [Todo] @hasMany
//	}
//
// Object types with @model become entities. Other object types are custom
// types and enums become enum fields. Relationship fields carry @hasOne,
// @hasMany, @belongsTo or @manyToMany(relationName:), with optional
// references (or fields) arguments naming the foreign keys. @primaryKey
// (sortKeyFields:) sets the identifier, @index(name:, sortKeyFields:) adds a
// secondary index and @default(value:) a default. Directives are not checked
// against declarations, so documents need no directive prelude.
func ParseSDL(src, filename string) ([]*Schema, error) {
	doc, err := parser.ParseSchema(&ast.Source{Name: filename, Input: src})
	if err != nil {
		return nil, fmt.Errorf("load: parse %s: %w", filename, err)
	}
	p := &sdl{
		filename: filename,
		enums:    make(map[string]*ast.Definition),
		customs:  make(map[string]*ast.Definition),
	}
	for _, def := range doc.Definitions {
		switch {
		case def.Kind == ast.Enum:
			p.enums[def.Name] = def
		case def.Kind == ast.Object && def.Directives.ForName("model") == nil:
			p.customs[def.Name] = def
		}
	}
	var schemas []*Schema
	for _, def := range doc.Definitions {
		if def.Kind != ast.Object || def.Directives.ForName("model") == nil {
			continue
		}
		s, err := p.model(def)
		if err != nil {
			return nil, err
		}
		schemas = append(schemas, s)
	}
	return schemas, nil
}

type sdl struct {
	filename string
	enums    map[string]*ast.Definition
	customs  map[string]*ast.Definition
}

func (p *sdl) pos(pos *ast.Position) string {
	if pos == nil {
		return p.filename
	}
	return fmt.Sprintf("%s:%d", p.filename, pos.Line)
}

func (p *sdl) model(def *ast.Definition) (*Schema, error) {
	s := &Schema{
		Name:    def.Name,
		Pos:     p.pos(def.Position),
		Comment: def.Description,
	}
	for _, fd := range def.Fields {
		if e := p.edge(fd); e != nil {
			s.Edges = append(s.Edges, e)
			continue
		}
		f, err := p.field(fd.Name, fd.Type, fd.Directives, nil)
		if err != nil {
			return nil, fmt.Errorf("load: %s: type %s: %w", p.pos(fd.Position), def.Name, err)
		}
		f.Comment = fd.Description
		s.Fields = append(s.Fields, f)
		if d := fd.Directives.ForName("primaryKey"); d != nil {
			s.Identifier = append([]string{fd.Name}, stringList(d.Arguments.ForName("sortKeyFields"))...)
		}
		for _, d := range fd.Directives {
			if d.Name != "index" {
				continue
			}
			s.Indexes = append(s.Indexes, &Index{
				Name:   stringArg(d.Arguments.ForName("name")),
				Fields: append([]string{fd.Name}, stringList(d.Arguments.ForName("sortKeyFields"))...),
			})
		}
	}
	return s, nil
}

// edge returns the relationship declared by the field, if any.
func (p *sdl) edge(fd *ast.FieldDefinition) *Edge {
	for _, rd := range relDirectives {
		d := fd.Directives.ForName(rd.name)
		if d == nil {
			continue
		}
		target := fd.Type.NamedType
		if fd.Type.Elem != nil {
			target = fd.Type.Elem.NamedType
		}
		refs := stringList(d.Arguments.ForName("references"))
		if len(refs) == 0 {
			refs = stringList(d.Arguments.ForName("fields"))
		}
		return &Edge{
			Name:         fd.Name,
			Kind:         rd.kind,
			Target:       target,
			References:   refs,
			RelationName: stringArg(d.Arguments.ForName("relationName")),
			Required:     fd.Type.NonNull,
			Comment:      fd.Description,
		}
	}
	return nil
}

// field converts a non-relationship field. seen holds the custom types being
// expanded, to reject recursive custom types.
func (p *sdl) field(name string, t *ast.Type, dirs ast.DirectiveList, seen map[string]bool) (*Field, error) {
	f := &Field{Name: name, Required: t.NonNull}
	named := t.NamedType
	if t.Elem != nil {
		f.Array = true
		f.ElemRequired = t.Elem.NonNull
		named = t.Elem.NamedType
	}
	switch {
	case p.enums[named] != nil:
		f.Type = "enum"
		for _, v := range p.enums[named].EnumValues {
			f.Enums = append(f.Enums, v.Name)
		}
	case p.customs[named] != nil:
		if seen[named] {
			return nil, fmt.Errorf("field %q: custom type %s contains itself", name, named)
		}
		inner := make(map[string]bool, len(seen)+1)
		for k := range seen {
			inner[k] = true
		}
		inner[named] = true
		f.Type = "custom"
		for _, nd := range p.customs[named].Fields {
			nf, err := p.field(nd.Name, nd.Type, nd.Directives, inner)
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", name, err)
			}
			f.Fields = append(f.Fields, nf)
		}
	default:
		f.Type = named
	}
	if d := dirs.ForName("default"); d != nil {
		if arg := d.Arguments.ForName("value"); arg != nil {
			f.Default = value(arg.Value)
		}
	}
	return f, nil
}

func stringArg(arg *ast.Argument) string {
	if arg == nil || arg.Value == nil {
		return ""
	}
	return arg.Value.Raw
}

// stringList reads a list argument; a single value is a list of one.
func stringList(arg *ast.Argument) []string {
	if arg == nil || arg.Value == nil {
		return nil
	}
	if arg.Value.Kind != ast.ListValue {
		return []string{arg.Value.Raw}
	}
	out := make([]string, 0, len(arg.Value.Children))
	for _, c := range arg.Value.Children {
		out = append(out, c.Value.Raw)
	}
	return out
}

func value(v *ast.Value) any {
	if v == nil {
		return nil
	}
	switch v.Kind {
	case ast.IntValue:
		if i, err := strconv.ParseInt(v.Raw, 10, 64); err == nil {
			return i
		}
	case ast.FloatValue:
		if f, err := strconv.ParseFloat(v.Raw, 64); err == nil {
			return f
		}
	case ast.BooleanValue:
		return v.Raw == "true"
	case ast.NullValue:
		return nil
	case ast.ListValue:
		out := make([]any, 0, len(v.Children))
		for _, c := range v.Children {
			out = append(out, value(c.Value))
		}
		return out
	}
	return v.Raw
}
