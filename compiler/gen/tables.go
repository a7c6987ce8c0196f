package gen

import (
	"fmt"
	"strings"

	"github.com/syssam/modelc/dialect/sql/schema"
	"github.com/syssam/modelc/schema/field"
)

// Tables returns the schema definitions of SQL tables from the graph: one
// per declared type in declaration order, then one per join type in name
// order. The result depends only on the graph.
func (g *Graph) Tables() ([]*schema.Table, error) {
	var (
		types  = g.Types()
		tables = make([]*schema.Table, 0, len(types))
		byType = make(map[*Type]*schema.Table, len(types))
	)
	for _, t := range types {
		table := schema.NewTable(t.Table())
		table.Join = t.Join
		table.Comment = t.Comment
		for _, f := range t.Fields {
			table.AddColumn(f.TableColumn())
		}
		for _, id := range t.ID {
			c, ok := table.Column(id.Column())
			if !ok {
				return nil, fmt.Errorf("gen: missing identifier column %q of %s", id.Column(), t.Name)
			}
			table.AddPrimary(c)
		}
		for _, idx := range t.Indexes {
			cols := make([]string, len(idx.Fields))
			for i, name := range idx.Fields {
				f, ok := t.Field(name)
				if !ok {
					return nil, fmt.Errorf("gen: unknown index field %q of %s", name, t.Name)
				}
				cols[i] = f.Column()
			}
			name := idx.Name
			if name == "" {
				name = indexName(table.Name, cols, idx.Unique)
			}
			table.AddIndex(name, idx.Unique, cols)
		}
		tables = append(tables, table)
		byType[t] = table
	}
	// Foreign keys are set in a second pass, since references may point to
	// tables that come later.
	for _, t := range types {
		table := byType[t]
		for _, fk := range t.ForeignKeys {
			ref := byType[fk.RefType]
			sfk := &schema.ForeignKey{
				Symbol:   fkSymbol(table.Name, fk.Columns()),
				RefTable: ref,
				OnDelete: onDelete(t, fk),
			}
			for _, f := range fk.Fields {
				c, _ := table.Column(f.Column())
				sfk.Columns = append(sfk.Columns, c)
			}
			for _, f := range fk.RefFields {
				c, ok := ref.Column(f.Column())
				if !ok {
					return nil, fmt.Errorf("gen: missing referenced column %q of %s", f.Column(), ref.Name)
				}
				sfk.RefColumns = append(sfk.RefColumns, c)
			}
			table.AddForeignKey(sfk)
		}
	}
	return tables, nil
}

// TableColumn returns the table column of the field.
func (f Field) TableColumn() *schema.Column {
	st := f.Type.Storage()
	c := &schema.Column{
		Name:         f.Column(),
		Type:         st.Type,
		Enums:        st.Enums,
		Nullable:     f.Nillable,
		Array:        f.Array,
		ElemNullable: f.ElemNillable,
		Custom:       f.IsCustom(),
		Default:      f.Default,
		Comment:      f.Comment,
	}
	if f.Type.Type == field.TypeRef {
		c.Ref = f.Type.Ref
		if f.fk != nil {
			c.Ref = f.fk.RefType.Table()
		}
	}
	return c
}

// onDelete returns the referential action of a foreign key: join rows go
// with their participants, nullable owned keys are cleared.
func onDelete(t *Type, fk *ForeignKey) schema.ReferenceOption {
	switch {
	case t.Join:
		return schema.Cascade
	case len(fk.Fields) > 0 && fk.Fields[0].Nillable:
		return schema.SetNull
	default:
		return schema.NoAction
	}
}

func fkSymbol(table string, cols []string) string {
	return table + "_" + strings.Join(cols, "_") + "_fkey"
}

func indexName(table string, cols []string, unique bool) string {
	suffix := "idx"
	if unique {
		suffix = "key"
	}
	return table + "_" + strings.Join(cols, "_") + "_" + suffix
}
