package gen

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/modelc"
	"github.com/syssam/modelc/compiler/load"
	"github.com/syssam/modelc/schema/field"
)

func reasons(t *testing.T, err error) []*modelc.Reason {
	t.Helper()
	require.Error(t, err)
	require.True(t, errors.Is(err, modelc.ErrValidationFailed), err)
	var verr *modelc.ValidationError
	require.True(t, errors.As(err, &verr))
	return verr.Reasons
}

func TestValidateAggregates(t *testing.T) {
	_, err := NewGraph(&Config{},
		&load.Schema{
			Name:   "Todo",
			Fields: []*load.Field{{Name: "title", Type: "String"}, {Name: "Title", Type: "String"}},
			Indexes: []*load.Index{
				{Name: "byDue", Fields: []string{"dueAt"}},
				{Name: "byTitle", Fields: []string{"title"}},
				{Name: "byTitle", Fields: []string{"Title"}},
			},
		},
		&load.Schema{Name: "TODO"},
	)
	rs := reasons(t, err)
	require.Len(t, rs, 4)

	assert.Equal(t, &modelc.Reason{Entity: "Todo", Field: "Title", Message: `name collides with "title"`}, rs[0])
	assert.Equal(t, "Todo", rs[1].Entity)
	assert.Equal(t, "dueAt", rs[1].Field)
	assert.Contains(t, rs[1].Message, "unknown field")
	assert.Contains(t, rs[2].Message, `index "byTitle" is declared more than once`)
	assert.Equal(t, "TODO", rs[3].Entity)
	assert.Equal(t, `table "TODO" collides with the table of Todo`, rs[3].Message)
	assert.Contains(t, err.Error(), "validation failed with 4 error(s)")
}

func TestValidateColumnCollision(t *testing.T) {
	schemas := func() []*load.Schema {
		return []*load.Schema{{
			Name:   "Todo",
			Fields: []*load.Field{{Name: "dueAt", Type: "String"}, {Name: "due_at", Type: "String"}},
		}}
	}
	_, err := NewGraph(MustNewConfig(WithNaming(NamingSnake)), schemas()...)
	rs := reasons(t, err)
	require.Len(t, rs, 1)
	assert.Equal(t, &modelc.Reason{Entity: "Todo", Field: "due_at", Message: `column "due_at" collides with the column of "dueAt"`}, rs[0])

	_, err = NewGraph(&Config{}, schemas()...)
	require.NoError(t, err)
}

func TestValidateForeignKeyIdentifier(t *testing.T) {
	schemas := func() []*load.Schema {
		return []*load.Schema{
			{Name: "Car", Edges: []*load.Edge{{Name: "steeringWheel", Kind: "hasOne", Target: "SteeringWheel"}}},
			{
				Name:       "SteeringWheel",
				Fields:     []*load.Field{{Name: "carId", Type: "ID!"}},
				Identifier: []string{"carId"},
				Edges:      []*load.Edge{{Name: "car", Kind: "belongsTo", Target: "Car", References: []string{"carId"}, Required: true}},
			},
		}
	}
	_, err := NewGraph(&Config{}, schemas()...)
	rs := reasons(t, err)
	require.Len(t, rs, 1)
	assert.Equal(t, "SteeringWheel", rs[0].Entity)
	assert.Equal(t, "carId", rs[0].Field)
	assert.Contains(t, rs[0].Message, "identifier field is nullable")

	g, err := NewGraph(MustNewConfig(WithStrictForeignKeys(true)), schemas()...)
	require.NoError(t, err)
	wheel := mustType(t, g, "SteeringWheel")
	assert.Equal(t, []string{"carId"}, wheel.Identifier)
	assert.False(t, wheel.ID[0].Nillable)
}

func TestValidateGraphMutations(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Graph)
		want   modelc.Reason
		n      int
	}{
		{
			name: "edge without counterpart",
			mutate: func(g *Graph) {
				g.Nodes[0].Edges[0].Ref = nil
			},
			want: modelc.Reason{Entity: "List", Edge: "todos", Message: "edge has no counterpart"},
			n:    2,
		},
		{
			name: "unresolved edge",
			mutate: func(g *Graph) {
				g.Nodes[0].Edges[0].State = StateTargetResolved
			},
			want: modelc.Reason{Entity: "List", Edge: "todos", Message: "edge is TargetResolved"},
		},
		{
			name: "reference without foreign key",
			mutate: func(g *Graph) {
				f := &Field{Name: "owner", Type: &field.TypeInfo{Type: field.TypeRef, Ref: "List"}, Nillable: true}
				g.Nodes[0].addField(f)
			},
			want: modelc.Reason{Entity: "List", Field: "owner", Message: "reference fields are only produced by relationships"},
		},
		{
			name: "non-null foreign key",
			mutate: func(g *Graph) {
				f, _ := g.Nodes[1].Field("listId")
				f.Nillable = false
			},
			want: modelc.Reason{Entity: "Todo", Field: "listId", Message: "foreign-key field must be nullable"},
		},
		{
			name: "foreign key kind",
			mutate: func(g *Graph) {
				f, _ := g.Nodes[1].Field("listId")
				f.Type = &field.TypeInfo{Type: field.TypeRef, Ref: "List", Elem: &field.TypeInfo{Type: field.TypeInteger}}
			},
			want: modelc.Reason{Entity: "Todo", Field: "listId", Message: "foreign key is integer, but List.id is id"},
		},
		{
			name: "unknown kind",
			mutate: func(g *Graph) {
				f, _ := g.Nodes[0].Field("title")
				f.Type = &field.TypeInfo{Type: field.TypeInvalid}
			},
			want: modelc.Reason{Entity: "List", Field: "title", Message: "unknown field kind 0"},
		},
		{
			name: "duplicate field name",
			mutate: func(g *Graph) {
				g.Nodes[0].addField(&Field{Name: "title", Type: &field.TypeInfo{Type: field.TypeString}, Nillable: true})
			},
			want: modelc.Reason{Entity: "List", Field: "title", Message: `name collides with "title"`},
		},
		{
			name: "missing identifier",
			mutate: func(g *Graph) {
				g.Nodes[0].ID = nil
			},
			want: modelc.Reason{Entity: "List", Message: "type has no identifier"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := NewGraph(&Config{}, listTodo()...)
			require.NoError(t, err)
			tt.mutate(g)
			rs := reasons(t, g.validate())
			n := tt.n
			if n == 0 {
				n = 1
			}
			require.Len(t, rs, n)
			assert.Equal(t, tt.want, *rs[0])
		})
	}
}
