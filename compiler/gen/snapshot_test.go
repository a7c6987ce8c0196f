package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshot(t *testing.T) {
	g, err := NewGraph(&Config{}, append(listTodo(), pizzaTopping()...)...)
	require.NoError(t, err)

	s := g.Snapshot()
	require.Len(t, s.Nodes, 5)
	todo, ok := s.Node("Todo")
	require.True(t, ok)
	assert.Equal(t, []string{"id"}, todo.Identifier)
	assert.Equal(t, FieldSnapshot{Name: "listId", Type: "reference(List)", Optional: true, Nillable: true}, todo.Fields[2])
	assert.Equal(t, EdgeSnapshot{
		Name:        "list",
		Kind:        "belongsTo",
		Target:      "List",
		Rel:         "M2O",
		Inverse:     "todos",
		Synthesized: true,
	}, todo.Edges[0])

	x, ok := s.Node("X")
	require.True(t, ok)
	assert.True(t, x.Join)
	assert.Equal(t, []string{"pizzaId", "toppingId"}, x.Identifier)
	assert.Empty(t, x.Edges)

	pizza, _ := s.Node("Pizza")
	assert.Equal(t, "X", pizza.Edges[0].Through)
	assert.Equal(t, "M2M", pizza.Edges[0].Rel)

	_, ok = s.Node("Missing")
	assert.False(t, ok)
}

func TestSnapshotDecode(t *testing.T) {
	g, err := NewGraph(&Config{}, carWheel()...)
	require.NoError(t, err)
	b, err := g.MarshalSnapshot()
	require.NoError(t, err)
	s, err := DecodeSnapshot(b)
	require.NoError(t, err)
	assert.Equal(t, g.Snapshot(), s)

	_, err = DecodeSnapshot([]byte{0xc1})
	require.Error(t, err)
}
