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

var T1 = &load.Schema{
	Name: "T1",
	Fields: []*load.Field{
		{Name: "title", Type: "String!"},
		{Name: "tags", Type: "[String!]"},
		{Name: "status", Type: "enum", Enums: []string{"OPEN", "DONE", "OPEN", ""}, Default: "OPEN"},
		{Name: "priority", Type: "Int", Default: 3},
		{Name: "location", Type: "custom", Fields: []*load.Field{
			{Name: "lat", Type: "Float", Required: true},
			{Name: "long", Type: "Float", Required: true},
		}},
	},
	Edges: []*load.Edge{
		{Name: "owner", Kind: "belongsTo", Target: "T2"},
	},
}

func TestType(t *testing.T) {
	require := require.New(t)
	typ, err := NewType(nil, T1)
	require.NoError(err)
	require.NotNil(typ)
	require.Equal("T1", typ.Name)
	require.Equal("T1", typ.Label())
	require.Equal("T1", typ.Table())
	require.Equal([]string{"id"}, typ.Identifier)
	require.True(typ.HasOneFieldID())
	require.False(typ.HasCompositeID())

	require.Len(typ.Fields, 6)
	id := typ.Fields[0]
	require.Equal("id", id.Name)
	require.Same(id, typ.ID[0])
	require.True(id.IsID())
	require.False(id.UserDefined)
	require.False(id.Nillable)
	require.Equal("id!", id.Kind())

	title, ok := typ.Field("title")
	require.True(ok)
	require.True(title.UserDefined)
	require.False(title.Optional)
	require.Equal("string!", title.Kind())

	tags, _ := typ.Field("tags")
	require.True(tags.Array)
	require.True(tags.Nillable)
	require.False(tags.ElemNillable)
	require.Equal("[string!]", tags.Kind())

	status, _ := typ.Field("status")
	require.True(status.IsEnum())
	require.Equal([]string{"OPEN", "DONE"}, status.EnumValues())
	require.Equal("OPEN", status.Default)
	require.True(status.HasDefault())
	require.Equal("enum(OPEN|DONE)", status.Kind())

	priority, _ := typ.Field("priority")
	require.Equal(int64(3), priority.Default)
	require.Nil(priority.EnumValues())

	location, _ := typ.Field("location")
	require.True(location.IsCustom())
	require.Len(location.Fields, 2)
	require.Equal("lat", location.Fields[0].Name)
	require.Same(typ, location.Fields[0].Owner())

	_, ok = typ.Field("owner")
	require.False(ok, "edges are resolved by the graph")
}

func TestTypeErrors(t *testing.T) {
	tests := []struct {
		name   string
		schema *load.Schema
		kind   error
		field  string
	}{
		{
			name:   "unknown scalar",
			schema: &load.Schema{Name: "T", Fields: []*load.Field{{Name: "price", Type: "Money"}}},
			kind:   modelc.ErrUnknownScalarKind,
			field:  "price",
		},
		{
			name:   "bad expression",
			schema: &load.Schema{Name: "T", Fields: []*load.Field{{Name: "tags", Type: "[String"}}},
			kind:   modelc.ErrUnknownScalarKind,
			field:  "tags",
		},
		{
			name:   "reference cannot be declared",
			schema: &load.Schema{Name: "T", Fields: []*load.Field{{Name: "list", Type: "reference"}}},
			kind:   modelc.ErrUnknownScalarKind,
			field:  "list",
		},
		{
			name: "duplicate field",
			schema: &load.Schema{Name: "T", Fields: []*load.Field{
				{Name: "title", Type: "String"},
				{Name: "title", Type: "Int"},
			}},
			kind:  modelc.ErrDuplicateFieldName,
			field: "title",
		},
		{
			name: "field and edge share a name",
			schema: &load.Schema{
				Name:   "T",
				Fields: []*load.Field{{Name: "list", Type: "String"}},
				Edges:  []*load.Edge{{Name: "list", Kind: "belongsTo", Target: "List"}},
			},
			kind:  modelc.ErrDuplicateFieldName,
			field: "list",
		},
		{
			name:   "invalid name",
			schema: &load.Schema{Name: "T", Fields: []*load.Field{{Name: "due-at", Type: "String"}}},
			kind:   modelc.ErrInvalidFieldName,
			field:  "due-at",
		},
		{
			name:   "empty edge name",
			schema: &load.Schema{Name: "T", Edges: []*load.Edge{{Kind: "hasMany", Target: "T"}}},
			kind:   modelc.ErrInvalidFieldName,
		},
		{
			name:   "empty enum",
			schema: &load.Schema{Name: "T", Fields: []*load.Field{{Name: "status", Type: "enum", Enums: []string{"", ""}}}},
			kind:   modelc.ErrEmptyEnumVariantSet,
			field:  "status",
		},
		{
			name:   "empty custom type",
			schema: &load.Schema{Name: "T", Fields: []*load.Field{{Name: "location", Type: "custom"}}},
			kind:   modelc.ErrEmptyCustomType,
			field:  "location",
		},
		{
			name: "nested duplicate",
			schema: &load.Schema{Name: "T", Fields: []*load.Field{{Name: "location", Type: "custom", Fields: []*load.Field{
				{Name: "lat", Type: "Float"},
				{Name: "lat", Type: "Float"},
			}}}},
			kind:  modelc.ErrDuplicateFieldName,
			field: "location.lat",
		},
		{
			name: "nested unknown scalar",
			schema: &load.Schema{Name: "T", Fields: []*load.Field{{Name: "location", Type: "custom", Fields: []*load.Field{
				{Name: "zone", Type: "Zone"},
			}}}},
			kind:  modelc.ErrUnknownScalarKind,
			field: "location.zone",
		},
		{
			name:   "invalid default",
			schema: &load.Schema{Name: "T", Fields: []*load.Field{{Name: "priority", Type: "Int", Default: "high"}}},
			kind:   modelc.ErrInvalidDefaultValue,
			field:  "priority",
		},
		{
			name:   "enum default out of set",
			schema: &load.Schema{Name: "T", Fields: []*load.Field{{Name: "status", Type: "enum", Enums: []string{"OPEN"}, Default: "DONE"}}},
			kind:   modelc.ErrInvalidDefaultValue,
			field:  "status",
		},
		{
			name: "custom default",
			schema: &load.Schema{Name: "T", Fields: []*load.Field{{Name: "location", Type: "custom", Default: "x", Fields: []*load.Field{
				{Name: "lat", Type: "Float"},
			}}}},
			kind:  modelc.ErrInvalidDefaultValue,
			field: "location",
		},
		{
			name:   "optional id",
			schema: &load.Schema{Name: "T", Fields: []*load.Field{{Name: "id", Type: "ID"}}},
			kind:   modelc.ErrInvalidIdentifierField,
			field:  "id",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewType(&Config{}, tt.schema)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.kind), err)
			assert.True(t, errors.Is(err, modelc.ErrInvalidDeclaration))
			var derr *modelc.DeclarationError
			require.True(t, errors.As(err, &derr))
			assert.Equal(t, "T", derr.Entity)
			assert.Equal(t, tt.field, derr.Field)
		})
	}
}

func TestTypeIdentifier(t *testing.T) {
	t.Run("declared id", func(t *testing.T) {
		typ, err := NewType(&Config{}, &load.Schema{
			Name:   "Car",
			Fields: []*load.Field{{Name: "vin", Type: "String!"}, {Name: "id", Type: "ID!"}},
		})
		require.NoError(t, err)
		require.Len(t, typ.Fields, 2)
		assert.Equal(t, "vin", typ.Fields[0].Name)
		assert.Same(t, typ.Fields[1], typ.ID[0])
		assert.True(t, typ.ID[0].UserDefined)
	})

	t.Run("explicit identifier", func(t *testing.T) {
		typ, err := NewType(&Config{}, &load.Schema{
			Name: "SerializedPart",
			Fields: []*load.Field{
				{Name: "partNumber", Type: "String!"},
				{Name: "serial", Type: "String!"},
			},
			Identifier: []string{"partNumber", "serial"},
		})
		require.NoError(t, err)
		assert.True(t, typ.HasCompositeID())
		assert.Len(t, typ.Fields, 2, "no surrogate")
		assert.Equal(t, "partNumber", typ.ID[0].Name)
		assert.Equal(t, "serial", typ.ID[1].Name)
	})

	t.Run("explicit identifier with missing field", func(t *testing.T) {
		typ, err := NewType(&Config{}, &load.Schema{
			Name:       "Part",
			Fields:     []*load.Field{{Name: "sku", Type: "String!"}},
			Identifier: []string{"sku", "batch"},
		})
		require.NoError(t, err, "checked once the graph is complete")
		require.Len(t, typ.ID, 2)
		assert.Nil(t, typ.ID[1])
	})

	t.Run("configured surrogate", func(t *testing.T) {
		typ, err := NewType(MustNewConfig(WithIDField("key", field.TypeString)), &load.Schema{Name: "Tag"})
		require.NoError(t, err)
		require.Len(t, typ.Fields, 1)
		assert.Equal(t, "key", typ.ID[0].Name)
		assert.Equal(t, field.TypeString, typ.ID[0].Type.Type)
		assert.Equal(t, []string{"key"}, typ.Identifier)
	})
}

func TestTypeNaming(t *testing.T) {
	typ, err := NewType(MustNewConfig(WithNaming(NamingSnake)), &load.Schema{
		Name:   "SteeringWheel",
		Fields: []*load.Field{{Name: "carId", Type: "ID"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "steering_wheels", typ.Table())
	f, _ := typ.Field("carId")
	assert.Equal(t, "car_id", f.Column())

	typ, err = NewType(&Config{}, &load.Schema{Name: "SteeringWheel"})
	require.NoError(t, err)
	assert.Equal(t, "SteeringWheel", typ.Table())
}

func TestTypeUniqueName(t *testing.T) {
	typ, err := NewType(&Config{}, &load.Schema{
		Name:   "Todo",
		Fields: []*load.Field{{Name: "list", Type: "String"}, {Name: "list2", Type: "String"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "list3", typ.uniqueName("list"))
	assert.Equal(t, "owner", typ.uniqueName("owner"))
	assert.Equal(t, "List3", typ.uniqueName("List"))

	typ, err = NewType(MustNewConfig(WithNaming(NamingSnake)), &load.Schema{
		Name:   "Todo",
		Fields: []*load.Field{{Name: "due_at", Type: "String"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "dueAt2", typ.uniqueName("dueAt"))
}
