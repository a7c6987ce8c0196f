package field_test

import (
	"testing"
	"time"

	"github.com/syssam/modelc/schema/field"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilders(t *testing.T) {
	t.Parallel()

	tests := []struct {
		b    *field.Builder
		want field.Type
	}{
		{field.ID("id"), field.TypeID},
		{field.String("s"), field.TypeString},
		{field.Integer("i"), field.TypeInteger},
		{field.Float("f"), field.TypeFloat},
		{field.Boolean("b"), field.TypeBoolean},
		{field.Date("d"), field.TypeDate},
		{field.Time("t"), field.TypeTime},
		{field.DateTime("dt"), field.TypeDateTime},
		{field.Timestamp("ts"), field.TypeTimestamp},
		{field.Email("e"), field.TypeEmail},
		{field.JSON("j"), field.TypeJSON},
		{field.Phone("p"), field.TypePhone},
		{field.URL("u"), field.TypeURL},
		{field.IPAddress("ip"), field.TypeIPAddress},
		{field.Enum("en", "A"), field.TypeEnum},
		{field.Custom("c", field.Float("x")), field.TypeCustom},
	}
	for _, tt := range tests {
		fd := tt.b.Descriptor()
		typ, ok := field.ParseType(fd.Type)
		require.True(t, ok, fd.Type)
		assert.Equal(t, tt.want, typ)
	}
}

func TestRequiredArrayOrder(t *testing.T) {
	t.Parallel()

	fd := field.String("tags").Required().Array().Descriptor()
	assert.True(t, fd.Array)
	assert.True(t, fd.ElemRequired)
	assert.False(t, fd.Required)

	fd = field.String("tags").Array().Required().Descriptor()
	assert.True(t, fd.Array)
	assert.False(t, fd.ElemRequired)
	assert.True(t, fd.Required)

	fd = field.String("tags").Required().Array().Required().Descriptor()
	assert.True(t, fd.ElemRequired)
	assert.True(t, fd.Required)

	fd = field.String("title").Required().Descriptor()
	assert.False(t, fd.Array)
	assert.True(t, fd.Required)
}

func TestEnumAndCustom(t *testing.T) {
	t.Parallel()

	fd := field.Enum("status", "OPEN").Values("DONE").Default("OPEN").Comment("state").Descriptor()
	assert.Equal(t, []string{"OPEN", "DONE"}, fd.Enums)
	assert.Equal(t, "OPEN", fd.Default)
	assert.Equal(t, "state", fd.Comment)

	fd = field.Custom("location",
		field.Float("lat").Required(),
		field.Float("long").Required(),
	).Descriptor()
	require.Len(t, fd.Fields, 2)
	assert.Equal(t, "lat", fd.Fields[0].Name)
	assert.True(t, fd.Fields[1].Required)
	assert.NoError(t, fd.Err)

	fd = field.Custom("broken", nil).Descriptor()
	assert.Error(t, fd.Err)
}

func TestParseType(t *testing.T) {
	t.Parallel()

	for tag, want := range map[string]field.Type{
		"String":       field.TypeString,
		"Int":          field.TypeInteger,
		"AWSDateTime":  field.TypeDateTime,
		"awsipaddress": field.TypeIPAddress,
		"Boolean":      field.TypeBoolean,
		"ID":           field.TypeID,
		"customType":   field.TypeCustom,
	} {
		got, ok := field.ParseType(tag)
		require.True(t, ok, tag)
		assert.Equal(t, want, got, tag)
	}
	for _, tag := range []string{"", "money", "reference", "ref"} {
		_, ok := field.ParseType(tag)
		assert.False(t, ok, tag)
	}
}

func TestParseExpr(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    field.Expr
		wantErr bool
	}{
		{in: "String", want: field.Expr{Tag: "String"}},
		{in: "String!", want: field.Expr{Tag: "String", Required: true}},
		{in: "[String]", want: field.Expr{Tag: "String", Array: true}},
		{in: "[String!]", want: field.Expr{Tag: "String", Array: true, ElemRequired: true}},
		{in: "[String]!", want: field.Expr{Tag: "String", Array: true, Required: true}},
		{in: " [ Int! ]! ", want: field.Expr{Tag: "Int", Array: true, Required: true, ElemRequired: true}},
		{in: "[String", wantErr: true},
		{in: "[[String]]", wantErr: true},
		{in: "!", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		got, err := field.ParseExpr(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestTypeCompatible(t *testing.T) {
	t.Parallel()

	assert.True(t, field.TypeID.Compatible(field.TypeString))
	assert.True(t, field.TypeString.Compatible(field.TypeID))
	assert.True(t, field.TypeInteger.Compatible(field.TypeInteger))
	assert.False(t, field.TypeInteger.Compatible(field.TypeString))
	assert.False(t, field.TypeEmail.Compatible(field.TypeString))

	assert.True(t, field.TypeEnum.Scalar())
	assert.False(t, field.TypeCustom.Scalar())
	assert.False(t, field.TypeRef.Scalar())
	assert.False(t, field.TypeInvalid.Valid())
	assert.Equal(t, "invalid", field.Type(200).String())
}

func TestTypeInfo(t *testing.T) {
	t.Parallel()

	enum := &field.TypeInfo{Type: field.TypeEnum, Enums: []string{"A", "B"}}
	assert.Equal(t, "enum(A|B)", enum.String())

	ref := &field.TypeInfo{Type: field.TypeRef, Ref: "List", Elem: &field.TypeInfo{Type: field.TypeID}}
	assert.Equal(t, "reference(List)", ref.String())
	assert.Equal(t, field.TypeID, ref.Storage().Type)

	c := ref.Clone()
	c.Elem.Type = field.TypeString
	assert.Equal(t, field.TypeID, ref.Elem.Type, "clone must not share the element")

	e := enum.Clone()
	e.Enums[0] = "Z"
	assert.Equal(t, "A", enum.Enums[0])

	var nilInfo *field.TypeInfo
	assert.Equal(t, "invalid", nilInfo.String())
	assert.Nil(t, nilInfo.Clone())
}

func TestNormalizeDefault(t *testing.T) {
	t.Parallel()

	info := func(t field.Type) *field.TypeInfo { return &field.TypeInfo{Type: t} }
	tests := []struct {
		name    string
		typ     *field.TypeInfo
		array   bool
		in      any
		want    any
		wantErr bool
	}{
		{name: "nil", typ: info(field.TypeString), in: nil, want: nil},
		{name: "string", typ: info(field.TypeString), in: "x", want: "x"},
		{name: "string_bad", typ: info(field.TypeString), in: 1, wantErr: true},
		{name: "int", typ: info(field.TypeInteger), in: 5, want: int64(5)},
		{name: "int_float", typ: info(field.TypeInteger), in: 5.0, want: int64(5)},
		{name: "int_string", typ: info(field.TypeInteger), in: "42", want: int64(42)},
		{name: "int_fraction", typ: info(field.TypeInteger), in: 1.5, wantErr: true},
		{name: "float", typ: info(field.TypeFloat), in: 2, want: 2.0},
		{name: "float_string", typ: info(field.TypeFloat), in: "2.5", want: 2.5},
		{name: "bool", typ: info(field.TypeBoolean), in: "true", want: true},
		{name: "bool_bad", typ: info(field.TypeBoolean), in: 1, wantErr: true},
		{name: "date", typ: info(field.TypeDate), in: "2024-02-29", want: "2024-02-29"},
		{name: "date_bad", typ: info(field.TypeDate), in: "2024-13-01", wantErr: true},
		{name: "date_time_value", typ: info(field.TypeDate), in: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), want: "2024-01-02"},
		{name: "time", typ: info(field.TypeTime), in: "12:30:00", want: "12:30:00"},
		{name: "datetime", typ: info(field.TypeDateTime), in: "2024-01-02T03:04:05Z", want: "2024-01-02T03:04:05Z"},
		{name: "datetime_bad", typ: info(field.TypeDateTime), in: "yesterday", wantErr: true},
		{name: "timestamp", typ: info(field.TypeTimestamp), in: 1700000000, want: int64(1700000000)},
		{name: "email", typ: info(field.TypeEmail), in: "a@b.co", want: "a@b.co"},
		{name: "email_bad", typ: info(field.TypeEmail), in: "nope", wantErr: true},
		{name: "url", typ: info(field.TypeURL), in: "https://example.com/x", want: "https://example.com/x"},
		{name: "url_bad", typ: info(field.TypeURL), in: "/relative", wantErr: true},
		{name: "ip", typ: info(field.TypeIPAddress), in: "10.0.0.1", want: "10.0.0.1"},
		{name: "ip_bad", typ: info(field.TypeIPAddress), in: "10.0.0", wantErr: true},
		{name: "phone", typ: info(field.TypePhone), in: "+1 (555) 010-9999", want: "+1 (555) 010-9999"},
		{name: "phone_bad", typ: info(field.TypePhone), in: "call me", wantErr: true},
		{name: "json_string", typ: info(field.TypeJSON), in: `{"a":1}`, want: `{"a":1}`},
		{name: "json_value", typ: info(field.TypeJSON), in: map[string]any{"a": 1}, want: `{"a":1}`},
		{name: "json_bad", typ: info(field.TypeJSON), in: `{`, wantErr: true},
		{name: "id", typ: info(field.TypeID), in: "6f1c1a52-4c4b-4f55-9d0c-7a1d2b3c4d5e", want: "6f1c1a52-4c4b-4f55-9d0c-7a1d2b3c4d5e"},
		{name: "id_bad", typ: info(field.TypeID), in: "abc", wantErr: true},
		{name: "enum", typ: &field.TypeInfo{Type: field.TypeEnum, Enums: []string{"A", "B"}}, in: "B", want: "B"},
		{name: "enum_bad", typ: &field.TypeInfo{Type: field.TypeEnum, Enums: []string{"A"}}, in: "C", wantErr: true},
		{name: "custom", typ: info(field.TypeCustom), in: "x", wantErr: true},
		{name: "array", typ: info(field.TypeInteger), array: true, in: []any{1, "2"}, want: []any{int64(1), int64(2)}},
		{name: "array_strings", typ: info(field.TypeString), array: true, in: []string{"a"}, want: []any{"a"}},
		{name: "array_scalar", typ: info(field.TypeString), array: true, in: "a", wantErr: true},
		{name: "array_bad_elem", typ: info(field.TypeInteger), array: true, in: []any{1, "x"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := field.NormalizeDefault(tt.typ, tt.array, tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
