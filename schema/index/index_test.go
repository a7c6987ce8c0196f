package index_test

import (
	"testing"

	"github.com/syssam/modelc/schema/index"

	"github.com/stretchr/testify/assert"
)

func TestIndexFields(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		build    func() *index.Descriptor
		validate func(t *testing.T, desc *index.Descriptor)
	}{
		{
			name: "single_field",
			build: func() *index.Descriptor {
				return index.Fields("email").Descriptor()
			},
			validate: func(t *testing.T, desc *index.Descriptor) {
				assert.Equal(t, []string{"email"}, desc.Fields)
				assert.False(t, desc.Unique)
				assert.Empty(t, desc.Name)
			},
		},
		{
			name: "named_unique",
			build: func() *index.Descriptor {
				return index.Fields("listId", "title").Name("byList").Unique().Descriptor()
			},
			validate: func(t *testing.T, desc *index.Descriptor) {
				assert.Equal(t, []string{"listId", "title"}, desc.Fields)
				assert.True(t, desc.Unique)
				assert.Equal(t, "byList", desc.Name)
			},
		},
		{
			name: "empty",
			build: func() *index.Descriptor {
				return index.Fields().Descriptor()
			},
			validate: func(t *testing.T, desc *index.Descriptor) {
				assert.Empty(t, desc.Fields)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tt.validate(t, tt.build())
		})
	}
}

func TestIndexImmutability(t *testing.T) {
	t.Parallel()

	fields := []string{"a", "b"}
	desc := index.Fields(fields...).Descriptor()
	fields[0] = "z"
	assert.Equal(t, []string{"a", "b"}, desc.Fields)
}
