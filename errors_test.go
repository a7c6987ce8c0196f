package modelc_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/modelc"
)

func TestDeclarationError(t *testing.T) {
	t.Run("Error", func(t *testing.T) {
		err := modelc.NewDeclarationError(modelc.ErrEmptyEnumVariantSet, "Todo", "status", "no variants given")
		assert.Equal(t, `modelc: empty enum variant set: entity "Todo" field "status": no variants given`, err.Error())
	})

	t.Run("NoField", func(t *testing.T) {
		err := modelc.NewDeclarationError(modelc.ErrDuplicateEntityName, "List", "", "")
		assert.Equal(t, `modelc: duplicate entity name: entity "List"`, err.Error())
	})

	t.Run("Is", func(t *testing.T) {
		err := modelc.NewDeclarationError(modelc.ErrUnknownScalarKind, "Todo", "x", "tag %q", "money")
		assert.True(t, errors.Is(err, modelc.ErrUnknownScalarKind))
		assert.True(t, errors.Is(err, modelc.ErrInvalidDeclaration))
		assert.False(t, errors.Is(err, modelc.ErrEmptyEnumVariantSet))
		assert.False(t, errors.Is(err, modelc.ErrInvalidRelationship))
	})

	t.Run("IsDeclarationError", func(t *testing.T) {
		err := modelc.NewDeclarationError(modelc.ErrDuplicateFieldName, "Todo", "x", "")
		wrapped := fmt.Errorf("compile: %w", err)
		assert.True(t, modelc.IsDeclarationError(wrapped))
		assert.True(t, errors.Is(wrapped, modelc.ErrDuplicateFieldName))
		assert.False(t, modelc.IsDeclarationError(errors.New("other")))
		assert.False(t, modelc.IsDeclarationError(nil))
	})
}

func TestRelationshipError(t *testing.T) {
	t.Run("Error", func(t *testing.T) {
		err := modelc.NewRelationshipError(modelc.ErrUnknownRelationshipTarget, "List", "todos", "Todo", "no such entity")
		assert.Equal(t, "modelc: unknown relationship target: edge List.todos -> Todo: no such entity", err.Error())
	})

	t.Run("Is", func(t *testing.T) {
		err := modelc.NewRelationshipError(modelc.ErrAmbiguousRelationshipName, "A", "b", "B", "")
		assert.True(t, errors.Is(err, modelc.ErrAmbiguousRelationshipName))
		assert.True(t, errors.Is(err, modelc.ErrInvalidRelationship))
		assert.False(t, errors.Is(err, modelc.ErrInvalidDeclaration))
	})

	t.Run("IsRelationshipError", func(t *testing.T) {
		err := fmt.Errorf("wrap: %w", modelc.NewRelationshipError(modelc.ErrIdentifierArityMismatch, "Bin", "parts", "SerializedPart", ""))
		assert.True(t, modelc.IsRelationshipError(err))
		assert.False(t, modelc.IsRelationshipError(nil))
		assert.False(t, modelc.IsRelationshipError(modelc.ErrIdentifierArityMismatch))
	})
}

func TestValidationError(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		verr := &modelc.ValidationError{}
		require.NoError(t, verr.Err())
	})

	t.Run("Aggregate", func(t *testing.T) {
		verr := &modelc.ValidationError{}
		verr.Addf("Todo", "id", "", "identifier field must be required")
		verr.Addf("Todo", "", "list", "foreign-key type mismatch")
		verr.Addf("", "", "", "global problem")
		err := verr.Err()
		require.Error(t, err)
		assert.True(t, errors.Is(err, modelc.ErrValidationFailed))
		assert.True(t, modelc.IsValidationError(fmt.Errorf("x: %w", err)))
		assert.Equal(t, "modelc: validation failed with 3 error(s)\n"+
			"  - Todo.id: identifier field must be required\n"+
			"  - Todo.list: foreign-key type mismatch\n"+
			"  - global problem", err.Error())
	})
}
