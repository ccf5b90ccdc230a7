package repository

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gallery-backend/internal/domains/author/model"
)

func strPtr(s string) *string { return &s }

func TestBuildUpdate(t *testing.T) {
	id := uuid.MustParse("7f1d1a52-3a43-4a4c-9d0e-1b5b3f7c2a10")

	t.Run("SetsOnlyPatchedColumns", func(t *testing.T) {
		query, args, err := buildUpdate(&model.AuthorPatch{
			ID: id,
			Fields: []model.FieldValue{
				{Column: "name", Value: strPtr("Abai")},
				{Column: "death_date", Value: nil},
			},
		})
		require.NoError(t, err)
		assert.Equal(t,
			`UPDATE authors SET "name" = $1, "death_date" = $2 WHERE id = $3 RETURNING `+authorColumns,
			query,
		)
		require.Len(t, args, 3)
		assert.Equal(t, "Abai", *args[0].(*string))
		assert.Nil(t, args[1].(*string))
		assert.Equal(t, id, args[2])
	})

	t.Run("EmptyPatch", func(t *testing.T) {
		_, _, err := buildUpdate(&model.AuthorPatch{ID: id})
		assert.ErrorIs(t, err, model.ErrNoValuesToSet)
	})

	t.Run("RejectsUnknownColumn", func(t *testing.T) {
		_, _, err := buildUpdate(&model.AuthorPatch{
			ID:     id,
			Fields: []model.FieldValue{{Column: "id", Value: strPtr("x")}},
		})
		assert.Error(t, err)
	})
}
