package model_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gallery-backend/internal/domains/author/model"
)

const sampleID = "7f1d1a52-3a43-4a4c-9d0e-1b5b3f7c2a10"

func decodeUpdate(t *testing.T, body string) model.UpdateAuthorRequest {
	t.Helper()
	var req model.UpdateAuthorRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	return req
}

func TestUpdateAuthorRequest_ToPatch(t *testing.T) {
	t.Run("OnlySubmittedKeys", func(t *testing.T) {
		req := decodeUpdate(t, `{"id":"`+sampleID+`","name":"Abai Qunanbaiuly","unknown":1}`)

		patch, err := req.ToPatch()
		require.NoError(t, err)
		assert.Equal(t, sampleID, patch.ID.String())
		require.Len(t, patch.Fields, 1)
		assert.Equal(t, "name", patch.Fields[0].Column)
		assert.Equal(t, "Abai Qunanbaiuly", *patch.Fields[0].Value)

		_, ok := patch.Value("biography")
		assert.False(t, ok)
	})

	t.Run("NullSetsNull", func(t *testing.T) {
		req := decodeUpdate(t, `{"id":"`+sampleID+`","deathDate":null}`)

		patch, err := req.ToPatch()
		require.NoError(t, err)
		value, ok := patch.Value("death_date")
		assert.True(t, ok)
		assert.Nil(t, value)
	})

	t.Run("TableOrder", func(t *testing.T) {
		req := decodeUpdate(t, `{"imageUrl":"data:image/png;base64,AA==","id":"`+sampleID+`","name":"Abai"}`)

		patch, err := req.ToPatch()
		require.NoError(t, err)
		require.Len(t, patch.Fields, 2)
		assert.Equal(t, "name", patch.Fields[0].Column)
		assert.Equal(t, "image_url", patch.Fields[1].Column)
	})

	t.Run("MissingID", func(t *testing.T) {
		_, err := decodeUpdate(t, `{"name":"Abai"}`).ToPatch()
		assert.ErrorIs(t, err, model.ErrMissingID)
	})

	t.Run("InvalidID", func(t *testing.T) {
		_, err := decodeUpdate(t, `{"id":"X","name":"Abai"}`).ToPatch()
		assert.ErrorIs(t, err, model.ErrInvalidID)
	})

	t.Run("NonStringField", func(t *testing.T) {
		_, err := decodeUpdate(t, `{"id":"`+sampleID+`","name":42}`).ToPatch()
		assert.ErrorIs(t, err, model.ErrInvalidField)
	})

	t.Run("NothingToSet", func(t *testing.T) {
		_, err := decodeUpdate(t, `{"id":"`+sampleID+`"}`).ToPatch()
		assert.ErrorIs(t, err, model.ErrNoValuesToSet)
	})
}

func TestNewAuthor_DiscardsID(t *testing.T) {
	var in model.NewAuthor
	err := json.Unmarshal([]byte(`{"id":"`+sampleID+`","name":"Abai","biography":"poet"}`), &in)
	require.NoError(t, err)

	out, err := json.Marshal(in)
	require.NoError(t, err)
	assert.NotContains(t, string(out), sampleID)
	assert.Equal(t, "Abai", *in.Name)
}

func TestParseID(t *testing.T) {
	_, err := model.ParseID("")
	assert.ErrorIs(t, err, model.ErrMissingID)

	id, err := model.ParseID(sampleID)
	require.NoError(t, err)
	assert.Equal(t, sampleID, id.String())
}
