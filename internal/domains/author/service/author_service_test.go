package service_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gallery-backend/internal/domains/author/model"
	"gallery-backend/internal/domains/author/service"
)

type fakeRepo struct {
	listResult []model.Author
	created    *model.NewAuthor
	patch      *model.AuthorPatch
	deleted    uuid.UUID
}

func (r *fakeRepo) List(context.Context) ([]model.Author, error) { return r.listResult, nil }

func (r *fakeRepo) Create(_ context.Context, in *model.NewAuthor) (*model.Author, error) {
	r.created = in
	return &model.Author{ID: uuid.New(), Name: *in.Name}, nil
}

func (r *fakeRepo) Update(_ context.Context, p *model.AuthorPatch) (*model.Author, error) {
	r.patch = p
	return nil, nil
}

func (r *fakeRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.deleted = id
	return nil
}

func TestAuthorService(t *testing.T) {
	ctx := context.Background()
	id := uuid.MustParse("7f1d1a52-3a43-4a4c-9d0e-1b5b3f7c2a10")

	t.Run("ListNeverNil", func(t *testing.T) {
		svc := service.NewAuthorService(&fakeRepo{})
		authors, err := svc.List(ctx)
		require.NoError(t, err)
		assert.NotNil(t, authors)

		out, err := json.Marshal(authors)
		require.NoError(t, err)
		assert.JSONEq(t, `[]`, string(out))
	})

	t.Run("CreatePassesThrough", func(t *testing.T) {
		repo := &fakeRepo{}
		svc := service.NewAuthorService(repo)
		name := "Abai"

		created, err := svc.Create(ctx, &model.NewAuthor{Name: &name})
		require.NoError(t, err)
		assert.Equal(t, "Abai", created.Name)
		assert.Nil(t, repo.created.Biography)
	})

	t.Run("UpdateBuildsPatch", func(t *testing.T) {
		repo := &fakeRepo{}
		svc := service.NewAuthorService(repo)
		req := model.UpdateAuthorRequest{
			"id":   json.RawMessage(`"` + id.String() + `"`),
			"name": json.RawMessage(`"Abai"`),
		}

		updated, err := svc.Update(ctx, req)
		require.NoError(t, err)
		assert.Nil(t, updated)
		require.NotNil(t, repo.patch)
		assert.Equal(t, id, repo.patch.ID)
		assert.Len(t, repo.patch.Fields, 1)
	})

	t.Run("UpdateWithoutValues", func(t *testing.T) {
		repo := &fakeRepo{}
		svc := service.NewAuthorService(repo)

		_, err := svc.Update(ctx, model.UpdateAuthorRequest{"id": json.RawMessage(`"` + id.String() + `"`)})
		assert.ErrorIs(t, err, model.ErrNoValuesToSet)
		assert.Nil(t, repo.patch)
	})

	t.Run("DeleteParsesID", func(t *testing.T) {
		repo := &fakeRepo{}
		svc := service.NewAuthorService(repo)

		require.NoError(t, svc.Delete(ctx, &model.DeleteAuthorRequest{ID: id.String()}))
		assert.Equal(t, id, repo.deleted)

		err := svc.Delete(ctx, &model.DeleteAuthorRequest{ID: ""})
		assert.ErrorIs(t, err, model.ErrMissingID)
	})

	t.Run("NonUUIDMatchesNothing", func(t *testing.T) {
		repo := &fakeRepo{}
		svc := service.NewAuthorService(repo)

		require.NoError(t, svc.Delete(ctx, &model.DeleteAuthorRequest{ID: "X"}))
		assert.Equal(t, uuid.Nil, repo.deleted)

		updated, err := svc.Update(ctx, model.UpdateAuthorRequest{
			"id":   json.RawMessage(`"X"`),
			"name": json.RawMessage(`"Abai Qunanbaiuly"`),
		})
		require.NoError(t, err)
		assert.Nil(t, updated)
		assert.Nil(t, repo.patch)
	})
}
