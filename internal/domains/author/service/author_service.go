package service

import (
	"context"
	"errors"

	"gallery-backend/internal/domains/author/model"
	"gallery-backend/internal/domains/author/repository"
)

type authorService struct {
	repo repository.RepositoryInterface
}

// NewAuthorService creates the service over any repository implementation
// (plain Postgres or the cached decorator).
func NewAuthorService(repo repository.RepositoryInterface) ServiceInterface {
	return &authorService{
		repo: repo,
	}
}

func (s *authorService) List(ctx context.Context) ([]model.Author, error) {
	authors, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if authors == nil {
		authors = []model.Author{}
	}
	return authors, nil
}

// Create performs no validation of its own; required columns are enforced
// by the table.
func (s *authorService) Create(ctx context.Context, req *model.NewAuthor) (*model.Author, error) {
	return s.repo.Create(ctx, req)
}

// Update and Delete treat an id that is not a uuid like any other unknown
// id: nothing matches, nothing happens, no error.
func (s *authorService) Update(ctx context.Context, req model.UpdateAuthorRequest) (*model.Author, error) {
	patch, err := req.ToPatch()
	if errors.Is(err, model.ErrInvalidID) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, patch)
}

func (s *authorService) Delete(ctx context.Context, req *model.DeleteAuthorRequest) error {
	id, err := model.ParseID(req.ID)
	if errors.Is(err, model.ErrInvalidID) {
		return nil
	}
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
