package repository

import (
	"context"

	"github.com/google/uuid"

	"gallery-backend/internal/domains/author/model"
)

// RepositoryInterface is the Data Store contract for the authors table.
type RepositoryInterface interface {
	// List returns every author in the order the store yields them.
	List(ctx context.Context) ([]model.Author, error)

	// Create inserts a row; the store assigns the id.
	Create(ctx context.Context, a *model.NewAuthor) (*model.Author, error)

	// Update applies the patch to the row with patch.ID.
	// Returns (nil, nil) when no row matches.
	Update(ctx context.Context, patch *model.AuthorPatch) (*model.Author, error)

	// Delete removes the row with id. A missing row is not an error.
	Delete(ctx context.Context, id uuid.UUID) error
}
