package service

import (
	"context"

	"gallery-backend/internal/domains/author/model"
)

// ServiceInterface is what the API handler calls for each method it accepts.
type ServiceInterface interface {
	// List returns every author; never nil.
	List(ctx context.Context) ([]model.Author, error)

	// Create inserts the record. Any client supplied id has already been
	// dropped by NewAuthor's shape.
	Create(ctx context.Context, req *model.NewAuthor) (*model.Author, error)

	// Update applies the submitted keys to the row named by req["id"].
	// Returns (nil, nil) when no row has that id.
	Update(ctx context.Context, req model.UpdateAuthorRequest) (*model.Author, error)

	// Delete removes the row named by req.ID; a missing row is not an error.
	Delete(ctx context.Context, req *model.DeleteAuthorRequest) error
}
