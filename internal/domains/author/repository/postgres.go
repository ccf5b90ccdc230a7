package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"gallery-backend/internal/domains/author/model"
)

// DB is the part of pgxpool.Pool the repository needs; pgx.Tx satisfies it too.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type postgresRepository struct {
	db DB
}

// NewPostgresRepository creates the pgx backed repository.
func NewPostgresRepository(db DB) RepositoryInterface {
	return &postgresRepository{db: db}
}

const authorColumns = `id, name, birth_date, death_date, biography, image_url`

func scanAuthor(row pgx.Row, a *model.Author) error {
	return row.Scan(
		&a.ID,
		&a.Name,
		&a.BirthDate,
		&a.DeathDate,
		&a.Biography,
		&a.ImageURL,
	)
}

func (r *postgresRepository) List(ctx context.Context) ([]model.Author, error) {
	rows, err := r.db.Query(ctx, `SELECT `+authorColumns+` FROM authors`)
	if err != nil {
		return nil, fmt.Errorf("failed to query authors: %w", err)
	}
	defer rows.Close()

	authors := make([]model.Author, 0)
	for rows.Next() {
		var a model.Author
		if err := scanAuthor(rows, &a); err != nil {
			return nil, fmt.Errorf("failed to scan author: %w", err)
		}
		authors = append(authors, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating authors: %w", err)
	}

	return authors, nil
}

func (r *postgresRepository) Create(ctx context.Context, in *model.NewAuthor) (*model.Author, error) {
	query := `
        INSERT INTO authors (name, birth_date, death_date, biography, image_url)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING ` + authorColumns

	var created model.Author
	err := scanAuthor(r.db.QueryRow(
		ctx,
		query,
		in.Name,
		in.BirthDate,
		in.DeathDate,
		in.Biography,
		in.ImageURL,
	), &created)
	if err != nil {
		return nil, fmt.Errorf("failed to create author: %w", err)
	}

	return &created, nil
}

func (r *postgresRepository) Update(ctx context.Context, patch *model.AuthorPatch) (*model.Author, error) {
	query, args, err := buildUpdate(patch)
	if err != nil {
		return nil, err
	}

	var updated model.Author
	err = scanAuthor(r.db.QueryRow(ctx, query, args...), &updated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update author: %w", err)
	}

	return &updated, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM authors WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete author: %w", err)
	}
	return nil
}

// buildUpdate renders the set-update for exactly the columns in the patch.
//
//	UPDATE authors SET "name" = $1, "image_url" = $2 WHERE id = $3 RETURNING ...
func buildUpdate(patch *model.AuthorPatch) (string, []any, error) {
	if len(patch.Fields) == 0 {
		return "", nil, model.ErrNoValuesToSet
	}

	allowed := make(map[string]bool, len(model.MutableColumns))
	for _, c := range model.MutableColumns {
		allowed[c.Name] = true
	}

	sets := make([]string, 0, len(patch.Fields))
	args := make([]any, 0, len(patch.Fields)+1)
	for _, f := range patch.Fields {
		if !allowed[f.Column] {
			return "", nil, fmt.Errorf("column %q cannot be updated", f.Column)
		}
		args = append(args, f.Value)
		sets = append(sets, fmt.Sprintf("%s = $%d", pgx.Identifier{f.Column}.Sanitize(), len(args)))
	}
	args = append(args, patch.ID)

	query := fmt.Sprintf(
		"UPDATE authors SET %s WHERE id = $%d RETURNING %s",
		strings.Join(sets, ", "),
		len(args),
		authorColumns,
	)
	return query, args, nil
}
