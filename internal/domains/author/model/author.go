package model

import (
	"github.com/google/uuid"
)

// Author is a row of the authors table as returned to clients.
// Optional columns are pointers so NULL round-trips as JSON null.
type Author struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	BirthDate *string   `json:"birthDate" db:"birth_date"` // free-form, e.g. "1845"
	DeathDate *string   `json:"deathDate" db:"death_date"`
	Biography string    `json:"biography" db:"biography"`
	ImageURL  *string   `json:"imageUrl" db:"image_url"` // URL or data: URI
}

// NewAuthor is the insert shape: every column except id, which the store
// always generates. Required columns are pointers too, so an omitted value
// reaches the store as NULL and is rejected there.
type NewAuthor struct {
	Name      *string `json:"name"`
	BirthDate *string `json:"birthDate"`
	DeathDate *string `json:"deathDate"`
	Biography *string `json:"biography"`
	ImageURL  *string `json:"imageUrl"`
}

// Column maps a JSON key of the record to its table column.
type Column struct {
	Key  string
	Name string
}

// MutableColumns lists every column an update may set, in table order.
var MutableColumns = []Column{
	{Key: "name", Name: "name"},
	{Key: "birthDate", Name: "birth_date"},
	{Key: "deathDate", Name: "death_date"},
	{Key: "biography", Name: "biography"},
	{Key: "imageUrl", Name: "image_url"},
}

// FieldValue is one assignment of an update. A nil Value sets NULL.
type FieldValue struct {
	Column string
	Value  *string
}

// AuthorPatch is a set-update keyed by id over exactly the submitted fields.
type AuthorPatch struct {
	ID     uuid.UUID
	Fields []FieldValue
}

// Value returns the assignment for column, if the patch carries one.
func (p *AuthorPatch) Value(column string) (*string, bool) {
	for _, f := range p.Fields {
		if f.Column == column {
			return f.Value, true
		}
	}
	return nil, false
}
