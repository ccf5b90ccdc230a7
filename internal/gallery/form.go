package gallery

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"gallery-backend/internal/domains/author/model"
)

// Field names a form input.
type Field string

const (
	FieldName      Field = "name"
	FieldBirthDate Field = "birthDate"
	FieldDeathDate Field = "deathDate"
	FieldBiography Field = "biography"
	FieldImageURL  Field = "imageUrl"
)

// FormFields lists the inputs in the order they are asked for.
var FormFields = []Field{FieldName, FieldBirthDate, FieldDeathDate, FieldBiography, FieldImageURL}

// FormData is what the form holds while it is open. Empty strings stand for
// unset optional fields.
type FormData struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	BirthDate string `json:"birthDate"`
	DeathDate string `json:"deathDate"`
	Biography string `json:"biography"`
	ImageURL  string `json:"imageUrl"`
}

func FormFromAuthor(a model.Author) FormData {
	return FormData{
		ID:        a.ID.String(),
		Name:      a.Name,
		BirthDate: deref(a.BirthDate),
		DeathDate: deref(a.DeathDate),
		Biography: a.Biography,
		ImageURL:  deref(a.ImageURL),
	}
}

// With returns a copy with field set to value. Unknown fields are ignored.
func (f FormData) With(field Field, value string) FormData {
	switch field {
	case FieldName:
		f.Name = value
	case FieldBirthDate:
		f.BirthDate = value
	case FieldDeathDate:
		f.DeathDate = value
	case FieldBiography:
		f.Biography = value
	case FieldImageURL:
		f.ImageURL = value
	}
	return f
}

// Get returns the current value of field.
func (f FormData) Get(field Field) string {
	switch field {
	case FieldName:
		return f.Name
	case FieldBirthDate:
		return f.BirthDate
	case FieldDeathDate:
		return f.DeathDate
	case FieldBiography:
		return f.Biography
	case FieldImageURL:
		return f.ImageURL
	}
	return ""
}

// Validate applies the form's own required-input checks. The store still
// enforces its constraints on whatever gets through.
func (f FormData) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Name, validation.Required),
		validation.Field(&f.Biography, validation.Required),
		validation.Field(&f.ImageURL,
			validation.When(f.ImageURL != "" && !strings.HasPrefix(f.ImageURL, "data:"), is.URL),
		),
	)
}

// UpdatePayload is the edit-mode body: the full record including id.
type UpdatePayload struct {
	ID string `json:"id"`
	model.NewAuthor
}

// CreatePayload is the create-mode body; it has no id at all.
func (f FormData) CreatePayload() model.NewAuthor {
	name := f.Name
	bio := f.Biography
	return model.NewAuthor{
		Name:      &name,
		BirthDate: optional(f.BirthDate),
		DeathDate: optional(f.DeathDate),
		Biography: &bio,
		ImageURL:  optional(f.ImageURL),
	}
}

func (f FormData) UpdatePayload() UpdatePayload {
	return UpdatePayload{ID: f.ID, NewAuthor: f.CreatePayload()}
}

func optional(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
