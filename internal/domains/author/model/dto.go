package model

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// UpdateAuthorRequest - PUT body: the full record including id.
// Kept as raw JSON so only the keys actually sent become assignments.
type UpdateAuthorRequest map[string]json.RawMessage

// DeleteAuthorRequest - DELETE body: {"id": "..."}
type DeleteAuthorRequest struct {
	ID string `json:"id"`
}

// ParseID validates a record identifier.
func ParseID(raw string) (uuid.UUID, error) {
	if raw == "" {
		return uuid.Nil, ErrMissingID
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %q", ErrInvalidID, raw)
	}
	return id, nil
}

// ToPatch extracts the id as the lookup key and turns every other known key
// into an assignment. Unknown keys are ignored.
func (req UpdateAuthorRequest) ToPatch() (*AuthorPatch, error) {
	rawID, ok := req["id"]
	if !ok {
		return nil, ErrMissingID
	}
	var idStr string
	if err := json.Unmarshal(rawID, &idStr); err != nil {
		return nil, fmt.Errorf("%w: id", ErrInvalidField)
	}
	id, err := ParseID(idStr)
	if err != nil {
		return nil, err
	}

	patch := &AuthorPatch{ID: id}
	for _, col := range MutableColumns {
		raw, ok := req[col.Key]
		if !ok {
			continue
		}
		var value *string
		if err := json.Unmarshal(raw, &value); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidField, col.Key)
		}
		patch.Fields = append(patch.Fields, FieldValue{Column: col.Name, Value: value})
	}

	if len(patch.Fields) == 0 {
		return nil, ErrNoValuesToSet
	}
	return patch, nil
}
