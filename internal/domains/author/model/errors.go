package model

import "errors"

var (
	// Request errors
	ErrMissingID     = errors.New("id is required")
	ErrInvalidID     = errors.New("id is not a valid uuid")
	ErrInvalidField  = errors.New("field must be a string or null")
	ErrNoValuesToSet = errors.New("no values to set")
	ErrEmptyBody     = errors.New("request body is empty")
)
