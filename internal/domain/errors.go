package domain

import "errors"

var (
	ErrNotFound = errors.New("resource not found")
	// ErrSlugTaken is returned when a slug already belongs to another record
	ErrSlugTaken = errors.New("slug already taken")
	// ErrAlreadyOwned is returned when the identity already owns a record
	ErrAlreadyOwned = errors.New("identity already owns a portfolio")
)
