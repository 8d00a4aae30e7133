package entities

import "errors"

var (
	ErrNameRequired   = errors.New("Entity name is required")
	ErrDuplicateName  = errors.New("Entity name already exists")
	ErrInvalidType    = errors.New("Invalid entity type")
	ErrEntityNotFound = errors.New("Entity not found")
	ErrLastEntity     = errors.New("Cannot delete the last entity")
)
