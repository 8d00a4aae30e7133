package liabilities

import "errors"

var (
	ErrNameRequired      = errors.New("Liability name is required")
	ErrLiabilityNotFound = errors.New("Liability not found")
	ErrUnknownEntity     = errors.New("Unknown ownership entity")
	ErrBadSplitKey       = errors.New("Ownership split keys must be entity IDs")
)
