package assets

import "errors"

var (
	ErrNameRequired  = errors.New("Asset name is required")
	ErrAssetNotFound = errors.New("Asset not found")
	ErrUnknownEntity = errors.New("Unknown ownership entity")
	ErrBadSplitKey   = errors.New("Ownership split keys must be entity IDs")
)
