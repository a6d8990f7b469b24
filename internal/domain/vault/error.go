package vault

import "errors"

var (
	ErrNotFound    = errors.New("vault item not found")
	ErrInvalidData = errors.New("invalid vault item data")
)
