package pin

import "errors"

var (
	ErrValidation = errors.New("PIN must be exactly 6 digits")
	ErrAlreadySet = errors.New("PIN already set")
	ErrNotSet     = errors.New("PIN not set")
	ErrMismatch   = errors.New("invalid PIN")
)
