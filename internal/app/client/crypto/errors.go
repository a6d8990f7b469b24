package crypto

import "errors"

var (
	ErrInvalidKey           = errors.New("invalid session key")
	ErrEncryptionFailed     = errors.New("encryption failed")
	ErrMalformedRecord      = errors.New("malformed record")
	ErrAuthenticationFailed = errors.New("record authentication failed")
	ErrCorruptPayload       = errors.New("corrupt record payload")
)
