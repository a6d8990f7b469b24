package common

import "errors"

var (
	// ErrTransport сеть недоступна или сервер ответил 5xx. Операцию можно повторить.
	ErrTransport = errors.New("transport failure")
	// ErrUnauthorized нет действующего токена учетной записи.
	ErrUnauthorized = errors.New("unauthorized")
)
