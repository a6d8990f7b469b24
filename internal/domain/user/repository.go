package user

import (
	"context"
)

type Repository interface {
	// Create возвращает ErrExists, если логин занят.
	Create(ctx context.Context, u User) error
	FindByLogin(ctx context.Context, login string) (User, error)
}
