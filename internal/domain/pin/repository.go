package pin

import "context"

// Repository хранит bcrypt-хэш PIN пользователя.
type Repository interface {
	// GetHash возвращает ErrNotSet, если PIN еще не задан.
	GetHash(ctx context.Context, userID string) (string, error)
	// SetHash сохраняет хэш только если PIN еще не задан, иначе ErrAlreadySet.
	SetHash(ctx context.Context, userID, hash string) error
}
