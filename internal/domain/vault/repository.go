package vault

import "context"

// Repository хранилище записей. Все операции ограничены владельцем.
type Repository interface {
	Create(ctx context.Context, rec *Record) error
	Update(ctx context.Context, rec *Record) error
	Delete(ctx context.Context, ownerID, id string) error
	// List возвращает записи владельца, новые первыми.
	List(ctx context.Context, ownerID string) ([]Record, error)
}
