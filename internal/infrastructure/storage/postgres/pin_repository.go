package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/mgr-punith/password-vault/internal/domain/pin"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"
)

// PinRepository хранит хэш PIN в колонке users.vault_pin.
type PinRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewPinRepository(pool *pgxpool.Pool, log *slog.Logger) *PinRepository {
	return &PinRepository{
		pool: pool,
		log:  log.With("component", "pin_repository"),
	}
}

func (r *PinRepository) GetHash(ctx context.Context, userID string) (string, error) {
	var hash *string
	err := r.pool.QueryRow(ctx, `SELECT vault_pin FROM users WHERE id = $1`, userID).Scan(&hash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", pin.ErrNotSet
		}
		return "", fmt.Errorf("select pin: %w", err)
	}

	if hash == nil || *hash == "" {
		return "", pin.ErrNotSet
	}

	return *hash, nil
}

func (r *PinRepository) SetHash(ctx context.Context, userID, hash string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET vault_pin = $2 WHERE id = $1 AND vault_pin IS NULL`,
		userID, hash)
	if err != nil {
		return fmt.Errorf("update pin: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return pin.ErrAlreadySet
	}

	return nil
}
