package postgres

import (
	"context"
	"fmt"

	"github.com/mgr-punith/password-vault/internal/domain/vault"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"
)

type VaultRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewVaultRepository(pool *pgxpool.Pool, log *slog.Logger) *VaultRepository {
	return &VaultRepository{
		pool: pool,
		log:  log.With("component", "vault_repository"),
	}
}

func (r *VaultRepository) Create(ctx context.Context, rec *vault.Record) error {
	const query = `
		INSERT INTO vault_items (id, user_id, ciphertext, iv, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.pool.Exec(ctx, query,
		rec.ID, rec.OwnerID, rec.Ciphertext, rec.IV, rec.CreatedAt, rec.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert vault item: %w", err)
	}

	return nil
}

func (r *VaultRepository) Update(ctx context.Context, rec *vault.Record) error {
	const query = `
		UPDATE vault_items
		SET ciphertext = $1, iv = $2, updated_at = $3
		WHERE id = $4 AND user_id = $5`

	tag, err := r.pool.Exec(ctx, query,
		rec.Ciphertext, rec.IV, rec.UpdatedAt, rec.ID, rec.OwnerID)
	if err != nil {
		return fmt.Errorf("update vault item: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return vault.ErrNotFound
	}

	return nil
}

func (r *VaultRepository) Delete(ctx context.Context, ownerID, id string) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM vault_items WHERE id = $1 AND user_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete vault item: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return vault.ErrNotFound
	}

	return nil
}

func (r *VaultRepository) List(ctx context.Context, ownerID string) ([]vault.Record, error) {
	const query = `
		SELECT id, user_id, ciphertext, iv, created_at, updated_at
		FROM vault_items
		WHERE user_id = $1
		ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		r.log.Error("failed to list vault items", "user_id", ownerID, "error", err)
		return nil, fmt.Errorf("list vault items: %w", err)
	}
	defer rows.Close()

	records, err := pgx.CollectRows(rows, scanRecord)
	if err != nil {
		return nil, fmt.Errorf("scan vault items: %w", err)
	}

	return records, nil
}

func scanRecord(row pgx.CollectableRow) (vault.Record, error) {
	var rec vault.Record
	err := row.Scan(&rec.ID, &rec.OwnerID, &rec.Ciphertext, &rec.IV, &rec.CreatedAt, &rec.UpdatedAt)
	return rec, err
}
