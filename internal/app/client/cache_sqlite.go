package client

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mgr-punith/password-vault/internal/domain/vault"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteCache хранит шифротекст последнего успешного списка для офлайн-режима.
// Расшифрованные данные сюда не пишутся.
type SQLiteCache struct {
	db *sql.DB
}

func NewSQLiteCache(path string) (*SQLiteCache, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия базы данных: %w", err)
	}

	cache := &SQLiteCache{db: db}

	if err := cache.initTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ошибка инициализации таблиц: %w", err)
	}

	return cache, nil
}

func (c *SQLiteCache) initTables() error {
	_, err := c.db.Exec(`
		CREATE TABLE IF NOT EXISTS records (
			owner_id TEXT NOT NULL,
			id TEXT NOT NULL,
			ciphertext TEXT NOT NULL,
			iv TEXT NOT NULL,
			created_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL,
			PRIMARY KEY (owner_id, id)
		);

		CREATE INDEX IF NOT EXISTS idx_records_owner_created ON records(owner_id, created_at DESC);
	`)

	return err
}

// Replace заменяет кэш владельца новым списком в одной транзакции.
func (c *SQLiteCache) Replace(ctx context.Context, ownerID string, records []vault.Record) (err error) {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, "DELETE FROM records WHERE owner_id = ?", ownerID); err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO records (owner_id, id, ciphertext, iv, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		_, err = stmt.ExecContext(ctx, ownerID, rec.ID, rec.Ciphertext, rec.IV,
			rec.CreatedAt.UnixNano(), rec.UpdatedAt.UnixNano())
		if err != nil {
			return fmt.Errorf("insert record %s: %w", rec.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	return nil
}

// List возвращает записи владельца, новые первыми.
func (c *SQLiteCache) List(ctx context.Context, ownerID string) ([]vault.Record, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT id, ciphertext, iv, created_at, updated_at
		FROM records
		WHERE owner_id = ?
		ORDER BY created_at DESC
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("ошибка выполнения запроса: %w", err)
	}
	defer rows.Close()

	var records []vault.Record
	for rows.Next() {
		var (
			rec                  vault.Record
			createdAt, updatedAt int64
		)

		if err := rows.Scan(&rec.ID, &rec.Ciphertext, &rec.IV, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("ошибка сканирования записи: %w", err)
		}

		rec.OwnerID = ownerID
		rec.CreatedAt = time.Unix(0, createdAt).UTC()
		rec.UpdatedAt = time.Unix(0, updatedAt).UTC()
		records = append(records, rec)
	}

	return records, rows.Err()
}

func (c *SQLiteCache) Close() error {
	return c.db.Close()
}
