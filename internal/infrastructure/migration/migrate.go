package migration

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	// драйвер postgres и источник file регистрируются при импорте
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"golang.org/x/exp/slog"
)

// ErrDirty предыдущая миграция оборвалась, схему нужно чинить вручную.
var ErrDirty = errors.New("schema is dirty")

// Migrator часть *migrate.Migrate, нужная при старте сервера.
type Migrator interface {
	Up() error
	Version() (version uint, dirty bool, err error)
	Close() (source error, database error)
}

// Opener открывает мигратор. В тестах подменяется, чтобы не ходить в ФС и БД.
type Opener func(sourceURL, databaseURL string) (Migrator, error)

func Open(sourceURL, databaseURL string) (Migrator, error) {
	return migrate.New(sourceURL, databaseURL)
}

type Runner struct {
	dir  string
	dsn  string
	open Opener
	log  *slog.Logger
}

func NewRunner(dir, dsn string, open Opener, log *slog.Logger) *Runner {
	if open == nil {
		open = Open
	}

	return &Runner{
		dir:  dir,
		dsn:  dsn,
		open: open,
		log:  log.With("component", "migration"),
	}
}

// Up доводит схему users и vault_items до последней версии и возвращает ее номер.
// 0 означает, что каталог миграций пуст.
func (r *Runner) Up() (version uint, err error) {
	m, err := r.open("file://"+r.dir, r.dsn)
	if err != nil {
		return 0, fmt.Errorf("open migrations: %w", err)
	}
	defer func() {
		srcErr, dbErr := m.Close()
		err = errors.Join(err, srcErr, dbErr)
	}()

	if upErr := m.Up(); upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return 0, fmt.Errorf("migration up: %w", upErr)
	}

	version, dirty, err := m.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		return 0, nil
	case err != nil:
		return 0, fmt.Errorf("migration version: %w", err)
	case dirty:
		return version, fmt.Errorf("%w: version %d", ErrDirty, version)
	}

	r.log.Info("schema is up to date", "version", version)
	return version, nil
}
