// Package session содержит общие для команд и интерактивной оболочки
// шаги: разблокировку по PIN, ввод записи и вывод списка.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/mgr-punith/password-vault/cmd/client/cmd/prompt"
	"github.com/mgr-punith/password-vault/internal/app/client"
	"github.com/mgr-punith/password-vault/internal/app/client/crypto"
	"github.com/mgr-punith/password-vault/internal/app/client/generator"
	"github.com/mgr-punith/password-vault/internal/app/client/unlock"
)

var (
	ErrNoPin     = errors.New("PIN не задан, выполните 'password-vault pin set'")
	ErrSiteEmpty = errors.New("сайт не может быть пустым")
)

// Vault операции *client.App, нужные командам хранилища.
type Vault interface {
	State() unlock.State
	Status(ctx context.Context) (unlock.State, error)
	Unlock(ctx context.Context, pin string) error
	Lock()
	AddEntry(ctx context.Context, entry crypto.Entry) (string, error)
	UpdateEntry(ctx context.Context, id string, entry crypto.Entry) error
	DeleteEntry(ctx context.Context, id string) error
	ListEntries(ctx context.Context) (client.Listing, error)
}

// Unlock запрашивает PIN, если хранилище еще не разблокировано.
func Unlock(ctx context.Context, v Vault, p *prompt.Prompter) error {
	if v.State() == unlock.StateUnlocked {
		return nil
	}

	state, err := v.Status(ctx)
	if err != nil {
		return err
	}
	if state == unlock.StateNotInitialized {
		return ErrNoPin
	}

	pin, err := p.Secret("PIN: ")
	if err != nil {
		return err
	}

	return v.Unlock(ctx, pin)
}

// EntryForm запрашивает поля записи. Текущие значения подставляются по умолчанию,
// пустой пароль оставляет прежний. При generate пароль создается генератором.
func EntryForm(p *prompt.Prompter, current crypto.Entry, generate bool) (crypto.Entry, error) {
	var (
		entry crypto.Entry
		err   error
	)

	if entry.Site, err = p.Default("Сайт: ", current.Site); err != nil {
		return crypto.Entry{}, err
	}
	entry.Site = strings.TrimSpace(entry.Site)
	if entry.Site == "" {
		return crypto.Entry{}, ErrSiteEmpty
	}

	if entry.Username, err = p.Default("Логин: ", current.Username); err != nil {
		return crypto.Entry{}, err
	}

	if generate {
		if entry.Password, err = generator.Generate(generator.DefaultOptions()); err != nil {
			return crypto.Entry{}, err
		}
		fmt.Fprintln(p.Out(), "Пароль сгенерирован")
	} else {
		if entry.Password, err = p.Secret("Пароль (пусто - без изменений): "); err != nil {
			return crypto.Entry{}, err
		}
		if entry.Password == "" {
			entry.Password = current.Password
		}
	}

	if entry.Notes, err = p.Default("Заметки: ", current.Notes); err != nil {
		return crypto.Entry{}, err
	}

	return entry, nil
}

// PrintListing выводит записи таблицей. Пароли скрыты, если reveal не задан.
func PrintListing(w io.Writer, l client.Listing, query string, reveal bool) {
	if l.Offline {
		fmt.Fprintln(w, "⚠️  Сервер недоступен, показаны записи из локального кэша")
	}

	items := l.Search(query)
	if len(items) == 0 {
		fmt.Fprintln(w, "Записи не найдены")
	} else {
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tСАЙТ\tЛОГИН\tПАРОЛЬ\tЗАМЕТКИ\tИЗМЕНЕНА")
		for _, it := range items {
			password := "********"
			if reveal {
				password = it.Entry.Password
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
				it.ID,
				it.Entry.Site,
				it.Entry.Username,
				password,
				truncate(it.Entry.Notes, 30),
				it.UpdatedAt.Local().Format(time.DateTime),
			)
		}
		tw.Flush()
	}

	for _, f := range l.Failed {
		fmt.Fprintf(w, "❌ Запись %s не расшифрована: %v\n", f.ID, f.Err)
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
