// Package shell интерактивный сеанс: хранилище остается разблокированным
// до команды lock или выхода.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mgr-punith/password-vault/cmd/client/cmd/prompt"
	"github.com/mgr-punith/password-vault/cmd/client/cmd/session"
	"github.com/mgr-punith/password-vault/internal/app/client/crypto"
	"github.com/mgr-punith/password-vault/internal/app/client/generator"
	"github.com/mgr-punith/password-vault/internal/app/client/unlock"
	"github.com/mgr-punith/password-vault/internal/domain/vault"
)

const help = `Команды:
  status              состояние хранилища
  unlock              ввести PIN
  lock                заблокировать хранилище
  list [запрос]       показать записи
  show [запрос]       показать записи с паролями
  add                 добавить запись
  update <id>         изменить запись
  delete <id>         удалить запись
  generate [длина]    сгенерировать пароль
  help                эта справка
  exit                выйти`

var errUsage = errors.New("неверные аргументы, см. help")

type Shell struct {
	v   session.Vault
	p   *prompt.Prompter
	out io.Writer
}

func New(v session.Vault, p *prompt.Prompter) *Shell {
	return &Shell{
		v:   v,
		p:   p,
		out: p.Out(),
	}
}

// Run читает команды до exit, конца ввода или отмены ctx.
// Перед возвратом хранилище блокируется.
func (s *Shell) Run(ctx context.Context) error {
	defer s.v.Lock()

	fmt.Fprintln(s.out, "Password Vault. Введите help для списка команд.")
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		line, err := s.p.Line(s.promptLabel())
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(s.out)
				return nil
			}
			return err
		}

		quit, err := s.exec(ctx, line)
		if err != nil {
			fmt.Fprintf(s.out, "Ошибка: %s\n", session.Describe(err))
		}
		if quit {
			return nil
		}
	}
}

func (s *Shell) promptLabel() string {
	if s.v.State() == unlock.StateUnlocked {
		return "vault (открыто)> "
	}
	return "vault> "
}

func (s *Shell) exec(ctx context.Context, line string) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}

	name, args := fields[0], fields[1:]
	switch name {
	case "exit", "quit":
		return true, nil
	case "help":
		fmt.Fprintln(s.out, help)
	case "status":
		return false, s.status(ctx)
	case "unlock":
		if err := session.Unlock(ctx, s.v, s.p); err != nil {
			return false, err
		}
		fmt.Fprintln(s.out, "Хранилище разблокировано")
	case "lock":
		s.v.Lock()
		fmt.Fprintln(s.out, "Хранилище заблокировано")
	case "list":
		return false, s.list(ctx, strings.Join(args, " "), false)
	case "show":
		return false, s.list(ctx, strings.Join(args, " "), true)
	case "add":
		return false, s.add(ctx)
	case "update":
		if len(args) != 1 {
			return false, errUsage
		}
		return false, s.update(ctx, args[0])
	case "delete":
		if len(args) != 1 {
			return false, errUsage
		}
		return false, s.delete(ctx, args[0])
	case "generate":
		return false, s.generate(args)
	default:
		return false, fmt.Errorf("неизвестная команда %q, см. help", name)
	}

	return false, nil
}

func (s *Shell) status(ctx context.Context) error {
	state := s.v.State()
	if state != unlock.StateUnlocked {
		var err error
		if state, err = s.v.Status(ctx); err != nil {
			return err
		}
	}

	switch state {
	case unlock.StateUnlocked:
		fmt.Fprintln(s.out, "Хранилище разблокировано")
	case unlock.StateNotInitialized:
		fmt.Fprintln(s.out, "PIN не задан")
	default:
		fmt.Fprintln(s.out, "Хранилище заблокировано")
	}
	return nil
}

func (s *Shell) list(ctx context.Context, query string, reveal bool) error {
	if err := session.Unlock(ctx, s.v, s.p); err != nil {
		return err
	}

	listing, err := s.v.ListEntries(ctx)
	if err != nil {
		return err
	}

	session.PrintListing(s.out, listing, query, reveal)
	return nil
}

func (s *Shell) add(ctx context.Context) error {
	if err := session.Unlock(ctx, s.v, s.p); err != nil {
		return err
	}

	generate, err := s.p.Confirm("Сгенерировать пароль?")
	if err != nil {
		return err
	}

	entry, err := session.EntryForm(s.p, crypto.Entry{}, generate)
	if err != nil {
		return err
	}

	id, err := s.v.AddEntry(ctx, entry)
	if err != nil {
		return err
	}

	fmt.Fprintf(s.out, "Запись создана: %s\n", id)
	return nil
}

func (s *Shell) update(ctx context.Context, id string) error {
	if err := session.Unlock(ctx, s.v, s.p); err != nil {
		return err
	}

	listing, err := s.v.ListEntries(ctx)
	if err != nil {
		return err
	}
	if listing.Offline {
		return errors.New("сервер недоступен, изменение невозможно")
	}

	current, ok := listing.Find(id)
	if !ok {
		return vault.ErrNotFound
	}

	entry, err := session.EntryForm(s.p, current.Entry, false)
	if err != nil {
		return err
	}

	if err := s.v.UpdateEntry(ctx, id, entry); err != nil {
		return err
	}

	fmt.Fprintln(s.out, "Запись обновлена")
	return nil
}

func (s *Shell) delete(ctx context.Context, id string) error {
	if err := session.Unlock(ctx, s.v, s.p); err != nil {
		return err
	}

	ok, err := s.p.Confirm(fmt.Sprintf("Удалить запись %s?", id))
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(s.out, "Отменено")
		return nil
	}

	if err := s.v.DeleteEntry(ctx, id); err != nil {
		return err
	}

	fmt.Fprintln(s.out, "Запись удалена")
	return nil
}

func (s *Shell) generate(args []string) error {
	opts := generator.DefaultOptions()
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return errUsage
		}
		opts.Length = n
	}

	password, err := generator.Generate(opts)
	if err != nil {
		return err
	}

	fmt.Fprintln(s.out, password)
	return nil
}
