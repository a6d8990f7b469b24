package vault

import (
	"fmt"

	"github.com/mgr-punith/password-vault/cmd/client/cmd/prompt"
	"github.com/mgr-punith/password-vault/cmd/client/cmd/session"
	"github.com/mgr-punith/password-vault/cmd/client/cmd/types"
	"github.com/mgr-punith/password-vault/internal/domain/vault"

	"github.com/spf13/cobra"
)

var updateGenerate bool

var UpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Изменить запись",
	Long:  `Запрашивает новые значения полей. Пустой ввод оставляет прежнее значение.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}
		defer app.Lock()

		p := prompt.Stdio()
		if err := session.Unlock(cmd.Context(), app, p); err != nil {
			return err
		}

		listing, err := app.ListEntries(cmd.Context())
		if err != nil {
			return err
		}
		if listing.Offline {
			return fmt.Errorf("сервер недоступен, изменение невозможно")
		}

		current, ok := listing.Find(args[0])
		if !ok {
			return vault.ErrNotFound
		}

		entry, err := session.EntryForm(p, current.Entry, updateGenerate)
		if err != nil {
			return err
		}

		if err := app.UpdateEntry(cmd.Context(), args[0], entry); err != nil {
			return err
		}

		fmt.Println("✅ Запись обновлена")
		return nil
	},
}

func init() {
	UpdateCmd.Flags().BoolVarP(&updateGenerate, "generate", "g", false, "сгенерировать новый пароль")
}
