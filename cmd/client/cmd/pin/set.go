package pin

import (
	"fmt"

	"github.com/mgr-punith/password-vault/cmd/client/cmd/prompt"
	"github.com/mgr-punith/password-vault/cmd/client/cmd/types"

	"github.com/spf13/cobra"
)

var SetCmd = &cobra.Command{
	Use:   "set",
	Short: "Задать PIN хранилища",
	Long: `Задает PIN из 6 цифр. Команда работает, только если PIN еще не задан.

Запомните PIN: без него записи хранилища расшифровать невозможно.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}
		defer app.Lock()

		p := prompt.Stdio()
		pin, err := p.SecretTwice("Новый PIN (6 цифр): ", "Повторите PIN: ")
		if err != nil {
			return fmt.Errorf("ошибка ввода PIN: %w", err)
		}

		if err := app.SetPin(cmd.Context(), pin); err != nil {
			return err
		}

		fmt.Println("✅ PIN задан")
		return nil
	},
}
