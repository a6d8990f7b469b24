package auth

import (
	"fmt"
	"strings"

	"github.com/mgr-punith/password-vault/cmd/client/cmd/prompt"
	"github.com/mgr-punith/password-vault/cmd/client/cmd/types"

	"github.com/spf13/cobra"
)

var RegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Зарегистрировать нового пользователя",
	Long: `Создает учетную запись на сервере и сохраняет токен.

Пароль: не короче 8 символов, строчные и заглавные буквы, цифра и спецсимвол.
После регистрации задайте PIN командой 'password-vault pin set'.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		p := prompt.Stdio()
		fmt.Println("=== Регистрация нового пользователя ===")

		login, err := p.Line("Логин: ")
		if err != nil {
			return fmt.Errorf("ошибка чтения логина: %w", err)
		}
		login = strings.TrimSpace(login)
		if login == "" {
			return fmt.Errorf("логин не может быть пустым")
		}

		password, err := p.SecretTwice("Пароль: ", "Повторите пароль: ")
		if err != nil {
			return fmt.Errorf("ошибка ввода пароля: %w", err)
		}

		if err := app.Register(cmd.Context(), login, password); err != nil {
			return err
		}

		fmt.Println("✅ Регистрация успешно завершена!")
		fmt.Println("Задайте PIN для хранилища: password-vault pin set")
		return nil
	},
}
