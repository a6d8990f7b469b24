package auth

import (
	"fmt"
	"strings"

	"github.com/mgr-punith/password-vault/cmd/client/cmd/prompt"
	"github.com/mgr-punith/password-vault/cmd/client/cmd/types"

	"github.com/spf13/cobra"
)

var loginName string

var LoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Войти в учетную запись",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		p := prompt.Stdio()

		login := strings.TrimSpace(loginName)
		if login == "" {
			if login, err = p.Line("Логин: "); err != nil {
				return fmt.Errorf("ошибка чтения логина: %w", err)
			}
			login = strings.TrimSpace(login)
		}

		password, err := p.Secret("Пароль: ")
		if err != nil {
			return fmt.Errorf("ошибка чтения пароля: %w", err)
		}

		if err := app.Login(cmd.Context(), login, password); err != nil {
			return err
		}

		fmt.Println("✅ Вход выполнен")
		return nil
	},
}

func init() {
	LoginCmd.Flags().StringVarP(&loginName, "login", "l", "", "логин пользователя")
}
