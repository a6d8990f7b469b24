package pin

import (
	"fmt"

	"github.com/mgr-punith/password-vault/cmd/client/cmd/types"
	"github.com/mgr-punith/password-vault/internal/app/client/unlock"

	"github.com/spf13/cobra"
)

var StatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Проверить сервер и наличие PIN",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		if err := app.Ping(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("Сервер доступен")

		state, err := app.Status(cmd.Context())
		if err != nil {
			return err
		}

		switch state {
		case unlock.StateNotInitialized:
			fmt.Println("PIN не задан. Задайте его командой: password-vault pin set")
		default:
			fmt.Println("PIN задан")
		}
		return nil
	},
}
