package shell

import (
	"github.com/mgr-punith/password-vault/cmd/client/cmd/prompt"
	"github.com/mgr-punith/password-vault/cmd/client/cmd/types"

	"github.com/spf13/cobra"
)

var ShellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Интерактивный сеанс",
	Long: `Открывает интерактивный сеанс. PIN вводится один раз, ключ хранится
в памяти до команды lock или выхода из сеанса.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		return New(app, prompt.Stdio()).Run(cmd.Context())
	},
}
