package vault

import (
	"fmt"

	"github.com/mgr-punith/password-vault/cmd/client/cmd/prompt"
	"github.com/mgr-punith/password-vault/cmd/client/cmd/session"
	"github.com/mgr-punith/password-vault/cmd/client/cmd/types"

	"github.com/spf13/cobra"
)

var deleteYes bool

var DeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Удалить запись",
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

		if !deleteYes {
			ok, err := p.Confirm(fmt.Sprintf("Удалить запись %s?", args[0]))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println("Отменено")
				return nil
			}
		}

		if err := app.DeleteEntry(cmd.Context(), args[0]); err != nil {
			return err
		}

		fmt.Println("✅ Запись удалена")
		return nil
	},
}

func init() {
	DeleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "не спрашивать подтверждение")
}
