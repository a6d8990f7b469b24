package vault

import (
	"os"

	"github.com/mgr-punith/password-vault/cmd/client/cmd/prompt"
	"github.com/mgr-punith/password-vault/cmd/client/cmd/session"
	"github.com/mgr-punith/password-vault/cmd/client/cmd/types"

	"github.com/spf13/cobra"
)

var (
	searchQuery  string
	showPassword bool
)

var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "Показать записи",
	Long: `Выводит расшифрованные записи, новые сверху.

Если сервер недоступен, показываются записи из локального кэша.
Записи, которые не удалось расшифровать, перечисляются отдельно.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}
		defer app.Lock()

		if err := session.Unlock(cmd.Context(), app, prompt.Stdio()); err != nil {
			return err
		}

		listing, err := app.ListEntries(cmd.Context())
		if err != nil {
			return err
		}

		session.PrintListing(os.Stdout, listing, searchQuery, showPassword)
		return nil
	},
}

func init() {
	ListCmd.Flags().StringVarP(&searchQuery, "search", "s", "", "фильтр по сайту, логину или заметкам")
	ListCmd.Flags().BoolVar(&showPassword, "show", false, "показать пароли")
}
