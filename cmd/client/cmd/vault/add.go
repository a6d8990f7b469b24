package vault

import (
	"fmt"

	"github.com/mgr-punith/password-vault/cmd/client/cmd/prompt"
	"github.com/mgr-punith/password-vault/cmd/client/cmd/session"
	"github.com/mgr-punith/password-vault/cmd/client/cmd/types"
	"github.com/mgr-punith/password-vault/internal/app/client/crypto"

	"github.com/spf13/cobra"
)

var (
	addSite     string
	addUsername string
	addNotes    string
	addGenerate bool
)

var AddCmd = &cobra.Command{
	Use:   "add",
	Short: "Добавить запись",
	Long: `Шифрует запись ключом сессии и сохраняет на сервере.

Значения флагов подставляются в запросы по умолчанию.`,
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

		entry, err := session.EntryForm(p, crypto.Entry{
			Site:     addSite,
			Username: addUsername,
			Notes:    addNotes,
		}, addGenerate)
		if err != nil {
			return err
		}

		id, err := app.AddEntry(cmd.Context(), entry)
		if err != nil {
			return err
		}

		fmt.Printf("✅ Запись создана: %s\n", id)
		if addGenerate {
			fmt.Println("Пароль можно посмотреть командой: password-vault vault list --show")
		}
		return nil
	},
}

func init() {
	AddCmd.Flags().StringVar(&addSite, "site", "", "сайт")
	AddCmd.Flags().StringVarP(&addUsername, "username", "u", "", "логин на сайте")
	AddCmd.Flags().StringVar(&addNotes, "notes", "", "заметки")
	AddCmd.Flags().BoolVarP(&addGenerate, "generate", "g", false, "сгенерировать пароль")
}
