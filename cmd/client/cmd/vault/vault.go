package vault

import (
	"github.com/spf13/cobra"
)

// VaultCmd родительская команда для записей хранилища. Каждая подкоманда
// запрашивает PIN и блокирует хранилище перед выходом.
var VaultCmd = &cobra.Command{
	Use:   "vault",
	Short: "Записи хранилища",
	Long: `Просмотр, добавление, изменение и удаление записей.

Для работы без повторного ввода PIN используйте 'password-vault shell'.`,
}
