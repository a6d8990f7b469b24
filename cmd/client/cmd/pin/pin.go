package pin

import (
	"github.com/spf13/cobra"
)

// PinCmd родительская команда для работы с PIN хранилища
var PinCmd = &cobra.Command{
	Use:   "pin",
	Short: "PIN хранилища",
	Long: `PIN из 6 цифр задается один раз для учетной записи. Из него выводится
ключ шифрования записей. Восстановить PIN нельзя.`,
}
