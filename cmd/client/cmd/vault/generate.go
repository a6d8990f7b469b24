package vault

import (
	"fmt"

	"github.com/mgr-punith/password-vault/internal/app/client/generator"

	"github.com/spf13/cobra"
)

var genOpts = generator.DefaultOptions()

var GenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Сгенерировать пароль",
	Long:  `Создает случайный пароль. Хранилище для этого разблокировать не нужно.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := generator.Generate(genOpts)
		if err != nil {
			return err
		}

		fmt.Println(password)
		return nil
	},
}

func init() {
	f := GenerateCmd.Flags()
	f.IntVarP(&genOpts.Length, "length", "n", generator.DefaultLength, "длина пароля (8-64)")
	f.BoolVar(&genOpts.Lowercase, "lower", true, "строчные буквы")
	f.BoolVar(&genOpts.Uppercase, "upper", true, "заглавные буквы")
	f.BoolVar(&genOpts.Digits, "digits", true, "цифры")
	f.BoolVar(&genOpts.Symbols, "symbols", true, "спецсимволы")
	f.BoolVar(&genOpts.ExcludeLookAlikes, "exclude-similar", true, "исключить похожие символы (il1oO0)")
}
