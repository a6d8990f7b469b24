package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mgr-punith/password-vault/cmd/client/cmd/session"
	"github.com/mgr-punith/password-vault/cmd/client/cmd/types"
	"github.com/mgr-punith/password-vault/internal/app/client"
	"github.com/mgr-punith/password-vault/internal/app/client/config"
	"github.com/mgr-punith/password-vault/internal/app/client/keystore"
	"github.com/mgr-punith/password-vault/internal/utils/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile   string
	debug     bool
	serverURL string
	app       *client.App
)

var rootCmd = &cobra.Command{
	Use:   "password-vault",
	Short: "Password Vault - клиент хранилища паролей",
	Long: `Password Vault хранит логины и пароли в зашифрованном виде.

Записи шифруются на клиенте ключом, выведенным из PIN. Сервер хранит
только шифротекст и хэш PIN. Ключ живет в памяти процесса до блокировки.`,
	PersistentPreRunE: setupApp,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if app != nil {
		if cerr := app.Close(); cerr != nil {
			fmt.Fprintf(os.Stderr, "Ошибка закрытия: %v\n", cerr)
		}
	}
	keystore.Purge()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка: %s\n", session.Describe(err))
		os.Exit(1)
	}
}

func setupApp(cmd *cobra.Command, _ []string) error {
	v, err := loadViper()
	if err != nil {
		return fmt.Errorf("ошибка загрузки конфигурации: %w", err)
	}

	cfg, err := config.Load(v)
	if err != nil {
		return fmt.Errorf("ошибка загрузки конфигурации: %w", err)
	}

	log := logger.NewCLI(os.Stderr, debug)

	app, err = client.New(cfg, log)
	if err != nil {
		return fmt.Errorf("ошибка инициализации приложения: %w", err)
	}

	cmd.SetContext(context.WithValue(cmd.Context(), types.ClientAppKey, app))
	return nil
}

func loadViper() (*viper.Viper, error) {
	v := viper.New()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	// флаг важнее файла и окружения
	if serverURL != "" {
		v.Set("server_address", serverURL)
	}

	return v, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "конфигурационный файл (yaml, json, toml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "включить отладочный режим")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "адрес сервера host:port")
}
