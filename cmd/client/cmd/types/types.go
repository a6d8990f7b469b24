package types

import (
	"fmt"

	"github.com/mgr-punith/password-vault/internal/app/client"

	"github.com/spf13/cobra"
)

type contextKey string

// ClientAppKey ключ *client.App в контексте команды.
const ClientAppKey contextKey = "client_app"

func App(cmd *cobra.Command) (*client.App, error) {
	app, ok := cmd.Context().Value(ClientAppKey).(*client.App)
	if !ok || app == nil {
		return nil, fmt.Errorf("приложение не инициализировано")
	}
	return app, nil
}
