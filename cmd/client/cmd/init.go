package cmd

import (
	"github.com/mgr-punith/password-vault/cmd/client/cmd/auth"
	"github.com/mgr-punith/password-vault/cmd/client/cmd/pin"
	"github.com/mgr-punith/password-vault/cmd/client/cmd/shell"
	"github.com/mgr-punith/password-vault/cmd/client/cmd/vault"
)

func init() {
	rootCmd.AddCommand(auth.AuthCmd)
	auth.AuthCmd.AddCommand(auth.RegisterCmd)
	auth.AuthCmd.AddCommand(auth.LoginCmd)
	auth.AuthCmd.AddCommand(auth.LogoutCmd)

	rootCmd.AddCommand(pin.PinCmd)
	pin.PinCmd.AddCommand(pin.StatusCmd)
	pin.PinCmd.AddCommand(pin.SetCmd)

	rootCmd.AddCommand(vault.VaultCmd)
	vault.VaultCmd.AddCommand(vault.ListCmd)
	vault.VaultCmd.AddCommand(vault.AddCmd)
	vault.VaultCmd.AddCommand(vault.UpdateCmd)
	vault.VaultCmd.AddCommand(vault.DeleteCmd)
	vault.VaultCmd.AddCommand(vault.GenerateCmd)

	rootCmd.AddCommand(shell.ShellCmd)
}
