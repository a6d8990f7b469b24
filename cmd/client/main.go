package main

import "github.com/mgr-punith/password-vault/cmd/client/cmd"

func main() {
	cmd.Execute()
}
