package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func promptPassword(cmd *cobra.Command) (string, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return "", errors.New("no terminal for password prompt")
	}

	cmd.Print("Password: ")
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	cmd.Println()
	if err != nil {
		return "", err
	}
	if len(password) == 0 {
		return "", errors.New("password is empty")
	}
	return string(password), nil
}
