// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/taibuivan/socialbros/internal/users/account"
)

var (
	newUsername string
	newPassword string
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Account administration",
}

var usersCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an account with the configured password mode",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnvironment(cmd.Context())
		if err != nil {
			return err
		}
		defer env.Close()

		accounts, err := env.accounts()
		if err != nil {
			return err
		}
		return createUser(cmd.Context(), accounts, newUsername, newPassword, cmd.OutOrStdout())
	},
}

func init() {
	usersCreateCmd.Flags().StringVar(&newUsername, "username", "", "Username of the new account")
	usersCreateCmd.Flags().StringVar(&newPassword, "password", "", "Password of the new account")
	_ = usersCreateCmd.MarkFlagRequired("username")
	_ = usersCreateCmd.MarkFlagRequired("password")

	usersCmd.AddCommand(usersCreateCmd)
	rootCmd.AddCommand(usersCmd)
}

func createUser(context context.Context, accounts *account.Service, username, password string, out io.Writer) error {
	user, err := accounts.Create(context, account.CreateInput{Username: username, Password: password})
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "created user %s (%s)\n", user.Username, user.ID)
	return nil
}
