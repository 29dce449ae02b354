// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/taibuivan/socialbros/internal/users/session"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Session maintenance",
}

var sessionsCleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Delete every expired session now",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSessions(cmd, func(manager *session.Manager) error {
			return cleanupSessions(cmd.Context(), manager, cmd.OutOrStdout())
		})
	},
}

var sessionsRevokeUserCmd = &cobra.Command{
	Use:   "revoke-user <user-id>",
	Short: "Invalidate every session of a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSessions(cmd, func(manager *session.Manager) error {
			return revokeUserSessions(cmd.Context(), manager, args[0], cmd.OutOrStdout())
		})
	},
}

func init() {
	sessionsCmd.AddCommand(sessionsCleanupCmd, sessionsRevokeUserCmd)
	rootCmd.AddCommand(sessionsCmd)
}

func withSessions(cmd *cobra.Command, run func(manager *session.Manager) error) error {
	env, err := openEnvironment(cmd.Context())
	if err != nil {
		return err
	}
	defer env.Close()

	manager, err := env.sessions()
	if err != nil {
		return err
	}
	return run(manager)
}

func cleanupSessions(context context.Context, manager *session.Manager, out io.Writer) error {
	deleted, err := manager.DeleteExpired(context)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "deleted %d expired session(s)\n", deleted)
	return nil
}

func revokeUserSessions(context context.Context, manager *session.Manager, userID string, out io.Writer) error {
	if err := manager.InvalidateAllForUser(context, userID); err != nil {
		return err
	}
	fmt.Fprintf(out, "revoked sessions of user %s\n", userID)
	return nil
}
