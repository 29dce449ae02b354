// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taibuivan/socialbros/internal/platform/config"
	"github.com/taibuivan/socialbros/internal/platform/migration"
)

var migrateCmd = &cobra.Command{
	Use:       "migrate [up|down]",
	Short:     "Apply or roll back the embedded schema migrations",
	Long:      `Runs every embedded migration in the given direction. The API server applies "up" on startup.`,
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{migration.DirectionUp, migration.DirectionDown},
	RunE:      runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if err := migration.Run(cfg.DatabaseURL, args[0], newLogger()); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "migrations applied: %s\n", args[0])
	return nil
}
