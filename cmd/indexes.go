/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gamesetuphub/backend/config"
	"github.com/gamesetuphub/backend/internal/db"
	"github.com/gamesetuphub/backend/internal/store"
)

// indexesCmd represents the indexes command.
var indexesCmd = &cobra.Command{
	Use:   "indexes",
	Short: "Ensure database indexes",
	Long: `Creates the unique username index and the configuration
text-search index. Safe to run repeatedly.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadConfig(0)

		client, err := db.Connect(cmd.Context(), cfg)
		if err != nil {
			return fmt.Errorf("connect failed: %w", err)
		}
		defer func() {
			_ = client.Disconnect(context.Background())
		}()

		database := db.Database(client, cfg)
		if err := store.NewUserRepository(database).EnsureIndexes(cmd.Context()); err != nil {
			return fmt.Errorf("user indexes failed: %w", err)
		}
		if err := store.NewConfigRepository(database).EnsureIndexes(cmd.Context()); err != nil {
			return fmt.Errorf("config indexes failed: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(indexesCmd)
}
