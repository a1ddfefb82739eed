/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gamesetuphub/backend/config"
	"github.com/gamesetuphub/backend/internal/server"
)

const defaultConfigsPort = 4002

// configsCmd represents the configs command
var configsCmd = &cobra.Command{
	Use:   "configs",
	Short: "Starts the configs service",
	Long: `Starts the configs service: configuration sharing, search,
versions, comments and likes. Usage:

	gamesetuphub configs
`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.LoadConfig(defaultConfigsPort)

		srv, err := server.NewConfigs(cmd.Context(), cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to start configs service: %v\n", err)
			os.Exit(1)
		}
		if err := srv.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "configs service error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(configsCmd)
}
