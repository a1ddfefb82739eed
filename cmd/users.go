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

const defaultUsersPort = 4001

// usersCmd represents the users command
var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Starts the users service",
	Long: `Starts the users service: registration, login and profiles. Usage:

	gamesetuphub users
`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.LoadConfig(defaultUsersPort)

		srv, err := server.NewUsers(cmd.Context(), cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to start users service: %v\n", err)
			os.Exit(1)
		}
		if err := srv.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "users service error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(usersCmd)
}
