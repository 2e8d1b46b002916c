package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	mockapi "MoveDesk/internal/MockAPI"
)

var mockAddr string

var mockAPICmd = &cobra.Command{
	Use:   "mockapi",
	Short: "Run an in-memory fake of the platform API for local development",
	RunE: func(cmd *cobra.Command, _ []string) error {
		server := mockapi.NewServer()
		fmt.Fprintf(cmd.OutOrStdout(), "mock API listening on %s (any active user logs in, token %q)\n", mockAddr, mockapi.AccessToken)
		return server.Start(mockAddr)
	},
}

func init() {
	mockAPICmd.Flags().StringVar(&mockAddr, "addr", ":8787", "listen address")
	rootCmd.AddCommand(mockAPICmd)
}
