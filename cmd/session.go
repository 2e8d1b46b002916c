package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Show the stored session and the target deployment",
	RunE: func(cmd *cobra.Command, _ []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "API: %s\n", app.client.BaseURL())

		if app.store.AccessToken() == "" {
			fmt.Fprintln(out, "session: not signed in")
			return nil
		}

		fmt.Fprintln(out, "session: signed in")
		if expiry, ok := app.store.AccessTokenExpiry(); ok {
			if time.Now().After(expiry) {
				fmt.Fprintf(out, "access token expired %s ago; run 'movedesk session refresh'\n", time.Since(expiry).Round(time.Second))
			} else {
				fmt.Fprintf(out, "access token expires in %s\n", time.Until(expiry).Round(time.Second))
			}
		}
		return nil
	},
}

var sessionRefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Trade the refresh token for a new session",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := app.client.RefreshSession(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "session refreshed")
		return nil
	},
}

func init() {
	sessionCmd.AddCommand(sessionRefreshCmd)
	rootCmd.AddCommand(sessionCmd)
}
