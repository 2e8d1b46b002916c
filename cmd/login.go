package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	loginUsername string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and store the session locally",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if loginUsername == "" {
			return errors.New("--username is required")
		}

		password := loginPassword
		if password == "" {
			password = os.Getenv("MOVEDESK_PASSWORD")
		}
		if password == "" {
			fmt.Fprint(cmd.OutOrStdout(), "Password: ")
			line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if err != nil {
				return errors.Wrap(err, "read password")
			}
			password = strings.TrimRight(line, "\r\n")
		}
		if password == "" {
			return errors.New("password is required")
		}

		user, err := app.client.Login(cmd.Context(), loginUsername, password)
		if err != nil {
			return err
		}

		if user != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "signed in as %s (%s)\n", user.Username, user.Role)
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "signed in")
		}
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Revoke and forget the stored session",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := app.client.Logout(cmd.Context()); err != nil {
			// Local teardown already happened; a failed server-side revoke
			// should not strand the user in a half-logged-out state.
			app.log.Warn("server-side logout failed", "error", err.Error())
		}
		fmt.Fprintln(cmd.OutOrStdout(), "signed out")
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "account username")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "account password (or MOVEDESK_PASSWORD)")
	rootCmd.AddCommand(loginCmd, logoutCmd)
}
