package cmd

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	api "MoveDesk/internal/API"
)

var userListFlags struct {
	role     string
	search   string
	active   string
	page     int
	limit    int
}

var userEditFlags struct {
	username string
	email    string
	role     string
	active   string
	password string
}

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage platform accounts",
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List accounts",
	RunE: func(cmd *cobra.Command, _ []string) error {
		filter := api.UserFilter{
			Role:   userListFlags.role,
			Search: userListFlags.search,
			Page:   userListFlags.page,
			Limit:  userListFlags.limit,
		}
		if userListFlags.active != "" {
			active, err := strconv.ParseBool(userListFlags.active)
			if err != nil {
				return errors.New("--active must be true or false")
			}
			filter.Active = &active
		}

		users, pagination, err := app.client.ListUsers(cmd.Context(), filter)
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(cmd.OutOrStdout(), users)
		}

		rows := make([][]string, 0, len(users))
		for _, u := range users {
			rows = append(rows, []string{
				strconv.FormatInt(u.ID, 10), u.Username, u.Email, u.Role, yesNo(u.Active),
			})
		}
		if err := printTable(cmd.OutOrStdout(), []string{"ID", "USERNAME", "EMAIL", "ROLE", "ACTIVE"}, rows); err != nil {
			return err
		}
		if pagination != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "%d of %d users (page %d)\n", len(users), pagination.Total, pagination.Page)
		}
		return nil
	},
}

var usersGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		user, err := app.client.GetUser(cmd.Context(), id)
		if err != nil {
			return err
		}

		return printJSON(cmd.OutOrStdout(), user)
	},
}

var usersCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an account",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if userEditFlags.username == "" || userEditFlags.email == "" {
			return errors.New("--username and --email are required")
		}

		params := api.UserParams{
			Username: userEditFlags.username,
			Email:    userEditFlags.email,
			Role:     userEditFlags.role,
			Password: userEditFlags.password,
		}
		user, err := app.client.CreateUser(cmd.Context(), params)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "created user %d (%s)\n", user.ID, user.Username)
		return nil
	},
}

var usersUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update an account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		params := api.UserParams{
			Username: userEditFlags.username,
			Email:    userEditFlags.email,
			Role:     userEditFlags.role,
		}
		if userEditFlags.active != "" {
			active, err := strconv.ParseBool(userEditFlags.active)
			if err != nil {
				return errors.New("--active must be true or false")
			}
			params.Active = &active
		}

		user, err := app.client.UpdateUser(cmd.Context(), id, params)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "updated user %d (%s)\n", user.ID, user.Username)
		return nil
	},
}

var usersDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		if err := app.client.DeleteUser(cmd.Context(), id); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "deleted user %d\n", id)
		return nil
	},
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.Errorf("invalid id %q", arg)
	}
	return id, nil
}

func init() {
	usersListCmd.Flags().StringVar(&userListFlags.role, "role", "", "filter by role")
	usersListCmd.Flags().StringVar(&userListFlags.search, "search", "", "match username or email")
	usersListCmd.Flags().StringVar(&userListFlags.active, "active", "", "filter by active state (true/false)")
	usersListCmd.Flags().IntVar(&userListFlags.page, "page", 0, "page number")
	usersListCmd.Flags().IntVar(&userListFlags.limit, "limit", 0, "page size")

	for _, c := range []*cobra.Command{usersCreateCmd, usersUpdateCmd} {
		c.Flags().StringVar(&userEditFlags.username, "username", "", "account username")
		c.Flags().StringVar(&userEditFlags.email, "email", "", "account email")
		c.Flags().StringVar(&userEditFlags.role, "role", "", "account role")
	}
	usersCreateCmd.Flags().StringVar(&userEditFlags.password, "password", "", "initial password")
	usersUpdateCmd.Flags().StringVar(&userEditFlags.active, "active", "", "set active state (true/false)")

	usersCmd.AddCommand(usersListCmd, usersGetCmd, usersCreateCmd, usersUpdateCmd, usersDeleteCmd)
	rootCmd.AddCommand(usersCmd)
}
