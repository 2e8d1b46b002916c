package cmd

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	api "MoveDesk/internal/API"
)

var styleFlags struct {
	search      string
	name        string
	description string
	origin      string
}

var stylesCmd = &cobra.Command{
	Use:   "styles",
	Short: "Manage dance styles",
}

var stylesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List styles",
	RunE: func(cmd *cobra.Command, _ []string) error {
		styles, err := app.client.ListStyles(cmd.Context(), styleFlags.search)
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(cmd.OutOrStdout(), styles)
		}

		rows := make([][]string, 0, len(styles))
		for _, st := range styles {
			rows = append(rows, []string{
				strconv.FormatInt(st.ID, 10), st.Name, st.Origin, strconv.Itoa(st.MoveCount),
			})
		}
		return printTable(cmd.OutOrStdout(), []string{"ID", "NAME", "ORIGIN", "MOVES"}, rows)
	},
}

var stylesGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one style",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		style, err := app.client.GetStyle(cmd.Context(), id)
		if err != nil {
			return err
		}

		return printJSON(cmd.OutOrStdout(), style)
	},
}

var stylesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Add a style",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if styleFlags.name == "" {
			return errors.New("--name is required")
		}

		style, err := app.client.CreateStyle(cmd.Context(), api.StyleParams{
			Name:        styleFlags.name,
			Description: styleFlags.description,
			Origin:      styleFlags.origin,
		})
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "created style %d (%s)\n", style.ID, style.Name)
		return nil
	},
}

var stylesUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a style",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		style, err := app.client.UpdateStyle(cmd.Context(), id, api.StyleParams{
			Name:        styleFlags.name,
			Description: styleFlags.description,
			Origin:      styleFlags.origin,
		})
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "updated style %d (%s)\n", style.ID, style.Name)
		return nil
	},
}

var stylesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Remove a style",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		if err := app.client.DeleteStyle(cmd.Context(), id); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "deleted style %d\n", id)
		return nil
	},
}

func init() {
	stylesListCmd.Flags().StringVar(&styleFlags.search, "search", "", "match style name")

	for _, c := range []*cobra.Command{stylesCreateCmd, stylesUpdateCmd} {
		c.Flags().StringVar(&styleFlags.name, "name", "", "style name")
		c.Flags().StringVar(&styleFlags.description, "description", "", "style description")
		c.Flags().StringVar(&styleFlags.origin, "origin", "", "style origin")
	}

	stylesCmd.AddCommand(stylesListCmd, stylesGetCmd, stylesCreateCmd, stylesUpdateCmd, stylesDeleteCmd)
	rootCmd.AddCommand(stylesCmd)
}
