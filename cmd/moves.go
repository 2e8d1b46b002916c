package cmd

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	api "MoveDesk/internal/API"
)

var moveListFlags struct {
	styleID    int64
	difficulty string
	status     string
	search     string
	page       int
	limit      int
}

var moveEditFlags struct {
	name        string
	styleID     int64
	difficulty  string
	description string
	videoURL    string
	status      string
}

var movesCmd = &cobra.Command{
	Use:   "moves",
	Short: "Manage the dance-move catalog",
}

var movesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List moves",
	RunE: func(cmd *cobra.Command, _ []string) error {
		moves, pagination, err := app.client.ListMoves(cmd.Context(), api.MoveFilter{
			StyleID:    moveListFlags.styleID,
			Difficulty: moveListFlags.difficulty,
			Status:     moveListFlags.status,
			Search:     moveListFlags.search,
			Page:       moveListFlags.page,
			Limit:      moveListFlags.limit,
		})
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(cmd.OutOrStdout(), moves)
		}

		rows := make([][]string, 0, len(moves))
		for _, m := range moves {
			rows = append(rows, []string{
				strconv.FormatInt(m.ID, 10), m.Name, m.StyleName, m.Difficulty, m.Status,
			})
		}
		if err := printTable(cmd.OutOrStdout(), []string{"ID", "NAME", "STYLE", "DIFFICULTY", "STATUS"}, rows); err != nil {
			return err
		}
		if pagination != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "%d of %d moves (page %d)\n", len(moves), pagination.Total, pagination.Page)
		}
		return nil
	},
}

var movesGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one move",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		move, err := app.client.GetMove(cmd.Context(), id)
		if err != nil {
			return err
		}

		return printJSON(cmd.OutOrStdout(), move)
	},
}

var movesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Add a move to the catalog",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if moveEditFlags.name == "" {
			return errors.New("--name is required")
		}

		move, err := app.client.CreateMove(cmd.Context(), api.MoveParams{
			Name:        moveEditFlags.name,
			StyleID:     moveEditFlags.styleID,
			Difficulty:  moveEditFlags.difficulty,
			Description: moveEditFlags.description,
			VideoURL:    moveEditFlags.videoURL,
			Status:      moveEditFlags.status,
		})
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "created move %d (%s)\n", move.ID, move.Name)
		return nil
	},
}

var movesUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a move",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		move, err := app.client.UpdateMove(cmd.Context(), id, api.MoveParams{
			Name:        moveEditFlags.name,
			StyleID:     moveEditFlags.styleID,
			Difficulty:  moveEditFlags.difficulty,
			Description: moveEditFlags.description,
			VideoURL:    moveEditFlags.videoURL,
			Status:      moveEditFlags.status,
		})
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "updated move %d (%s)\n", move.ID, move.Name)
		return nil
	},
}

var movesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Remove a move",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		if err := app.client.DeleteMove(cmd.Context(), id); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "deleted move %d\n", id)
		return nil
	},
}

func init() {
	movesListCmd.Flags().Int64Var(&moveListFlags.styleID, "style", 0, "filter by style id")
	movesListCmd.Flags().StringVar(&moveListFlags.difficulty, "difficulty", "", "filter by difficulty")
	movesListCmd.Flags().StringVar(&moveListFlags.status, "status", "", "filter by status")
	movesListCmd.Flags().StringVar(&moveListFlags.search, "search", "", "match move name")
	movesListCmd.Flags().IntVar(&moveListFlags.page, "page", 0, "page number")
	movesListCmd.Flags().IntVar(&moveListFlags.limit, "limit", 0, "page size")

	for _, c := range []*cobra.Command{movesCreateCmd, movesUpdateCmd} {
		c.Flags().StringVar(&moveEditFlags.name, "name", "", "move name")
		c.Flags().Int64Var(&moveEditFlags.styleID, "style", 0, "style id")
		c.Flags().StringVar(&moveEditFlags.difficulty, "difficulty", "", "beginner, intermediate or advanced")
		c.Flags().StringVar(&moveEditFlags.description, "description", "", "move description")
		c.Flags().StringVar(&moveEditFlags.videoURL, "video", "", "demo video URL")
		c.Flags().StringVar(&moveEditFlags.status, "status", "", "draft, published or archived")
	}

	movesCmd.AddCommand(movesListCmd, movesGetCmd, movesCreateCmd, movesUpdateCmd, movesDeleteCmd)
	rootCmd.AddCommand(movesCmd)
}
