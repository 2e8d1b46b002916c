package cmd

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	api "MoveDesk/internal/API"
	submissions "MoveDesk/internal/Submissions"
)

var submissionFlags struct {
	status string
	page   int
	limit  int
	note   string
}

var submissionsCmd = &cobra.Command{
	Use:     "submissions",
	Aliases: []string{"subs"},
	Short:   "Review member-submitted move videos",
}

var submissionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List submissions",
	RunE: func(cmd *cobra.Command, _ []string) error {
		subs, pagination, err := app.client.ListSubmissions(cmd.Context(), api.SubmissionFilter{
			Status: submissionFlags.status,
			Page:   submissionFlags.page,
			Limit:  submissionFlags.limit,
		})
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(cmd.OutOrStdout(), subs)
		}

		rows := make([][]string, 0, len(subs))
		for _, sub := range subs {
			rows = append(rows, []string{
				strconv.FormatInt(sub.ID, 10), sub.MoveName, sub.StyleName, sub.SubmittedBy, sub.Status,
			})
		}
		if err := printTable(cmd.OutOrStdout(), []string{"ID", "MOVE", "STYLE", "SUBMITTED BY", "STATUS"}, rows); err != nil {
			return err
		}
		if pagination != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "%d of %d submissions (page %d)\n", len(subs), pagination.Total, pagination.Page)
		}
		return nil
	},
}

var submissionsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one submission",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		sub, err := app.client.GetSubmission(cmd.Context(), id)
		if err != nil {
			return err
		}

		return printJSON(cmd.OutOrStdout(), sub)
	},
}

var submissionsApproveCmd = &cobra.Command{
	Use:   "approve <id>",
	Short: "Approve a pending submission",
	Args:  cobra.ExactArgs(1),
	RunE:  reviewRunE(api.SubmissionApproved),
}

var submissionsRejectCmd = &cobra.Command{
	Use:   "reject <id>",
	Short: "Reject a pending submission",
	Args:  cobra.ExactArgs(1),
	RunE:  reviewRunE(api.SubmissionRejected),
}

func reviewRunE(status string) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if status == api.SubmissionRejected && submissionFlags.note == "" {
			return errors.New("--note is required when rejecting")
		}

		sub, err := app.client.ReviewSubmission(cmd.Context(), id, api.ReviewDecision{
			Status: status,
			Note:   submissionFlags.note,
		})
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "submission %d (%s) is now %s\n", sub.ID, sub.MoveName, sub.Status)
		return nil
	}
}

var submissionsWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow the review queue and report changes as they happen",
	RunE: func(cmd *cobra.Command, _ []string) error {
		out := cmd.OutOrStdout()
		watcher := &submissions.Watcher{
			OnNew: func(sub api.MoveSubmission) {
				fmt.Fprintf(out, "new submission %d: %s by %s\n", sub.ID, sub.MoveName, sub.SubmittedBy)
			},
			OnStatusChange: func(sub api.MoveSubmission) {
				fmt.Fprintf(out, "submission %d (%s) changed to %s\n", sub.ID, sub.MoveName, sub.Status)
			},
			OnResolved: func(sub api.MoveSubmission) {
				fmt.Fprintf(out, "submission %d (%s) left the queue\n", sub.ID, sub.MoveName)
			},
		}

		poller := &submissions.Poller{
			Client:   app.client,
			Watcher:  watcher,
			Filter:   api.SubmissionFilter{Status: submissionFlags.status},
			Interval: app.cfg.PollInterval,
			Log:      app.log,
		}

		fmt.Fprintf(out, "watching submissions every %s (ctrl-c to stop)\n", app.cfg.PollInterval)
		err := poller.Run(cmd.Context())
		if errors.Is(err, cmd.Context().Err()) {
			return nil
		}
		return err
	},
}

func init() {
	submissionsListCmd.Flags().StringVar(&submissionFlags.status, "status", "", "filter by status (pending/approved/rejected)")
	submissionsListCmd.Flags().IntVar(&submissionFlags.page, "page", 0, "page number")
	submissionsListCmd.Flags().IntVar(&submissionFlags.limit, "limit", 0, "page size")
	submissionsWatchCmd.Flags().StringVar(&submissionFlags.status, "status", api.SubmissionPending, "status to watch")
	submissionsApproveCmd.Flags().StringVar(&submissionFlags.note, "note", "", "review note")
	submissionsRejectCmd.Flags().StringVar(&submissionFlags.note, "note", "", "review note")

	submissionsCmd.AddCommand(submissionsListCmd, submissionsGetCmd, submissionsApproveCmd, submissionsRejectCmd, submissionsWatchCmd)
	rootCmd.AddCommand(submissionsCmd)
}
