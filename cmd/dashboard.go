package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var dashboardWatch bool

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show platform stats and recent activity",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := renderDashboard(cmd, false); err != nil {
			return err
		}
		if !dashboardWatch {
			return nil
		}

		ticker := time.NewTicker(app.cfg.PollInterval)
		defer ticker.Stop()
		for {
			select {
			case <-cmd.Context().Done():
				return nil
			case <-ticker.C:
				// Watch refreshes bypass the response cache so each tick
				// shows the live numbers, not the first tick's snapshot.
				if err := renderDashboard(cmd, true); err != nil {
					app.log.Warn("dashboard refresh failed", "error", err.Error())
				}
			}
		}
	},
}

func renderDashboard(cmd *cobra.Command, fresh bool) error {
	load := app.client.LoadDashboard
	if fresh {
		load = app.client.LoadDashboardFresh
	}
	data, err := load(cmd.Context(), 10)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if flagJSON {
		return printJSON(out, data)
	}

	fmt.Fprintf(out, "users: %d (%d active)   moves: %d   styles: %d   pending submissions: %d\n",
		data.Stats.TotalUsers, data.Stats.ActiveUsers,
		data.Stats.TotalMoves, data.Stats.TotalStyles,
		data.Stats.PendingSubmissions)

	if len(data.Activity) == 0 {
		return nil
	}

	fmt.Fprintln(out, "\nrecent activity:")
	rows := make([][]string, 0, len(data.Activity))
	for _, entry := range data.Activity {
		rows = append(rows, []string{
			entry.At.Local().Format("Jan _2 15:04"), entry.Type, entry.Actor, entry.Detail,
		})
	}
	return printTable(out, []string{"WHEN", "TYPE", "ACTOR", "DETAIL"}, rows)
}

func init() {
	dashboardCmd.Flags().BoolVar(&dashboardWatch, "watch", false, "refresh on the poll interval until interrupted")
	rootCmd.AddCommand(dashboardCmd)
}
