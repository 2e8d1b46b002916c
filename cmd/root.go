// Package cmd wires the console's subcommands. Every management screen of the
// admin dashboard maps to a command group here.
package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	api "MoveDesk/internal/API"
	auth "MoveDesk/internal/Auth"
	config "MoveDesk/internal/Config"
	events "MoveDesk/internal/Events"
	logging "MoveDesk/internal/Logging"
)

var (
	cfgFile     string
	flagBaseURL string
	flagDev     bool
	flagDebug   bool
	flagJSON    bool
)

// app holds the per-invocation wiring built in setup. Commands never touch
// package-level client state outside of it.
var app struct {
	cfg    *config.Config
	log    *slog.Logger
	store  *auth.Store
	bus    *events.Bus
	client *api.Client
}

var rootCmd = &cobra.Command{
	Use:               "movedesk",
	Short:             "Admin console for the MoveDesk dance platform",
	Long:              "Manage users, dance moves, dance styles and video submissions on a MoveDesk deployment.",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute runs the console. Called once from main.
func Execute(ctx context.Context) error {
	rootCmd.SetContext(ctx)
	return rootCmd.ExecuteContext(ctx)
}

func setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	if flagBaseURL != "" {
		cfg.BaseURL = flagBaseURL
	}
	if flagDev {
		cfg.Dev = true
	}
	if flagDebug {
		cfg.Debug = true
	}

	app.cfg = cfg
	app.log = logging.New(cmd.ErrOrStderr(), cfg.Debug)
	app.store = auth.NewStore(cfg.SessionFile)

	app.bus = events.NewBus()
	errOut := cmd.ErrOrStderr()
	app.bus.Subscribe(func(event events.Event) {
		if event == events.EventUnauthorized {
			fmt.Fprintln(errOut, "session expired; run 'movedesk login' to sign in again")
		}
	})

	app.client = api.NewClient(api.Config{
		BaseURL:     cfg.ResolveBaseURL(),
		Credentials: app.store,
		Bus:         app.bus,
		Logger:      app.log,
		Timeout:     cfg.Timeout,
		CacheTTL:    cfg.CacheTTL,
		RateLimit:   rate.Limit(cfg.RateLimit),
		RateBurst:   cfg.RateBurst,
	})

	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $HOME/.movedesk.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagBaseURL, "base-url", "", "API base URL override")
	rootCmd.PersistentFlags().BoolVar(&flagDev, "dev", false, "target the local development backend")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "print raw JSON instead of tables")
}
