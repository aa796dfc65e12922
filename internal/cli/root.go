// Package cli implements quizctl, an operator view of the shared spreadsheet.
package cli

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/gokatarajesh/agentic-quiz/internal/app"
	"github.com/gokatarajesh/agentic-quiz/internal/config"
	"github.com/gokatarajesh/agentic-quiz/internal/logging"
)

var verbose bool

// Execute runs the CLI.
func Execute(ctx context.Context) error {
	return newRootCmd(openTables).ExecuteContext(ctx)
}

// tableOpener is swapped in tests.
type tableOpener func(ctx context.Context, logger zerolog.Logger) (*app.Tables, error)

func openTables(ctx context.Context, logger zerolog.Logger) (*app.Tables, error) {
	cfg, err := config.LoadSheets(ctx)
	if err != nil {
		return nil, err
	}
	return app.OpenTables(ctx, *cfg, logger)
}

func newRootCmd(open tableOpener) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "quizctl",
		Short:         "Inspect the Agentic AI quiz leaderboard and answer dashboard",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log store access to stderr")
	cmd.AddCommand(newLeaderboardCmd(open))
	cmd.AddCommand(newDashboardCmd(open))
	return cmd
}

func cmdLogger() zerolog.Logger {
	if !verbose {
		return zerolog.Nop()
	}
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}
	return logging.New("quizctl", env)
}
