package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gokatarajesh/agentic-quiz/internal/audit"
	"github.com/gokatarajesh/agentic-quiz/internal/dashboard"
	"github.com/gokatarajesh/agentic-quiz/internal/leaderboard"
)

func newLeaderboardCmd(open tableOpener) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Print the reconciled leaderboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit < 0 {
				return fmt.Errorf("--limit must be non-negative, got %d", limit)
			}
			logger := cmdLogger()
			tables, err := open(cmd.Context(), logger)
			if err != nil {
				return err
			}
			svc := leaderboard.NewService(tables.Leaderboard, logger, leaderboard.ServiceOptions{})
			entries, err := svc.Ranking(cmd.Context(), limit)
			if errors.Is(err, leaderboard.ErrEmpty) {
				fmt.Fprintln(cmd.OutOrStdout(), mutedStyle.Render("Leaderboard is empty."))
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), RenderLeaderboard(entries))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "show at most N entries (0 = all)")
	return cmd
}

func newDashboardCmd(open tableOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Print how players answered each question",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := cmdLogger()
			tables, err := open(cmd.Context(), logger)
			if err != nil {
				return err
			}
			summaries, err := dashboard.NewService(audit.NewResponseLog(tables.Responses, logger)).Summaries(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), RenderDashboard(summaries))
			return nil
		},
	}
}
