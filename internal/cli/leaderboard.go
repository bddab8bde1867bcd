package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLeaderboardCmd() *cobra.Command {
	var by string

	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Show the leaderboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Leaderboard
			if err := client.Get("/api/leaderboard", &result); err != nil {
				return err
			}

			view := LeaderboardView{By: by}
			switch by {
			case "score":
				view.Players = result.ByScore
			case "name":
				view.Players = result.ByName
			default:
				return fmt.Errorf("invalid --by %q: must be score or name", by)
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(view)
			return nil
		},
	}

	cmd.Flags().StringVar(&by, "by", "score", "Sort order: score or name")

	return cmd
}
