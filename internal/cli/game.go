package cli

import (
	"github.com/spf13/cobra"

	"github.com/mcoot/rpsarena/internal/api/request"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Match commands",
	}

	cmd.AddCommand(newGameStartCmd())
	cmd.AddCommand(newGamePlayCmd())
	cmd.AddCommand(newGameStatusCmd())

	return cmd
}

func newGameStartCmd() *cobra.Command {
	var player1, player2 string

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start a match between two registered players",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := request.StartGameRequest{Player1: player1, Player2: player2}
			var result Session
			if err := client.Post("/api/game/start", req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&player1, "player1", "", "Player 1 name (required)")
	cmd.Flags().StringVar(&player2, "player2", "", "Player 2 name (required)")
	_ = cmd.MarkFlagRequired("player1")
	_ = cmd.MarkFlagRequired("player2")

	return cmd
}

func newGamePlayCmd() *cobra.Command {
	var choice1, choice2 string

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a round of the active match",
		Long: `Play a round of the active match.

Choices are rock, paper or scissors. Any choice left out is picked
at random by the server.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := request.PlayRoundRequest{Choice1: choice1, Choice2: choice2}
			var result RoundResult
			if err := client.Post("/api/game/play_round", req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&choice1, "choice1", "", "Player 1 choice (random if omitted)")
	cmd.Flags().StringVar(&choice2, "choice2", "", "Player 2 choice (random if omitted)")

	return cmd
}

func newGameStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current match",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Session
			if err := client.Get("/api/game", &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}
