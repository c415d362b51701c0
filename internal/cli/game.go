package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "In-room game commands",
	}

	cmd.AddCommand(newGameStartCmd())
	cmd.AddCommand(newGamePickCmd())
	cmd.AddCommand(newGameBidCmd())
	cmd.AddCommand(newGameBetCmd())
	cmd.AddCommand(newGameSubmitCmd())

	return cmd
}

func newGameStartCmd() *cobra.Command {
	var totalRounds int

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start the game, advance a stuck phase, or ready up after a round",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(); err != nil {
				return err
			}

			req := map[string]any{"playerId": cfg.Session.PlayerID}
			if totalRounds > 0 {
				req["totalRounds"] = totalRounds
			}

			var result ActionResult
			path := fmt.Sprintf("/api/v1/rooms/%s/start", cfg.Session.RoomCode)
			if err := client.Post(path, req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result.State)
			return nil
		},
	}

	cmd.Flags().IntVar(&totalRounds, "rounds", 0, "Total rounds when starting from the lobby (default: server default)")

	return cmd
}

func newGamePickCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pick <letter-id>",
		Short: "Pick a letter during the draft phase",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(); err != nil {
				return err
			}

			req := map[string]string{
				"playerId": cfg.Session.PlayerID,
				"letterId": args[0],
			}

			var result ActionResult
			path := fmt.Sprintf("/api/v1/rooms/%s/draft-pick", cfg.Session.RoomCode)
			if err := client.Post(path, req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result.State)
			return nil
		},
	}
}

func newGameBidCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bid <stake>",
		Short: "Bid points on the contested letter during the auction phase",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(); err != nil {
				return err
			}

			stake, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid stake: %w", err)
			}

			req := map[string]any{
				"playerId": cfg.Session.PlayerID,
				"stake":    stake,
			}

			var result ActionResult
			path := fmt.Sprintf("/api/v1/rooms/%s/auction-bid", cfg.Session.RoomCode)
			if err := client.Post(path, req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result.State)
			return nil
		},
	}
}

func newGameBetCmd() *cobra.Command {
	var (
		skip   bool
		target string
		words  int
		stake  int
	)

	cmd := &cobra.Command{
		Use:   "bet",
		Short: "Place (or skip) a prediction bet on another player's round",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(); err != nil {
				return err
			}

			req := map[string]any{"bettorId": cfg.Session.PlayerID}
			if skip {
				req["skip"] = true
			} else {
				if target == "" {
					return fmt.Errorf("--target is required unless --skip is set")
				}
				req["targetPlayerId"] = target
				req["predictedWords"] = words
				req["stake"] = stake
			}

			var result ActionResult
			path := fmt.Sprintf("/api/v1/rooms/%s/prediction-bet", cfg.Session.RoomCode)
			if err := client.Post(path, req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result.State)
			return nil
		},
	}

	cmd.Flags().BoolVar(&skip, "skip", false, "Skip betting this round")
	cmd.Flags().StringVar(&target, "target", "", "Player id to bet on")
	cmd.Flags().IntVar(&words, "words", 0, "Predicted word count")
	cmd.Flags().IntVar(&stake, "stake", 1, "Points to stake")

	return cmd
}

func newGameSubmitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "submit <word>",
		Short: "Submit a word during the active round",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(); err != nil {
				return err
			}

			req := map[string]string{
				"playerId": cfg.Session.PlayerID,
				"word":     strings.ToUpper(args[0]),
			}

			var result SubmitOutcome
			path := fmt.Sprintf("/api/v1/rooms/%s/submit", cfg.Session.RoomCode)
			if err := client.Post(path, req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
