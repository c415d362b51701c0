package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newRoomCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "room",
		Short: "Room management commands",
	}

	cmd.AddCommand(newRoomCreateCmd())
	cmd.AddCommand(newRoomJoinCmd())
	cmd.AddCommand(newRoomStateCmd())
	cmd.AddCommand(newRoomRoundsCmd())

	return cmd
}

func newRoomCreateCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new room and join it",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"name": name}

			var result JoinedRoom
			if err := client.Post("/api/v1/rooms", req, &result); err != nil {
				return err
			}

			if err := cfg.SaveSession(Session{
				RoomCode: result.State.RoomID,
				PlayerID: result.PlayerID,
			}); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name (default: server-assigned)")

	return cmd
}

func newRoomJoinCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "join <code>",
		Short: "Join an existing room",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code := args[0]
			req := map[string]string{"name": name}

			var result JoinedRoom
			if err := client.Post(fmt.Sprintf("/api/v1/rooms/%s/join", code), req, &result); err != nil {
				return err
			}

			if err := cfg.SaveSession(Session{
				RoomCode: result.State.RoomID,
				PlayerID: result.PlayerID,
			}); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name (default: server-assigned)")

	return cmd
}

func newRoomStateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "state [code]",
		Short: "Get room state (defaults to the saved session's room)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code := cfg.Session.RoomCode
			if len(args) > 0 {
				code = args[0]
			}
			if code == "" {
				return errNoSession
			}

			var result StateEnvelope
			if err := client.Get(fmt.Sprintf("/api/v1/rooms/%s/state", code), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result.State)
			return nil
		},
	}
}

func newRoomRoundsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rounds <count>",
		Short: "Configure the number of rounds (lobby only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(); err != nil {
				return err
			}

			count, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid round count: %w", err)
			}

			req := map[string]int{"totalRounds": count}
			var result ActionResult

			path := fmt.Sprintf("/api/v1/rooms/%s/configure-rounds", cfg.Session.RoomCode)
			if err := client.Post(path, req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result.State)
			return nil
		},
	}
}
