package cli

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"
)

func newWatchCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Stream live room events over websocket",
		Long: `Connect to the room's websocket endpoint and stream events in real-time.

Events include:
  - state: Room state changed (join, phase transition, bid, submission, ...)
  - error: A submission over this connection was rejected

Press Ctrl+C to disconnect.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(); err != nil {
				return err
			}
			return streamEvents(cfg.Session.RoomCode, cfg.Session.PlayerID, jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output events as JSON lines")

	return cmd
}

// WatchEvent is one received room event with its arrival time
type WatchEvent struct {
	Time    time.Time       `json:"time"`
	Type    string          `json:"type"`
	Message string          `json:"message,omitempty"`
	State   json.RawMessage `json:"state,omitempty"`
}

func streamEvents(roomCode, playerID string, jsonOutput bool) error {
	wsURL, err := websocketURL(cfg.ServerURL, roomCode, playerID)
	if err != nil {
		return err
	}

	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		if resp != nil {
			return fmt.Errorf("connection failed: HTTP %d", resp.StatusCode)
		}
		return fmt.Errorf("connection failed: %w", err)
	}
	defer func() { _ = conn.Close() }()

	// Handle interrupt
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		_ = conn.Close()
	}()

	if !jsonOutput {
		fmt.Printf("Connected to room %s\n", roomCode)
	}

	for {
		var raw struct {
			Type    string          `json:"type"`
			Message string          `json:"message"`
			State   json.RawMessage `json:"state"`
		}
		if err := conn.ReadJSON(&raw); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				if !jsonOutput {
					fmt.Println("\nDisconnected")
				}
				return nil
			}
			if !jsonOutput {
				fmt.Println("\nDisconnected")
				return nil
			}
			return fmt.Errorf("stream error: %w", err)
		}

		printWatchEvent(raw.Type, raw.Message, raw.State, jsonOutput)
	}
}

// websocketURL converts the configured HTTP server URL into the room's
// websocket endpoint
func websocketURL(serverURL, roomCode, playerID string) (string, error) {
	u, err := url.Parse(strings.TrimSuffix(serverURL, "/"))
	if err != nil {
		return "", fmt.Errorf("invalid server URL: %w", err)
	}

	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}

	u.Path += fmt.Sprintf("/api/v1/rooms/%s/ws", roomCode)
	u.RawQuery = url.Values{"playerId": {playerID}}.Encode()

	return u.String(), nil
}

func printWatchEvent(eventType, message string, state json.RawMessage, jsonOutput bool) {
	now := time.Now()

	if jsonOutput {
		evt := WatchEvent{
			Time:    now,
			Type:    eventType,
			Message: message,
			State:   state,
		}
		jsonData, _ := json.Marshal(evt)
		fmt.Println(string(jsonData))
		return
	}

	timestamp := now.Format("2006-01-02 15:04:05")
	switch eventType {
	case "state":
		var s RoomState
		if err := json.Unmarshal(state, &s); err != nil {
			fmt.Printf("[%s] state\n", timestamp)
			return
		}
		fmt.Printf("[%s] state: phase=%s round=%d/%d players=%d\n",
			timestamp, s.Phase, s.CurrentRound, s.TotalRounds, len(s.Players))
	case "error":
		fmt.Printf("[%s] error: %s\n", timestamp, message)
	default:
		fmt.Printf("[%s] %s: %s\n", timestamp, eventType, message)
	}
}
