package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Config holds CLI configuration
type Config struct {
	ServerURL   string
	SessionFile string
	Output      string
	Verbose     bool

	// Session is the saved room membership, loaded lazily
	Session Session
}

// Session remembers which room the CLI last joined and as whom, so game
// commands don't need the code and player id repeated on every call
type Session struct {
	RoomCode string `json:"roomCode"`
	PlayerID string `json:"playerId"`
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL:   getEnvOrDefault("WORDMARKET_SERVER", "http://localhost:8080"),
		SessionFile: getEnvOrDefault("WORDMARKET_SESSION_FILE", defaultSessionFile()),
		Output:      "text",
		Verbose:     false,
	}
}

// LoadSession loads the saved session from file if one exists
func (c *Config) LoadSession() error {
	data, err := os.ReadFile(c.SessionFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // No session file is fine
		}
		return err
	}

	return json.Unmarshal(data, &c.Session)
}

// SaveSession persists the session to the session file
func (c *Config) SaveSession(session Session) error {
	c.Session = session

	dir := filepath.Dir(c.SessionFile)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	data, err := json.Marshal(session)
	if err != nil {
		return err
	}

	return os.WriteFile(c.SessionFile, data, 0600)
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".wordmarket/session.json"
	}
	return filepath.Join(home, ".wordmarket", "session.json")
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
