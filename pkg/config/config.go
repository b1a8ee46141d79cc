package config

import (
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"tablero/pkg/board"
)

type SheetsConfig struct {
	// Path to the service-account JSON key.
	CredentialsFile string
	SpreadsheetID   string
	WorksheetName   string
}

type BoardConfig struct {
	Stages []string
	// Freshness window for the snapshot cache, in seconds.
	CacheTTLSeconds int
}

type RedisConfig struct {
	// Empty means the in-memory cache is used.
	Address string
}

type Config struct {
	ListenAddress string
	Sheets        SheetsConfig
	Board         BoardConfig
	Redis         RedisConfig

	filename string
}

// Write the current config out to a toml file.
func (c *Config) Save() error {
	b, err := toml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(c.filename, b, 0644)
}

// Load the current config from a toml file.
func (c *Config) Load() error {
	b, err := os.ReadFile(c.filename)
	if err != nil {
		return err
	}
	return toml.Unmarshal(b, c)
}

func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Board.CacheTTLSeconds) * time.Second
}

// New loads configuration from a toml file, writing one out with the
// defaults when it does not exist yet. Environment variables override
// the file so deployments can keep credentials out of it entirely.
func New(filename string) (*Config, error) {
	c := &Config{
		filename: filename,
	}
	if err := c.Load(); err != nil {
		if os.IsNotExist(err) {
			if err := c.Save(); err != nil {
				return nil, err
			}
		} else {
			return nil, err
		}
	}
	// Set some defaults
	if c.ListenAddress == "" {
		c.ListenAddress = ":8080"
	}
	if c.Sheets.WorksheetName == "" {
		c.Sheets.WorksheetName = "Hoja 1"
	}
	if len(c.Board.Stages) == 0 {
		c.Board.Stages = append([]string(nil), board.DefaultStages...)
	}
	if c.Board.CacheTTLSeconds <= 0 {
		c.Board.CacheTTLSeconds = 60
	}
	c.applyEnv()
	return c, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); v != "" {
		c.Sheets.CredentialsFile = v
	}
	if v := os.Getenv("SPREADSHEET_ID"); v != "" {
		c.Sheets.SpreadsheetID = v
	}
	if v := os.Getenv("WORKSHEET_NAME"); v != "" {
		c.Sheets.WorksheetName = v
	}
	if v := os.Getenv("REDIS_CONNECTION_STRING"); v != "" {
		c.Redis.Address = v
	}
	if v := os.Getenv("LISTEN_ADDRESS"); v != "" {
		c.ListenAddress = v
	}
}
