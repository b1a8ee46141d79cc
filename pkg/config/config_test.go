package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tablero/pkg/board"
)

func TestNewAppliesDefaults(t *testing.T) {
	cfg, err := New(filepath.Join(t.TempDir(), "tablero.toml"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ListenAddress)
	assert.Equal(t, "Hoja 1", cfg.Sheets.WorksheetName)
	assert.Equal(t, board.DefaultStages, cfg.Board.Stages)
	assert.Equal(t, 60*time.Second, cfg.CacheTTL())
}

func TestNewWritesMissingFile(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "tablero.toml")
	_, err := New(filename)
	require.NoError(t, err)

	if _, err := os.Stat(filename); err != nil {
		t.Fatalf("expected config file to be created: %v", err)
	}
}

func TestNewReadsFile(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "tablero.toml")
	contents := `ListenAddress = ":9000"

[Sheets]
SpreadsheetID = "abc123"
WorksheetName = "Tickets"

[Board]
Stages = ["Nuevo", "Hecho"]
CacheTTLSeconds = 30
`
	require.NoError(t, os.WriteFile(filename, []byte(contents), 0644))

	cfg, err := New(filename)
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.ListenAddress)
	assert.Equal(t, "abc123", cfg.Sheets.SpreadsheetID)
	assert.Equal(t, "Tickets", cfg.Sheets.WorksheetName)
	assert.Equal(t, []string{"Nuevo", "Hecho"}, cfg.Board.Stages)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL())
}

func TestEnvOverridesFile(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "tablero.toml")
	require.NoError(t, os.WriteFile(filename, []byte(`[Sheets]
SpreadsheetID = "from-file"
`), 0644))

	t.Setenv("SPREADSHEET_ID", "from-env")
	t.Setenv("REDIS_CONNECTION_STRING", "localhost:6379")

	cfg, err := New(filename)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Sheets.SpreadsheetID)
	assert.Equal(t, "localhost:6379", cfg.Redis.Address)
}

func TestSaveRoundTrip(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "tablero.toml")
	cfg, err := New(filename)
	require.NoError(t, err)

	cfg.Sheets.SpreadsheetID = "saved-id"
	require.NoError(t, cfg.Save())

	reloaded, err := New(filename)
	require.NoError(t, err)
	assert.Equal(t, "saved-id", reloaded.Sheets.SpreadsheetID)
}
