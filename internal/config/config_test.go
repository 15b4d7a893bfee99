package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Days)
	assert.Equal(t, 10, cfg.TableRows)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "web", cfg.WebDir)
	assert.Equal(t, "energyopt.db", filepath.Base(cfg.DBPath))
}

func TestLoad_File(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := writeConfig(t, "days: 5\ntable_rows: 24\nport: 9090\ndb: /tmp/e.db\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Days)
	assert.Equal(t, 24, cfg.TableRows)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "/tmp/e.db", cfg.DBPath)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("ENERGYOPT_DAYS", "7")
	path := writeConfig(t, "days: 3\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Days)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidDays(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	tests := []struct {
		name string
		body string
	}{
		{name: "zero", body: "days: 0\n"},
		{name: "above dashboard range", body: "days: 8\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}
