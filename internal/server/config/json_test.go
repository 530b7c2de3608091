package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_SourcesAndPrecedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	dir := t.TempDir()
	pathFlag := writeTempJSON(t, dir, "flag.json", map[string]any{
		"endpoint_addr_http": "www.example:9000",
		"database_driver":    "postgres",
		"database_dsn":       "postgres://u:p@db:5432/faces",
	})

	t.Run("loads from json", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", pathFlag}

		cfg := &Config{}
		parseJson(cfg)

		assert.Equal(t, "www.example:9000", cfg.EndpointAddrHTTP)
		assert.Equal(t, "postgres", cfg.DatabaseDriver)
		assert.Equal(t, "postgres://u:p@db:5432/faces", cfg.DatabaseDSN)
	})

	t.Run("no config flag, no changes", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{
			EndpointAddrHTTP: "defaults:1234",
			DatabaseDriver:   DriverSQLite,
			DatabaseDSN:      "faces.db",
		}
		parseJson(cfg)

		assert.Equal(t, "defaults:1234", cfg.EndpointAddrHTTP)
		assert.Equal(t, DriverSQLite, cfg.DatabaseDriver)
		assert.Equal(t, "faces.db", cfg.DatabaseDSN)
	})

	t.Run("partial json keeps remaining fields", func(t *testing.T) {
		partial := writeTempJSON(t, dir, "partial.json", map[string]any{
			"endpoint_addr_http": ":9999",
		})
		os.Args = []string{"testbin", "-c", partial}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseJson(cfg)

		assert.Equal(t, ":9999", cfg.EndpointAddrHTTP)
		assert.Equal(t, DriverSQLite, cfg.DatabaseDriver)
		assert.Equal(t, "database/entrance_data.db", cfg.DatabaseDSN)
	})
}

func Test_parseJson_InvalidFilePanics(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	os.Args = []string{"testbin", "-c", filepath.Join(t.TempDir(), "missing.json")}

	require.Panics(t, func() { parseJson(&Config{}) })
}
