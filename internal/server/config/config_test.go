package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, c.EndpointAddrHTTP, ":8000")
	assert.Equal(t, c.DatabaseDriver, DriverSQLite)
	assert.Equal(t, c.DatabaseDSN, "database/entrance_data.db")
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}

	c := LoadConfig()

	require.NotNil(t, c, "LoadConfig must not return nil")

	assert.Equal(t, c.EndpointAddrHTTP, ":8000")
	assert.Equal(t, c.DatabaseDriver, DriverSQLite)
	assert.Equal(t, c.DatabaseDSN, "database/entrance_data.db")
}
