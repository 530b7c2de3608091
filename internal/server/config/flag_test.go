package config

import (
	"flag"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {

	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{name: "Test1 OK", args: []string{"cmd",
			"-a", "127.0.0.1:9090", "-b", "postgres", "-d", "postgres://u:p@localhost:5432/faces",
		}, expectPanic: false,
			expected: &Config{
				EndpointAddrHTTP: "127.0.0.1:9090",
				DatabaseDriver:   "postgres",
				DatabaseDSN:      "postgres://u:p@localhost:5432/faces",
			}},
		{name: "Test2 sqlite file", args: []string{"cmd",
			"-a", ":8000", "-b", "sqlite", "-d", "faces.db",
		}, expectPanic: false,
			expected: &Config{
				EndpointAddrHTTP: ":8000",
				DatabaseDriver:   "sqlite",
				DatabaseDSN:      "faces.db",
			}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.PanicOnError)

			os.Args = tt.args

			config := &Config{}

			if !tt.expectPanic {
				require.NotPanics(t, func() { parseFlags(config) })
				assert.Empty(t, cmp.Diff(config, tt.expected))
			} else {
				require.Panics(t, func() { parseFlags(config) })
			}
		})
	}
}
