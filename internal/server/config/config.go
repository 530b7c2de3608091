// Package config handles configuration for the server component,
// including defaults, JSON overlay, and command-line flags.
package config

// Driver names accepted in DatabaseDriver.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds runtime settings for the FaceVault server.
//
// Fields:
//   - EndpointAddrHTTP: bind address for the public HTTP endpoint.
//   - DatabaseDriver: storage backend, "sqlite" (embedded, default) or "postgres".
//   - DatabaseDSN: file path for sqlite, connection DSN for postgres.
type Config struct {
	EndpointAddrHTTP string
	DatabaseDriver   string
	DatabaseDSN      string
}

// LoadDefaults populates Config with sensible development defaults.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":8000"
	c.DatabaseDriver = DriverSQLite
	c.DatabaseDSN = "database/entrance_data.db"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
