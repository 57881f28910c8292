package config

import (
	"path/filepath"
	"time"
)

// Config holds runtime settings for the TaskJournal CLI.
//
// Fields:
//   - ServerEndpointAddr: host:port of the backend gRPC endpoint.
//   - RequestTimeout: deadline applied to every RPC.
//   - SessionDB: path of the local SQLite file that keeps the session.
type Config struct {
	ServerEndpointAddr string
	RequestTimeout     time.Duration
	SessionDB          string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.RequestTimeout = 10 * time.Second
	c.SessionDB = filepath.Join(".taskjournal", "session.db")
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
