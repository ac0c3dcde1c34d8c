package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dmitrijs2005/staffkeeper/internal/flagx"
)

const (
	TransportHTTP = "http"
	TransportGRPC = "grpc"
)

// Config holds runtime settings for the StaffKeeper CLI.
//
// Fields:
//   - ServerEndpointAddr: host:port (or URL for HTTP) of the backend.
//   - Transport: "http" or "grpc".
//   - StoragePath: SQLite file holding the persisted credential.
//   - DecoderStrategy: "jwt" or "cached"; fixed for the life of the process.
//   - RequestTimeout: upper bound for a single backend call; 0 disables it.
//   - OnlineCheckInterval: how often the client probes server reachability.
//   - MetricsAddr: listen address for /metrics; empty disables it.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	ServerEndpointAddr  string
	Transport           string
	StoragePath         string
	DecoderStrategy     string
	RequestTimeout      time.Duration
	OnlineCheckInterval time.Duration
	MetricsAddr         string
	LogLevel            string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:8080"
	c.Transport = TransportHTTP
	c.StoragePath = "staffkeeper.db"
	c.DecoderStrategy = "jwt"
	c.RequestTimeout = 10 * time.Second
	c.OnlineCheckInterval = 3 * time.Second
	c.MetricsAddr = ""
	c.LogLevel = "info"
}

// Validate reports settings no component could work with.
func (c *Config) Validate() error {
	switch c.Transport {
	case TransportHTTP, TransportGRPC:
	default:
		return fmt.Errorf("unknown transport %q", c.Transport)
	}
	switch strings.ToLower(c.DecoderStrategy) {
	case "jwt", "cached":
	default:
		return fmt.Errorf("unknown decoder strategy %q", c.DecoderStrategy)
	}
	if c.ServerEndpointAddr == "" {
		return fmt.Errorf("server endpoint address is empty")
	}
	if c.StoragePath == "" {
		return fmt.Errorf("storage path is empty")
	}
	if c.OnlineCheckInterval <= 0 {
		return fmt.Errorf("online check interval must be positive")
	}
	return nil
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// a config file (if -c/-config is given) and command-line flags. Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	if path := flagx.ConfigPath(); path != "" {
		parseFile(cfg, path)
	}
	parseFlags(cfg, os.Args[1:])
	return cfg
}
