// Package config handles configuration for the backend server, including
// defaults, a JSON or YAML file overlay, and command-line flags.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/staffkeeper/internal/flagx"
)

// Config holds runtime settings for the StaffKeeper backend.
//
// Fields:
//   - HTTPAddr / GRPCAddr: bind addresses; an empty value disables the listener.
//   - DatabaseDSN: PostgreSQL DSN (pgx). Empty keeps everything in memory.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Do not use the default in prod.
//   - TokenValidityDuration: lifetime of issued tokens.
//   - AdminEmail / AdminPassword: seed administrator created at startup when both are set.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	HTTPAddr              string
	GRPCAddr              string
	DatabaseDSN           string
	SecretKey             string
	TokenValidityDuration time.Duration
	AdminEmail            string
	AdminPassword         string
	LogLevel              string
}

// LoadDefaults populates c with development defaults.
func (c *Config) LoadDefaults() {
	c.HTTPAddr = ":8080"
	c.GRPCAddr = ":50051"
	c.DatabaseDSN = ""
	c.SecretKey = "secretKey"
	c.TokenValidityDuration = time.Hour
	c.AdminEmail = ""
	c.AdminPassword = ""
	c.LogLevel = "info"
}

func (c *Config) Validate() error {
	if c.HTTPAddr == "" && c.GRPCAddr == "" {
		return fmt.Errorf("no listener configured")
	}
	if c.SecretKey == "" {
		return fmt.Errorf("secret key is empty")
	}
	if c.TokenValidityDuration <= 0 {
		return fmt.Errorf("token validity must be positive")
	}
	if (c.AdminEmail == "") != (c.AdminPassword == "") {
		return fmt.Errorf("admin email and password must be set together")
	}
	return nil
}

// LoadConfig applies defaults, then the config file named by -c/-config,
// then command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	if path := flagx.ConfigPath(); path != "" {
		parseFile(cfg, path)
	}
	parseFlags(cfg, os.Args[1:])
	return cfg
}
