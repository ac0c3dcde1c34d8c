package config

import (
	"flag"
	"time"

	"github.com/dmitrijs2005/staffkeeper/internal/flagx"
)

var knownFlags = []string{"-h", "-g", "-d", "-k", "-t", "-ae", "-ap", "-l"}

// parseFlags populates Config fields from command-line flags.
//
// Supported flags:
//
//	-h string   HTTP listen address
//	-g string   gRPC listen address
//	-d string   PostgreSQL DSN
//	-k string   JWT signing secret
//	-t int      token validity (in seconds)
//	-ae string  seed admin email
//	-ap string  seed admin password
//	-l string   log level
//
// Panics on malformed values.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, knownFlags)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.HTTPAddr, "h", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.GRPCAddr, "g", cfg.GRPCAddr, "gRPC listen address")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN")
	fs.StringVar(&cfg.SecretKey, "k", cfg.SecretKey, "JWT secret key")
	tokenValidity := fs.Int("t", int(cfg.TokenValidityDuration.Seconds()), "token validity (in seconds)")
	fs.StringVar(&cfg.AdminEmail, "ae", cfg.AdminEmail, "seed admin email")
	fs.StringVar(&cfg.AdminPassword, "ap", cfg.AdminPassword, "seed admin password")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.TokenValidityDuration = time.Duration(*tokenValidity) * time.Second
}
