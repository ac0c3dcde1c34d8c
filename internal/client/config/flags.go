package config

import (
	"flag"
	"time"

	"github.com/dmitrijs2005/staffkeeper/internal/flagx"
)

var knownFlags = []string{"-a", "-t", "-s", "-d", "-r", "-i", "-m", "-l"}

// parseFlags populates Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   backend address
//	-t string   transport: http or grpc
//	-s string   credential database path
//	-d string   identity decoder strategy: jwt or cached
//	-r int      request timeout (in seconds, 0 disables)
//	-i int      online check interval (in seconds)
//	-m string   metrics listen address
//	-l string   log level
//
// args are filtered with flagx.FilterArgs so flags owned by other
// components do not interfere. Panics on malformed values.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, knownFlags)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port to access server")
	fs.StringVar(&cfg.Transport, "t", cfg.Transport, "transport (http or grpc)")
	fs.StringVar(&cfg.StoragePath, "s", cfg.StoragePath, "credential database path")
	fs.StringVar(&cfg.DecoderStrategy, "d", cfg.DecoderStrategy, "identity decoder strategy (jwt or cached)")
	requestTimeout := fs.Int("r", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	fs.StringVar(&cfg.MetricsAddr, "m", cfg.MetricsAddr, "metrics listen address")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
	cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
}
