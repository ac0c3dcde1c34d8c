// Package config loads runtime configuration for the StaffKeeper CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected via flags: -c or -config. Files ending
//     in .yaml or .yml are read as YAML, anything else as JSON. Only the
//     keys present in the file override defaults.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   backend address
//	-t string   transport: http or grpc
//	-s string   credential database path
//	-d string   identity decoder strategy: jwt or cached
//	-r int      request timeout (seconds)
//	-i int      online status check interval (seconds)
//	-m string   metrics listen address
//	-l string   log level
//
// # File schema
//
// Intervals use timex.Duration, so values can be either strings like "3s"
// or integer nanoseconds:
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:8080",
//	  "transport": "http",
//	  "storage_path": "staffkeeper.db",
//	  "decoder_strategy": "jwt",
//	  "request_timeout": "10s",
//	  "online_check_interval": "3s",
//	  "metrics_addr": "127.0.0.1:9100",
//	  "log_level": "info"
//	}
//
// Note: This package does not read environment variables directly; use the
// config file or flags to configure values.
package config
