package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmitrijs2005/staffkeeper/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is a DTO used exclusively for file unmarshalling. Intervals
// use timex.Duration so they can be written as "3s" or integer nanoseconds.
type FileConfig struct {
	ServerEndpointAddr  string         `json:"server_endpoint_addr" yaml:"server_endpoint_addr"`
	Transport           string         `json:"transport" yaml:"transport"`
	StoragePath         string         `json:"storage_path" yaml:"storage_path"`
	DecoderStrategy     string         `json:"decoder_strategy" yaml:"decoder_strategy"`
	RequestTimeout      timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval" yaml:"online_check_interval"`
	MetricsAddr         string         `json:"metrics_addr" yaml:"metrics_addr"`
	LogLevel            string         `json:"log_level" yaml:"log_level"`
}

// parseFile overlays cfg with the non-empty values of the file at path.
// ".yaml" and ".yml" files are read as YAML, everything else as JSON.
// Panics on read or unmarshal errors.
func parseFile(cfg *Config, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		panic(err)
	}

	setString(&cfg.ServerEndpointAddr, fc.ServerEndpointAddr)
	setString(&cfg.Transport, fc.Transport)
	setString(&cfg.StoragePath, fc.StoragePath)
	setString(&cfg.DecoderStrategy, fc.DecoderStrategy)
	setString(&cfg.MetricsAddr, fc.MetricsAddr)
	setString(&cfg.LogLevel, fc.LogLevel)
	setDuration(&cfg.RequestTimeout, fc.RequestTimeout)
	setDuration(&cfg.OnlineCheckInterval, fc.OnlineCheckInterval)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, v timex.Duration) {
	if v.Duration != 0 {
		*dst = v.Duration
	}
}
