package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/staffkeeper/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is a DTO used exclusively for file unmarshalling.
type FileConfig struct {
	HTTPAddr              string         `json:"http_addr" yaml:"http_addr"`
	GRPCAddr              string         `json:"grpc_addr" yaml:"grpc_addr"`
	DatabaseDSN           string         `json:"database_dsn" yaml:"database_dsn"`
	SecretKey             string         `json:"secret_key" yaml:"secret_key"`
	TokenValidityDuration timex.Duration `json:"token_validity" yaml:"token_validity"`
	AdminEmail            string         `json:"admin_email" yaml:"admin_email"`
	AdminPassword         string         `json:"admin_password" yaml:"admin_password"`
	LogLevel              string         `json:"log_level" yaml:"log_level"`
}

// parseFile overlays cfg with the non-empty values of the file at path.
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

	for dst, v := range map[*string]string{
		&cfg.HTTPAddr:      fc.HTTPAddr,
		&cfg.GRPCAddr:      fc.GRPCAddr,
		&cfg.DatabaseDSN:   fc.DatabaseDSN,
		&cfg.SecretKey:     fc.SecretKey,
		&cfg.AdminEmail:    fc.AdminEmail,
		&cfg.AdminPassword: fc.AdminPassword,
		&cfg.LogLevel:      fc.LogLevel,
	} {
		if v != "" {
			*dst = v
		}
	}
	if fc.TokenValidityDuration.Duration != 0 {
		cfg.TokenValidityDuration = fc.TokenValidityDuration.Duration
	}
}
