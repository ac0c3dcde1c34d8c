package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaults() *Config {
	c := &Config{}
	c.LoadDefaults()
	return c
}

func TestLoadDefaults(t *testing.T) {
	c := defaults()

	assert.Equal(t, ":8080", c.HTTPAddr)
	assert.Equal(t, ":50051", c.GRPCAddr)
	assert.Empty(t, c.DatabaseDSN)
	assert.Equal(t, "secretKey", c.SecretKey)
	assert.Equal(t, time.Hour, c.TokenValidityDuration)
	assert.NoError(t, c.Validate())
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}

	assert.Empty(t, cmp.Diff(defaults(), LoadConfig()))
}

func TestLoadConfig_FileThenFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := filepath.Join(t.TempDir(), "server.json")
	body := `{"http_addr": ":9000", "secret_key": "from-file", "token_validity": "90s", "admin_email": "root@example.com"}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	os.Args = []string{"testbin", "-c", path, "-k", "from-flag", "-ap", "pw"}

	cfg := LoadConfig()
	assert.Equal(t, ":9000", cfg.HTTPAddr)
	assert.Equal(t, "from-flag", cfg.SecretKey)
	assert.Equal(t, 90*time.Second, cfg.TokenValidityDuration)
	assert.Equal(t, "root@example.com", cfg.AdminEmail)
	assert.Equal(t, "pw", cfg.AdminPassword)
}

func TestParseFile_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.yaml")
	require.NoError(t, os.WriteFile(path, []byte("grpc_addr: ':7000'\ndatabase_dsn: postgres://db\n"), 0o600))

	cfg := defaults()
	parseFile(cfg, path)
	assert.Equal(t, ":7000", cfg.GRPCAddr)
	assert.Equal(t, "postgres://db", cfg.DatabaseDSN)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
}

func TestParseFile_Panics(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0o600))

	assert.Panics(t, func() { parseFile(defaults(), filepath.Join(dir, "missing.json")) })
	assert.Panics(t, func() { parseFile(defaults(), bad) })
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		expected    *Config
		expectPanic bool
	}{
		{
			name: "all flags",
			args: []string{"-h", ":1", "-g", ":2", "-d", "dsn", "-k", "k", "-t", "30", "-ae", "a@b.c", "-ap", "secret", "-l", "debug"},
			expected: &Config{
				HTTPAddr: ":1", GRPCAddr: ":2", DatabaseDSN: "dsn", SecretKey: "k",
				TokenValidityDuration: 30 * time.Second, AdminEmail: "a@b.c", AdminPassword: "secret", LogLevel: "debug",
			},
		},
		{
			name: "foreign flags ignored",
			args: []string{"-c", "x.json", "-z", "1", "-g", ""},
			expected: func() *Config {
				c := defaults()
				c.GRPCAddr = ""
				return c
			}(),
		},
		{name: "bad ttl", args: []string{"-t", "soon"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaults()
			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(cfg, tt.args) })
				return
			}
			require.NotPanics(t, func() { parseFlags(cfg, tt.args) })
			assert.Empty(t, cmp.Diff(tt.expected, cfg))
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"no listeners", func(c *Config) { c.HTTPAddr, c.GRPCAddr = "", "" }},
		{"empty secret", func(c *Config) { c.SecretKey = "" }},
		{"zero ttl", func(c *Config) { c.TokenValidityDuration = 0 }},
		{"half admin", func(c *Config) { c.AdminEmail = "a@b.c" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := defaults()
			tt.mutate(c)
			assert.Error(t, c.Validate())
		})
	}
}
