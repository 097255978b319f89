// Package config loads SCDL's runtime configuration (server bind
// address, CORS origin, worker pool size, debug logging) from an
// optional config file, environment variables, and defaults, using
// viper the same way the rest of this module's HTTP and CLI tooling
// expects.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the resolved settings for the server and CLI.
type Config struct {
	v *viper.Viper
}

// Load builds a Config from defaults, an optional file at path (skipped
// if empty or missing), and SCDL_-prefixed environment variables —
// e.g. SCDL_SERVER_PORT overrides server.port.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.local_only", true)
	v.SetDefault("server.cors_origin", "*")
	v.SetDefault("runner.workers", 0) // 0 => runtime.NumCPU()
	v.SetDefault("debug", false)

	v.SetEnvPrefix("scdl")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("config: reading %s: %w", path, err)
			}
		}
	}

	return &Config{v: v}, nil
}

func (c *Config) ServerPort() int        { return c.v.GetInt("server.port") }
func (c *Config) ServerLocalOnly() bool  { return c.v.GetBool("server.local_only") }
func (c *Config) CORSAllowOrigin() string { return c.v.GetString("server.cors_origin") }
func (c *Config) RunnerWorkers() int     { return c.v.GetInt("runner.workers") }
func (c *Config) Debug() bool            { return c.v.GetBool("debug") }

// GetBool exposes an arbitrary boolean key, mirroring how the rest of
// this module reads ad hoc flags straight out of viper.
func (c *Config) GetBool(key string) bool { return c.v.GetBool(key) }
