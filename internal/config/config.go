// Package config loads the optional TOML startup file the serve
// command accepts. Nothing in the core engine requires it — spec.md's
// external interfaces section fixes the listen address and leaves no
// required flags or environment variables — but the wiring is real
// and overrides the default when present.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the full set of values a startup file may override.
type Config struct {
	// ListenAddr overrides server.DefaultAddr when non-empty.
	ListenAddr string `toml:"listen_addr"`
	// MaxConcurrentClients is decoded from the file but not applied by
	// serve: the server's client bound is always
	// server.MaxConcurrentClients.
	MaxConcurrentClients int `toml:"max_concurrent_clients"`
}

// Load reads and decodes a TOML config file. A missing path is not an
// error — it returns the zero Config, letting callers fall back to
// built-in defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Config{}, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Config{}, nil
	}
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode %s: %w", path, err)
	}
	return cfg, nil
}
