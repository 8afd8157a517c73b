package main

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// PatternConfig is one registration line of a bench config file: the
// pattern source per component (empty/omitted fields are unconstrained, per
// urlpattern.Init) plus an opaque payload string returned on match.
type PatternConfig struct {
	Hostname string
	Pathname string
	Search   string
	Payload  string
}

// ServeConfig configures the optional fasthttp front end.
type ServeConfig struct {
	Addr string
}

// Config is the bench CLI's whole input: a batch of patterns to register, a
// batch of URLs to repeatedly match against them, and how many times to
// repeat the run for a latency estimate.
type Config struct {
	Patterns []PatternConfig
	Requests []string
	Repeat   int
	Serve    ServeConfig
}

// loadConfig reads a TOML config file, following the corpus's convention of
// BurntSushi/toml for CLI configuration.
func loadConfig(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("urlpatternbench: load config %q: %w", path, err)
	}
	if cfg.Repeat <= 0 {
		cfg.Repeat = 1
	}
	if cfg.Serve.Addr == "" {
		cfg.Serve.Addr = ":8080"
	}
	return &cfg, nil
}
