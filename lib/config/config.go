// Copyright 2026 The Veridact Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for Veridact commands.
//
// Configuration is loaded from a single file specified by:
//   - VERIDACT_CONFIG environment variable, or
//   - --config flag passed to the command
//
// There are no fallbacks or automatic discovery. This ensures
// deterministic, auditable configuration with no hidden overrides.
package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/veridact/veridact/lib/anchor"
)

// Config is the master configuration for Veridact.
type Config struct {
	// Issuer names the organization issuing trust bundles. It appears
	// in every generated certificate.
	Issuer string `yaml:"issuer"`

	// PolicyFile is the path of a JSONC redaction policy document.
	// Empty selects the built-in HIPAA Safe Harbor policy.
	PolicyFile string `yaml:"policy_file"`

	// Anchoring configures the calendar server protocol.
	Anchoring AnchoringConfig `yaml:"anchoring"`
}

// AnchoringConfig configures calendar submission and confirmation
// polling. Durations are authored as Go duration strings ("30s",
// "5m").
type AnchoringConfig struct {
	// Servers are the calendar server base URLs. Every submission and
	// verification fans out to all of them.
	Servers []string `yaml:"servers"`

	// SubmitTimeout bounds each per-server submission request.
	// Default: 30s
	SubmitTimeout string `yaml:"submit_timeout"`

	// QueryTimeout bounds each per-server status query.
	// Default: 15s
	QueryTimeout string `yaml:"query_timeout"`

	// PollInterval is the confirmation-wait polling cadence.
	// Default: 30s
	PollInterval string `yaml:"poll_interval"`

	// ConfirmationTimeout bounds the whole confirmation wait.
	// Default: 10m
	ConfirmationTimeout string `yaml:"confirmation_timeout"`
}

// Default returns the default configuration: the public calendar
// pools and conservative timeouts. These are the values used when no
// config file is given.
func Default() *Config {
	return &Config{
		Issuer: "veridact",
		Anchoring: AnchoringConfig{
			Servers: []string{
				"https://a.pool.opentimestamps.org",
				"https://b.pool.opentimestamps.org",
				"https://a.pool.eternitywall.com",
				"https://ots.btc.catallaxy.com",
			},
			SubmitTimeout:       "30s",
			QueryTimeout:        "15s",
			PollInterval:        "30s",
			ConfirmationTimeout: "10m",
		},
	}
}

// Load loads configuration from the VERIDACT_CONFIG environment
// variable. If the variable is not set, the defaults are returned:
// unlike server software, the command-line tools are expected to work
// out of the box against the public calendar pools.
func Load() (*Config, error) {
	configPath := os.Getenv("VERIDACT_CONFIG")
	if configPath == "" {
		return Default(), nil
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path. The file's
// values are layered over the defaults, then validated. Environment
// variables never override file values.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration for errors that would otherwise
// surface as confusing protocol failures later.
func (c *Config) Validate() error {
	if c.Issuer == "" {
		return fmt.Errorf("issuer must not be empty")
	}
	if len(c.Anchoring.Servers) == 0 {
		return fmt.Errorf("anchoring.servers must list at least one calendar server")
	}
	for _, server := range c.Anchoring.Servers {
		parsed, err := url.Parse(server)
		if err != nil {
			return fmt.Errorf("anchoring.servers: %q: %w", server, err)
		}
		if parsed.Scheme != "http" && parsed.Scheme != "https" {
			return fmt.Errorf("anchoring.servers: %q: scheme must be http or https", server)
		}
		if parsed.Host == "" {
			return fmt.Errorf("anchoring.servers: %q: missing host", server)
		}
	}

	durations := map[string]string{
		"anchoring.submit_timeout":       c.Anchoring.SubmitTimeout,
		"anchoring.query_timeout":        c.Anchoring.QueryTimeout,
		"anchoring.poll_interval":        c.Anchoring.PollInterval,
		"anchoring.confirmation_timeout": c.Anchoring.ConfirmationTimeout,
	}
	for field, value := range durations {
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("%s: %w", field, err)
		}
		if parsed <= 0 {
			return fmt.Errorf("%s must be positive, got %s", field, value)
		}
	}
	return nil
}

// AnchorConfig converts the anchoring section into the orchestrator's
// runtime configuration. The config must have passed Validate.
func (c *Config) AnchorConfig() (anchor.Config, error) {
	if err := c.Validate(); err != nil {
		return anchor.Config{}, err
	}

	parse := func(value string) time.Duration {
		parsed, _ := time.ParseDuration(value)
		return parsed
	}
	return anchor.Config{
		Servers:             c.Anchoring.Servers,
		SubmitTimeout:       parse(c.Anchoring.SubmitTimeout),
		QueryTimeout:        parse(c.Anchoring.QueryTimeout),
		PollInterval:        parse(c.Anchoring.PollInterval),
		ConfirmationTimeout: parse(c.Anchoring.ConfirmationTimeout),
	}, nil
}
