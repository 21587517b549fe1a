// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Fedigraph Contributors

package config

import (
	"errors"
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	fgerr "github.com/fedigraph/fedigraph/pkg/errors"
)

// Config is the top-level fedigraph configuration.
type Config struct {
	Instance  InstanceConfig  `mapstructure:"instance" yaml:"instance"`
	Storage   StorageConfig   `mapstructure:"storage" yaml:"storage"`
	Expansion ExpansionConfig `mapstructure:"expansion" yaml:"expansion"`
	Server    ServerConfig    `mapstructure:"server" yaml:"server"`
}

// InstanceConfig identifies the Mastodon instance the directory client
// is bound to.
type InstanceConfig struct {
	URL         string `mapstructure:"url" yaml:"url"`
	AccessToken string `mapstructure:"access_token" yaml:"access_token"`
}

// StorageConfig selects the graph store backend.
type StorageConfig struct {
	Backend string `mapstructure:"backend" yaml:"backend"`
	Path    string `mapstructure:"path" yaml:"path"`
	Wipe    bool   `mapstructure:"wipe" yaml:"wipe"`
}

// ExpansionConfig controls neighbor expansion behavior.
type ExpansionConfig struct {
	Followers bool `mapstructure:"followers" yaml:"followers"`
	Following bool `mapstructure:"following" yaml:"following"`
	Strict    bool `mapstructure:"strict" yaml:"strict"`
}

// ServerConfig controls the REST surface.
type ServerConfig struct {
	Listen      string   `mapstructure:"listen" yaml:"listen"`
	CORSOrigins []string `mapstructure:"cors_origins" yaml:"cors_origins"`
}

// SetDefaults registers default values on the given Viper instance.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("instance.url", "https://mastodon.social")
	v.SetDefault("storage.backend", "sqlite")
	v.SetDefault("storage.path", "fedigraph.db")
	v.SetDefault("storage.wipe", false)
	v.SetDefault("expansion.followers", false)
	v.SetDefault("expansion.following", true)
	v.SetDefault("expansion.strict", false)
	v.SetDefault("server.listen", "127.0.0.1:18990")
}

// SetupEnv binds environment variables with the FEDIGRAPH_ prefix, so
// e.g. FEDIGRAPH_INSTANCE_ACCESS_TOKEN overrides instance.access_token.
func SetupEnv(v *viper.Viper) {
	v.SetEnvPrefix("FEDIGRAPH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load reads configuration from the given path (or defaults) with
// environment variable overrides.
func Load(path string) (*Config, error) {
	v := viper.New()

	SetDefaults(v)
	SetupEnv(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fgerr.Errorf(fgerr.CodeConfigLoadReadFailure, "reading config %s: %w", path, err)
		}
	}

	return FromViper(v)
}

// FromViper unmarshals and validates a fully populated Viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fgerr.Errorf(fgerr.CodeConfigValidateInvalidValue, "unmarshalling config: %w", err)
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, fgerr.Errorf(fgerr.CodeConfigValidateInvalidValue, "validating config: %w", errors.Join(errs...))
	}

	return &cfg, nil
}

// Validate checks the configuration for logical errors. It returns all
// validation errors found rather than stopping at the first one.
func (c *Config) Validate() []error {
	var errs []error

	errs = append(errs, c.validateInstance()...)
	errs = append(errs, c.validateStorage()...)
	errs = append(errs, c.validateExpansion()...)
	errs = append(errs, c.validateServer()...)

	return errs
}

func (c *Config) validateInstance() []error {
	var errs []error

	if c.Instance.URL == "" {
		errs = append(errs, fgerr.Errorf(fgerr.CodeConfigValidateInvalidValue, "config: instance.url must not be empty"))
		return errs
	}

	u, err := url.Parse(c.Instance.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fgerr.Errorf(fgerr.CodeConfigValidateInvalidValue,
			"config: instance.url must be an absolute URL, got %q", c.Instance.URL))
	}

	return errs
}

func (c *Config) validateStorage() []error {
	var errs []error

	validBackends := map[string]bool{"memory": true, "sqlite": true}
	if !validBackends[c.Storage.Backend] {
		errs = append(errs, fgerr.Errorf(fgerr.CodeConfigValidateInvalidValue,
			"config: storage.backend must be one of [memory, sqlite], got %q",
			c.Storage.Backend,
		))
	}

	if c.Storage.Backend == "sqlite" && c.Storage.Path == "" {
		errs = append(errs, fgerr.Errorf(fgerr.CodeConfigValidateInvalidValue,
			"config: storage.path must not be empty for the sqlite backend"))
	}

	return errs
}

func (c *Config) validateExpansion() []error {
	var errs []error

	if !c.Expansion.Followers && !c.Expansion.Following {
		errs = append(errs, fgerr.Errorf(fgerr.CodeConfigValidateInvalidValue,
			"config: at least one of expansion.followers and expansion.following must be enabled"))
	}

	return errs
}

func (c *Config) validateServer() []error {
	var errs []error

	if c.Server.Listen == "" {
		errs = append(errs, fgerr.Errorf(fgerr.CodeConfigValidateInvalidValue, "config: server.listen must not be empty"))
		return errs
	}

	_, portStr, err := net.SplitHostPort(c.Server.Listen)
	if err != nil {
		errs = append(errs, fgerr.Errorf(fgerr.CodeConfigValidateInvalidValue,
			"config: server.listen must be a valid host:port address, got %q: %w",
			c.Server.Listen, err,
		))
		return errs
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		errs = append(errs, fgerr.Errorf(fgerr.CodeConfigValidateInvalidValue,
			"config: server.listen port must be a number, got %q", portStr))
	} else if port < 1 || port > 65535 {
		errs = append(errs, fgerr.Errorf(fgerr.CodeConfigValidateInvalidValue,
			"config: server.listen port must be between 1 and 65535, got %d", port))
	}

	return errs
}
