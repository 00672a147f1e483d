package main

import (
	"github.com/BurntSushi/toml"
	"github.com/iov-one/bridge"
	"github.com/iov-one/bridge/errors"
)

// Config is the node configuration read from a TOML file.
type Config struct {
	ChainID  string `toml:"chain_id"`
	DBDir    string `toml:"db_dir"`
	Genesis  string `toml:"genesis"`
	HTTP     string `toml:"http"`
	LogFile  string `toml:"log_file"`
	LogLevel string `toml:"log_level"`
}

// LoadConfig decodes the file at given path. Unknown keys are rejected so
// that a typo does not silently fall back to a default.
func LoadConfig(path string) (*Config, error) {
	var conf Config
	md, err := toml.DecodeFile(path, &conf)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "config %s: %s", path, err)
	}
	if keys := md.Undecoded(); len(keys) != 0 {
		return nil, errors.Wrapf(errors.ErrInput, "config %s: unknown key %q", path, keys[0].String())
	}
	conf.setDefaults()
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return &conf, nil
}

func (c *Config) setDefaults() {
	if c.HTTP == "" {
		c.HTTP = ":8000"
	}
	if c.DBDir == "" {
		c.DBDir = "data"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// Validate returns an error if the configuration cannot be used.
func (c *Config) Validate() error {
	var errs error
	if !bridge.IsValidChainID(c.ChainID) {
		errs = errors.AppendField(errs, "chain_id", errors.Wrapf(errors.ErrInput, "invalid chain id %q", c.ChainID))
	}
	switch c.LogLevel {
	case "debug", "info", "error", "none":
	default:
		errs = errors.AppendField(errs, "log_level", errors.Wrapf(errors.ErrInput, "unknown level %q", c.LogLevel))
	}
	return errs
}
