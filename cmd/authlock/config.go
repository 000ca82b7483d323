package main

import (
	"bufio"
	"os"
	"path/filepath"
	"reflect"

	"github.com/iov-one/authlock/errors"
	"github.com/naoina/toml"
)

// Config is the content of the node configuration file. Relative paths are
// resolved against the home directory.
type Config struct {
	ChainID     string `toml:"chain_id"`
	DBDir       string `toml:"db_dir"`
	GenesisFile string `toml:"genesis_file"`
	KeyFile     string `toml:"key_file"`
	LogLevel    string `toml:"log_level"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		DBDir:       "data",
		GenesisFile: "genesis.json",
		KeyFile:     "priv.key",
		LogLevel:    "info",
	}
}

// Keys are snake cased field names. Unknown keys are rejected.
var tomlSettings = toml.Config{
	NormFieldName: toml.DefaultConfig.NormFieldName,
	FieldToKey:    toml.DefaultConfig.FieldToKey,
	MissingField: func(rt reflect.Type, field string) error {
		return errors.Wrapf(errors.ErrInput, "field %q is not defined in %s", field, rt.String())
	},
}

// loadConfig reads the configuration file from given path on top of the
// default values. A missing file is not an error.
func loadConfig(home, path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		path = filepath.Join(home, "config.toml")
	}
	f, err := os.Open(path)
	switch {
	case os.IsNotExist(err):
		return cfg.resolve(home), nil
	case err != nil:
		return cfg, errors.Wrapf(errors.ErrInput, "open config: %s", err)
	}
	defer f.Close()

	if err := tomlSettings.NewDecoder(bufio.NewReader(f)).Decode(&cfg); err != nil {
		return cfg, errors.Wrapf(errors.ErrInput, "%s: %s", path, err)
	}
	return cfg.resolve(home), nil
}

func (c Config) resolve(home string) Config {
	c.DBDir = inHome(home, c.DBDir)
	c.GenesisFile = inHome(home, c.GenesisFile)
	c.KeyFile = inHome(home, c.KeyFile)
	return c
}

func inHome(home, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(home, path)
}

// writeConfig stores the configuration using the TOML format.
func writeConfig(path string, cfg Config) error {
	raw, err := tomlSettings.Marshal(&cfg)
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	if err := os.WriteFile(path, raw, 0600); err != nil {
		return errors.Wrapf(errors.ErrInput, "write config: %s", err)
	}
	return nil
}
