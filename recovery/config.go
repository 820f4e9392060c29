// Copyright (C) 2018  MediBloc
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>

package recovery

import (
	"errors"
	"fmt"
	"io/ioutil"
	"os"

	"github.com/medibloc/go-keyrecover/wif"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

// ErrInvalidConfig is returned for configuration values that cannot be used.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the recovery configuration.
type Config struct {
	// Network selects the WIF version byte.
	Network string `yaml:"network"`
	// Workers is the decryption parallelism. Zero means one per CPU.
	Workers int `yaml:"workers"`
	// AcceptNoKeys accepts any master key for a wallet without keys.
	AcceptNoKeys bool      `yaml:"accept_no_keys"`
	Thorough     bool      `yaml:"thorough"`
	Log          LogConfig `yaml:"log"`
	Metrics      bool      `yaml:"metrics"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Dir holds rotated log files. Empty disables file logging.
	Dir   string `yaml:"dir"`
	Level string `yaml:"level"`
	// Age is the retention of rotated files in seconds.
	Age uint32 `yaml:"age"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Network:      "mainnet",
		Workers:      0,
		AcceptNoKeys: true,
		Log: LogConfig{
			Level: "info",
		},
	}
}

// LoadConfig loads a YAML config file over the defaults. An empty path
// returns the defaults and a missing file is created with them.
func LoadConfig(file string) (*Config, error) {
	if file == "" {
		return DefaultConfig(), nil
	}

	if !pathExist(file) {
		if err := createDefaultConfigFile(file); err != nil {
			return nil, err
		}
	}

	b, err := ioutil.ReadFile(file)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.UnmarshalStrict(b, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that every field holds a usable value.
func (c *Config) Validate() error {
	if _, err := wif.NetworkByName(c.Network); err != nil {
		return fmt.Errorf("%w: network %q", ErrInvalidConfig, c.Network)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers %d", ErrInvalidConfig, c.Workers)
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log level %q", ErrInvalidConfig, c.Log.Level)
	}
	return nil
}

func createDefaultConfigFile(filename string) error {
	return ioutil.WriteFile(filename, []byte(defaultConfigString()), 0644)
}

func defaultConfigString() string {
	b, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		panic(err)
	}
	return string(b)
}

func pathExist(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
