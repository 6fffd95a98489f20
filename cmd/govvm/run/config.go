// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package run

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/luxfi/govchain/vms/govvm/config"
)

// EnvPrefix prefixes every environment variable read by the run command.
const EnvPrefix = "govvm"

// Config is the node level configuration. Values are layered: defaults, then
// the YAML file, then the environment.
type Config struct {
	HTTPAddr    string `yaml:"httpAddr" envconfig:"HTTP_ADDR"`
	DataDir     string `yaml:"dataDir" envconfig:"DATA_DIR"`
	GenesisFile string `yaml:"genesisFile" envconfig:"GENESIS_FILE"`
	// ChainID is cb58 encoded. When empty it is derived from the genesis.
	ChainID string `yaml:"chainID" envconfig:"CHAIN_ID"`

	VM config.Config `yaml:"vm" envconfig:"VM"`
}

func DefaultConfig() *Config {
	return &Config{
		HTTPAddr: "127.0.0.1:9650",
		DataDir:  ".govvm/db",
		VM:       config.DefaultConfig(),
	}
}

// LoadConfig reads the YAML file at path, if any, and then the environment
// over the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		buf, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		if err := yaml.Unmarshal(buf, cfg); err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
	}
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("error processing environment: %w", err)
	}
	if err := cfg.VM.Verify(); err != nil {
		return nil, err
	}
	return cfg, nil
}
