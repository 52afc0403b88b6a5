package main

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/oliveapp/olive-server/internal/localstate"
)

// ctlConfig is the optional ~/.olive/config.yaml. Flags override it.
type ctlConfig struct {
	API   string `yaml:"api"`
	Token string `yaml:"token"`
}

// loadCtlConfig reads the config file; a missing file yields zero values.
func loadCtlConfig() (ctlConfig, error) {
	var cfg ctlConfig
	dir, err := localstate.DataDir()
	if err != nil {
		return cfg, err
	}
	data, err := os.ReadFile(filepath.Join(dir, "config.yaml"))
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
