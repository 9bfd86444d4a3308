// Config loading for the viewdock CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/unizar-flav/viewdock/internal/formats"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	// Config keys.
	cfgKeyBackend      = "backend"
	cfgKeyDataDir      = "data_dir"
	cfgKeyDock4Mode    = "dock4_mode"
	cfgKeyPyDockMaxN   = "pydock_max_n"
	cfgKeyFetchTimeout = "fetch_timeout_seconds"

	defaultBackend      = "sqlite"
	defaultDock4Mode    = 0
	defaultFetchTimeout = 30
)

// defaultConfigYAML is the content written to config.yaml on first run.
const defaultConfigYAML = `# Viewdock CLI configuration

# Backend selection
backend: sqlite

# Data directory (optional; overridable by --data-dir flag)
# data_dir:

# Default SwissDock cluster handling for plain "load":
# 0 = all poses, 1 = best pose per cluster, 2 = one object per cluster
dock4_mode: 0

# Maximum number of pyDock conformations to load
pydock_max_n: 100

# Timeout for remote ChimeraX fetches
fetch_timeout_seconds: 30
`

// loadConfig reads config.yaml from the resolved config directory using Viper.
// It creates the config directory and a default config.yaml on first run.
// A missing config.yaml is not an error.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := ensureConfigDir(configDir); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}

	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyBackend, defaultBackend)
	v.SetDefault(cfgKeyDock4Mode, defaultDock4Mode)
	v.SetDefault(cfgKeyPyDockMaxN, formats.DefaultPyDockMaxN)
	v.SetDefault(cfgKeyFetchTimeout, defaultFetchTimeout)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Missing config.yaml is not an error.
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	return v, nil
}

// ensureConfigDir creates the config directory if it does not exist.
func ensureConfigDir(configDir string) error {
	return os.MkdirAll(configDir, 0o755)
}

// ensureDefaultConfigFile creates a default config.yaml if the file does not
// exist in the config directory.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		// File already exists.
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
