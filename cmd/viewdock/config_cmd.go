// Config command: show the effective configuration.
package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// effectiveConfig is the resolved configuration after flags, environment and
// config.yaml are merged.
type effectiveConfig struct {
	ConfigDir           string `yaml:"config_dir" json:"config_dir"`
	DataDir             string `yaml:"data_dir" json:"data_dir"`
	Dock4Mode           int    `yaml:"dock4_mode" json:"dock4_mode"`
	PyDockMaxN          int    `yaml:"pydock_max_n" json:"pydock_max_n"`
	FetchTimeoutSeconds int    `yaml:"fetch_timeout_seconds" json:"fetch_timeout_seconds"`
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		configDir, err := resolveConfigDir()
		if err != nil {
			return err
		}
		dataDir, err := resolveDataDir()
		if err != nil {
			return err
		}

		cfg := effectiveConfig{
			ConfigDir:           configDir,
			DataDir:             dataDir,
			Dock4Mode:           cliConfig.dock4Mode,
			PyDockMaxN:          cliConfig.pyDockMaxN,
			FetchTimeoutSeconds: cliConfig.fetchTimeoutSeconds,
		}

		if flagJSON {
			output, err := json.MarshalIndent(&cfg, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(output))
			return nil
		}
		output, err := yaml.Marshal(&cfg)
		if err != nil {
			return fmt.Errorf("marshal config: %w", err)
		}
		fmt.Print(string(output))
		return nil
	},
}
