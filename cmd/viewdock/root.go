// Root command for the viewdock CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/unizar-flav/viewdock/internal/paths"
	"github.com/unizar-flav/viewdock/pkg/docked"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// Global flag values.
var (
	flagConfigDir string
	flagDataDir   string
	flagJSON      bool
)

// cliConfig holds the config.yaml values loaded by PersistentPreRunE so all
// subcommands can use them.
var cliConfig = struct {
	dataDir             string
	dock4Mode           int
	pyDockMaxN          int
	fetchTimeoutSeconds int
}{}

var rootCmd = &cobra.Command{
	Use:     "viewdock",
	Short:   "Viewdock manages docking results from several docking programs",
	Version: docked.Version,
	Long: `Viewdock loads docking-result files (AutoDock Vina PDBQT, SwissDock
Dock4 clusters and ChimeraX descriptors, pyDock energy tables, XYZ
trajectories) into a session of docked entries that can be listed, filtered,
sorted, copied, aligned and exported.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configDir, err := resolveConfigDir()
		if err != nil {
			return err
		}

		cfg, err := loadConfig(configDir)
		if err != nil {
			return err
		}

		cliConfig.dataDir = cfg.GetString(cfgKeyDataDir)
		cliConfig.dock4Mode = cfg.GetInt(cfgKeyDock4Mode)
		cliConfig.pyDockMaxN = cfg.GetInt(cfgKeyPyDockMaxN)
		cliConfig.fetchTimeoutSeconds = cfg.GetInt(cfgKeyFetchTimeout)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default: $(CWD)/.viewdock-db)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(loadCmd)
	rootCmd.AddCommand(loadPDBQTCmd)
	rootCmd.AddCommand(loadDock4Cmd)
	rootCmd.AddCommand(loadChimeraXCmd)
	rootCmd.AddCommand(loadPyDockCmd)
	rootCmd.AddCommand(loadXYZCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(sortCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(pruneCmd)
	rootCmd.AddCommand(renameCmd)
	rootCmd.AddCommand(copyCmd)
	rootCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(alignCmd)
}

// resolveDataDir returns the data directory following the precedence chain:
// --data-dir flag > config.yaml data_dir > VIEWDOCK_DATA_DIR env > default.
func resolveDataDir() (string, error) {
	return paths.ResolveDataDir(flagDataDir, cliConfig.dataDir)
}

// resolveConfigDir returns the configuration directory following the
// precedence chain: --config-dir flag > VIEWDOCK_CONFIG_DIR env > default.
func resolveConfigDir() (string, error) {
	return paths.ResolveConfigDir(flagConfigDir)
}
