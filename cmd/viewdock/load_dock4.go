// Load command for SwissDock / Dock 4+ cluster files.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	loadDock4Object string
	loadDock4Mode   int
)

var loadDock4Cmd = &cobra.Command{
	Use:   "load-dock4 <file>",
	Short: "Load a SwissDock cluster file (Dock 4+ format)",
	Long: `Load-dock4 reads a cluster of docked poses in Dock 4+ format, also
accepting a .zip archive wrapping one. The mode selects how clusters map to
objects and states:

  0  all poses as states of a single object (default)
  1  only the best pose of each cluster
  2  one object per cluster

The default mode can be set with dock4_mode in config.yaml.

Example:
  viewdock load-dock4 cluster.dock4
  viewdock load-dock4 cluster.dock4 --mode 2 --object docking`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mode := loadDock4Mode
		if !cmd.Flags().Changed("mode") {
			mode = cliConfig.dock4Mode
		}

		sess, err := openSession()
		if err != nil {
			return err
		}

		object, err := sess.loader.Dock4(args[0], loadDock4Object, mode)
		if err != nil {
			sess.close()
			return fmt.Errorf("load %q: %w", args[0], err)
		}

		if err := sess.saveAndClose(); err != nil {
			return err
		}
		fmt.Printf("Loaded %q as %q (%d entries in session)\n", args[0], object, sess.registry.Len())
		return nil
	},
}

func init() {
	loadDock4Cmd.Flags().StringVar(&loadDock4Object, "object", "", "object name (default: derived from filename)")
	loadDock4Cmd.Flags().IntVar(&loadDock4Mode, "mode", defaultDock4Mode, "cluster handling: 0=all, 1=best per cluster, 2=object per cluster")
}
