// Load command: suffix-dispatched file loading.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var loadObject string

var loadCmd = &cobra.Command{
	Use:   "load <file>",
	Short: "Load a docking-result or structure file",
	Long: `Load dispatches on the file suffix: .pdbqt, .dock4/.zip, .chimerax,
.ene/.eneRST and .xyz go through the matching docking reader with default
options; any other suffix is loaded as plain structure without entries.

Example:
  viewdock load results.pdbqt
  viewdock load cluster.dock4 --object docking`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession()
		if err != nil {
			return err
		}

		if err := sess.loader.Load(args[0], loadObject); err != nil {
			sess.close()
			return fmt.Errorf("load %q: %w", args[0], err)
		}

		if err := sess.saveAndClose(); err != nil {
			return err
		}
		fmt.Printf("Loaded %q (%d entries in session)\n", args[0], sess.registry.Len())
		return nil
	},
}

func init() {
	loadCmd.Flags().StringVar(&loadObject, "object", "", "object name (default: derived from filename)")
}
