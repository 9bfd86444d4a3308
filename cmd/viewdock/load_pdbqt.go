// Load command for AutoDock Vina PDBQT files.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var loadPDBQTObject string

var loadPDBQTCmd = &cobra.Command{
	Use:   "load-pdbqt <file>",
	Short: "Load an AutoDock Vina PDBQT results file",
	Long: `Load-pdbqt reads a multi-MODEL PDBQT file: every model becomes one
state of the object and one docked entry carrying the Vina result values
(Affinity, RMSD_lb, RMSD_ub) plus any recognized extra remarks.

Example:
  viewdock load-pdbqt results.pdbqt
  viewdock load-pdbqt results.pdbqt --object ligand`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession()
		if err != nil {
			return err
		}

		object, err := sess.loader.PDBQT(args[0], loadPDBQTObject)
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
	loadPDBQTCmd.Flags().StringVar(&loadPDBQTObject, "object", "", "object name (default: derived from filename)")
}
