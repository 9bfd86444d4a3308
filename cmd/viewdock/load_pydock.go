// Load command for pyDock energy resume files.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	loadPyDockObject string
	loadPyDockMaxN   int
)

var loadPyDockCmd = &cobra.Command{
	Use:   "load-pydock <file>",
	Short: "Load a pyDock energy resume file (.ene / .eneRST)",
	Long: `Load-pydock reads a pyDock energy table. The receptor (*_rec.pdb)
and the per-conformation ligand files (*_<Conf>.pdb) are looked up next to
the energy file; rows whose ligand file is missing are skipped with a
warning.

Example:
  viewdock load-pydock dock.ene
  viewdock load-pydock dock.ene --max-n 20`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		maxN := loadPyDockMaxN
		if !cmd.Flags().Changed("max-n") && cliConfig.pyDockMaxN > 0 {
			maxN = cliConfig.pyDockMaxN
		}

		sess, err := openSession()
		if err != nil {
			return err
		}

		object, err := sess.loader.PyDock(args[0], loadPyDockObject, maxN)
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
	loadPyDockCmd.Flags().StringVar(&loadPyDockObject, "object", "", "object name (default: derived from filename)")
	loadPyDockCmd.Flags().IntVar(&loadPyDockMaxN, "max-n", 0, "maximum number of conformations to load (0 = config default)")
}
