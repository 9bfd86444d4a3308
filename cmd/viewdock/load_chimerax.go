// Load command for SwissDock ChimeraX descriptors.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var loadChimeraXCmd = &cobra.Command{
	Use:   "load-chimerax <file>",
	Short: "Load a SwissDock .chimerax descriptor",
	Long: `Load-chimerax reads a UCSF Chimera web-data descriptor as written by
SwissDock: the referenced receptor and ligand-cluster files are fetched from
the SwissDock server, falling back to same-named files next to the descriptor
when the calculation has expired.

Example:
  viewdock load-chimerax 12345.chimerax`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession()
		if err != nil {
			return err
		}

		if err := sess.loader.ChimeraX(args[0]); err != nil {
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
