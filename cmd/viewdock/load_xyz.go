// Load command for XYZ trajectories.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var loadXYZObject string

var loadXYZCmd = &cobra.Command{
	Use:   "load-xyz <file>",
	Short: "Load a multi-frame XYZ file",
	Long: `Load-xyz reads an XYZ trajectory: every frame becomes one state and
one docked entry whose "value" remark carries the frame's comment line. When
every comment parses as a number the values are numeric, otherwise all are
kept as text.

Example:
  viewdock load-xyz scan.xyz`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession()
		if err != nil {
			return err
		}

		object, err := sess.loader.XYZ(args[0], loadXYZObject)
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
	loadXYZCmd.Flags().StringVar(&loadXYZObject, "object", "", "object name (default: derived from filename)")
}
