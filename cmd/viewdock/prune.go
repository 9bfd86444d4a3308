// Prune command: drop entries whose object is gone.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove entries whose object no longer exists",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession()
		if err != nil {
			return err
		}

		pruned := sess.registry.PruneOrphans()

		if err := sess.saveAndClose(); err != nil {
			return err
		}
		fmt.Printf("Pruned %d orphaned entries (%d left)\n", pruned, sess.registry.Len())
		return nil
	},
}
