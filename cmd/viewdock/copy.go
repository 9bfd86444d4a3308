// Copy command: duplicate one entry's pose into a new object.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	copyExtract bool
	copyNoEntry bool
)

var copyCmd = &cobra.Command{
	Use:   "copy <row> <object>",
	Short: "Copy an entry's pose into a new object",
	Long: `Copy duplicates the geometry of the entry at the given row index
(as shown by "list --objects") into state 1 of a new object, appending a new
entry recording the copy unless --no-entry is given. With --extract the
source entry is removed afterwards.

Example:
  viewdock copy 3 best_pose
  viewdock copy 3 best_pose --extract`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var index int
		if _, err := fmt.Sscanf(args[0], "%d", &index); err != nil {
			return fmt.Errorf("row index must be a number, got %q", args[0])
		}

		sess, err := openSession()
		if err != nil {
			return err
		}

		newObject := sess.scene.NonRepeatedName(args[1])
		if err := sess.registry.CopyEntry(index, newObject, !copyNoEntry, copyExtract); err != nil {
			sess.close()
			return err
		}

		if err := sess.saveAndClose(); err != nil {
			return err
		}
		fmt.Printf("Copied row %d to %q\n", index, newObject)
		return nil
	},
}

func init() {
	copyCmd.Flags().BoolVar(&copyExtract, "extract", false, "remove the source entry after copying")
	copyCmd.Flags().BoolVar(&copyNoEntry, "no-entry", false, "copy only the geometry, without a new entry")
}
