// Rename command: rename an object, keeping entries in sync.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var renameCmd = &cobra.Command{
	Use:   "rename <old> <new>",
	Short: "Rename an object",
	Long: `Rename changes an object's name. Entries referencing the old name
follow automatically.

Example:
  viewdock rename cluster docking`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession()
		if err != nil {
			return err
		}

		if err := sess.scene.Rename(args[0], args[1]); err != nil {
			sess.close()
			return err
		}

		if err := sess.saveAndClose(); err != nil {
			return err
		}
		fmt.Printf("Renamed %q to %q\n", args[0], args[1])
		return nil
	},
}
